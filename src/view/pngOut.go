package view

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

//PNGOut saves every n-th presented frame as a PNG file
type PNGOut struct {
	mu     sync.Mutex
	dir    string
	every  int
	frames int
	saved  []string
	err    error
}

//NewPNGOut creates the display sink writing into dir, every <= 0 saves only the first frame
func NewPNGOut(dir string, every int) (*PNGOut, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "[NewPNGOut] failed to create dir: %+v", dir)
	}
	return &PNGOut{dir: dir, every: every}, nil
}

func (p *PNGOut) Present(img *image.RGBA) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.frames++
	if p.err != nil {
		return
	}
	if p.every <= 0 && p.frames != 1 || p.every > 0 && p.frames%p.every != 0 {
		return
	}
	name := filepath.Join(p.dir, fmt.Sprintf("game_of_life_%06d.png", p.frames))
	if err := writePNG(name, img); err != nil {
		p.err = err
		return
	}
	p.saved = append(p.saved, name)
}

// Saved returns the files written so far
func (p *PNGOut) Saved() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.saved...)
}

// Err returns the first write error, frames are no longer saved after it
func (p *PNGOut) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

func writePNG(name string, img image.Image) error {
	f, err := os.Create(name)
	if err != nil {
		return errors.Wrapf(err, "[writePNG] failed to create file: %+v", name)
	}
	if err = png.Encode(f, img); err != nil {
		_ = f.Close()
		return errors.Wrapf(err, "[writePNG] failed to encode file: %+v", name)
	}
	return errors.Wrapf(f.Close(), "[writePNG] failed to close file: %+v", name)
}
