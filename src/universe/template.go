package universe

import (
	"sort"

	"github.com/pkg/errors"
)

// ErrUnknownTemplate is returned when settling with a template that was never added
var ErrUnknownTemplate = errors.New("unknown template")

//Template represent the seeding template which can used to settle the universe with predefined data
type Template struct {
	Name        string  //template name
	Descr       string  //template descr
	Coordinates [][]int //array of [x,y] coordinates
}

//Offset returns a copy of the template moved by dx, dy
func (t Template) Offset(dx int, dy int) Template {
	vc := make([][]int, len(t.Coordinates))
	for i, v := range t.Coordinates {
		vc[i] = []int{v[0] + dx, v[1] + dy}
	}
	t.Coordinates = vc
	return t
}

// built-in templates, placed near the top left corner
var defaultTemplates = []Template{
	{"block", "2x2 still life", [][]int{{1, 1}, {2, 1}, {1, 2}, {2, 2}}},
	{"blinker", "period 2 oscillator", [][]int{{2, 3}, {3, 3}, {4, 3}}},
	{"glider", "the glider moving to the bottom right", [][]int{{2, 1}, {3, 2}, {1, 3}, {2, 3}, {3, 3}}},
	{"sample", "the test sample with 3 stable patterns", [][]int{
		{1, 1}, {1, 2},
		{2, 1}, {2, 2},
		{3, 3},
		{4, 2},
		{4, 3},
		{5, 3},
	}},
}

//templateNames returns sorted names of the templates
func templateNames(templates map[string]Template) []string {
	names := make([]string, 0, len(templates))
	for k := range templates {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
