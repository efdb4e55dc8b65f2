package universe

import (
	"math/rand"
)

//Seeder populates the world with random cells
type Seeder struct {
	rng *rand.Rand
}

// NewSeeder creates the seeder, a nil rng uses a time based source
func NewSeeder(rng *rand.Rand) *Seeder {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &Seeder{rng: rng}
}

//Seed draws k random coordinates and makes each cell alive
//repeated draws land on the same cell, so the live count may be less than k
func (s *Seeder) Seed(w *World, k int) {
	side := w.Side()
	for i := 0; i < k; i++ {
		x := s.rng.Intn(side)
		y := s.rng.Intn(side)
		w.cur.rows[y][x] = Alive
		w.MarkVisited(x, y)
	}
}

//Settle makes the cells alive at the given [x, y] coordinates
//coordinates outside the world are skipped
func Settle(w *World, vc [][]int) {
	side := w.Side()
	for _, v := range vc {
		if len(v) < 2 || v[0] < 0 || v[1] < 0 || v[0] >= side || v[1] >= side {
			continue
		}
		w.cur.rows[v[1]][v[0]] = Alive
		w.MarkVisited(v[0], v[1])
	}
}
