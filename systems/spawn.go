package systems

import (
	"math/rand"

	"github.com/pthm-cable/zoodrop/physics"
	"github.com/pthm-cable/zoodrop/species"
)

// SpawnController picks the next piece and keeps drops inside the walls.
type SpawnController struct {
	catalog *species.Catalog
	rng     *rand.Rand

	Width    float64 // arena width
	Inset    float64 // distance from each side to the inner wall
	SpawnY   float64
	PoolSize int // next piece is drawn from the first PoolSize species
}

// NewSpawnController creates a controller drawing from rng.
func NewSpawnController(catalog *species.Catalog, rng *rand.Rand, width, inset, spawnY float64, poolSize int) *SpawnController {
	if poolSize < 1 {
		poolSize = 1
	}
	if poolSize > catalog.Len() {
		poolSize = catalog.Len()
	}
	return &SpawnController{
		catalog:  catalog,
		rng:      rng,
		Width:    width,
		Inset:    inset,
		SpawnY:   spawnY,
		PoolSize: poolSize,
	}
}

// Next returns a species drawn uniformly from the spawn pool.
func (s *SpawnController) Next() *species.Species {
	sp, _ := s.catalog.At(s.rng.Intn(s.PoolSize))
	return sp
}

// ClampX keeps a circle of the given radius between the inner walls.
func (s *SpawnController) ClampX(rawX, radius float64) float64 {
	lo := s.Inset + radius
	hi := s.Width - s.Inset - radius
	if rawX < lo {
		return lo
	}
	if rawX > hi {
		return hi
	}
	return rawX
}

// SpawnPoint returns where a piece of species sp dropped at rawX appears.
// The same point positions the preview.
func (s *SpawnController) SpawnPoint(rawX float64, sp *species.Species) physics.Vec {
	return physics.Vec{X: s.ClampX(rawX, sp.Radius), Y: s.SpawnY}
}
