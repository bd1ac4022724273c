// Package species defines the evolution chain of droppable pieces.
package species

import (
	"errors"
	"fmt"

	"github.com/pthm-cable/zoodrop/config"
)

// Name identifies a species. Names are unique within a catalog.
type Name string

// RGB is a display colour.
type RGB struct {
	R, G, B uint8
}

// Species is one immutable link of the evolution chain.
type Species struct {
	Name      Name
	Radius    float64
	Color     RGB
	EvolvesTo Name // empty for the terminal form
	Rank      int  // zero-based position in the chain
}

// Terminal reports whether the species never merges.
func (s *Species) Terminal() bool {
	return s.EvolvesTo == ""
}

// Catalog validation errors.
var (
	ErrEmpty          = errors.New("catalog is empty")
	ErrDuplicateName  = errors.New("duplicate species name")
	ErrBadRadius      = errors.New("radius must be positive")
	ErrUnknownTarget  = errors.New("evolves_to references unknown species")
	ErrTerminalCount  = errors.New("exactly one terminal species required")
	ErrTerminalNotEnd = errors.New("terminal species must be last")
	ErrCycle          = errors.New("evolution chain does not reach the terminal species")
)

// Catalog is the ordered, read-only species table.
type Catalog struct {
	list   []Species
	byName map[Name]int
}

// NewCatalog validates the chain and builds the lookup table.
// The order of defs is the evolution rank.
func NewCatalog(defs []Species) (*Catalog, error) {
	if len(defs) == 0 {
		return nil, ErrEmpty
	}

	c := &Catalog{
		list:   make([]Species, len(defs)),
		byName: make(map[Name]int, len(defs)),
	}
	terminals := 0
	for i, d := range defs {
		if _, dup := c.byName[d.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, d.Name)
		}
		if d.Radius <= 0 {
			return nil, fmt.Errorf("%w: %q has radius %v", ErrBadRadius, d.Name, d.Radius)
		}
		if d.EvolvesTo == "" {
			terminals++
			if i != len(defs)-1 {
				return nil, fmt.Errorf("%w: %q at rank %d", ErrTerminalNotEnd, d.Name, i)
			}
		}
		d.Rank = i
		c.list[i] = d
		c.byName[d.Name] = i
	}
	if terminals != 1 {
		return nil, fmt.Errorf("%w: found %d", ErrTerminalCount, terminals)
	}

	for i := range c.list {
		s := &c.list[i]
		if !s.Terminal() {
			if _, ok := c.byName[s.EvolvesTo]; !ok {
				return nil, fmt.Errorf("%w: %q -> %q", ErrUnknownTarget, s.Name, s.EvolvesTo)
			}
		}
	}

	// Walk from every species; a chain that revisits a node never terminates.
	for i := range c.list {
		seen := make(map[Name]bool, len(c.list))
		cur := &c.list[i]
		for !cur.Terminal() {
			if seen[cur.Name] {
				return nil, fmt.Errorf("%w: cycle through %q", ErrCycle, cur.Name)
			}
			seen[cur.Name] = true
			cur = &c.list[c.byName[cur.EvolvesTo]]
		}
	}

	return c, nil
}

// FromConfig builds a catalog from the configured species list.
func FromConfig(defs []config.SpeciesConfig) (*Catalog, error) {
	list := make([]Species, len(defs))
	for i, d := range defs {
		list[i] = Species{
			Name:      Name(d.Name),
			Radius:    d.Radius,
			Color:     RGB{R: d.Color[0], G: d.Color[1], B: d.Color[2]},
			EvolvesTo: Name(d.EvolvesTo),
		}
	}
	c, err := NewCatalog(list)
	if err != nil {
		return nil, fmt.Errorf("building species catalog: %w", err)
	}
	return c, nil
}

// Lookup returns the species with the given name.
func (c *Catalog) Lookup(name Name) (*Species, bool) {
	i, ok := c.byName[name]
	if !ok {
		return nil, false
	}
	return &c.list[i], true
}

// At returns the species at the given rank.
func (c *Catalog) At(rank int) (*Species, bool) {
	if rank < 0 || rank >= len(c.list) {
		return nil, false
	}
	return &c.list[rank], true
}

// RankOf returns the zero-based rank of the named species, or -1.
func (c *Catalog) RankOf(name Name) int {
	i, ok := c.byName[name]
	if !ok {
		return -1
	}
	return i
}

// Evolve returns the species s merges into.
// Terminal species and unknown targets both report false.
func (c *Catalog) Evolve(s *Species) (*Species, bool) {
	if s == nil || s.Terminal() {
		return nil, false
	}
	return c.Lookup(s.EvolvesTo)
}

// Len returns the number of species.
func (c *Catalog) Len() int {
	return len(c.list)
}

// All returns the species in rank order. The slice must not be modified.
func (c *Catalog) All() []Species {
	return c.list
}
