package species

import (
	"errors"
	"testing"

	"github.com/pthm-cable/zoodrop/config"
)

func chain() []Species {
	return []Species{
		{Name: "mouse", Radius: 20, EvolvesTo: "rabbit"},
		{Name: "rabbit", Radius: 25, EvolvesTo: "cat"},
		{Name: "cat", Radius: 30},
	}
}

func TestNewCatalogValid(t *testing.T) {
	c, err := NewCatalog(chain())
	if err != nil {
		t.Fatalf("NewCatalog error: %v", err)
	}
	if c.Len() != 3 {
		t.Fatalf("Len = %d, want 3", c.Len())
	}

	rabbit, ok := c.Lookup("rabbit")
	if !ok {
		t.Fatal("rabbit not found")
	}
	if rabbit.Rank != 1 {
		t.Errorf("rabbit rank = %d, want 1", rabbit.Rank)
	}
	if got := c.RankOf("cat"); got != 2 {
		t.Errorf("RankOf(cat) = %d, want 2", got)
	}

	next, ok := c.Evolve(rabbit)
	if !ok || next.Name != "cat" {
		t.Errorf("Evolve(rabbit) = %v, %v; want cat", next, ok)
	}

	cat, _ := c.Lookup("cat")
	if !cat.Terminal() {
		t.Error("cat should be terminal")
	}
	if _, ok := c.Evolve(cat); ok {
		t.Error("terminal species should not evolve")
	}
}

func TestLookupMiss(t *testing.T) {
	c, err := NewCatalog(chain())
	if err != nil {
		t.Fatal(err)
	}
	if s, ok := c.Lookup("dragon"); ok || s != nil {
		t.Errorf("Lookup(dragon) = %v, %v; want nil, false", s, ok)
	}
	if got := c.RankOf("dragon"); got != -1 {
		t.Errorf("RankOf(dragon) = %d, want -1", got)
	}
	if _, ok := c.At(3); ok {
		t.Error("At(3) should be out of range")
	}
	if _, ok := c.At(-1); ok {
		t.Error("At(-1) should be out of range")
	}
}

func TestNewCatalogErrors(t *testing.T) {
	tests := []struct {
		name string
		defs []Species
		want error
	}{
		{"empty", nil, ErrEmpty},
		{
			"duplicate",
			[]Species{{Name: "a", Radius: 1, EvolvesTo: "a"}, {Name: "a", Radius: 1}},
			ErrDuplicateName,
		},
		{
			"zero radius",
			[]Species{{Name: "a", Radius: 0}},
			ErrBadRadius,
		},
		{
			"unknown target",
			[]Species{{Name: "a", Radius: 1, EvolvesTo: "zzz"}, {Name: "b", Radius: 1}},
			ErrUnknownTarget,
		},
		{
			"terminal not last",
			[]Species{{Name: "a", Radius: 1}, {Name: "b", Radius: 1, EvolvesTo: "a"}},
			ErrTerminalNotEnd,
		},
		{
			"no terminal",
			[]Species{{Name: "a", Radius: 1, EvolvesTo: "b"}, {Name: "b", Radius: 1, EvolvesTo: "a"}},
			ErrTerminalCount,
		},
		{
			"cycle beside terminal",
			[]Species{
				{Name: "a", Radius: 1, EvolvesTo: "b"},
				{Name: "b", Radius: 1, EvolvesTo: "a"},
				{Name: "c", Radius: 1},
			},
			ErrCycle,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewCatalog(tc.defs)
			if !errors.Is(err, tc.want) {
				t.Errorf("error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestFromConfigDefaults(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	c, err := FromConfig(cfg.Species)
	if err != nil {
		t.Fatalf("default species chain invalid: %v", err)
	}

	// Every non-terminal species must reach the terminal form.
	for _, s := range c.All() {
		cur := &s
		steps := 0
		for !cur.Terminal() {
			next, ok := c.Evolve(cur)
			if !ok {
				t.Fatalf("%q: evolve failed", cur.Name)
			}
			cur = next
			steps++
			if steps > c.Len() {
				t.Fatalf("%q: chain too long", s.Name)
			}
		}
	}

	first, _ := c.At(0)
	if first.Color != (RGB{R: 128, G: 128, B: 128}) {
		t.Errorf("first color = %+v", first.Color)
	}
}
