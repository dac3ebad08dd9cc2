package systems

import (
	"math/rand/v2"
	"strings"
	"testing"

	"cavesight/internal/domain"
	"cavesight/pkg/terrain"
)

func TestScatter(t *testing.T) {
	c := createTestCave(t,
		"XXXXXXXXXXXX",
		"X..........X",
		"X..........X",
		"X....#.....X",
		"X..........X",
		"X..........X",
		"X..........X",
		"XXXXXXXXXXXX",
	)
	rng := rand.New(rand.NewPCG(1, 2))
	origin := pos(4, 4)

	for _, d := range []int{1, 2, 3, 5} {
		for i := 0; i < 200; i++ {
			p, ok := Scatter(c, rng, origin, d)
			if !ok {
				t.Fatalf("Scatter(d=%d) failed", d)
			}
			if !c.InBoundsFully(p) {
				t.Fatalf("Scatter returned border cell %v", p)
			}
			if abs(p.X-origin.X) > d || abs(p.Y-origin.Y) > d {
				t.Fatalf("Scatter returned %v outside spread %d", p, d)
			}
			if d > 1 && domain.Distance(origin, p) > d {
				t.Fatalf("Scatter returned %v farther than %d", p, d)
			}
			if !HasLineOfSight(c, origin, p) {
				t.Fatalf("Scatter returned %v without line of sight", p)
			}
		}
	}
}

func TestScatter_GivesUp(t *testing.T) {
	// В сетке 2x2 нет ни одной клетки вне внешнего кольца
	c := domain.NewCave(2, 2, terrain.Default())
	c.Strict = true
	c.Each(func(p domain.Position) { c.SetFeature(p, domain.FeatFloor) })

	rng := rand.New(rand.NewPCG(7, 7))
	origin := pos(0, 0)
	p, ok := Scatter(c, rng, origin, 3)
	if ok {
		t.Fatalf("Scatter must fail, got %v", p)
	}
	if p != origin {
		t.Errorf("failed Scatter must return origin, got %v", p)
	}
}

func TestValidateTarget(t *testing.T) {
	c := openCave(t, 12, 12)
	c.SetMonsterIdx(pos(3, 5), 2)

	tests := []struct {
		name      string
		to        domain.Position
		limit     int
		needClear bool
		valid     bool
		message   string
	}{
		{"Valid target", pos(8, 1), 10, false, true, ""},
		{"Valid clear target", pos(8, 1), 10, true, true, ""},
		{"Out of bounds", pos(-1, 3), 10, false, false, "out of bounds"},
		{"Too far", pos(10, 10), 5, false, false, "too far"},
		{"Wall", pos(0, 1), 10, false, false, "not projectable"},
		{"Monster on the line", pos(3, 9), 10, true, false, "blocked"},
		{"Monster ignored", pos(3, 9), 10, false, true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidateTarget(c, pos(3, 1), tt.to, tt.limit, tt.needClear)
			if res.Valid != tt.valid {
				t.Fatalf("Valid = %v, want %v (%s)", res.Valid, tt.valid, res.Message)
			}
			if !strings.Contains(res.Message, tt.message) {
				t.Errorf("Message = %q, want it to mention %q", res.Message, tt.message)
			}
		})
	}
}
