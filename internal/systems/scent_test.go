package systems

import (
	"testing"

	"cavesight/internal/domain"
)

func TestScentField_Kernel(t *testing.T) {
	c := openCave(t, 15, 15)
	field := NewScentField()
	obs := pos(7, 7)

	if marked := field.Update(c, obs); marked != 21 {
		t.Errorf("marked %d cells, want 21", marked)
	}
	if field.When() != domain.ScentReset {
		t.Fatalf("When = %d, want %d", field.When(), domain.ScentReset)
	}

	base := uint8(field.When())
	for i := 0; i < 5; i++ {
		for j := 0; j < 5; j++ {
			p := pos(obs.X+j-2, obs.Y+i-2)
			want := uint8(0)
			if adj := scentKernel[i][j]; adj != domain.ScentSkip {
				want = base + adj
			}
			if got := c.When(p); got != want {
				t.Errorf("scent at %v = %d, want %d", p, got, want)
			}
		}
	}

	// Следующий ход: запах свежее на единицу
	field.Update(c, obs)
	if got := c.When(obs); got != base-1 {
		t.Errorf("scent at observer = %d, want %d", got, base-1)
	}
	if got := c.When(pos(9, 7)); got != base+1 {
		t.Errorf("scent two cells away = %d, want %d", got, base+1)
	}
}

func TestScentField_BlockedCells(t *testing.T) {
	t.Run("Walls hold no scent", func(t *testing.T) {
		c := openCave(t, 15, 15)
		if marked := NewScentField().Update(c, pos(1, 1)); marked != 8 {
			t.Errorf("marked %d cells, want 8", marked)
		}
		if c.When(pos(0, 1)) != 0 || c.When(pos(1, 0)) != 0 {
			t.Error("walls must not hold scent")
		}
	})

	t.Run("Scent needs line of sight", func(t *testing.T) {
		c := openCave(t, 15, 15)
		c.SetFeature(pos(8, 7), domain.FeatTree)
		NewScentField().Update(c, pos(7, 7))
		if c.When(pos(8, 7)) == 0 {
			t.Error("trees hold scent")
		}
		if c.When(pos(9, 7)) != 0 {
			t.Error("cell behind trees must stay clean")
		}
	})
}

func TestScentField_Renormalize(t *testing.T) {
	c := openCave(t, 20, 20)
	field := NewScentField()
	field.when = 1

	fresh, edge, stale := pos(15, 2), pos(15, 3), pos(15, 4)
	c.SetWhen(fresh, 30)
	c.SetWhen(edge, domain.SmellStrength)
	c.SetWhen(stale, domain.SmellStrength+1)

	field.Update(c, pos(3, 3))

	if field.When() != domain.ScentReset {
		t.Errorf("When = %d, want %d", field.When(), domain.ScentReset)
	}
	if got := c.When(fresh); got != domain.ScentReset+30 {
		t.Errorf("fresh scent = %d, want %d", got, domain.ScentReset+30)
	}
	if got := c.When(edge); got != domain.ScentReset+domain.SmellStrength {
		t.Errorf("edge scent = %d, want %d", got, domain.ScentReset+domain.SmellStrength)
	}
	if got := c.When(stale); got != 0 {
		t.Errorf("stale scent = %d, want 0", got)
	}
	if got := c.When(pos(10, 10)); got != 0 {
		t.Errorf("untouched cell = %d, want 0", got)
	}
	if got := c.When(pos(3, 3)); got != domain.ScentReset {
		t.Errorf("fresh deposit = %d, want %d", got, domain.ScentReset)
	}
}
