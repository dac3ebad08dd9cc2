package dungeon

import (
	"math/rand/v2"
	"os"
	"testing"

	"cavesight/internal/domain"
	"cavesight/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func newRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed*7+1))
}

// reachable - BFS по клеткам, через которые можно пройти (двери и завалы
// считаются проходимыми).
func reachable(c *domain.Cave, from domain.Position) map[domain.Position]bool {
	seen := map[domain.Position]bool{from: true}
	queue := []domain.Position{from}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for d := 0; d < 8; d++ {
			q := p.Neighbor(d)
			if seen[q] || !c.InBounds(q) {
				continue
			}
			if c.IsPassable(q) || c.IsDoor(q) || c.IsRubble(q) {
				seen[q] = true
				queue = append(queue, q)
			}
		}
	}
	return seen
}

func checkLevel(t *testing.T, level *Level) {
	t.Helper()
	c := level.Cave

	if !c.Live {
		t.Error("level must be live after Build")
	}
	if c.MonsterIdx(level.Start) != -1 {
		t.Errorf("observer mark missing at start %v", level.Start)
	}
	if !c.IsPassable(level.Start) {
		t.Errorf("start %v is not passable: %#x", level.Start, c.Feat(level.Start))
	}

	// Рамка из постоянной стены
	c.Each(func(p domain.Position) {
		if !c.InBoundsFully(p) && !c.IsPerm(p) {
			t.Fatalf("border cell %v is not permanent: %#x", p, c.Feat(p))
		}
	})

	if n := c.FeatCount(domain.FeatMore); n != 1 {
		t.Fatalf("down staircases = %d, want 1", n)
	}
	seen := reachable(c, level.Start)
	c.Each(func(p domain.Position) {
		if c.Feat(p) == domain.FeatMore && !seen[p] {
			t.Errorf("down staircase %v is unreachable", p)
		}
	})

	// Индексы монстров и предметов согласованы с реестрами
	for i := 1; i < len(level.Monsters); i++ {
		m := level.Monsters[i]
		if got := c.MonsterIdx(m.Pos); got != int16(i) {
			t.Errorf("monster %d at %v: cell index %d", i, m.Pos, got)
		}
	}
	for i := 1; i < len(level.Objects); i++ {
		o := level.Objects[i]
		found := false
		for _, stacked := range c.ObjectsAt(o.Pos) {
			if stacked == &level.Objects[i] {
				found = true
			}
		}
		if !found {
			t.Errorf("object %d is not in the stack at %v", i, o.Pos)
		}
	}
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		name   string
		depth  int
		layout Layout
	}{
		{"Rooms shallow", 1, LayoutRooms},
		{"Rooms deep", 12, LayoutRooms},
		{"Cave", 5, LayoutCave},
		{"Cave deep", 20, LayoutCave},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for seed := uint64(1); seed <= 5; seed++ {
				level := Generate(tt.depth, tt.layout, newRNG(seed))
				c := level.Cave

				if c.Width != MapWidth || c.Height != MapHeight {
					t.Fatalf("Expected map size %dx%d, got %dx%d", MapWidth, MapHeight, c.Width, c.Height)
				}
				if c.Depth != tt.depth {
					t.Errorf("Depth = %d, want %d", c.Depth, tt.depth)
				}
				if !c.IsUpstairs(level.Start) {
					t.Errorf("seed %d: no up staircase at start %v", seed, level.Start)
				}
				if tt.layout == LayoutRooms && len(level.Rooms) == 0 {
					t.Errorf("seed %d: no rooms", seed)
				}
				for _, trap := range c.Traps {
					if trap.Visible {
						t.Errorf("seed %d: trap at %v is visible", seed, trap.Pos)
					}
				}
				checkLevel(t, level)
			}
		})
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	a := Generate(4, LayoutRooms, newRNG(42)).Cave
	b := Generate(4, LayoutRooms, newRNG(42)).Cave
	a.Each(func(p domain.Position) {
		if a.Feat(p) != b.Feat(p) || a.Info(p) != b.Info(p) {
			t.Fatalf("levels differ at %v", p)
		}
	})
}

func TestGenerateSurface(t *testing.T) {
	level := Generate(0, LayoutCave, newRNG(3))
	c := level.Cave

	if c.Depth != 0 {
		t.Errorf("Depth = %d, want 0", c.Depth)
	}
	checkLevel(t, level)

	shops := 0
	c.Each(func(p domain.Position) {
		if c.IsGlow(p) {
			t.Fatalf("town cell %v is lit before the session sets the time of day", p)
		}
		if c.IsShop(p) {
			shops++
		}
	})
	if shops != int(domain.FeatShopHome-domain.FeatShopHead)+1 {
		t.Errorf("shops = %d", shops)
	}
	if len(level.Monsters) < 2 {
		t.Error("town has no merchants")
	}
}

func TestSpawnMonsters_MinDepth(t *testing.T) {
	level := NewLevel(1, newRNG(5)).
		WithRooms(MaxRooms).
		SpawnMonsters("troll", 3).
		SpawnMonsters("nobody", 3).
		SpawnMonsters("goblin", 2).
		Build()

	for i := 1; i < len(level.Monsters); i++ {
		if level.Monsters[i].Race != Goblin.Race {
			t.Errorf("monster %d has race %d at depth 1", i, level.Monsters[i].Race)
		}
	}
	if len(level.Monsters) != 3 {
		t.Errorf("monsters = %d, want 2 goblins", len(level.Monsters)-1)
	}
}

func TestWithVault(t *testing.T) {
	level := NewLevel(8, newRNG(9)).WithRooms(MaxRooms).WithVault().Build()
	if len(level.Rooms) < 3 {
		t.Skip("not enough rooms for a vault")
	}
	c := level.Cave

	vault := 0
	c.Each(func(p domain.Position) {
		if !c.IsVault(p) {
			return
		}
		vault++
		if c.IsGlow(p) {
			t.Errorf("vault cell %v is lit", p)
		}
		if c.IsDoor(p) && !c.IsSecretDoor(p) {
			t.Errorf("vault door %v is not secret", p)
		}
	})
	if vault == 0 {
		t.Fatal("no vault cells")
	}

	artifacts := 0
	for _, o := range level.Objects[1:] {
		if o.Artifact {
			artifacts++
			if !c.IsVault(o.Pos) {
				t.Errorf("artifact at %v outside the vault", o.Pos)
			}
		}
	}
	if artifacts != 1 {
		t.Errorf("artifacts = %d, want 1", artifacts)
	}
}

func TestSpawnObjects_Stacks(t *testing.T) {
	b := NewLevel(2, newRNG(1)).WithSize(15, 15).WithRooms(1)
	p := b.GetStartPos()
	b.putObject(Torch, p)
	b.putObject(GoldCoin, p)
	level := b.Build()

	stack := level.Cave.ObjectsAt(p)
	if len(stack) != 2 {
		t.Fatalf("stack size = %d, want 2", len(stack))
	}
	if stack[0].Kind != GoldCoin.Kind || stack[1].Kind != Torch.Kind {
		t.Errorf("stack order = %d, %d", stack[0].Kind, stack[1].Kind)
	}
}

func TestParseLayout(t *testing.T) {
	for _, l := range []Layout{LayoutRooms, LayoutCave} {
		got, err := ParseLayout(l.String())
		if err != nil || got != l {
			t.Errorf("ParseLayout(%q) = %v, %v", l, got, err)
		}
	}
	if _, err := ParseLayout("maze"); err == nil {
		t.Error("expected an error for an unknown layout")
	}
}

// Тест вспомогательной функции пересечения комнат
func TestRect_Intersects(t *testing.T) {
	r1 := Rect{0, 0, 10, 10}
	r2 := Rect{5, 5, 10, 10} // Пересекается
	r3 := Rect{20, 20, 5, 5} // Не пересекается

	if !r1.Intersects(r2) {
		t.Error("Rects should intersect")
	}

	if r1.Intersects(r3) {
		t.Error("Rects should NOT intersect")
	}

	if !r1.Contains(domain.Position{X: 10, Y: 0}) || r1.Contains(domain.Position{X: 11, Y: 5}) {
		t.Error("Contains must include the walls and nothing beyond")
	}
}
