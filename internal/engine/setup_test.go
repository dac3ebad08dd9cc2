package engine

import (
	"os"
	"testing"

	"cavesight/internal/domain"
	"cavesight/pkg/dungeon"
	"cavesight/pkg/logger"
	"cavesight/pkg/terrain"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

// createTestLevel собирает уровень из ASCII-схемы.
// 'X' постоянная стена, '.' пол, '+' закрытая дверь, '>' лестница вниз,
// '#' гранит, 'M' монстр на полу, '@' старт наблюдателя.
func createTestLevel(t *testing.T, rows ...string) *dungeon.Level {
	t.Helper()
	legend := map[rune]domain.FeatureID{
		'X': domain.FeatPermSolid,
		'#': domain.FeatWallExtra,
		'.': domain.FeatFloor,
		'+': domain.FeatDoorHead,
		'>': domain.FeatMore,
		'M': domain.FeatFloor,
		'@': domain.FeatFloor,
	}

	c := domain.NewCave(len(rows[0]), len(rows), terrain.Default())
	c.Depth = 1
	level := &dungeon.Level{
		Cave:     c,
		Objects:  domain.ObjectList{{}},
		Monsters: domain.MonsterList{{}},
	}
	for y, row := range rows {
		for x, ch := range row {
			p := domain.Position{X: x, Y: y}
			feat, ok := legend[ch]
			if !ok {
				t.Fatalf("unknown map symbol %q", ch)
			}
			c.SetFeature(p, feat)
			switch ch {
			case '@':
				level.Start = p
			case 'M':
				level.Monsters = append(level.Monsters, domain.Monster{Race: 1, Pos: p})
				c.SetMonsterIdx(p, int16(len(level.Monsters)-1))
			}
		}
	}
	c.Objects = level.Objects
	c.Monsters = level.Monsters
	c.MoveObserver(level.Start, level.Start)
	c.Live = true
	return level
}

// roomRows - комната 15x15 с наблюдателем в центре.
func roomRows() []string {
	rows := make([]string, 15)
	for y := range rows {
		row := []byte("X.............X")
		if y == 0 || y == 14 {
			row = []byte("XXXXXXXXXXXXXXX")
		}
		if y == 7 {
			row[7] = '@'
		}
		rows[y] = string(row)
	}
	return rows
}

func testConfig() Config {
	cfg := NewConfig()
	cfg.Seed = 42
	cfg.LightRadius = 2
	return cfg
}

func command(t *testing.T, action domain.ActionType, payload any) domain.InternalCommand {
	t.Helper()
	cmd, err := domain.NewCommand(action, "test", payload)
	if err != nil {
		t.Fatal(err)
	}
	return cmd
}
