package domain

import (
	"math/rand/v2"
	"testing"
)

// Минимальная таблица рельефа для тестов пакета
type testFeatures map[FeatureID]*Feature

func (t testFeatures) Feature(id FeatureID) *Feature { return t[id] }

func newTestFeatures() testFeatures {
	add := func(t testFeatures, id FeatureID, name string, flags TerrainFlag) {
		t[id] = &Feature{ID: id, Name: name, Mimic: id, Flags: flags}
	}
	t := testFeatures{}
	add(t, FeatNone, "nothing", 0)
	add(t, FeatFloor, "open floor", TFLos|TFProject|TFPassable|TFFloor|TFObject|TFTrap)
	add(t, FeatOpen, "open door", TFLos|TFProject|TFPassable|TFInteresting|TFDoorAny|TFClosable)
	add(t, FeatBroken, "broken door", TFLos|TFProject|TFPassable|TFInteresting|TFDoorAny)
	add(t, FeatMore, "down staircase", TFLos|TFProject|TFPassable|TFInteresting|TFStair|TFDownstair)
	for id := FeatDoorHead; id <= FeatDoorTail; id++ {
		flags := TFInteresting | TFDoorAny | TFDoorClosed
		if id > FeatDoorHead {
			flags |= TFDoorLocked
		}
		add(t, id, "door", flags)
	}
	add(t, FeatSecret, "secret door", TFWall|TFRock|TFGranite|TFDoorAny)
	t[FeatSecret].Mimic = FeatWallExtra
	add(t, FeatRubble, "pile of rubble", TFRock|TFInteresting)
	add(t, FeatMagma, "magma vein", TFWall|TFRock|TFMagma)
	add(t, FeatQuartz, "quartz vein", TFWall|TFRock|TFQuartz)
	add(t, FeatMagmaH, "magma vein", TFWall|TFRock|TFMagma|TFGold)
	add(t, FeatMagmaK, "magma vein with treasure", TFWall|TFRock|TFMagma|TFGold|TFInteresting)
	add(t, FeatQuartzK, "quartz vein with treasure", TFWall|TFRock|TFQuartz|TFGold|TFInteresting)
	add(t, FeatWallExtra, "granite wall", TFWall|TFRock|TFGranite)
	add(t, FeatPermSolid, "permanent wall", TFWall|TFRock|TFPermanent)
	add(t, FeatShopHead+2, "weaponsmith", TFLos|TFProject|TFPassable|TFShop|TFInteresting|TFPermanent)
	return t
}

func newTestCave(w, h int) *Cave {
	c := NewCave(w, h, newTestFeatures())
	c.Strict = true
	c.Each(func(p Position) { c.SetFeature(p, FeatFloor) })
	return c
}

func TestNewCaveAndFree(t *testing.T) {
	c := NewCave(4, 3, newTestFeatures())
	if c.Width != 4 || c.Height != 3 {
		t.Fatalf("size = %dx%d, want 4x3", c.Width, c.Height)
	}
	if got := c.Feat(Position{X: 3, Y: 2}); got != FeatNone {
		t.Errorf("fresh cell feat = %d, want FeatNone", got)
	}

	c.Free()
	c.Free() // повторный вызов - no-op
	if !c.Freed() {
		t.Error("cave not marked as freed")
	}
	if c.InBounds(Position{X: 0, Y: 0}) {
		t.Error("freed cave must have no cells")
	}
}

func TestInBounds(t *testing.T) {
	c := NewCave(5, 4, newTestFeatures())

	tests := []struct {
		name  string
		p     Position
		in    bool
		fully bool
	}{
		{"Corner", Position{X: 0, Y: 0}, true, false},
		{"Inner", Position{X: 1, Y: 1}, true, true},
		{"Right border", Position{X: 4, Y: 2}, true, false},
		{"Bottom border", Position{X: 2, Y: 3}, true, false},
		{"Outside", Position{X: 5, Y: 0}, false, false},
		{"Negative", Position{X: -1, Y: 2}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.InBounds(tt.p); got != tt.in {
				t.Errorf("InBounds(%v) = %v, want %v", tt.p, got, tt.in)
			}
			if got := c.InBoundsFully(tt.p); got != tt.fully {
				t.Errorf("InBoundsFully(%v) = %v, want %v", tt.p, got, tt.fully)
			}
		})
	}
}

func TestOutOfBoundsPolicy(t *testing.T) {
	c := NewCave(3, 3, newTestFeatures())
	out := Position{X: 7, Y: 7}

	// Нестрогий режим: нулевые значения и no-op
	c.SetInfo(out, SquareMark)
	c.SetFeature(out, FeatFloor)
	if c.Info(out) != 0 || c.Feat(out) != FeatNone || c.Cost(out) != 0 {
		t.Error("out of bounds access must read zero values")
	}
	if !c.IsWall(out) || !c.BlocksSight(out) {
		t.Error("out of bounds cell must behave as a wall")
	}

	c.Strict = true
	defer func() {
		if recover() == nil {
			t.Error("strict cave must panic on out of bounds access")
		}
	}()
	c.Feat(out)
}

type recordingNotifier struct {
	remembered []Position
	redrawn    []Position
}

func (r *recordingNotifier) RememberCell(p Position) { r.remembered = append(r.remembered, p) }
func (r *recordingNotifier) RedrawCell(p Position)   { r.redrawn = append(r.redrawn, p) }

func TestSetFeatureCountsAndNotifies(t *testing.T) {
	c := newTestCave(5, 5)
	if got := c.FeatCount(FeatFloor); got != 25 {
		t.Fatalf("floor count = %d, want 25", got)
	}

	p := Position{X: 2, Y: 2}
	c.SetFeature(p, FeatWallExtra)
	if c.FeatCount(FeatFloor) != 24 || c.FeatCount(FeatWallExtra) != 1 {
		t.Errorf("counts after change: floor=%d wall=%d", c.FeatCount(FeatFloor), c.FeatCount(FeatWallExtra))
	}

	// До Live - без уведомлений
	n := &recordingNotifier{}
	c.Notifier = n
	c.SetInfo(p, SquareSeen)
	c.SetFeature(p, FeatFloor)
	if len(n.redrawn) != 0 {
		t.Error("level under construction must not request redraws")
	}

	c.Live = true
	c.SetFeature(p, FeatRubble)
	if len(n.redrawn) != 1 || len(n.remembered) != 1 {
		t.Errorf("live change: redrawn=%d remembered=%d, want 1/1", len(n.redrawn), len(n.remembered))
	}
	if !c.IsMarked(p) {
		t.Error("seen cell must be remembered after change")
	}
}

func TestPredicates(t *testing.T) {
	c := newTestCave(8, 3)
	cells := map[int]FeatureID{
		0: FeatWallExtra,
		1: FeatSecret,
		2: FeatRubble,
		3: FeatMagmaH,
		4: FeatDoorHead + 3,
		5: FeatBroken,
		6: FeatPermSolid,
		7: FeatShopHead + 2,
	}
	for x, f := range cells {
		c.SetFeature(Position{X: x, Y: 0}, f)
	}
	at := func(x int) Position { return Position{X: x, Y: 0} }
	c.SetFeature(Position{X: 2, Y: 2}, FeatMore)
	c.SetObjectIdx(Position{X: 3, Y: 1}, 1)

	tests := []struct {
		name string
		got  bool
		want bool
	}{
		{"granite is rock", c.IsRock(at(0)), true},
		{"secret door is not rock", c.IsRock(at(1)), false},
		{"secret door", c.IsSecretDoor(at(1)), true},
		{"secret door diggable", c.IsDiggable(at(1)), true},
		{"rubble", c.IsRubble(at(2)), true},
		{"rubble not wall", c.IsStrongWall(at(2)), false},
		{"hidden gold", c.HasSecretVein(at(3)), true},
		{"hidden gold is mineral", c.IsMineral(at(3)), true},
		{"locked door", c.IsLockedDoor(at(4)), true},
		{"closed door", c.IsClosedDoor(at(4)), true},
		{"broken door", c.IsBrokenDoor(at(5)), true},
		{"broken door not open", c.IsOpenDoor(at(5)), false},
		{"perm", c.IsPerm(at(6)), true},
		{"perm strong", c.IsStrongWall(at(6)), true},
		{"perm not diggable", c.IsDiggable(at(6)), false},
		{"shop", c.IsShop(at(7)), true},
		{"floor passable", c.IsPassable(Position{X: 1, Y: 1}), true},
		{"floor boring", c.IsBoring(Position{X: 1, Y: 1}), true},
		{"floor empty", c.IsEmpty(Position{X: 1, Y: 1}), true},
		{"wall is wall", c.IsWall(at(0)), true},
		{"granite seems like wall", c.SeemsLikeWall(at(0)), true},
		{"rubble seems like wall", c.SeemsLikeWall(at(2)), true},
		{"door does not seem like wall", c.SeemsLikeWall(at(5)), false},
		{"monsters walk on floor", c.IsMonsterWalkable(Position{X: 1, Y: 1}), true},
		{"monsters do not walk into walls", c.IsMonsterWalkable(at(0)), false},
		{"shop is interesting", c.IsInteresting(at(7)), true},
		{"shop is noticeable", c.Noticeable(at(7)), true},
		{"floor is not noticeable", c.Noticeable(Position{X: 1, Y: 1}), false},
		{"stairs", c.IsStairs(Position{X: 2, Y: 2}), true},
		{"floor is not stairs", c.IsStairs(Position{X: 1, Y: 1}), false},
		{"item fits on empty floor", c.CanPutItem(Position{X: 1, Y: 1}), true},
		{"no item on an occupied cell", c.CanPutItem(Position{X: 3, Y: 1}), false},
		{"no item in a wall", c.CanPutItem(at(0)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}

	if got := c.ShopNum(at(7)); got != 2 {
		t.Errorf("ShopNum = %d, want 2", got)
	}
	if got := c.ShopNum(at(0)); got != -1 {
		t.Errorf("ShopNum(wall) = %d, want -1", got)
	}
	if got := c.DoorPower(at(4)); got != 3 {
		t.Errorf("DoorPower = %d, want 3", got)
	}

	// Сокровище - только видимая жила с золотом
	if !c.Features.Feature(FeatMagmaK).IsTreasure() || c.Features.Feature(FeatMagmaH).IsTreasure() {
		t.Error("IsTreasure must need both gold and a visible vein")
	}
}

func TestFloorMutators(t *testing.T) {
	tests := []struct {
		name   string
		from   FeatureID
		mutate func(c *Cave, p Position)
	}{
		{"DestroyWall granite", FeatWallExtra, (*Cave).DestroyWall},
		{"DestroyWall vein", FeatQuartzK, (*Cave).DestroyWall},
		{"ForceFloor door", FeatDoorHead + 2, (*Cave).ForceFloor},
		{"ForceFloor rubble", FeatRubble, (*Cave).ForceFloor},
		{"TunnelWall magma", FeatMagma, (*Cave).TunnelWall},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCave(3, 3)
			p := Position{X: 1, Y: 1}
			c.SetFeature(p, tt.from)
			tt.mutate(c, p)
			if c.Feat(p) != FeatFloor || !c.IsPassable(p) {
				t.Errorf("feat = %#x, want floor", c.Feat(p))
			}
		})
	}
}

func TestDoorAndVeinMutators(t *testing.T) {
	c := newTestCave(3, 3)
	p := Position{X: 1, Y: 1}

	c.LockDoor(p, 5)
	if !c.IsLockedDoor(p) || c.DoorPower(p) != 5 {
		t.Fatalf("LockDoor: feat=%#x", c.Feat(p))
	}
	c.UnlockDoor(p)
	if c.IsLockedDoor(p) || !c.IsClosedDoor(p) {
		t.Errorf("UnlockDoor: feat=%#x", c.Feat(p))
	}
	c.OpenDoor(p)
	if !c.IsOpenDoor(p) {
		t.Error("OpenDoor failed")
	}
	c.SmashDoor(p)
	if !c.IsBrokenDoor(p) {
		t.Error("SmashDoor failed")
	}
	c.DestroyDoor(p)
	if !c.IsFloor(p) {
		t.Error("DestroyDoor failed")
	}

	c.SetFeature(p, FeatMagmaH)
	c.ShowVein(p)
	if c.Feat(p) != FeatMagmaK {
		t.Errorf("ShowVein: feat=%#x, want %#x", c.Feat(p), FeatMagmaK)
	}
	c.SetFeature(p, FeatQuartz)
	c.UpgradeMineral(p)
	if c.Feat(p) != FeatQuartzK {
		t.Errorf("UpgradeMineral: feat=%#x, want %#x", c.Feat(p), FeatQuartzK)
	}
}

func TestEarthquakeAndDestroy(t *testing.T) {
	c := newTestCave(3, 3)
	rng := rand.New(rand.NewPCG(1, 2))
	p := Position{X: 1, Y: 1}

	c.SetFeature(p, FeatWallExtra)
	c.Earthquake(p, rng)
	if !c.IsFloor(p) {
		t.Error("earthquake must clear an impassable cell")
	}
	c.Earthquake(p, rng)
	if c.IsPassable(p) {
		t.Error("earthquake must fill a passable cell")
	}

	allowed := map[FeatureID]bool{FeatFloor: true, FeatWallExtra: true, FeatQuartz: true, FeatMagma: true}
	for i := 0; i < 50; i++ {
		c.Destroy(p, rng)
		if !allowed[c.Feat(p)] {
			t.Fatalf("Destroy produced %#x", c.Feat(p))
		}
	}
}

func TestTrapsAndWards(t *testing.T) {
	c := newTestCave(3, 3)
	p := Position{X: 1, Y: 1}

	c.AddTrap(p, 7, false)
	if !c.IsSecretTrap(p) || c.IsKnownTrap(p) {
		t.Error("hidden trap expected")
	}
	c.TrapAt(p).Visible = true
	if !c.IsKnownTrap(p) {
		t.Error("known trap expected")
	}

	if !c.CanWard(p) {
		t.Fatal("floor must accept a ward")
	}
	c.AddWard(p)
	c.DestroyTrap(p)
	if !c.IsWarded(p) {
		t.Error("DestroyTrap must keep runes")
	}
	c.RemoveWard(p)
	if c.IsTrap(p) || c.HasInfo(p, SquareTrap) {
		t.Error("cell must be clear after removing the ward")
	}
}

func TestDTrapEdge(t *testing.T) {
	c := newTestCave(7, 7)
	for y := 1; y <= 4; y++ {
		for x := 1; x <= 4; x++ {
			c.SetInfo(Position{X: x, Y: y}, SquareDTrap)
		}
	}

	if !c.DTrapEdge(Position{X: 4, Y: 2}) {
		t.Error("border of the detect zone must be an edge")
	}
	if c.DTrapEdge(Position{X: 2, Y: 2}) {
		t.Error("inner cell must not be an edge")
	}
	if c.DTrapEdge(Position{X: 5, Y: 5}) {
		t.Error("cell outside the zone is never an edge")
	}
}

func TestApparentNameAndDestruction(t *testing.T) {
	c := newTestCave(3, 3)
	p := Position{X: 1, Y: 1}
	c.SetFeature(p, FeatSecret)

	if got := c.ApparentName(p); got != "unknown_grid" {
		t.Errorf("unknown cell name = %q", got)
	}
	c.SetInfo(p, SquareMark)
	if got := c.ApparentName(p); got != "granite wall" {
		t.Errorf("secret door must look like granite, got %q", got)
	}

	objs := ObjectList{{}, {Kind: 1, Pos: p, Artifact: true}}
	c.Objects = objs
	c.SetObjectIdx(p, 1)
	if c.ValidForDestruction(p) {
		t.Error("cell with an artifact must not be destroyable")
	}
	c.SetFeature(Position{X: 0, Y: 0}, FeatPermSolid)
	if c.ValidForDestruction(Position{X: 0, Y: 0}) {
		t.Error("permanent cell must not be destroyable")
	}
}

func TestCountFeats(t *testing.T) {
	c := newTestCave(5, 5)
	center := Position{X: 2, Y: 2}
	doors := []Position{{X: 1, Y: 1}, {X: 3, Y: 2}, {X: 2, Y: 3}}
	for _, d := range doors {
		c.CloseDoor(d)
		c.SetInfo(d, SquareMark)
	}
	// Дверь, о которой игрок не знает, не считается
	c.CloseDoor(Position{X: 3, Y: 3})
	c.CloseDoor(center)
	c.SetInfo(center, SquareMark)

	isDoor := func(c *Cave, p Position) bool { return c.IsClosedDoor(p) }

	n, _ := CountFeats(c, center, isDoor, false)
	if n != 3 {
		t.Errorf("around = %d, want 3", n)
	}
	n, last := CountFeats(c, center, isDoor, true)
	if n != 4 || last != center {
		t.Errorf("with under = %d last %v, want 4 at %v", n, last, center)
	}
}
