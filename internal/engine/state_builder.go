package engine

import (
	"cavesight/internal/domain"
	"cavesight/internal/systems"
	"cavesight/pkg/api"
	"cavesight/pkg/dungeon"
)

// Символы рельефа для отладочного клиента
var featureGlyphs = map[domain.FeatureID]api.Glyph{
	domain.FeatFloor:    api.MakeGlyph(0x9CA3AF, '.'),
	domain.FeatOpen:     api.MakeGlyph(0xB45309, '\''),
	domain.FeatBroken:   api.MakeGlyph(0xB45309, '\''),
	domain.FeatMore:     api.MakeGlyph(0xFFFFFF, '>'),
	domain.FeatLess:     api.MakeGlyph(0xFFFFFF, '<'),
	domain.FeatDoorHead: api.MakeGlyph(0xB45309, '+'),
	domain.FeatRubble:   api.MakeGlyph(0x78716C, ':'),
	domain.FeatMagma:    api.MakeGlyph(0x7C2D12, '%'),
	domain.FeatQuartz:   api.MakeGlyph(0xE5E7EB, '%'),
	domain.FeatMagmaK:   api.MakeGlyph(0xF59E0B, '*'),
	domain.FeatQuartzK:  api.MakeGlyph(0xF59E0B, '*'),
	domain.FeatLava:     api.MakeGlyph(0xDC2626, '#'),
	domain.FeatWater:    api.MakeGlyph(0x2563EB, '~'),
	domain.FeatTree:     api.MakeGlyph(0x15803D, 'T'),
	domain.FeatGrass:    api.MakeGlyph(0x4ADE80, '.'),
	domain.FeatRoad:     api.MakeGlyph(0xA8A29E, '.'),
	domain.FeatVoid:     api.MakeGlyph(0x1F2937, ' '),
	domain.FeatPit:      api.MakeGlyph(0x44403C, '^'),
	domain.FeatDune:     api.MakeGlyph(0xFDE68A, '~'),
}

var (
	glyphWall = api.MakeGlyph(0x666666, '#')
	glyphPerm = api.MakeGlyph(0x9CA3AF, '#')
)

// featureGlyph возвращает символ рельефа (по тому, чем клетка притворяется).
func featureGlyph(feat domain.FeatureID) api.Glyph {
	if g, ok := featureGlyphs[feat]; ok {
		return g
	}
	switch {
	case feat >= domain.FeatWallExtra && feat <= domain.FeatWallSolid:
		return glyphWall
	case feat >= domain.FeatPermExtra && feat <= domain.FeatPermSolid:
		return glyphPerm
	case feat >= domain.FeatShopHead && feat <= domain.FeatShopTail:
		return api.MakeGlyph(0xFACC15, byte('1'+feat-domain.FeatShopHead))
	}
	return api.MakeGlyph(0xFF00FF, '?')
}

func (s *Session) mapEnv() systems.MapEnv {
	return systems.MapEnv{
		ViewYellowLight: s.cfg.ViewYellowLight,
		Hallucinating:   s.observer.Hallucinating,
		Rng:             s.rng,
	}
}

// cellView строит DTO клетки. ok == false, если наблюдатель о клетке
// ничего не знает.
func (s *Session) cellView(p domain.Position, env systems.MapEnv) (api.CellView, bool) {
	g := systems.MapInfo(s.cave, p, env)
	if g.Feat == domain.FeatNone && !g.InView {
		return api.CellView{}, false
	}

	cv := api.CellView{
		X:         p.X,
		Y:         p.Y,
		Lighting:  g.Lighting.String(),
		IsVisible: g.InView,
		HasTrap:   g.Trap != systems.NoTrap,
		HasObject: g.FirstKind != 0,
	}
	f := s.cave.Features.Feature(g.Feat)
	if f != nil {
		cv.Name = f.Name
		// Закрытую дверь можно открыть, завал - разобрать
		rubble := f.Has(domain.TFRock) && !f.Has(domain.TFWall)
		cv.IsWall = !f.IsPassable() && !f.Has(domain.TFDoorClosed) && !rubble
	}

	glyph := featureGlyph(g.Feat)
	switch {
	case g.IsObserver:
		glyph = api.GlyphObserver
	case g.Monster > 0:
		cv.HasMonster = true
		glyph = api.GlyphMonster
		// Галлюцинация рисует монстра там, где его нет: шаблона нет
		if m := s.cave.Monsters.Monster(g.Monster); m != nil && !g.Hallucinate {
			if t, ok := dungeon.MonsterByRace(m.Race); ok {
				glyph = api.MakeGlyph(api.GlyphMonster.Color(), byte(t.Symbol))
				cv.Name = t.Name
			}
		}
	case cv.HasObject:
		glyph = api.GlyphObject
		if t, ok := dungeon.ObjectByKind(g.FirstKind); ok && !g.MultipleObjects {
			glyph = api.MakeGlyph(api.GlyphObject.Color(), byte(t.Symbol))
			cv.Name = t.Name
		}
	case cv.HasTrap:
		glyph = api.GlyphTrap
	}
	if !g.InView {
		glyph = glyph.Dim()
	}
	cv.Symbol = string(rune(glyph.Char()))
	cv.Color = glyph.HexColor()
	return cv, true
}

// Frame строит кадр для подписчиков и забирает накопленные сообщения.
func (s *Session) Frame() api.Frame {
	s.mu.Lock()
	defer s.mu.Unlock()

	frame := api.Frame{
		Type:      "UPDATE",
		Tick:      s.tick,
		SessionID: s.ID,
	}
	if s.closed {
		frame.Type = "ERROR"
		return frame
	}

	frame.Depth = s.cave.Depth
	frame.Grid = &api.GridMeta{Width: s.cave.Width, Height: s.cave.Height}
	frame.Observer = &api.ObserverView{
		X:           s.observer.Pos.X,
		Y:           s.observer.Pos.Y,
		LightRadius: s.observer.LightRadius,
		Blind:       s.observer.Blind,
	}
	frame.Turn = &api.TurnView{
		Seen:    s.last.View.Seen,
		NewSeen: s.last.View.NewSeen,
		Lost:    s.last.View.Lost,
		Noise:   s.last.Noise.String(),
		Scent:   s.last.Scent,
	}

	env := s.mapEnv()
	s.cave.Each(func(p domain.Position) {
		if cv, ok := s.cellView(p, env); ok {
			frame.Map = append(frame.Map, cv)
		}
	})

	frame.Logs = s.logs
	s.logs = nil
	return frame
}

// Summary - сводка по уровню для отладки.
func (s *Session) Summary() api.CaveSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	sum := api.CaveSummary{
		SessionID: s.ID,
		Tick:      s.tick,
		Features:  map[string]int{},
	}
	if s.closed {
		return sum
	}
	c := s.cave
	sum.Depth = c.Depth
	sum.Grid = api.GridMeta{Width: c.Width, Height: c.Height}
	sum.Traps = len(c.Traps)

	c.Each(func(p domain.Position) {
		info := c.Info(p)
		if info.Has(domain.SquareMark) {
			sum.Marked++
		}
		if info.Has(domain.SquareView) {
			sum.Viewed++
		}
		if info.Has(domain.SquareSeen) {
			sum.Seen++
		}
		if info.Has(domain.SquareGlow) {
			sum.Glowing++
		}
	})
	for id := 0; id <= domain.MaxFeatureID; id++ {
		feat := domain.FeatureID(id)
		if n := c.FeatCount(feat); n > 0 {
			if f := c.Features.Feature(feat); f != nil {
				sum.Features[f.Name] += n
			}
		}
	}
	return sum
}

// layer снимает числовой слой сетки.
func (s *Session) layer(name string, value func(domain.Position) int) api.LayerView {
	s.mu.Lock()
	defer s.mu.Unlock()

	lv := api.LayerView{Name: name}
	if s.closed {
		return lv
	}
	lv.Width, lv.Height = s.cave.Width, s.cave.Height
	lv.Values = make([]int, 0, lv.Width*lv.Height)
	s.cave.Each(func(p domain.Position) {
		lv.Values = append(lv.Values, value(p))
	})
	return lv
}

// NoiseLayer - стоимость шума по клеткам.
func (s *Session) NoiseLayer() api.LayerView {
	return s.layer("noise", func(p domain.Position) int { return int(s.cave.Cost(p)) })
}

// ScentLayer - возраст запаха по клеткам.
func (s *Session) ScentLayer() api.LayerView {
	return s.layer("scent", func(p domain.Position) int { return int(s.cave.When(p)) })
}

// View - MapInfo всех клеток в обзоре наблюдателя.
func (s *Session) View() []systems.GridData {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}

	var out []systems.GridData
	env := s.mapEnv()
	s.cave.Each(func(p domain.Position) {
		if s.cave.IsView(p) {
			out = append(out, systems.MapInfo(s.cave, p, env))
		}
	})
	return out
}

// Observer возвращает копию состояния наблюдателя.
func (s *Session) Observer() domain.Observer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.observer
}

// Last - статистика последнего хода.
func (s *Session) Last() TurnStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Replay возвращает копию журнала сессии.
func (s *Session) Replay() domain.ReplaySession {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.replay
	r.Actions = append([]domain.ReplayAction(nil), s.replay.Actions...)
	return r
}
