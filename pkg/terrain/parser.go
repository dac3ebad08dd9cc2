// Package terrain загружает таблицу рельефа из текстового формата:
//
//	# комментарий
//	feature 0x01 "open floor" {
//	    mimic 0x01
//	    priority 5
//	    flags LOS | PROJECT | PASSABLE | FLOOR
//	}
//
// Грамматика описана структурами с тегами participle.
package terrain

import (
	"fmt"
	"strconv"

	"cavesight/internal/domain"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// File - корень разобранного текста.
type File struct {
	Features []*FeatureDef `@@*`
}

// FeatureDef: feature <id> "<name>" { свойства }
type FeatureDef struct {
	Pos lexer.Position

	ID    string      `"feature" @Int`
	Name  string      `@String "{"`
	Props []*Property `@@* "}"`
}

// Property - одно свойство рельефа.
type Property struct {
	Mimic    *string  `  "mimic" @Int`
	Priority *string  `| "priority" @Int`
	Flags    []string `| "flags" @Ident ( "|" @Ident )*`
}

var terrainLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `[\s]+`},
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Int", Pattern: `0[xX][0-9a-fA-F]+|[0-9]+`},
	{Name: "String", Pattern: `"[^"]*"`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Punct", Pattern: `[{}|]`},
})

var parser = participle.MustBuild[File](
	participle.Lexer(terrainLexer),
	participle.Elide("Whitespace", "Comment"),
	participle.Unquote("String"),
)

// Parse разбирает таблицу рельефа. name используется в сообщениях об ошибках.
func Parse(name, src string) (*Table, error) {
	file, err := parser.ParseString(name, src)
	if err != nil {
		return nil, fmt.Errorf("terrain: parse %s: %w", name, err)
	}

	t := &Table{}
	for _, def := range file.Features {
		f, err := def.build()
		if err != nil {
			return nil, fmt.Errorf("terrain: %s: %w", def.Pos, err)
		}
		if t.features[f.ID] != nil {
			return nil, fmt.Errorf("terrain: %s: duplicate feature %#02x", def.Pos, f.ID)
		}
		t.features[f.ID] = f
		t.count++
	}

	if err := t.validate(); err != nil {
		return nil, fmt.Errorf("terrain: %s: %w", name, err)
	}
	return t, nil
}

func (def *FeatureDef) build() (*domain.Feature, error) {
	id, err := parseID(def.ID)
	if err != nil {
		return nil, err
	}
	f := &domain.Feature{ID: id, Name: def.Name, Mimic: id}

	for _, p := range def.Props {
		switch {
		case p.Mimic != nil:
			if f.Mimic, err = parseID(*p.Mimic); err != nil {
				return nil, fmt.Errorf("mimic of %q: %w", def.Name, err)
			}
		case p.Priority != nil:
			if f.Priority, err = strconv.Atoi(*p.Priority); err != nil {
				return nil, fmt.Errorf("priority of %q: %w", def.Name, err)
			}
		default:
			for _, name := range p.Flags {
				flag, ok := domain.TerrainFlagNames[name]
				if !ok {
					return nil, fmt.Errorf("unknown flag %q in %q", name, def.Name)
				}
				f.Flags |= flag
			}
		}
	}
	return f, nil
}

func parseID(s string) (domain.FeatureID, error) {
	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid feature id %q: %w", s, err)
	}
	return domain.FeatureID(v), nil
}
