package terrain

import (
	_ "embed"
	"fmt"
	"sync"

	"cavesight/internal/domain"
)

// Table - таблица рельефа, индексированная domain.FeatureID.
// Реализует domain.FeatureTable.
type Table struct {
	features [domain.MaxFeatureID + 1]*domain.Feature
	count    int
}

// Feature возвращает описание рельефа или nil, если индекс не описан.
func (t *Table) Feature(id domain.FeatureID) *domain.Feature {
	return t.features[id]
}

// Len - число описанных типов рельефа.
func (t *Table) Len() int {
	return t.count
}

// Lookup ищет рельеф по имени.
func (t *Table) Lookup(name string) (*domain.Feature, bool) {
	for _, f := range t.features {
		if f != nil && f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// required - индексы, на которые опирается код генерации и движка.
var required = []domain.FeatureID{
	domain.FeatNone, domain.FeatFloor, domain.FeatOpen, domain.FeatBroken,
	domain.FeatMore, domain.FeatLess, domain.FeatDoorHead, domain.FeatSecret,
	domain.FeatRubble, domain.FeatMagma, domain.FeatQuartz, domain.FeatMagmaK,
	domain.FeatQuartzK, domain.FeatWallExtra, domain.FeatPermSolid,
}

func (t *Table) validate() error {
	for _, f := range t.features {
		if f == nil {
			continue
		}
		if t.features[f.Mimic] == nil {
			return fmt.Errorf("feature %q mimics undefined feature %#02x", f.Name, f.Mimic)
		}
	}
	return nil
}

// Complete проверяет, что в таблице есть все индексы, нужные генератору.
func (t *Table) Complete() error {
	for _, id := range required {
		if t.features[id] == nil {
			return fmt.Errorf("terrain: required feature %#02x is missing", id)
		}
	}
	return nil
}

//go:embed default.txt
var defaultSource string

var (
	defaultOnce  sync.Once
	defaultTable *Table
)

// Default возвращает встроенную таблицу рельефа. Таблица разбирается
// один раз и дальше только читается.
func Default() *Table {
	defaultOnce.Do(func() {
		t, err := Parse("default.txt", defaultSource)
		if err == nil {
			err = t.Complete()
		}
		if err != nil {
			panic(err)
		}
		defaultTable = t
	})
	return defaultTable
}
