// Package seed bakes the fallback datasets into the binary. Handlers serve
// these when a collection has no records yet, so a fresh deployment renders
// a populated site before any admin has logged in. Seed records are never
// persisted and never appear on admin endpoints.
package seed

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"sangamam/backend/models"
)

//go:embed seeds.yaml
var raw []byte

type dataset struct {
	Highlights  []models.Highlight  `yaml:"highlights"`
	PowerStones []models.PowerStone `yaml:"powerStones"`
	Bulletins   []models.Bulletin   `yaml:"bulletins"`
}

var (
	once sync.Once
	data dataset
)

func load() dataset {
	once.Do(func() {
		if err := yaml.Unmarshal(raw, &data); err != nil {
			// Embedded data is part of the build; failing to parse it is a
			// packaging bug, not a runtime condition.
			panic(fmt.Sprintf("seed: invalid embedded dataset: %v", err))
		}
	})
	return data
}

// Highlights returns the fallback gallery. Callers get a copy they may sort
// or truncate freely.
func Highlights() []models.Highlight {
	return append([]models.Highlight(nil), load().Highlights...)
}

// PowerStones returns the six default stones.
func PowerStones() []models.PowerStone {
	return append([]models.PowerStone(nil), load().PowerStones...)
}

// Bulletins returns the seed bulletins for lang, or every language's when
// lang is empty.
func Bulletins(lang string) []models.Bulletin {
	var out []models.Bulletin
	for _, b := range load().Bulletins {
		if lang == "" || b.Lang == lang {
			out = append(out, b)
		}
	}
	return out
}

// BulletinsByLang groups the seed bulletins per language code.
func BulletinsByLang() map[string][]models.Bulletin {
	out := make(map[string][]models.Bulletin)
	for _, b := range load().Bulletins {
		out[b.Lang] = append(out[b.Lang], b)
	}
	return out
}
