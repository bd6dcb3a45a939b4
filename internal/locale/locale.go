// Package locale supplies string lookup for user-facing labels. Lookups
// that miss fall back to the key itself so untranslated UI stays readable.
package locale

import "strings"

// Translator resolves a message key to display text.
type Translator func(key string) string

type Catalog struct {
	lang    string
	entries map[string]string
}

var english = map[string]string{
	"phases.knowledge":   "Knowledge",
	"phases.practice":    "Practice",
	"phases.application": "Application",
	"phases.reflection":  "Reflection",
	"phases.output":      "Output",
	"phases.review":      "Review",

	"difficulty.easy":   "Easy",
	"difficulty.medium": "Medium",
	"difficulty.hard":   "Hard",

	"priority.low":    "Low",
	"priority.medium": "Medium",
	"priority.high":   "High",
}

var spanish = map[string]string{
	"phases.knowledge":   "Conocimiento",
	"phases.practice":    "Práctica",
	"phases.application": "Aplicación",
	"phases.reflection":  "Reflexión",
	"phases.output":      "Producción",
	"phases.review":      "Repaso",
}

// NewCatalog returns the catalog for the given language tag. Unknown tags
// get the English catalog.
func NewCatalog(lang string) *Catalog {
	normalized := strings.ToLower(strings.TrimSpace(lang))
	switch {
	case strings.HasPrefix(normalized, "es"):
		return &Catalog{lang: "es", entries: spanish}
	default:
		return &Catalog{lang: "en", entries: english}
	}
}

func (c *Catalog) Lang() string {
	return c.lang
}

// T resolves a key, returning the key unchanged on a miss.
func (c *Catalog) T(key string) string {
	if v, ok := c.entries[key]; ok {
		return v
	}
	if c.lang != "en" {
		if v, ok := english[key]; ok {
			return v
		}
	}
	return key
}

// Translator adapts the catalog to the function type consumers take.
func (c *Catalog) Translator() Translator {
	return c.T
}
