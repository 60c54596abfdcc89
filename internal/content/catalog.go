package content

import (
	"englishpath/internal/models"
)

// UnlockThreshold is the percentage every prerequisite must exceed before a
// gated module becomes available
const UnlockThreshold = 50

// PracticePath is the canonical path of the daily practice screen
const PracticePath = "/practice"

// Module describes a learning module in display order
type Module struct {
	Key           models.ModuleKey
	Title         string
	Description   string
	ImageURL      string
	Path          string
	Tracked       bool
	Prerequisites []models.ModuleKey
}

// Gated reports whether the module is locked behind other modules
func (m Module) Gated() bool {
	return len(m.Prerequisites) > 0
}

// Catalog is the fixed set of modules and their content. It is built once at
// start-up and never mutated, so item totals stay constant for the lifetime
// of the process.
type Catalog struct {
	modules []Module
	byKey   map[models.ModuleKey]int
	entries map[models.ModuleKey][]Entry
	items   map[models.ModuleKey]map[string]Entry
}

var basics = []models.ModuleKey{models.ModuleAlphabet, models.ModuleNumbers, models.ModuleFood}

// Default returns the built-in catalogue
func Default() *Catalog {
	return NewCatalog([]Module{
		{
			Key:         models.ModuleAlphabet,
			Title:       "The Alphabet",
			Description: "Learn and trace the 26 letters.",
			ImageURL:    "/static/images/alphabet.svg",
			Path:        "/alphabet",
			Tracked:     true,
		},
		{
			Key:         models.ModuleNumbers,
			Title:       "Numbers",
			Description: "Count from one to ten.",
			ImageURL:    "/static/images/numbers.svg",
			Path:        "/numbers",
			Tracked:     true,
		},
		{
			Key:         models.ModuleFood,
			Title:       "Food and Shopping",
			Description: "Words and phrases for buying food.",
			ImageURL:    "/static/images/food.svg",
			Path:        "/food",
			Tracked:     true,
		},
		{
			Key:         models.ModuleObjects,
			Title:       "Everyday Objects",
			Description: "Name the things around you.",
			ImageURL:    "/static/images/objects.svg",
			Path:        "/objects",
			Tracked:     true,
		},
		{
			Key:         models.ModuleResources,
			Title:       "Resources",
			Description: "Places and programmes that help you learn.",
			ImageURL:    "/static/images/resources.svg",
			Path:        "/resources",
		},
		{
			Key:           models.ModuleHealth,
			Title:         "Health",
			Description:   "Talk to a doctor or pharmacist.",
			ImageURL:      "/static/images/health.svg",
			Path:          "/health",
			Prerequisites: basics,
		},
		{
			Key:           models.ModuleDirections,
			Title:         "Directions",
			Description:   "Ask for and follow directions.",
			ImageURL:      "/static/images/directions.svg",
			Path:          "/directions",
			Prerequisites: basics,
		},
		{
			Key:         models.ModulePhrases,
			Title:       "Survival Phrases",
			Description: "Phrases for everyday situations.",
			ImageURL:    "/static/images/phrases.svg",
			Path:        "/phrases",
		},
	}, datasets())
}

// NewCatalog builds a catalogue from modules in display order and their content
func NewCatalog(modules []Module, data map[models.ModuleKey][]Entry) *Catalog {
	c := &Catalog{
		modules: make([]Module, len(modules)),
		byKey:   make(map[models.ModuleKey]int, len(modules)),
		entries: make(map[models.ModuleKey][]Entry, len(data)),
		items:   make(map[models.ModuleKey]map[string]Entry, len(data)),
	}
	copy(c.modules, modules)

	for i, m := range c.modules {
		c.byKey[m.Key] = i
	}
	for key, entries := range data {
		c.entries[key] = append([]Entry(nil), entries...)
		set := make(map[string]Entry, len(entries))
		for _, e := range entries {
			set[e.Key] = e
		}
		c.items[key] = set
	}
	return c
}

// Modules returns all modules in canonical display order
func (c *Catalog) Modules() []Module {
	return append([]Module(nil), c.modules...)
}

// Module returns the module with the given key
func (c *Catalog) Module(key models.ModuleKey) (Module, bool) {
	i, ok := c.byKey[key]
	if !ok {
		return Module{}, false
	}
	return c.modules[i], true
}

// TrackedModules returns the keys of modules that carry completion records
func (c *Catalog) TrackedModules() []models.ModuleKey {
	var keys []models.ModuleKey
	for _, m := range c.modules {
		if m.Tracked {
			keys = append(keys, m.Key)
		}
	}
	return keys
}

// TrackedItems returns the item keys of a tracked module in content order.
// Untracked and unknown modules have no items.
func (c *Catalog) TrackedItems(key models.ModuleKey) []string {
	m, ok := c.Module(key)
	if !ok || !m.Tracked {
		return nil
	}
	keys := make([]string, 0, len(c.entries[key]))
	for _, e := range c.entries[key] {
		keys = append(keys, e.Key)
	}
	return keys
}

// TotalTracked returns the number of tracked items across all modules
func (c *Catalog) TotalTracked() int {
	total := 0
	for _, key := range c.TrackedModules() {
		total += len(c.entries[key])
	}
	return total
}

// IsTracked reports whether item is a known item of a tracked module
func (c *Catalog) IsTracked(key models.ModuleKey, item string) bool {
	m, ok := c.Module(key)
	if !ok || !m.Tracked {
		return false
	}
	_, ok = c.items[key][item]
	return ok
}

// Entries returns the content of a module
func (c *Catalog) Entries(key models.ModuleKey) ([]Entry, bool) {
	if _, ok := c.byKey[key]; !ok {
		return nil, false
	}
	return append([]Entry(nil), c.entries[key]...), true
}

// Lookup returns a single content entry
func (c *Catalog) Lookup(key models.ModuleKey, item string) (Entry, bool) {
	e, ok := c.items[key][item]
	return e, ok
}

// Path returns the canonical path of a module, including daily practice
func (c *Catalog) Path(key models.ModuleKey) string {
	if key == models.ModulePractice {
		return PracticePath
	}
	if m, ok := c.Module(key); ok {
		return m.Path
	}
	return ""
}
