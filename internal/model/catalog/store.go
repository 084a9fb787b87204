package catalog

import "strings"

// Store exposes catalog lookups to HTTP handlers.
type Store interface {
	Meditations(category string) []Meditation
	Categories() []Category
	Professionals(query, specialty string) []Professional
}

// MemoryStore implements Store over a fixed Catalog.
type MemoryStore struct {
	items Catalog
}

// NewMemoryStore returns a MemoryStore preloaded with c.
func NewMemoryStore(c Catalog) *MemoryStore {
	return &MemoryStore{items: Catalog{
		Meditations:   append([]Meditation(nil), c.Meditations...),
		Categories:    append([]Category(nil), c.Categories...),
		Professionals: append([]Professional(nil), c.Professionals...),
	}}
}

// Meditations lists sessions in category; "" or "all" lists everything.
func (s *MemoryStore) Meditations(category string) []Meditation {
	category = strings.TrimSpace(category)
	out := make([]Meditation, 0, len(s.items.Meditations))
	for _, m := range s.items.Meditations {
		if isAny(category) || strings.EqualFold(m.Category, category) {
			out = append(out, m)
		}
	}
	return out
}

// Categories returns the meditation categories.
func (s *MemoryStore) Categories() []Category {
	return append([]Category(nil), s.items.Categories...)
}

// Professionals filters the directory. query matches name, title or
// description case-insensitively; specialty must equal one of the listed
// specialties ignoring case, "" or "all" skips the filter.
func (s *MemoryStore) Professionals(query, specialty string) []Professional {
	query = strings.ToLower(strings.TrimSpace(query))
	specialty = strings.TrimSpace(specialty)

	out := make([]Professional, 0, len(s.items.Professionals))
	for _, p := range s.items.Professionals {
		if query != "" &&
			!strings.Contains(strings.ToLower(p.Name), query) &&
			!strings.Contains(strings.ToLower(p.Title), query) &&
			!strings.Contains(strings.ToLower(p.Description), query) {
			continue
		}
		if !isAny(specialty) && !hasSpecialty(p, specialty) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func hasSpecialty(p Professional, specialty string) bool {
	for _, s := range p.Specialties {
		if strings.EqualFold(s, specialty) {
			return true
		}
	}
	return false
}

func isAny(filter string) bool {
	return filter == "" || strings.EqualFold(filter, "all")
}
