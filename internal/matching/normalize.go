package matching

import (
	"log"
	"strings"
)

// Canonical service-type vocabulary. Retrieval filters on exact equality
// against these values, so everything upstream funnels through
// NormalizeServiceType first.
var canonicalServiceTypes = map[string]bool{
	"photographe":     true,
	"videaste":        true,
	"traiteur":        true,
	"dj":              true,
	"musicien":        true,
	"lieu_reception":  true,
	"fleuriste":       true,
	"wedding_planner": true,
	"patissier":       true,
	"maquilleur":      true,
	"decorateur":      true,
}

// serviceSynonyms maps common phrasings, misspellings and English terms
// onto the canonical vocabulary. Ordered slice, first match wins, so
// substring resolution stays deterministic.
var serviceSynonyms = []struct {
	alias     string
	canonical string
}{
	{"photographer", "photographe"},
	{"photographie", "photographe"},
	{"photo", "photographe"},
	{"videographer", "videaste"},
	{"video", "videaste"},
	{"film", "videaste"},
	{"caterer", "traiteur"},
	{"catering", "traiteur"},
	{"cuisine", "traiteur"},
	{"repas", "traiteur"},
	{"deejay", "dj"},
	{"disc jockey", "dj"},
	{"dj mariage", "dj"},
	{"musique", "musicien"},
	{"music", "musicien"},
	{"groupe", "musicien"},
	{"band", "musicien"},
	{"orchestre", "musicien"},
	{"salle", "lieu_reception"},
	{"lieu", "lieu_reception"},
	{"venue", "lieu_reception"},
	{"domaine", "lieu_reception"},
	{"chateau", "lieu_reception"},
	{"reception", "lieu_reception"},
	{"fleur", "fleuriste"},
	{"florist", "fleuriste"},
	{"bouquet", "fleuriste"},
	{"wedding planner", "wedding_planner"},
	{"planner", "wedding_planner"},
	{"organisateur", "wedding_planner"},
	{"organisatrice", "wedding_planner"},
	{"coordinateur", "wedding_planner"},
	{"gateau", "patissier"},
	{"gâteau", "patissier"},
	{"cake", "patissier"},
	{"patisserie", "patissier"},
	{"pâtisserie", "patissier"},
	{"makeup", "maquilleur"},
	{"maquillage", "maquilleur"},
	{"coiffure", "maquilleur"},
	{"decoration", "decorateur"},
	{"décoration", "decorateur"},
	{"decor", "decorateur"},
}

// NormalizeServiceType maps a free-text service label onto the canonical
// vocabulary. In order, first match wins: exact synonym, substring match
// in either direction, canonical pass-through. Anything else is returned
// lowercased and trimmed as a best-effort pass-through and counted as a
// data-quality signal; retrieval may simply find zero matches.
//
// Pure string computation; idempotent for any input.
func NormalizeServiceType(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	if s == "" {
		return ""
	}

	for _, syn := range serviceSynonyms {
		if s == syn.alias {
			return syn.canonical
		}
	}

	for _, syn := range serviceSynonyms {
		if strings.Contains(s, syn.alias) || strings.Contains(syn.alias, s) {
			return syn.canonical
		}
	}

	if canonicalServiceTypes[s] {
		return s
	}

	log.Printf("matching: unrecognized service type %q passed through", s)
	RecordServiceTypePassthrough()
	return s
}

// IsCanonicalServiceType reports whether s is part of the fixed vocabulary.
func IsCanonicalServiceType(s string) bool {
	return canonicalServiceTypes[s]
}
