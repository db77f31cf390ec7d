package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeServiceType(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"exact canonical", "photographe", "photographe"},
		{"capitalized", "Photographe", "photographe"},
		{"surrounding whitespace", "  traiteur  ", "traiteur"},
		{"english synonym", "photographer", "photographe"},
		{"multi word synonym", "wedding planner", "wedding_planner"},
		{"substring match", "photographe de mariage", "photographe"},
		{"synonym inside phrase", "dj mariage", "dj"},
		{"venue synonym", "salle", "lieu_reception"},
		{"accented synonym", "pâtisserie", "patissier"},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
		{"unknown passes through", "astrologue", "astrologue"},
		{"unknown is lowercased", "AstroLogue", "astrologue"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeServiceType(tt.input))
		})
	}
}

func TestNormalizeServiceTypeIdempotent(t *testing.T) {
	inputs := []string{
		"Photographe", "photographer", "wedding planner", "salle",
		"dj mariage", "astrologue", "", "Traiteur Oriental",
	}

	for _, input := range inputs {
		once := NormalizeServiceType(input)
		twice := NormalizeServiceType(once)
		assert.Equal(t, once, twice, "normalizing %q twice changed the result", input)
	}
}

func TestNormalizeServiceTypeCanonicalsAreFixedPoints(t *testing.T) {
	for canonical := range canonicalServiceTypes {
		assert.Equal(t, canonical, NormalizeServiceType(canonical))
	}
}
