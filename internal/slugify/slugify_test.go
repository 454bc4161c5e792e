package slugify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Rénovation Résidentielle", "renovation-residentielle"},
		{"Agrandissement de maison — Québec", "agrandissement-de-maison-quebec"},
		{"  Toiture & Revêtement  ", "toiture-revetement"},
		{"Projet #42: Condos", "projet-42-condos"},
		{"déjà-vu", "deja-vu"},
		{"UPPER lower", "upper-lower"},
		{"---", ""},
		{"", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Slugify(tc.in), "input %q", tc.in)
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	titles := []string{
		"Rénovation Résidentielle",
		"Béton et fondations",
		"already-a-slug",
	}
	for _, title := range titles {
		once := Slugify(title)
		assert.Equal(t, once, Slugify(once))
	}
}

func TestSlugifyDeterministic(t *testing.T) {
	title := "Excavation et terrassement"
	first := Slugify(title)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Slugify(title))
	}
}
