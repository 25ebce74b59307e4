package catalog

import (
	"testing"

	"catalog-sync/feature/catalog/models"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "casa-x", Slugify("Casa X"))
	assert.Equal(t, "gran-vista", Slugify("Gran Vista"))
	assert.Equal(t, "penon-de-los-banos", Slugify("Peñón de los Baños"))
	assert.Equal(t, "loft-42-centro", Slugify("  Loft #42 — Centro!  "))
	assert.Equal(t, "", Slugify("!!!"))
}

func TestDedupeSlugs_FirstClaimantKeepsSlug(t *testing.T) {
	catalog := []models.Property{
		{ID: "m1", Title: "Casa X", Slug: "casa-x"},
		{ID: "f1", Title: "Casa X", Slug: "casa-x"},
		{ID: "f2", Title: "Casa X", Slug: "casa-x"},
	}

	out := DedupeSlugs(catalog)

	assert.Equal(t, "casa-x", out[0].Slug)
	assert.Equal(t, "casa-x-f1", out[1].Slug)
	assert.Equal(t, "casa-x-f2", out[2].Slug)
}

func TestDedupeSlugs_Uniqueness(t *testing.T) {
	catalog := []models.Property{
		{ID: "a", Slug: "gran-vista"},
		{ID: "b", Slug: "gran-vista"},
		{ID: "c", Slug: "casa-sol"},
		{ID: "d", Slug: "casa-sol"},
		{ID: "e", Slug: "casa-sol"},
	}

	out := DedupeSlugs(catalog)

	seen := make(map[string]bool)
	for _, p := range out {
		assert.False(t, seen[p.Slug], "duplicate slug %q", p.Slug)
		seen[p.Slug] = true
	}
}

func TestDedupeSlugs_Idempotent(t *testing.T) {
	catalog := []models.Property{
		{ID: "a", Slug: "gran-vista"},
		{ID: "b", Slug: "gran-vista"},
		{ID: "c", Slug: "otro"},
	}

	once := DedupeSlugs(catalog)
	twice := DedupeSlugs(once)

	assert.Equal(t, once, twice)
}

func TestDedupeSlugs_DerivesMissingSlugFromTitle(t *testing.T) {
	out := DedupeSlugs([]models.Property{{ID: "a", Title: "Casa Nueva"}})
	assert.Equal(t, "casa-nueva", out[0].Slug)
}
