package catalog

import (
	"catalog-sync/core/utils"
	"catalog-sync/feature/catalog/models"
)

// Slugify derives a URL-safe slug from a property title.
func Slugify(title string) string {
	return utils.Slugify(title)
}

// DedupeSlugs enforces catalog-wide slug uniqueness.
//
// The scan is in stable catalog order: the first entry to claim a slug keeps
// it unmodified, and every later entry with the same slug gets its own stable
// id appended. IDs are unique by construction, so the suffixed slug is too.
// The pass is deterministic and idempotent: a second run over an already
// deduplicated catalog changes nothing.
func DedupeSlugs(catalog []models.Property) []models.Property {
	seen := make(map[string]struct{}, len(catalog))
	out := make([]models.Property, len(catalog))

	for i, p := range catalog {
		if p.Slug == "" {
			p.Slug = Slugify(p.Title)
		}
		if _, taken := seen[p.Slug]; taken {
			p.Slug = p.Slug + "-" + p.ID
		}
		seen[p.Slug] = struct{}{}
		out[i] = p
	}

	return out
}
