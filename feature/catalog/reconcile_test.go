package catalog

import (
	"fmt"
	"testing"
	"time"

	"catalog-sync/core/feed"
	"catalog-sync/feature/catalog/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEngine() *Engine {
	n := 0
	return &Engine{
		Now: func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) },
		NewID: func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		},
	}
}

func feedEntry(id, externalID string) models.Property {
	return models.Property{
		ID:         id,
		ExternalID: externalID,
		Source:     models.SourceFeed,
		Title:      "Feed " + externalID,
		Slug:       "feed-" + externalID,
	}
}

func TestReconcile_InsertsNewFeedRecords(t *testing.T) {
	engine := testEngine()

	next, stats := engine.Reconcile(nil, []feed.Record{
		{ExternalID: "100", Title: "Casa X", PriceAmount: 500000},
	}, ModeMerge)

	require.Len(t, next, 1)
	assert.Equal(t, 1, stats.Added)
	assert.Equal(t, 0, stats.Updated)
	assert.Equal(t, 1, stats.TotalFeedRecords)

	p := next[0]
	assert.Equal(t, "id-1", p.ID)
	assert.Equal(t, "100", p.ExternalID)
	assert.Equal(t, models.SourceFeed, p.Source)
	assert.Equal(t, int64(0), p.ViewCount)
	assert.True(t, p.Published, "insertion without a feed assertion defaults to published")
	assert.Equal(t, p.CreatedAt, p.UpdatedAt)
}

func TestReconcile_ManualEntriesAreInvariant(t *testing.T) {
	manual := models.Property{
		ID: "m1", Source: models.SourceManual,
		Title: "Casa Propia", Slug: "casa-propia",
		PriceAmount: 123, ViewCount: 9,
		CreatedAt: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	for _, mode := range []Mode{ModeMerge, ModeReplace} {
		t.Run(string(mode), func(t *testing.T) {
			engine := testEngine()
			next, _ := engine.Reconcile(
				[]models.Property{manual, feedEntry("f1", "100")},
				[]feed.Record{{ExternalID: "200", Title: "Nueva"}},
				mode,
			)

			require.NotEmpty(t, next)
			assert.Equal(t, manual, next[0], "manual entry must come through unchanged, all fields, same slug")
		})
	}
}

func TestReconcile_UpdatePreservesLocallyOwnedFields(t *testing.T) {
	engine := testEngine()
	created := time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)
	existing := models.Property{
		ID: "f1", ExternalID: "100", Source: models.SourceFeed,
		Title: "Old Title", ViewCount: 7, Published: false,
		StoredPhotos:   []string{"properties/f1/front.jpg"},
		PhotoSelection: &models.PhotoSelection{Primary: "cover.jpg"},
		CreatedAt:      created, UpdatedAt: created,
	}

	next, stats := engine.Reconcile(
		[]models.Property{existing},
		[]feed.Record{{ExternalID: "100", Title: "New Title", PriceAmount: 999}},
		ModeMerge,
	)

	require.Len(t, next, 1)
	assert.Equal(t, 1, stats.Updated)

	p := next[0]
	assert.Equal(t, "f1", p.ID, "identity is stable across updates")
	assert.Equal(t, "New Title", p.Title)
	assert.Equal(t, int64(999), p.PriceAmount)
	assert.Equal(t, int64(7), p.ViewCount, "view count is locally owned")
	assert.Equal(t, []string{"properties/f1/front.jpg"}, p.StoredPhotos, "stored photos are locally owned")
	require.NotNil(t, p.PhotoSelection)
	assert.Equal(t, "cover.jpg", p.PhotoSelection.Primary)
	assert.Equal(t, created, p.CreatedAt, "createdAt is assigned once")
	assert.False(t, p.Published, "publication defaults to the existing value")
	assert.NotEqual(t, created, p.UpdatedAt)
}

func TestReconcile_FeedAssertedPublicationWins(t *testing.T) {
	engine := testEngine()
	published := true

	next, _ := engine.Reconcile(
		[]models.Property{{ID: "f1", ExternalID: "100", Source: models.SourceFeed, Published: false}},
		[]feed.Record{{ExternalID: "100", Published: &published}},
		ModeMerge,
	)

	require.Len(t, next, 1)
	assert.True(t, next[0].Published)
}

func TestReconcile_MergeRemovesAbsentFeedEntries(t *testing.T) {
	engine := testEngine()

	next, stats := engine.Reconcile(
		[]models.Property{feedEntry("f1", "100"), feedEntry("f2", "200")},
		[]feed.Record{{ExternalID: "200"}},
		ModeMerge,
	)

	require.Len(t, next, 1)
	assert.Equal(t, "200", next[0].ExternalID)
	assert.Equal(t, 1, stats.Removed)
}

func TestReconcile_ReplaceConvergence(t *testing.T) {
	engine := testEngine()
	old := []models.Property{
		{ID: "m1", Source: models.SourceManual, Title: "Manual"},
		feedEntry("f1", "100"),
		feedEntry("f2", "200"),
		feedEntry("f3", "300"),
	}

	next, stats := engine.Reconcile(old, []feed.Record{
		{ExternalID: "200", Title: "Dos"},
		{ExternalID: "400", Title: "Cuatro"},
	}, ModeReplace)

	// Exactly one entry per distinct external id in the pull, plus manual.
	require.Len(t, next, 3)
	assert.Equal(t, "m1", next[0].ID)

	ids := []string{next[1].ExternalID, next[2].ExternalID}
	assert.ElementsMatch(t, []string{"200", "400"}, ids)

	// Replace rebuilds, so even the surviving key counts as added.
	assert.Equal(t, 2, stats.Added)
	assert.Equal(t, 0, stats.Updated)
	assert.Equal(t, 2, stats.Removed, "100 and 300 are gone from the pull")
}

func TestReconcile_DuplicateFeedKeysCollapse(t *testing.T) {
	engine := testEngine()

	next, stats := engine.Reconcile(nil, []feed.Record{
		{ExternalID: "100", Title: "Primera"},
		{ExternalID: "100", Title: "Segunda"},
	}, ModeMerge)

	require.Len(t, next, 1)
	assert.Equal(t, "Primera", next[0].Title)
	assert.Equal(t, 1, stats.Added)
}

func TestReconcile_CommittedEvenWhenCountersAreZero(t *testing.T) {
	// Zero counters still yield a full catalog for the unconditional write:
	// feed-owned fields may have changed without an add/remove signal.
	engine := testEngine()

	next, stats := engine.Reconcile(
		[]models.Property{feedEntry("f1", "100")},
		[]feed.Record{{ExternalID: "100", Title: "Feed 100", Tags: []string{"jardin"}}},
		ModeMerge,
	)

	require.Len(t, next, 1)
	assert.Equal(t, []string{"jardin"}, next[0].Tags)
	assert.Equal(t, models.SyncStats{Added: 0, Updated: 1, Removed: 0, TotalFeedRecords: 1}, stats)
}

func TestReconcile_ScenarioManualAndFeedShareSlug(t *testing.T) {
	// Old catalog: manual M1 (slug casa-x) and feed F1 (externalId 100, same
	// slug). The pull returns 100 unchanged. Merge must leave M1 untouched,
	// refresh F1, and dedup must suffix F1's slug with its own id.
	engine := testEngine()
	old := []models.Property{
		{ID: "m1", Source: models.SourceManual, Title: "Casa X", Slug: "casa-x"},
		{ID: "f1", ExternalID: "100", Source: models.SourceFeed, Title: "Casa X", Slug: "casa-x-f1", ViewCount: 3},
	}

	next, stats := engine.Reconcile(old, []feed.Record{
		{ExternalID: "100", Title: "Casa X", PriceAmount: 500000},
	}, ModeMerge)
	next = DedupeSlugs(next)

	require.Len(t, next, 2)
	assert.Equal(t, old[0], next[0])
	assert.Equal(t, "casa-x-f1", next[1].Slug)
	assert.Equal(t, int64(500000), next[1].PriceAmount)
	assert.Equal(t, int64(3), next[1].ViewCount)
	assert.Equal(t, models.SyncStats{Added: 0, Updated: 1, Removed: 0, TotalFeedRecords: 1}, stats)
}

func TestReconcile_ScenarioTwoFeedRecordsCollideOnSlug(t *testing.T) {
	engine := testEngine()

	next, _ := engine.Reconcile(nil, []feed.Record{
		{ExternalID: "1", Title: "Gran Vista"},
		{ExternalID: "2", Title: "Gran Vista"},
	}, ModeMerge)
	next = DedupeSlugs(next)

	require.Len(t, next, 2)
	assert.Equal(t, "gran-vista", next[0].Slug)
	assert.Equal(t, "gran-vista-"+next[1].ID, next[1].Slug)
}
