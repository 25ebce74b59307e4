package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"catalog-sync/core/feed"
	"catalog-sync/core/store"
	"catalog-sync/feature/catalog/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeStore is an in-memory store.Client implementing the single-object
// compare-and-swap contract for the catalog document.
type fakeStore struct {
	mu       sync.Mutex
	content  []byte
	version  int // 0 means the document does not exist yet
	writes   int
	reads    int
	conflict int // number of upcoming writes a concurrent writer wins
}

func (f *fakeStore) token() store.VersionToken {
	if f.version == 0 {
		return ""
	}
	return store.VersionToken(fmt.Sprintf("v%d", f.version))
}

func (f *fakeStore) Read(ctx context.Context, path string) ([]byte, store.VersionToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	if f.version == 0 {
		return nil, "", store.ErrNotFound
	}
	return append([]byte(nil), f.content...), f.token(), nil
}

func (f *fakeStore) Write(ctx context.Context, path string, content []byte, expected store.VersionToken) (store.VersionToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.conflict > 0 {
		// Simulate another writer committing first.
		f.conflict--
		f.version++
		return "", &store.ConflictError{Path: path, Expected: string(expected)}
	}
	if expected != f.token() {
		return "", &store.ConflictError{Path: path, Expected: string(expected)}
	}

	f.version++
	f.content = append([]byte(nil), content...)
	f.writes++
	return f.token(), nil
}

func (f *fakeStore) CreateBlob(ctx context.Context, content []byte) (store.BlobRef, error) {
	return "", fmt.Errorf("not implemented")
}
func (f *fakeStore) CreateTree(ctx context.Context, base store.TreeRef, entries []store.TreeEntry) (store.TreeRef, error) {
	return "", fmt.Errorf("not implemented")
}
func (f *fakeStore) CreateCommit(ctx context.Context, tree store.TreeRef, parent store.CommitRef, message string) (store.CommitRef, error) {
	return "", fmt.Errorf("not implemented")
}
func (f *fakeStore) GetRef(ctx context.Context, name string) (store.CommitRef, error) {
	return "", fmt.Errorf("not implemented")
}
func (f *fakeStore) GetCommit(ctx context.Context, commit store.CommitRef) (store.TreeRef, error) {
	return "", fmt.Errorf("not implemented")
}
func (f *fakeStore) UpdateRef(ctx context.Context, name string, commit store.CommitRef, expectedParent store.CommitRef) error {
	return fmt.Errorf("not implemented")
}

func (f *fakeStore) catalog(t *testing.T) []models.Property {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	var properties []models.Property
	require.NoError(t, json.Unmarshal(f.content, &properties))
	return properties
}

func (f *fakeStore) seed(t *testing.T, properties []models.Property) {
	t.Helper()
	content, err := json.Marshal(properties)
	require.NoError(t, err)
	f.mu.Lock()
	f.content = content
	f.version = 1
	f.mu.Unlock()
}

type stubFeed struct {
	records []feed.Record
	err     error
	calls   int
}

func (s *stubFeed) Records(ctx context.Context) ([]feed.Record, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.records, nil
}

type stubRecorder struct {
	reports  []models.SyncReport
	statuses []bool
}

func (r *stubRecorder) RecordSync(ctx context.Context, report models.SyncReport, success bool, message string, took time.Duration) {
	r.reports = append(r.reports, report)
	r.statuses = append(r.statuses, success)
}

type stubRemover struct {
	calls []string
}

func (r *stubRemover) RemoveForProperty(ctx context.Context, propertyID string, photos []string) error {
	r.calls = append(r.calls, propertyID)
	return nil
}

func newTestService(fs *fakeStore, source FeedSource, recorder SyncRecorder, remover AssetRemover) *Service {
	return NewService(NewRepository(fs, "data/properties.json"), source, zap.NewNop(), recorder, remover)
}

func TestSync_FirstRunPopulatesEmptyCatalog(t *testing.T) {
	fs := &fakeStore{}
	recorder := &stubRecorder{}
	svc := newTestService(fs, &stubFeed{records: []feed.Record{
		{ExternalID: "100", Title: "Casa X", PriceAmount: 500000},
		{ExternalID: "200", Title: "Gran Vista"},
	}}, recorder, nil)

	report, err := svc.Sync(context.Background(), ModeMerge)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Total)
	assert.Equal(t, models.SyncStats{Added: 2, TotalFeedRecords: 2}, report.Stats)

	stored := fs.catalog(t)
	require.Len(t, stored, 2)
	assert.Equal(t, "casa-x", stored[0].Slug)

	require.Len(t, recorder.statuses, 1)
	assert.True(t, recorder.statuses[0])
}

func TestSync_ConflictTriggersRereadAndSucceeds(t *testing.T) {
	fs := &fakeStore{conflict: 1}
	fs.seed(t, []models.Property{})
	source := &stubFeed{records: []feed.Record{{ExternalID: "100", Title: "Casa"}}}
	svc := newTestService(fs, source, nil, nil)

	report, err := svc.Sync(context.Background(), ModeMerge)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Stats.Added)
	// The loser re-read and re-reconciled: two feed pulls, two catalog reads.
	assert.Equal(t, 2, source.calls)
	assert.GreaterOrEqual(t, fs.reads, 2)
}

func TestSync_RepeatedConflictsSurfaceFatally(t *testing.T) {
	fs := &fakeStore{conflict: 10}
	fs.seed(t, []models.Property{})
	recorder := &stubRecorder{}
	svc := newTestService(fs, &stubFeed{records: []feed.Record{{ExternalID: "1"}}}, recorder, nil)

	_, err := svc.Sync(context.Background(), ModeMerge)
	assert.ErrorIs(t, err, ErrSyncConflict)
	assert.Equal(t, 0, fs.writes, "no successful write may have happened")

	require.Len(t, recorder.statuses, 1)
	assert.False(t, recorder.statuses[0])
}

func TestSync_FeedFailureLeavesCatalogUntouched(t *testing.T) {
	fs := &fakeStore{}
	fs.seed(t, []models.Property{{ID: "m1", Source: models.SourceManual, Slug: "casa"}})
	svc := newTestService(fs, &stubFeed{err: &feed.UnavailableError{Status: 503}}, nil, nil)

	_, err := svc.Sync(context.Background(), ModeMerge)
	var ue *feed.UnavailableError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, 0, fs.writes)
}

func TestSync_InvalidMode(t *testing.T) {
	svc := newTestService(&fakeStore{}, &stubFeed{}, nil, nil)
	_, err := svc.Sync(context.Background(), Mode("upsert"))
	assert.ErrorIs(t, err, ErrInvalidMode)
}

func TestSync_IdempotentWithUnchangedFeed(t *testing.T) {
	fs := &fakeStore{}
	source := &stubFeed{records: []feed.Record{
		{ExternalID: "100", Title: "Casa X", PriceAmount: 500000},
	}}
	svc := newTestService(fs, source, nil, nil)

	_, err := svc.Sync(context.Background(), ModeMerge)
	require.NoError(t, err)
	first := fs.catalog(t)

	_, err = svc.Sync(context.Background(), ModeMerge)
	require.NoError(t, err)
	second := fs.catalog(t)

	// Identity, slug, and local fields converge; only UpdatedAt moves.
	require.Len(t, second, 1)
	assert.Equal(t, first[0].ID, second[0].ID)
	assert.Equal(t, first[0].Slug, second[0].Slug)
	assert.Equal(t, first[0].CreatedAt, second[0].CreatedAt)
}

func TestCreate_AssignsIdentityAndSlug(t *testing.T) {
	fs := &fakeStore{}
	svc := newTestService(fs, &stubFeed{}, nil, nil)

	title := "Casa Nueva"
	price := int64(1250000)
	property, err := svc.Create(context.Background(), PropertyInput{Title: &title, PriceAmount: &price})
	require.NoError(t, err)

	assert.NotEmpty(t, property.ID)
	assert.Equal(t, models.SourceManual, property.Source)
	assert.Equal(t, "casa-nueva", property.Slug)
	assert.Equal(t, price, property.PriceAmount)
	assert.False(t, property.CreatedAt.IsZero())
}

func TestCreate_RequiresTitle(t *testing.T) {
	svc := newTestService(&fakeStore{}, &stubFeed{}, nil, nil)
	_, err := svc.Create(context.Background(), PropertyInput{})
	assert.ErrorIs(t, err, ErrTitleRequired)
}

func TestUpdate_EditsAnyField(t *testing.T) {
	fs := &fakeStore{}
	fs.seed(t, []models.Property{{ID: "p1", Source: models.SourceFeed, Title: "Vieja", Slug: "vieja", PriceAmount: 1}})
	svc := newTestService(fs, &stubFeed{}, nil, nil)

	title := "Renovada"
	published := true
	property, err := svc.Update(context.Background(), "p1", PropertyInput{Title: &title, Published: &published})
	require.NoError(t, err)

	assert.Equal(t, "Renovada", property.Title)
	assert.Equal(t, "renovada", property.Slug)
	assert.True(t, property.Published)
	assert.Equal(t, int64(1), property.PriceAmount, "unset fields stay put")
}

func TestUpdate_UnknownID(t *testing.T) {
	fs := &fakeStore{}
	fs.seed(t, []models.Property{})
	svc := newTestService(fs, &stubFeed{}, nil, nil)

	title := "x"
	_, err := svc.Update(context.Background(), "ghost", PropertyInput{Title: &title})
	assert.ErrorIs(t, err, ErrPropertyNotFound)
}

func TestDelete_RemovesEntryAndPhotos(t *testing.T) {
	fs := &fakeStore{}
	fs.seed(t, []models.Property{
		{ID: "p1", Slug: "una", StoredPhotos: []string{"properties/p1/front.jpg"}},
		{ID: "p2", Slug: "dos"},
	})
	remover := &stubRemover{}
	svc := newTestService(fs, &stubFeed{}, nil, remover)

	require.NoError(t, svc.Delete(context.Background(), "p1"))

	stored := fs.catalog(t)
	require.Len(t, stored, 1)
	assert.Equal(t, "p2", stored[0].ID)
	assert.Equal(t, []string{"p1"}, remover.calls)
}

func TestIncrementViews_Monotonic(t *testing.T) {
	fs := &fakeStore{}
	fs.seed(t, []models.Property{{ID: "p1", Slug: "una", ViewCount: 4}})
	svc := newTestService(fs, &stubFeed{}, nil, nil)

	views, err := svc.IncrementViews(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(5), views)

	views, err = svc.IncrementViews(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(6), views)
}
