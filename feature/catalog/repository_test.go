package catalog

import (
	"context"
	"testing"

	"catalog-sync/core/store"
	"catalog-sync/core/store/mocks"
	"catalog-sync/feature/catalog/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRepository_LoadMissingDocumentIsEmptyCatalog(t *testing.T) {
	client := &mocks.Client{}
	client.On("Read", mock.Anything, "data/properties.json").
		Return([]byte(nil), store.VersionToken(""), store.ErrNotFound)

	snapshot, err := NewRepository(client, "data/properties.json").Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snapshot.Properties)
	assert.True(t, snapshot.Version.IsZero(), "first write must present a zero token")
}

func TestRepository_LoadParsesDocumentAndKeepsToken(t *testing.T) {
	client := &mocks.Client{}
	client.On("Read", mock.Anything, "data/properties.json").
		Return([]byte(`[{"id":"p1","slug":"casa"}]`), store.VersionToken("v7"), nil)

	snapshot, err := NewRepository(client, "data/properties.json").Load(context.Background())
	require.NoError(t, err)
	require.Len(t, snapshot.Properties, 1)
	assert.Equal(t, "p1", snapshot.Properties[0].ID)
	assert.Equal(t, store.VersionToken("v7"), snapshot.Version)
}

func TestRepository_LoadCorruptDocument(t *testing.T) {
	client := &mocks.Client{}
	client.On("Read", mock.Anything, mock.Anything).
		Return([]byte(`{not json`), store.VersionToken("v1"), nil)

	_, err := NewRepository(client, "data/properties.json").Load(context.Background())
	assert.Error(t, err)
}

func TestRepository_SavePassesConflictThrough(t *testing.T) {
	client := &mocks.Client{}
	client.On("Write", mock.Anything, "data/properties.json", mock.Anything, store.VersionToken("stale")).
		Return(store.VersionToken(""), &store.ConflictError{Path: "data/properties.json", Expected: "stale"})

	_, err := NewRepository(client, "data/properties.json").
		Save(context.Background(), []models.Property{}, "stale")
	assert.True(t, store.IsConflict(err))
}
