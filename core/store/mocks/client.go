package mocks

import (
	"context"

	"catalog-sync/core/store"

	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of store.Client
type Client struct {
	mock.Mock
}

func (m *Client) Read(ctx context.Context, path string) ([]byte, store.VersionToken, error) {
	args := m.Called(ctx, path)
	var content []byte
	if raw, ok := args.Get(0).([]byte); ok {
		content = raw
	}
	return content, args.Get(1).(store.VersionToken), args.Error(2)
}

func (m *Client) Write(ctx context.Context, path string, content []byte, expected store.VersionToken) (store.VersionToken, error) {
	args := m.Called(ctx, path, content, expected)
	return args.Get(0).(store.VersionToken), args.Error(1)
}

func (m *Client) CreateBlob(ctx context.Context, content []byte) (store.BlobRef, error) {
	args := m.Called(ctx, content)
	return args.Get(0).(store.BlobRef), args.Error(1)
}

func (m *Client) CreateTree(ctx context.Context, base store.TreeRef, entries []store.TreeEntry) (store.TreeRef, error) {
	args := m.Called(ctx, base, entries)
	return args.Get(0).(store.TreeRef), args.Error(1)
}

func (m *Client) CreateCommit(ctx context.Context, tree store.TreeRef, parent store.CommitRef, message string) (store.CommitRef, error) {
	args := m.Called(ctx, tree, parent, message)
	return args.Get(0).(store.CommitRef), args.Error(1)
}

func (m *Client) GetRef(ctx context.Context, name string) (store.CommitRef, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(store.CommitRef), args.Error(1)
}

func (m *Client) GetCommit(ctx context.Context, commit store.CommitRef) (store.TreeRef, error) {
	args := m.Called(ctx, commit)
	return args.Get(0).(store.TreeRef), args.Error(1)
}

func (m *Client) UpdateRef(ctx context.Context, name string, commit store.CommitRef, expectedParent store.CommitRef) error {
	args := m.Called(ctx, name, commit, expectedParent)
	return args.Error(0)
}
