package store

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// maxErrorBody limits how much of an error response body is kept for diagnostics.
const maxErrorBody = 512

// Client defines the interface for the remote versioned document store.
//
// The simple Read/Write pair operates on single objects guarded by an opaque
// version token (compare-and-swap). The remaining primitives expose the store's
// object graph for multi-file atomic commits: blobs must exist before the tree
// that references them, the tree before the commit, and the ref update comes
// last, conditioned on the expected parent.
type Client interface {
	// Read returns the content and current version token of the object at path.
	// Returns ErrNotFound if no object exists there.
	Read(ctx context.Context, path string) ([]byte, VersionToken, error)
	// Write replaces the object at path. The expected token must match the
	// store's current one or the write fails with *ConflictError. A zero token
	// is only valid when the object does not exist yet.
	Write(ctx context.Context, path string, content []byte, expected VersionToken) (VersionToken, error)
	// CreateBlob stores raw content and returns its blob ref.
	CreateBlob(ctx context.Context, content []byte) (BlobRef, error)
	// CreateTree builds a new tree on top of base, applying the given entries.
	// An entry with an empty blob ref removes its path.
	CreateTree(ctx context.Context, base TreeRef, entries []TreeEntry) (TreeRef, error)
	// CreateCommit wraps a tree in a commit with the given parent and message.
	CreateCommit(ctx context.Context, tree TreeRef, parent CommitRef, message string) (CommitRef, error)
	// GetRef resolves a ref name to the commit it currently points at.
	GetRef(ctx context.Context, name string) (CommitRef, error)
	// GetCommit returns the tree a commit snapshots.
	GetCommit(ctx context.Context, commit CommitRef) (TreeRef, error)
	// UpdateRef moves a ref to commit, but only if it still points at
	// expectedParent. A moved ref fails with *ConflictError.
	UpdateRef(ctx context.Context, name string, commit CommitRef, expectedParent CommitRef) error
}

// NewClient creates a store client for the configured endpoint.
func NewClient(cfg Config) (Client, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("store: endpoint is not configured")
	}

	base, err := url.Parse(strings.TrimSuffix(cfg.Endpoint, "/"))
	if err != nil {
		return nil, fmt.Errorf("store: invalid endpoint: %w", err)
	}

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ResponseHeaderTimeout: timeoutDuration,
	}

	return &httpClient{
		base:  base,
		token: cfg.Token,
		http: &http.Client{
			Transport: transport,
			Timeout:   timeoutDuration,
		},
	}, nil
}

type httpClient struct {
	base  *url.URL
	token string
	http  *http.Client
}

type objectPayload struct {
	Content string `json:"content"`
	Version string `json:"version,omitempty"`
}

type refPayload struct {
	Ref string `json:"ref"`
}

func (c *httpClient) Read(ctx context.Context, path string) ([]byte, VersionToken, error) {
	var out objectPayload
	status, err := c.do(ctx, http.MethodGet, "/objects/"+path, nil, &out)
	if err != nil {
		return nil, "", err
	}
	if status == http.StatusNotFound {
		return nil, "", ErrNotFound
	}

	content, err := base64.StdEncoding.DecodeString(out.Content)
	if err != nil {
		return nil, "", fmt.Errorf("store: invalid object content encoding: %w", err)
	}
	return content, VersionToken(out.Version), nil
}

func (c *httpClient) Write(ctx context.Context, path string, content []byte, expected VersionToken) (VersionToken, error) {
	in := objectPayload{
		Content: base64.StdEncoding.EncodeToString(content),
		Version: string(expected),
	}
	var out objectPayload
	status, err := c.do(ctx, http.MethodPut, "/objects/"+path, in, &out)
	if err != nil {
		return "", err
	}
	if status == http.StatusConflict {
		return "", &ConflictError{Path: path, Expected: string(expected)}
	}
	if status == http.StatusNotFound {
		return "", ErrNotFound
	}
	return VersionToken(out.Version), nil
}

func (c *httpClient) CreateBlob(ctx context.Context, content []byte) (BlobRef, error) {
	in := objectPayload{Content: base64.StdEncoding.EncodeToString(content)}
	var out refPayload
	status, err := c.do(ctx, http.MethodPost, "/blobs", in, &out)
	if err != nil {
		return "", err
	}
	if status == http.StatusNotFound {
		return "", ErrNotFound
	}
	return BlobRef(out.Ref), nil
}

func (c *httpClient) CreateTree(ctx context.Context, base TreeRef, entries []TreeEntry) (TreeRef, error) {
	in := struct {
		Base    string      `json:"base,omitempty"`
		Entries []TreeEntry `json:"entries"`
	}{Base: string(base), Entries: entries}

	var out refPayload
	status, err := c.do(ctx, http.MethodPost, "/trees", in, &out)
	if err != nil {
		return "", err
	}
	if status == http.StatusNotFound {
		return "", ErrNotFound
	}
	return TreeRef(out.Ref), nil
}

func (c *httpClient) CreateCommit(ctx context.Context, tree TreeRef, parent CommitRef, message string) (CommitRef, error) {
	in := struct {
		Tree    string `json:"tree"`
		Parent  string `json:"parent,omitempty"`
		Message string `json:"message"`
	}{Tree: string(tree), Parent: string(parent), Message: message}

	var out refPayload
	status, err := c.do(ctx, http.MethodPost, "/commits", in, &out)
	if err != nil {
		return "", err
	}
	if status == http.StatusNotFound {
		return "", ErrNotFound
	}
	return CommitRef(out.Ref), nil
}

func (c *httpClient) GetRef(ctx context.Context, name string) (CommitRef, error) {
	var out struct {
		Commit string `json:"commit"`
	}
	status, err := c.do(ctx, http.MethodGet, "/refs/"+name, nil, &out)
	if err != nil {
		return "", err
	}
	if status == http.StatusNotFound {
		return "", ErrNotFound
	}
	return CommitRef(out.Commit), nil
}

func (c *httpClient) GetCommit(ctx context.Context, commit CommitRef) (TreeRef, error) {
	var out struct {
		Tree string `json:"tree"`
	}
	status, err := c.do(ctx, http.MethodGet, "/commits/"+string(commit), nil, &out)
	if err != nil {
		return "", err
	}
	if status == http.StatusNotFound {
		return "", ErrNotFound
	}
	return TreeRef(out.Tree), nil
}

func (c *httpClient) UpdateRef(ctx context.Context, name string, commit CommitRef, expectedParent CommitRef) error {
	in := struct {
		Commit   string `json:"commit"`
		Expected string `json:"expected,omitempty"`
	}{Commit: string(commit), Expected: string(expectedParent)}

	status, err := c.do(ctx, http.MethodPatch, "/refs/"+name, in, nil)
	if err != nil {
		return err
	}
	if status == http.StatusConflict {
		return &ConflictError{Path: name, Expected: string(expectedParent)}
	}
	if status == http.StatusNotFound {
		return ErrNotFound
	}
	return nil
}

// do performs a JSON request and decodes a JSON response into out (when out is
// non-nil and the status is 2xx). 404 and 409 are returned to the caller for
// semantic mapping; anything else non-2xx becomes *UnavailableError.
func (c *httpClient) do(ctx context.Context, method, path string, in, out any) (int, error) {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return 0, fmt.Errorf("store: failed to encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base.String()+path, body)
	if err != nil {
		return 0, fmt.Errorf("store: failed to build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, &UnavailableError{Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if out != nil {
			if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
				return resp.StatusCode, fmt.Errorf("store: failed to decode response: %w", err)
			}
		}
		return resp.StatusCode, nil
	case resp.StatusCode == http.StatusNotFound, resp.StatusCode == http.StatusConflict:
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
		return resp.StatusCode, nil
	default:
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return resp.StatusCode, &UnavailableError{Status: resp.StatusCode, Body: string(raw)}
	}
}
