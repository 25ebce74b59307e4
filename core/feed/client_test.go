package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchAll_MissingCredentials(t *testing.T) {
	client := NewClient(Config{})
	_, err := client.FetchAll(context.Background())
	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestFetchAll_Paginates(t *testing.T) {
	// Three pages: two full, one short. The client must walk all of them
	// sequentially and stop after the short page.
	var pagesServed []int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer feed-token", r.Header.Get("Authorization"))
		assert.Equal(t, "2", r.URL.Query().Get("limit"))

		page := r.URL.Query().Get("page")
		pagesServed = append(pagesServed, len(pagesServed)+1)

		items := map[string][]map[string]any{
			"1": {{"id": 100, "title": "Casa Uno"}, {"id": 101, "title": "Casa Dos"}},
			"2": {{"id": 102, "title": "Casa Tres"}, {"id": 103, "title": "Casa Cuatro"}},
			"3": {{"id": 104, "title": "Casa Cinco"}},
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data":     items[page],
			"total":    5,
			"page":     page,
			"lastPage": 3,
		})
	}))
	defer srv.Close()

	client := NewClient(Config{Endpoint: srv.URL, Token: "feed-token", PageSize: 2})
	records, err := client.FetchAll(context.Background())
	require.NoError(t, err)

	assert.Len(t, records, 5)
	assert.Len(t, pagesServed, 3)
	assert.Equal(t, "100", records[0].ExternalID)
	assert.Equal(t, "Casa Cinco", records[4].Title)
}

func TestFetchAll_StopsAtLastPage(t *testing.T) {
	// Every page is full, so only the lastPage marker ends the walk.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data":     []map[string]any{{"id": "a" + page}, {"id": "b" + page}},
			"lastPage": 2,
		})
	}))
	defer srv.Close()

	client := NewClient(Config{Endpoint: srv.URL, Token: "t", PageSize: 2})
	records, err := client.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 4)
}

func TestFetchAll_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprint(w, "maintenance window")
	}))
	defer srv.Close()

	client := NewClient(Config{Endpoint: srv.URL, Token: "t"})
	_, err := client.FetchAll(context.Background())

	var ue *UnavailableError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, http.StatusServiceUnavailable, ue.Status)
	assert.Contains(t, ue.Body, "maintenance")
}

func TestFetchAll_MalformedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html>not json</html>")
	}))
	defer srv.Close()

	client := NewClient(Config{Endpoint: srv.URL, Token: "t"})
	_, err := client.FetchAll(context.Background())

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 1, pe.Page)
}

func TestFetchAll_FailureReturnsNoPartialResults(t *testing.T) {
	// First page succeeds, second fails; no records may leak out.
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls > 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data":     []map[string]any{{"id": 1}, {"id": 2}},
			"lastPage": 5,
		})
	}))
	defer srv.Close()

	client := NewClient(Config{Endpoint: srv.URL, Token: "t", PageSize: 2})
	records, err := client.FetchAll(context.Background())
	assert.Error(t, err)
	assert.Nil(t, records)
}
