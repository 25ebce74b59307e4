package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// maxErrorBody limits how much of an error response body is kept for diagnostics.
const maxErrorBody = 512

// Client defines the interface for fetching the external property feed.
type Client interface {
	// FetchAll retrieves every page of the feed and returns the normalized
	// records. It is all-or-nothing: on any failure no partial results are
	// returned.
	FetchAll(ctx context.Context) ([]Record, error)
}

// feedItem is the raw wire shape of one listing before normalization.
// Loosely typed fields (the feed sends price both as number and string)
// are declared as any and funneled through the utils converters.
type feedItem struct {
	ID        any    `json:"id"`
	Title     string `json:"title"`
	Type      string `json:"type"`
	Status    string `json:"status"`
	Price     any    `json:"price"`
	Published *bool  `json:"published"`
	Address   struct {
		City     string `json:"city"`
		District string `json:"district"`
		Street   string `json:"street"`
	} `json:"address"`
	Bedrooms  any `json:"bedrooms"`
	Bathrooms any `json:"bathrooms"`
	Parking   any `json:"parking_spots"`
	Area      any `json:"area_m2"`
	Amenities struct {
		Pool      any `json:"pool"`
		Garden    any `json:"garden"`
		Furnished any `json:"furnished"`
	} `json:"amenities"`
	Photos []string `json:"photos"`
	Tags   []string `json:"tags"`
}

type feedPage struct {
	Data     []feedItem `json:"data"`
	Total    int        `json:"total"`
	Page     int        `json:"page"`
	LastPage int        `json:"lastPage"`
}

// NewClient creates a feed client for the configured endpoint.
// Credentials are validated lazily by FetchAll so that a service without a
// feed configured can still start.
func NewClient(cfg Config) Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 100
	}

	return &httpClient{
		endpoint: strings.TrimSuffix(cfg.Endpoint, "/"),
		token:    cfg.Token,
		pageSize: pageSize,
		http: &http.Client{
			Timeout: timeoutDuration,
			Transport: &http.Transport{
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
			},
		},
	}
}

type httpClient struct {
	endpoint string
	token    string
	pageSize int
	http     *http.Client
}

func (c *httpClient) FetchAll(ctx context.Context) ([]Record, error) {
	if c.endpoint == "" || c.token == "" {
		return nil, ErrMissingCredentials
	}

	var records []Record
	for page := 1; ; page++ {
		body, err := c.fetchPage(ctx, page)
		if err != nil {
			return nil, err
		}

		for _, item := range body.Data {
			records = append(records, normalize(item))
		}

		// A short or empty page is the end of the feed; lastPage is honored
		// when the feed reports it.
		if len(body.Data) < c.pageSize {
			break
		}
		if body.LastPage > 0 && page >= body.LastPage {
			break
		}
	}

	return records, nil
}

func (c *httpClient) fetchPage(ctx context.Context, page int) (*feedPage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(c.pageSize))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"/properties?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("feed: failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &UnavailableError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &UnavailableError{Status: resp.StatusCode, Body: string(raw)}
	}

	var body feedPage
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, &ParseError{Page: page, Err: err}
	}
	return &body, nil
}
