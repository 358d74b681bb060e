package es

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	elastigo "github.com/mattbaird/elastigo/lib"

	"go-index-exporter/internal/config"
)

// MatchAllPattern selects every index in the store
const MatchAllPattern = "*"

// Errors surfaced by the store client. The coordinator treats
// ErrStoreUnavailable as fatal; the other two stay scoped to one index.
var (
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrCursorExpired    = errors.New("scroll cursor expired")
	ErrScanFailure      = errors.New("scan failed")
)

// Conn is the subset of the elastigo connection the exporter uses.
// Kept as an interface so tests can swap in a fake store.
type Conn interface {
	Search(index string, _type string, args map[string]interface{}, query interface{}) (elastigo.SearchResult, error)
	Scroll(args map[string]interface{}, scrollID string) (elastigo.SearchResult, error)
	DoCommand(method string, url string, args map[string]interface{}, data interface{}) ([]byte, error)
}

// Client talks to one Elasticsearch endpoint. The underlying connection is
// safe to share across workers; scroll state never lives on the Client, each
// ScanIndex call owns its own cursor.
type Client struct {
	conn      Conn
	pageSize  int
	scrollTTL string
}

// NewClient builds a client for the endpoint in cfg.
func NewClient(cfg *config.Config) *Client {
	c := elastigo.NewConn()
	c.SetHosts([]string{cfg.Host})
	c.SetPort(strconv.Itoa(cfg.Port))

	return &Client{
		conn:      c,
		pageSize:  cfg.PageSize,
		scrollTTL: cfg.ScrollTTL,
	}
}

// NewClientWithConn builds a client on an existing connection (tests).
func NewClientWithConn(conn Conn, pageSize int, scrollTTL string) *Client {
	return &Client{conn: conn, pageSize: pageSize, scrollTTL: scrollTTL}
}

// ListIndices returns the names of all indices matching the glob-style
// pattern. An empty result is valid (a store with no indices). Any transport
// or request failure is ErrStoreUnavailable: without a catalog there is no
// work to schedule.
func (c *Client) ListIndices(pattern string) ([]string, error) {
	if pattern == "" {
		pattern = MatchAllPattern
	}

	args := map[string]interface{}{"format": "json", "h": "index"}
	body, err := c.conn.DoCommand("GET", "/_cat/indices/"+pattern, args, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: listing indices for pattern %q: %v", ErrStoreUnavailable, pattern, err)
	}

	var rows []struct {
		Index string `json:"index"`
	}
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("%w: unexpected catalog response: %v", ErrStoreUnavailable, err)
	}

	indices := make([]string, 0, len(rows))
	for _, row := range rows {
		indices = append(indices, row.Index)
	}
	return indices, nil
}
