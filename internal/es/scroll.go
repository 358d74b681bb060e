package es

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	elastigo "github.com/mattbaird/elastigo/lib"

	"go-index-exporter/internal/model"
)

// ScanIndex reads the complete document set of one index through the scroll
// API: an initial match_all search sized to the configured page, then repeated
// scroll requests with the continuation id until the store returns an empty
// page. Each request resets the cursor's TTL on the server.
//
// Every call opens a fresh cursor; a scan is not restartable. All scroll ids
// created by the scan are cleared on return, success or failure. Scrolls hold
// cluster memory until they expire.
func (c *Client) ScanIndex(ctx context.Context, index string) ([]model.Document, error) {
	query := map[string]interface{}{
		"query": map[string]interface{}{
			"match_all": map[string]interface{}{},
		},
		"size": c.pageSize,
		"sort": []string{"_doc"},
	}
	qb, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScanFailure, err)
	}

	args := map[string]interface{}{"scroll": c.scrollTTL}
	scrollIDs := make(map[string]struct{})
	defer c.clearScrolls(scrollIDs)

	sr, err := c.conn.Search(index, "", args, string(qb))
	if err != nil {
		return nil, fmt.Errorf("%w: opening scroll on %s: %v", ErrScanFailure, index, err)
	}
	scrollID := sr.ScrollId
	scrollIDs[scrollID] = struct{}{}

	docs := pageDocs(sr)
	if len(docs) == 0 {
		return docs, nil
	}

	for {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", ErrScanFailure, ctx.Err())
		default:
		}

		sr, err = c.conn.Scroll(args, scrollID)
		if err != nil {
			return nil, scrollErr(index, err)
		}
		scrollID = sr.ScrollId
		scrollIDs[scrollID] = struct{}{}

		page := pageDocs(sr)
		if len(page) == 0 {
			return docs, nil
		}
		docs = append(docs, page...)
	}
}

// clearScrolls deletes all server-side cursors created during one scan.
func (c *Client) clearScrolls(scrollIDs map[string]struct{}) {
	if len(scrollIDs) == 0 {
		return
	}
	ids := make([]string, 0, len(scrollIDs))
	for id := range scrollIDs {
		if id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return
	}
	body := map[string]interface{}{"scroll_id": ids}
	if _, err := c.conn.DoCommand("DELETE", "/_search/scroll", nil, body); err != nil {
		fmt.Printf("⚠️ Scan: failed to clear %d scroll id(s): %v\n", len(ids), err)
	}
}

// scrollErr maps a continuation failure to the right error kind. A rejected
// cursor (expired or unknown to the store) is ErrCursorExpired; anything else
// is a plain scan failure.
func scrollErr(index string, err error) error {
	var esErr elastigo.ESError
	if errors.As(err, &esErr) {
		if esErr.Code == http.StatusNotFound || strings.Contains(esErr.What, "search_context_not_found") {
			return fmt.Errorf("%w: index %s: %v", ErrCursorExpired, index, err)
		}
	}
	return fmt.Errorf("%w: scrolling %s: %v", ErrScanFailure, index, err)
}

func pageDocs(sr elastigo.SearchResult) []model.Document {
	docs := make([]model.Document, 0, len(sr.Hits.Hits))
	for _, h := range sr.Hits.Hits {
		doc := model.Document{
			Index: h.Index,
			Type:  h.Type,
			ID:    h.Id,
		}
		if h.Source != nil {
			doc.Source = *h.Source
		}
		docs = append(docs, doc)
	}
	return docs
}
