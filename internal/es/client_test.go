package es

import (
	"errors"
	"fmt"
	"testing"

	elastigo "github.com/mattbaird/elastigo/lib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeConn scripts the elastigo connection: a fixed first page, a sequence of
// scroll pages, and canned catalog responses. It records every DoCommand call.
type fakeConn struct {
	searchResult elastigo.SearchResult
	searchErr    error

	scrollPages []elastigo.SearchResult
	scrollErr   error
	scrollCalls int

	catBody []byte
	catErr  error

	commands []string // "METHOD URL"
	deleted  []interface{}
}

func (f *fakeConn) Search(index, _type string, args map[string]interface{}, query interface{}) (elastigo.SearchResult, error) {
	if f.searchErr != nil {
		return elastigo.SearchResult{}, f.searchErr
	}
	return f.searchResult, nil
}

func (f *fakeConn) Scroll(args map[string]interface{}, scrollID string) (elastigo.SearchResult, error) {
	if f.scrollErr != nil {
		return elastigo.SearchResult{}, f.scrollErr
	}
	if f.scrollCalls < len(f.scrollPages) {
		page := f.scrollPages[f.scrollCalls]
		f.scrollCalls++
		return page, nil
	}
	f.scrollCalls++
	return elastigo.SearchResult{ScrollId: scrollID}, nil
}

func (f *fakeConn) DoCommand(method, url string, args map[string]interface{}, data interface{}) ([]byte, error) {
	f.commands = append(f.commands, fmt.Sprintf("%s %s", method, url))
	if method == "DELETE" {
		f.deleted = append(f.deleted, data)
		return []byte(`{}`), nil
	}
	return f.catBody, f.catErr
}

func TestListIndices(t *testing.T) {
	conn := &fakeConn{
		catBody: []byte(`[{"index":"logs-2026.08"},{"index":"users"},{"index":"orders"}]`),
	}
	client := NewClientWithConn(conn, 100, "1m")

	indices, err := client.ListIndices("")
	require.NoError(t, err)
	assert.Equal(t, []string{"logs-2026.08", "users", "orders"}, indices)
	assert.Equal(t, []string{"GET /_cat/indices/*"}, conn.commands)
}

func TestListIndicesEmptyStore(t *testing.T) {
	conn := &fakeConn{catBody: []byte(`[]`)}
	client := NewClientWithConn(conn, 100, "1m")

	indices, err := client.ListIndices(MatchAllPattern)
	require.NoError(t, err)
	assert.Empty(t, indices)
}

func TestListIndicesStoreUnavailable(t *testing.T) {
	conn := &fakeConn{catErr: errors.New("connection refused")}
	client := NewClientWithConn(conn, 100, "1m")

	_, err := client.ListIndices("*")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestListIndicesBadCatalogPayload(t *testing.T) {
	conn := &fakeConn{catBody: []byte(`{"not":"a list"}`)}
	client := NewClientWithConn(conn, 100, "1m")

	_, err := client.ListIndices("*")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}
