package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hunterprice/internal/domain"
	"hunterprice/internal/listing"
)

// fakeAPI serves canned bodies per path and records requests
type fakeAPI struct {
	t      *testing.T
	mu     sync.Mutex
	routes map[string]http.HandlerFunc
	hits   map[string]int
	last   map[string]*http.Request
	bodies map[string][]byte
}

func newFakeAPI(t *testing.T) (*fakeAPI, *Client) {
	t.Helper()
	f := &fakeAPI{
		t:      t,
		routes: map[string]http.HandlerFunc{},
		hits:   map[string]int{},
		last:   map[string]*http.Request{},
		bodies: map[string][]byte{},
	}
	srv := httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(srv.Close)

	client := New(Options{
		BaseURL:    srv.URL + "/api/",
		Timeout:    5 * time.Second,
		MaxRetries: 1,
		RetryDelay: time.Millisecond,
	})
	return f, client
}

func (f *fakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api")
	route := path
	// Match on the first segment so tests can register "/getSingleProduct"
	if i := strings.Index(strings.TrimPrefix(path, "/"), "/"); i >= 0 {
		route = path[:i+1]
	}

	var body []byte
	if r.Body != nil {
		body, _ = io.ReadAll(r.Body)
	}

	f.mu.Lock()
	f.hits[route]++
	f.last[route] = r
	f.bodies[route] = body
	h, ok := f.routes[route]
	f.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	h(w, r)
}

func (f *fakeAPI) handle(route string, h http.HandlerFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[route] = h
}

func (f *fakeAPI) json(route string, status int, body string) {
	f.handle(route, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	})
}

func (f *fakeAPI) hitCount(route string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[route]
}

func (f *fakeAPI) lastRequest(route string) *http.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last[route]
}

func (f *fakeAPI) lastBody(route string) map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out map[string]any
	require.NoError(f.t, json.Unmarshal(f.bodies[route], &out))
	return out
}

func TestSuggestions(t *testing.T) {
	api, client := newFakeAPI(t)
	api.json("/autocomplete", http.StatusOK, `[{"nombreDisplay":"Zapatos Nike"},{"nombreDisplay":""},{"nombreDisplay":"Zapatos Puma"}]`)

	got, err := client.Suggestions(context.Background(), "zapa tos")
	require.NoError(t, err)
	assert.Equal(t, []domain.Suggestion{{DisplayName: "Zapatos Nike"}, {DisplayName: "Zapatos Puma"}}, got)

	req := api.lastRequest("/autocomplete")
	require.NotNil(t, req)
	assert.Equal(t, "/api/autocomplete/zapa%20tos", req.URL.EscapedPath())
}

func TestSuggestionsEmptyQuerySkipsNetwork(t *testing.T) {
	api, client := newFakeAPI(t)

	got, err := client.Suggestions(context.Background(), "   ")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Zero(t, api.hitCount("/autocomplete"))
}

func TestSuggestionsMalformedBody(t *testing.T) {
	api, client := newFakeAPI(t)
	api.json("/autocomplete", http.StatusOK, `{"oops"`)

	_, err := client.Suggestions(context.Background(), "za")
	var decodeErr *DecodeError
	assert.True(t, errors.As(err, &decodeErr))
}

func TestSearchPage(t *testing.T) {
	api, client := newFakeAPI(t)
	api.json("/search", http.StatusOK, `{
		"results": [
			{"_id": "a1", "imagenurl": "http://img/1.png", "marca": {"valor": "Nike"}, "nombreDisplay": "Zapato 1"},
			{"_id": 42, "imagenurl": "", "marca": "Puma", "nombreDisplay": "Zapato 2"}
		],
		"hasNextPage": true
	}`)

	page, err := client.SearchPage(context.Background(), "zapatos & co", 2, 20)
	require.NoError(t, err)
	assert.True(t, page.HasNextPage)
	assert.Equal(t, []domain.ProductSummary{
		{ID: "a1", ImageURL: "http://img/1.png", Brand: "Nike", DisplayName: "Zapato 1"},
		{ID: "42", Brand: "Puma", DisplayName: "Zapato 2"},
	}, page.Items)

	q := api.lastRequest("/search").URL.Query()
	assert.Equal(t, "zapatos & co", q.Get("searchText"))
	assert.Equal(t, "2", q.Get("page"))
	assert.Equal(t, "20", q.Get("pageSize"))
}

func TestSearchPageMissingResultsIsEmptyFinalPage(t *testing.T) {
	api, client := newFakeAPI(t)
	api.json("/search", http.StatusOK, `{"hasNextPage": true}`)

	page, err := client.SearchPage(context.Background(), "x", 0, 0)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.False(t, page.HasNextPage)
	assert.Equal(t, "20", api.lastRequest("/search").URL.Query().Get("pageSize"))
}

func TestSearchPageNonObjectIsDecodeError(t *testing.T) {
	api, client := newFakeAPI(t)
	api.json("/search", http.StatusOK, `<html>maintenance</html>`)

	_, err := client.SearchPage(context.Background(), "x", 0, 20)
	var decodeErr *DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, "search", decodeErr.Op)
}

func TestServerErrorIsRetriedOnce(t *testing.T) {
	api, client := newFakeAPI(t)
	api.json("/search", http.StatusInternalServerError, `{"error":"boom"}`)

	_, err := client.SearchPage(context.Background(), "x", 0, 20)
	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, http.StatusInternalServerError, fetchErr.StatusCode)
	assert.Equal(t, 2, api.hitCount("/search"))
	assert.Equal(t, "boom", ErrorMessage(err, "fallback"))
}

func TestClientErrorIsNotRetried(t *testing.T) {
	api, client := newFakeAPI(t)
	api.json("/search", http.StatusNotFound, `not json`)

	_, err := client.SearchPage(context.Background(), "x", 0, 20)
	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, http.StatusNotFound, fetchErr.StatusCode)
	assert.Equal(t, 1, api.hitCount("/search"))
	assert.Equal(t, "fallback", ErrorMessage(err, "fallback"))
}

func TestRetryRecovers(t *testing.T) {
	api, client := newFakeAPI(t)
	var calls atomic.Int32
	api.handle("/search", func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"results": [], "hasNextPage": false}`))
	})

	page, err := client.SearchPage(context.Background(), "x", 0, 20)
	require.NoError(t, err)
	assert.False(t, page.HasNextPage)
	assert.Equal(t, int32(2), calls.Load())
}

func TestRetriedPageSettlesOnce(t *testing.T) {
	api, client := newFakeAPI(t)
	var calls atomic.Int32
	api.handle("/search", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "0" && calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"results": [{"_id":"a"},{"_id":"b"}], "hasNextPage": true}`))
	})

	ctrl := listing.NewController(context.Background(), client, 2)
	defer ctrl.Close()

	cmd := ctrl.CommitQuery("x")
	require.NotNil(t, cmd)
	assert.True(t, ctrl.Apply(cmd()))

	st := ctrl.State()
	assert.Len(t, st.Items, 2)
	assert.Equal(t, 1, st.NextPage)
	assert.Equal(t, 2, api.hitCount("/search"))
	assert.Equal(t, "0", api.lastRequest("/search").URL.Query().Get("page"))
}

func TestTransportFailureIsFetchError(t *testing.T) {
	client := New(Options{BaseURL: "http://127.0.0.1:1/api", Timeout: time.Second})

	_, err := client.SearchPage(context.Background(), "x", 0, 20)
	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Zero(t, fetchErr.StatusCode)
}

func TestCanceledContextIsNotRetried(t *testing.T) {
	api, client := newFakeAPI(t)
	api.json("/search", http.StatusOK, `{"results": []}`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.SearchPage(ctx, "x", 0, 20)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, api.hitCount("/search"))
}

func TestRequestHeaders(t *testing.T) {
	api, client := newFakeAPI(t)
	api.json("/search", http.StatusOK, `{"results": []}`)

	_, err := client.SearchPage(context.Background(), "x", 0, 20)
	require.NoError(t, err)
	req := api.lastRequest("/search")
	assert.Equal(t, "application/json", req.Header.Get("Accept"))
	assert.Empty(t, req.Header.Get("Authorization"))
	_, err = uuid.Parse(req.Header.Get("X-Request-ID"))
	assert.NoError(t, err)

	authed := client.WithUser(&domain.CurrentUser{ID: "7", Name: "Ana", Token: "tok"})
	_, err = authed.SearchPage(context.Background(), "x", 0, 20)
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok", api.lastRequest("/search").Header.Get("Authorization"))
	assert.Nil(t, client.User())
}
