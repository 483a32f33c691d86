//go:build e2e && unix

package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
)

// fakeAPI serves the HunterPrice endpoints the storefront needs. Every
// query has total products named "<Query> <n>".
type fakeAPI struct {
	*httptest.Server
	total int

	mu    sync.Mutex
	pages []string
}

func newFakeAPI(t *testing.T, total int) *fakeAPI {
	t.Helper()
	api := &fakeAPI{total: total}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/autocomplete/", func(w http.ResponseWriter, r *http.Request) {
		q := strings.TrimPrefix(r.URL.Path, "/api/autocomplete/")
		writeJSON(w, []map[string]string{
			{"nombreDisplay": q + " running"},
			{"nombreDisplay": q + " casual"},
		})
	})
	mux.HandleFunc("/api/search/", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("searchText")
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		size, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))

		api.mu.Lock()
		api.pages = append(api.pages, fmt.Sprintf("%s:%d", q, page))
		api.mu.Unlock()

		total := api.total
		if q == "nada" {
			total = 0
		}
		start := min(page*size, total)
		end := min(start+size, total)
		results := []map[string]any{}
		for i := start; i < end; i++ {
			results = append(results, map[string]any{
				"_id":           fmt.Sprintf("p%d", i),
				"nombreDisplay": fmt.Sprintf("%s %d", strings.ToUpper(q[:1])+q[1:], i),
				"marca":         map[string]string{"valor": "Marca"},
			})
		}
		writeJSON(w, map[string]any{"results": results, "hasNextPage": end < total})
	})
	mux.HandleFunc("/api/getSingleProduct/", func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/api/getSingleProduct/")
		writeJSON(w, map[string]any{
			"productoid":      id,
			"Nombre":          "Producto " + id,
			"Caracteristicas": map[string]string{"marca": "Marca", "categoria": "Tenis"},
			"Tiendas":         map[string]string{"1": "Liverpool", "2": "Amazon"},
			"Precios":         map[string]any{"Liverpool": "$1,299.00", "Amazon": 1199.5},
		})
	})
	mux.HandleFunc("/api/productRating/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"ratings": []any{}, "average": "0", "totalRatings": 0})
	})
	mux.HandleFunc("/api/getUserRating/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]int{"rating": 0})
	})
	mux.HandleFunc("/api/recommendProducts/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"recommendations": []any{}})
	})

	mux.HandleFunc("/api/nearest-location/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"distanceInKm": 2.5, "latitud": 20.67, "longitud": -103.34})
	})
	mux.HandleFunc("/api/upload-image", func(w http.ResponseWriter, r *http.Request) {
		if _, _, err := r.FormFile("image"); err != nil {
			http.Error(w, `{"error":"falta la imagen"}`, http.StatusBadRequest)
			return
		}
		writeJSON(w, []map[string]string{
			{"identifier": "img1", "nombreDisplay": "Tenis parecido", "valor": "Marca"},
		})
	})

	api.Server = httptest.NewServer(mux)
	t.Cleanup(api.Close)
	return api
}

// BaseURL is what the app is configured with
func (a *fakeAPI) BaseURL() string {
	return a.URL + "/api"
}

func (a *fakeAPI) requestedPages() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.pages...)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
