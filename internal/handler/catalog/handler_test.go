package catalog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/serene/backend/internal/model/catalog"
)

func get(t *testing.T, path string, dst any) {
	t.Helper()
	r := chi.NewRouter()
	New(catalog.NewMemoryStore(catalog.Seed())).RegisterRoutes(r)

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, path, nil))
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), dst))
}

func TestMeditationsFilterByCategory(t *testing.T) {
	var all, sleep []catalog.Meditation
	get(t, "/meditations", &all)
	get(t, "/meditations?category=sleep", &sleep)

	assert.Len(t, all, 6)
	require.NotEmpty(t, sleep)
	for _, m := range sleep {
		assert.Equal(t, "sleep", m.Category)
	}
}

func TestCategories(t *testing.T) {
	var categories []catalog.Category
	get(t, "/meditations/categories", &categories)
	assert.Len(t, categories, 4)
}

func TestProfessionalsSearch(t *testing.T) {
	var found []catalog.Professional
	get(t, "/professionals?q=psychiatrist", &found)
	require.Len(t, found, 1)
	assert.Equal(t, "Dr. Michael Chen", found[0].Name)

	found = nil
	get(t, "/professionals?specialty=family", &found)
	require.Len(t, found, 1)
	assert.Equal(t, "3", found[0].ID)
}
