package dataset

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/sitesmith/internal/common"
	"github.com/ternarybob/sitesmith/internal/models"
)

func writeCollection(t *testing.T, dir, name string, items []models.DataItem) {
	t.Helper()
	data, err := json.Marshal(items)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".json"), data, 0644))
}

func newTestService(t *testing.T) (*Service, string) {
	t.Helper()
	dir := t.TempDir()
	svc := NewService(dir, "movies", common.GetLogger())
	return svc, dir
}

func TestFilterData_MovieFilters(t *testing.T) {
	svc, dir := newTestService(t)
	writeCollection(t, dir, "movies", []models.DataItem{
		{"title": "Heat", "year": float64(1995), "genre": "Action"},
		{"title": "Se7en", "year": float64(1995), "genre": "Thriller"},
		{"title": "Gladiator", "year": float64(2000), "genre": "Action"},
	})

	tests := []struct {
		name    string
		filters map[string]interface{}
		want    []string
	}{
		{"by year int", map[string]interface{}{"year": 1995}, []string{"Heat", "Se7en"}},
		{"by year string", map[string]interface{}{"year": "2000"}, []string{"Gladiator"}},
		{"by genre case insensitive", map[string]interface{}{"genre": "action"}, []string{"Heat", "Gladiator"}},
		{"combined", map[string]interface{}{"year": 1995, "genre": "action"}, []string{"Heat"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := svc.FilterData("movies", tt.filters, 100)
			require.NoError(t, err)
			titles := make([]string, 0, len(items))
			for _, it := range items {
				titles = append(titles, it.GetString("title"))
			}
			assert.Equal(t, tt.want, titles)
		})
	}
}

func TestFilterData_NeverEmpty(t *testing.T) {
	svc, dir := newTestService(t)
	all := []models.DataItem{
		{"title": "Heat", "genre": "Action"},
		{"title": "Alien", "genre": "Horror"},
		{"title": "Up", "genre": "Animation"},
	}
	writeCollection(t, dir, "movies", all)

	// Filters that match nothing must return unfiltered records, never zero
	items, err := svc.FilterData("movies", map[string]interface{}{"genre": "western"}, 2)
	require.NoError(t, err)
	assert.Len(t, items, 2, "expected min(limit, |allData|) unfiltered records")
}

func TestFilterData_LimitClamp(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"zero", 0, DefaultLimit},
		{"negative", -5, DefaultLimit},
		{"too large", 501, DefaultLimit},
		{"at cap", 500, 500},
		{"in range", 7, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClampLimit(tt.limit))
		})
	}
}

func TestFilterData_LimitTruncates(t *testing.T) {
	svc, dir := newTestService(t)
	items := make([]models.DataItem, 10)
	for i := range items {
		items[i] = models.DataItem{"title": "Movie", "n": float64(i)}
	}
	writeCollection(t, dir, "movies", items)

	got, err := svc.FilterData("movies", nil, 3)
	require.NoError(t, err)
	assert.Len(t, got, 3)
	assert.Equal(t, float64(0), got[0]["n"], "order must be preserved")
}

func TestFilterData_MissingCollectionFallsBack(t *testing.T) {
	svc, dir := newTestService(t)
	writeCollection(t, dir, "movies", []models.DataItem{
		{"title": "Heat"},
	})

	// actors.json does not exist; the default collection is served instead
	got, err := svc.FilterData("actors", nil, 10)
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, "Heat", got[0].GetString("title"))
}

func TestFilterData_CompanyAndProductFilters(t *testing.T) {
	svc, dir := newTestService(t)
	writeCollection(t, dir, "companies", []models.DataItem{
		{"name": "Acme", "location": "Sydney, Australia", "industry": "Manufacturing"},
		{"name": "Globex", "location": "Berlin, Germany", "industry": "Technology"},
	})
	writeCollection(t, dir, "products", []models.DataItem{
		{"name": "Widget", "category": "Hardware", "personas": []interface{}{"maker", "engineer"}},
		{"name": "Gadget", "category": "Software", "personas": []interface{}{"designer"}},
	})

	companies, err := svc.FilterData("companies", map[string]interface{}{"location": "sydney"}, 10)
	require.NoError(t, err)
	require.Len(t, companies, 1)
	assert.Equal(t, "Acme", companies[0].GetString("name"))

	products, err := svc.FilterData("products", map[string]interface{}{"personas": "engineer"}, 10)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Widget", products[0].GetString("name"))
}

func TestDataFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	items := []models.DataItem{
		{"title": "Heat", "year": float64(1995)},
		{"title": "Alien", "year": float64(1979)},
		{"title": "Up", "year": float64(2009)},
	}

	require.NoError(t, WriteDataFile(dir, items))

	got, err := ReadDataFile(dir)
	require.NoError(t, err)
	require.Len(t, got, len(items))
	for i := range items {
		assert.Equal(t, items[i]["title"], got[i]["title"])
		assert.Equal(t, items[i]["year"], got[i]["year"])
	}
}
