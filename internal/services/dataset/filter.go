package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/sitesmith/internal/models"
)

const (
	// DefaultLimit is substituted for absent or out-of-range limits
	DefaultLimit = 100

	// MaxLimit is the server-side clamp on requested record counts
	MaxLimit = 500
)

// Service loads named JSON collections from a local directory and narrows
// them by declared filters. Dataset files are read-only and safely shared
// across concurrent jobs.
type Service struct {
	dir               string
	defaultCollection string
	logger            arbor.ILogger
}

// NewService creates a dataset service rooted at dir
func NewService(dir, defaultCollection string, logger arbor.ILogger) *Service {
	return &Service{
		dir:               dir,
		defaultCollection: defaultCollection,
		logger:            logger,
	}
}

// ClampLimit normalizes a requested limit into (0, MaxLimit], substituting
// DefaultLimit for anything outside the range.
func ClampLimit(limit int) int {
	if limit <= 0 || limit > MaxLimit {
		return DefaultLimit
	}
	return limit
}

// LoadCollection reads the named collection file. When the file is missing
// the default collection is loaded instead so a request never dead-ends on a
// bad data source name.
func (s *Service) LoadCollection(collection string) ([]models.DataItem, error) {
	path := filepath.Join(s.dir, collection+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		if collection == s.defaultCollection {
			return nil, fmt.Errorf("failed to read default collection %s: %w", path, err)
		}
		s.logger.Warn().
			Str("collection", collection).
			Str("fallback", s.defaultCollection).
			Msg("Collection file missing, falling back to default collection")
		return s.LoadCollection(s.defaultCollection)
	}

	var items []models.DataItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to parse collection %s: %w", collection, err)
	}

	return items, nil
}

// FilterData loads a collection and narrows it by the declared filters,
// truncating to limit.
//
// Invariant: if the filters match zero records but the source collection is
// non-empty, the filters are discarded and up to limit unfiltered records are
// returned instead, with a warning. A generated site must never be empty
// because the model guessed a filter badly.
func (s *Service) FilterData(collection string, filters map[string]interface{}, limit int) ([]models.DataItem, error) {
	limit = ClampLimit(limit)

	allData, err := s.LoadCollection(collection)
	if err != nil {
		return nil, err
	}

	filtered := applyFilters(collection, allData, filters)

	if len(filtered) == 0 && len(allData) > 0 {
		s.logger.Warn().
			Str("collection", collection).
			Int("available", len(allData)).
			Msg("Filters matched zero records, discarding filters")
		filtered = allData
	}

	if len(filtered) > limit {
		filtered = filtered[:limit]
	}

	// Copy so callers can never alias the cached slice backing array
	out := make([]models.DataItem, len(filtered))
	copy(out, filtered)
	return out, nil
}

// applyFilters narrows items by collection-specific filter keys plus any
// additional declared keys: substring match for strings, equality otherwise.
func applyFilters(collection string, items []models.DataItem, filters map[string]interface{}) []models.DataItem {
	if len(filters) == 0 {
		return items
	}

	out := make([]models.DataItem, 0, len(items))
	for _, item := range items {
		if matchesAllFilters(collection, item, filters) {
			out = append(out, item)
		}
	}
	return out
}

func matchesAllFilters(collection string, item models.DataItem, filters map[string]interface{}) bool {
	for key, want := range filters {
		if want == nil {
			continue
		}
		if !matchesFilter(collection, item, key, want) {
			return false
		}
	}
	return true
}

func matchesFilter(collection string, item models.DataItem, key string, want interface{}) bool {
	switch collection {
	case models.CollectionMovies:
		if key == "year" {
			return matchYear(item["year"], want)
		}
		if key == "genre" {
			return matchSubstring(item["genre"], want)
		}
	case models.CollectionCompanies:
		if key == "location" || key == "industry" {
			return matchSubstring(item[key], want)
		}
	case models.CollectionProducts:
		if key == "category" || key == "personas" || key == "businessContext" {
			return matchSubstring(item[key], want)
		}
	case models.CollectionActors, models.CollectionDirectors:
		if key == "location" {
			return matchSubstring(item[key], want)
		}
	}

	// Generic declared filter: substring for strings, equality otherwise
	have, ok := item[key]
	if !ok {
		return false
	}
	if _, isString := have.(string); isString {
		return matchSubstring(have, want)
	}
	return fmt.Sprintf("%v", have) == fmt.Sprintf("%v", want)
}

// matchYear compares year values across the int/float64/string renderings
// JSON decoding and model output produce.
func matchYear(have, want interface{}) bool {
	h, hok := toInt(have)
	w, wok := toInt(want)
	if !hok || !wok {
		return false
	}
	return h == w
}

func toInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		return i, err == nil
	default:
		return 0, false
	}
}

// matchSubstring does case-insensitive substring matching when both sides
// render as strings. Array fields match when any element matches.
func matchSubstring(have, want interface{}) bool {
	wantStr := strings.ToLower(strings.TrimSpace(fmt.Sprintf("%v", want)))
	if wantStr == "" {
		return true
	}

	switch h := have.(type) {
	case nil:
		return false
	case []interface{}:
		for _, el := range h {
			if strings.Contains(strings.ToLower(fmt.Sprintf("%v", el)), wantStr) {
				return true
			}
		}
		return false
	default:
		return strings.Contains(strings.ToLower(fmt.Sprintf("%v", have)), wantStr)
	}
}
