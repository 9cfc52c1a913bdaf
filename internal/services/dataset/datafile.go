package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ternarybob/sitesmith/internal/models"
)

// DataFileName is the fixed client-side data file every generated page
// references. Generated HTML must never inline records; app.js loads its
// data exclusively from this file.
const DataFileName = "data.js"

const dataFilePrefix = "const siteData = "

// WriteDataFile writes the job's dataset snapshot as a browser-loadable
// script assigning the records to a well-known constant.
func WriteDataFile(dir string, items []models.DataItem) error {
	payload, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal dataset snapshot: %w", err)
	}

	content := dataFilePrefix + string(payload) + ";\n"
	path := filepath.Join(dir, DataFileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", DataFileName, err)
	}
	return nil
}

// ReadDataFile reads the snapshot back from a job directory. Writing N
// records and reading them back yields the same N records in the same order.
func ReadDataFile(dir string) ([]models.DataItem, error) {
	path := filepath.Join(dir, DataFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", DataFileName, err)
	}

	content := strings.TrimSpace(string(data))
	content = strings.TrimPrefix(content, dataFilePrefix)
	content = strings.TrimSuffix(content, ";")

	var items []models.DataItem
	if err := json.Unmarshal([]byte(content), &items); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", DataFileName, err)
	}
	return items, nil
}
