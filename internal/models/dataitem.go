package models

// DataItem is one untyped record from a named dataset collection.
// Collection identity (e.g. "movies") determines which fields are
// meaningful. Items are never mutated, only filtered, sliced, and copied.
type DataItem map[string]interface{}

// GetString returns a string field, or "" when absent or not a string.
func (d DataItem) GetString(key string) string {
	if v, ok := d[key].(string); ok {
		return v
	}
	return ""
}
