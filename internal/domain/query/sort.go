package query

import "fmt"

// SortKey selects the result ordering.
type SortKey string

// Sort key constants. Values are the wire names used in URLs.
const (
	// NameAsc orders by title ascending.
	NameAsc     SortKey = "name"
	NameDesc    SortKey = "name-desc"
	CategoryAsc SortKey = "category"
	// RecencyDesc orders by date added, newest first. Undated schemes sink to the end.
	RecencyDesc SortKey = "recent"
)

// IsValid checks if the key is one of the supported values.
func (k SortKey) IsValid() bool {
	return k == NameAsc || k == NameDesc || k == CategoryAsc || k == RecencyDesc
}

// ParseSortKey parses a wire name. The empty string yields NameAsc.
func ParseSortKey(s string) (SortKey, error) {
	if s == "" {
		return NameAsc, nil
	}
	k := SortKey(s)
	if !k.IsValid() {
		return "", fmt.Errorf("invalid sort key: %q", s)
	}
	return k, nil
}
