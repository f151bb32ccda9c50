package mapping

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	// DefaultContext is the fallback entry of a contextual column ref.
	DefaultContext = "DEFAULT"

	nameKey = "NAME"
)

// ColumnRef points a placeholder key at a workbook column. It is either
// flat (one column name) or contextual (column name per context label,
// with an optional DEFAULT entry).
type ColumnRef struct {
	Column    string
	ByContext map[string]string
}

// IsFlat returns true if ref holds a single column name.
func (r ColumnRef) IsFlat() bool {
	return r.ByContext == nil
}

// UnmarshalJSON accepts a plain string or an object of strings.
func (r *ColumnRef) UnmarshalJSON(data []byte) error {
	var column string
	if err := json.Unmarshal(data, &column); err == nil {
		r.Column = column
		r.ByContext = nil
		return nil
	}

	var byContext map[string]string
	if err := json.Unmarshal(data, &byContext); err != nil {
		return fmt.Errorf("column ref must be a string or an object of strings")
	}
	r.Column = ""
	r.ByContext = byContext
	return nil
}

// Mapping from placeholder key to column ref.
type Mapping map[string]ColumnRef

// Parse mapping from raw JSON. Blank raw is an empty mapping.
func Parse(raw string) (Mapping, error) {
	m := Mapping{}
	if strings.TrimSpace(raw) == "" {
		return m, nil
	}
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return nil, fmt.Errorf("bad mapping json: %s", err)
	}
	return m, nil
}

// Column resolves key to a column name under context. An unmapped key
// is its own column name. A contextual ref without an entry for context
// falls to DEFAULT; without DEFAULT it resolves to nothing.
func (m Mapping) Column(key string, context string) string {
	ref, isExist := m[key]
	if !isExist {
		return key
	}
	if ref.IsFlat() {
		return ref.Column
	}
	if context != "" {
		if column, ok := ref.ByContext[context]; ok {
			return column
		}
	}
	return ref.ByContext[DefaultContext]
}

// NameKey returns the mapping key that case-insensitively equals NAME,
// or the literal NAME if the mapping has no such key.
func (m Mapping) NameKey() string {
	for key := range m {
		if strings.EqualFold(key, nameKey) {
			return key
		}
	}
	return nameKey
}
