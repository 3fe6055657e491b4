package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringList is an ordered list of strings stored as a JSON array
// (JSONB on postgres, TEXT on sqlite). A nil list is written as [].
type StringList []string

// IDList is an ordered list of entity ids stored as a JSON array.
type IDList []int64

func (l StringList) Value() (driver.Value, error) {
	return jsonArray([]string(l))
}

func (l *StringList) Scan(src any) error {
	var out []string
	if err := scanJSONArray(src, &out); err != nil {
		return fmt.Errorf("scan StringList: %w", err)
	}
	*l = out
	return nil
}

func (l StringList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}

func (l IDList) Value() (driver.Value, error) {
	return jsonArray([]int64(l))
}

func (l *IDList) Scan(src any) error {
	var out []int64
	if err := scanJSONArray(src, &out); err != nil {
		return fmt.Errorf("scan IDList: %w", err)
	}
	*l = out
	return nil
}

func (l IDList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]int64(l))
}

func jsonArray[T any](items []T) (driver.Value, error) {
	if items == nil {
		items = []T{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// scanJSONArray decodes a JSON array column. NULL and empty values become
// an empty, non-nil slice.
func scanJSONArray[T any](src any, dst *[]T) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		// Some drivers hand back decoded JSON; round-trip it.
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("unsupported type %T", src)
		}
		raw = b
	}

	*dst = []T{}
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return json.Unmarshal(raw, dst)
}
