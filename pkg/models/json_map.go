package models

import (
	"database/sql/driver"

	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"
)

// JSONMap stores a free-form JSON object in a TEXT column. The spreadsheet
// catalogs carry resolution and metadata as embedded JSON, so this is the
// shape both columns round-trip through.
type JSONMap map[string]interface{}

var _ driver.Valuer = JSONMap{}

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		m = JSONMap{}
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return string(data), nil
}

func (m *JSONMap) Scan(src interface{}) error {
	if src == nil {
		*m = JSONMap{}
		return nil
	}

	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.Errorf("unsupported JSONMap source type %T", src)
	}
	// Replace, never merge into a previously scanned value.
	*m = JSONMap{}
	if len(data) == 0 {
		return nil
	}

	return errors.WithStack(json.Unmarshal(data, m))
}
