package models

import (
	"database/sql/driver"
	"strings"

	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"
)

// SourceList holds the ordered provider names that contributed to a book
// record. A single source is stored and serialized as a bare string; merged
// records become a JSON array, preserving first-appearance order.
type SourceList []string

func (s SourceList) Value() (driver.Value, error) {
	switch len(s) {
	case 0:
		return nil, nil
	case 1:
		return s[0], nil
	default:
		data, err := json.Marshal([]string(s))
		if err != nil {
			return nil, errors.WithStack(err)
		}
		return string(data), nil
	}
}

func (s *SourceList) Scan(src interface{}) error {
	var raw string
	switch v := src.(type) {
	case nil:
		*s = nil
		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return errors.Errorf("unsupported source column type %T", src)
	}

	if strings.HasPrefix(raw, "[") {
		var list []string
		if err := json.Unmarshal([]byte(raw), &list); err != nil {
			return errors.WithStack(err)
		}
		*s = list
		return nil
	}

	*s = SourceList{raw}
	return nil
}

func (s SourceList) MarshalJSON() ([]byte, error) {
	if len(s) == 1 {
		return json.Marshal(s[0])
	}
	return json.Marshal([]string(s))
}

func (s *SourceList) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var single string
		if err := json.Unmarshal(data, &single); err != nil {
			return errors.WithStack(err)
		}
		*s = SourceList{single}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return errors.WithStack(err)
	}
	*s = list
	return nil
}

// Add appends a provider name if it isn't already present.
func (s SourceList) Add(source string) SourceList {
	for _, existing := range s {
		if existing == source {
			return s
		}
	}
	return append(s, source)
}
