package model

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"github.com/okian/moviemonday/internal/domain/normalize"
)

// ID is an identifier that arrives from the backend either as a JSON number
// or as a JSON string. It is always carried as a string.
type ID string

// UnmarshalJSON accepts numbers, strings and null.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("%w: id: %w", ErrDecode, err)
		}
		*id = ID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("%w: id %s: %w", ErrDecode, data, err)
	}
	*id = ID(n.String())
	return nil
}

// String returns the identifier text.
func (id ID) String() string { return string(id) }

// StringList is a list field that tolerates the encodings found in stored
// records. Decoding never fails; see normalize.ListField.
type StringList []string

// UnmarshalJSON normalizes whatever shape the field arrived in.
func (l *StringList) UnmarshalJSON(data []byte) error {
	*l = StringList(normalize.JSON(data))
	return nil
}

// MarshalJSON writes a JSON array, using [] for a nil list.
func (l StringList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}

// Strings returns the list as a plain slice, never nil.
func (l StringList) Strings() []string {
	if l == nil {
		return []string{}
	}
	return []string(l)
}

// DecodeRecords decodes a JSON array of weekly records, or a single record
// object. A null or empty payload decodes to an empty slice.
func DecodeRecords(data []byte) ([]WeeklyRecord, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return []WeeklyRecord{}, nil
	}
	if data[0] == '{' {
		var r WeeklyRecord
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecode, err)
		}
		return []WeeklyRecord{r}, nil
	}
	var out []WeeklyRecord
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if out == nil {
		out = []WeeklyRecord{}
	}
	return out, nil
}
