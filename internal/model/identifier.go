package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Identifier references a user or role either by numeric id or by unique
// name. The zero value references nothing.
type Identifier struct {
	id   uint
	name string
	byID bool
}

// ByID references a record by its numeric id.
func ByID(id uint) Identifier {
	return Identifier{id: id, byID: true}
}

// ByName references a record by its unique name.
func ByName(name string) Identifier {
	return Identifier{name: name}
}

// ParseIdentifier treats s as an id when it is a base-10 unsigned integer and
// as a name otherwise.
func ParseIdentifier(s string) Identifier {
	if id, err := strconv.ParseUint(s, 10, 0); err == nil {
		return ByID(uint(id))
	}
	return ByName(s)
}

// ID returns the referenced id and true, or false for a by-name identifier.
func (i Identifier) ID() (uint, bool) {
	return i.id, i.byID
}

// Name returns the referenced name and true, or false for a by-id identifier.
func (i Identifier) Name() (string, bool) {
	return i.name, !i.byID
}

// IsZero reports whether i references nothing.
func (i Identifier) IsZero() bool {
	return !i.byID && i.name == ""
}

func (i Identifier) String() string {
	if i.byID {
		return strconv.FormatUint(uint64(i.id), 10)
	}
	return i.name
}

// Or returns i, or fallback when i is zero.
func (i Identifier) Or(fallback Identifier) Identifier {
	if i.IsZero() {
		return fallback
	}
	return i
}

// UnmarshalJSON accepts a JSON number, a JSON string or null.
func (i *Identifier) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*i = Identifier{}
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("identifier: %w", err)
		}
		*i = ParseIdentifier(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("identifier: %w", err)
	}
	*i = ParseIdentifier(n.String())
	return nil
}

// MarshalJSON writes ids as numbers and names as strings.
func (i Identifier) MarshalJSON() ([]byte, error) {
	if i.byID {
		return []byte(strconv.FormatUint(uint64(i.id), 10)), nil
	}
	return json.Marshal(i.name)
}
