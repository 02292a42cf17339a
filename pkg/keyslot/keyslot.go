// Package keyslot identifies SHE key storage locations.
//
// A key slot ID is any value in [0, 15]; that range is all the protocol
// knows about. Which slot holds which key is a naming convention: AUTOSAR
// defines a reference set, and silicon vendors ship their own. A Set maps
// IDs to labels and back, and the Registry lets downstream code add vendor
// sets without touching the protocol engine.
package keyslot

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/backkem/she/pkg/she"
)

// ID is a 4-bit key slot identifier.
type ID uint8

// MaxID is the largest slot identifier.
const MaxID ID = 15

// New validates v as a slot identifier.
func New(v int) (ID, error) {
	id, err := she.SlotField.CheckInt(int64(v))
	if err != nil {
		return 0, err
	}
	return ID(id), nil
}

// FromAny accepts an integer or another Identifier (for example a vendor
// enum) and returns the slot ID. Other types are rejected with
// she.ErrInvalidType.
func FromAny(v any) (ID, error) {
	id, err := she.SlotField.Coerce(v)
	if err != nil {
		return 0, err
	}
	return ID(id), nil
}

// Value returns the raw identifier; ID satisfies she.Identifier.
func (id ID) Value() uint8 {
	return uint8(id)
}

// IsValid returns true if the ID fits in four bits.
func (id ID) IsValid() bool {
	return id <= MaxID
}

// String returns the AUTOSAR label for the ID, or its number.
func (id ID) String() string {
	if name, ok := AUTOSAR.Label(id); ok {
		return name
	}
	return strconv.Itoa(int(id))
}

// Set is a named table of slot labels.
type Set interface {
	// Name identifies the set, e.g. "autosar".
	Name() string

	// Label returns the label of id, if the set defines one.
	Label(id ID) (string, bool)

	// Lookup returns the ID labelled name, if any.
	Lookup(name string) (ID, bool)
}

// Table is a Set backed by a fixed array of labels.
// Labels are matched case-insensitively. A nil *Table behaves as an
// unnamed, empty set.
type Table struct {
	name   string
	labels [MaxID + 1]string
}

// NewTable builds a label table. Every ID must be valid and every label
// non-empty and unique within the table.
func NewTable(name string, labels map[ID]string) (*Table, error) {
	if name == "" {
		return nil, ErrEmptySetName
	}

	t := &Table{name: name}
	seen := make(map[string]ID, len(labels))
	for id, label := range labels {
		if !id.IsValid() {
			return nil, fmt.Errorf("%w: %d", ErrInvalidID, id)
		}
		if label == "" {
			return nil, fmt.Errorf("%w: slot %d", ErrEmptyLabel, id)
		}
		key := strings.ToUpper(label)
		if prev, dup := seen[key]; dup {
			return nil, fmt.Errorf("%w: %q used by slots %d and %d", ErrDuplicateLabel, label, prev, id)
		}
		seen[key] = id
		t.labels[id] = label
	}
	return t, nil
}

// MustTable is NewTable that panics on error, for package-level sets.
func MustTable(name string, labels map[ID]string) *Table {
	t, err := NewTable(name, labels)
	if err != nil {
		panic(err)
	}
	return t
}

// Name returns the set name.
func (t *Table) Name() string {
	if t == nil {
		return ""
	}
	return t.name
}

// Label returns the label of id.
func (t *Table) Label(id ID) (string, bool) {
	if t == nil || !id.IsValid() || t.labels[id] == "" {
		return "", false
	}
	return t.labels[id], true
}

// Lookup returns the ID labelled name.
func (t *Table) Lookup(name string) (ID, bool) {
	if t == nil {
		return 0, false
	}
	for id, label := range t.labels {
		if label != "" && strings.EqualFold(label, name) {
			return ID(id), true
		}
	}
	return 0, false
}

// Parse resolves s against set: either a label from the set or a decimal
// or 0x-prefixed hex number in [0, 15].
func Parse(set Set, s string) (ID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: key slot", she.ErrEmptyInput)
	}

	if set != nil {
		if id, ok := set.Lookup(s); ok {
			return id, nil
		}
	}

	v, err := strconv.ParseInt(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnknownLabel, s)
	}
	id, err := she.SlotField.CheckInt(v)
	if err != nil {
		return 0, err
	}
	return ID(id), nil
}
