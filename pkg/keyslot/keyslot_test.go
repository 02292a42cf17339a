package keyslot

import (
	"errors"
	"testing"

	"github.com/backkem/she/pkg/she"
)

func TestAUTOSARLabels(t *testing.T) {
	tests := []struct {
		id    ID
		label string
	}{
		{SecretKey, "SECRET_KEY"},
		{MasterECUKey, "MASTER_ECU_KEY"},
		{BootMACKey, "BOOT_MAC_KEY"},
		{BootMAC, "BOOT_MAC"},
		{Key1, "KEY_1"},
		{Key10, "KEY_10"},
		{RAMKey, "RAM_KEY"},
	}

	for _, tc := range tests {
		t.Run(tc.label, func(t *testing.T) {
			if got, ok := AUTOSAR.Label(tc.id); !ok || got != tc.label {
				t.Errorf("Label(%d) = %q, %v", tc.id, got, ok)
			}
			if got, ok := AUTOSAR.Lookup(tc.label); !ok || got != tc.id {
				t.Errorf("Lookup(%q) = %d, %v", tc.label, got, ok)
			}
			if tc.id.String() != tc.label {
				t.Errorf("String() = %q", tc.id.String())
			}
		})
	}

	if _, ok := AUTOSAR.Label(0xF); ok {
		t.Error("slot 15 should have no AUTOSAR label")
	}
	if ID(0xF).String() != "15" {
		t.Errorf("ID(15).String() = %q", ID(0xF).String())
	}
	if id, ok := AUTOSAR.Lookup("key_3"); !ok || id != Key3 {
		t.Errorf("case-insensitive Lookup = %d, %v", id, ok)
	}
}

func TestNewRange(t *testing.T) {
	for v := 0; v <= 15; v++ {
		id, err := New(v)
		if err != nil || int(id) != v {
			t.Errorf("New(%d) = %d, %v", v, id, err)
		}
	}
	for _, bad := range []int{-1, 16} {
		if _, err := New(bad); !errors.Is(err, she.ErrInvalidValue) {
			t.Errorf("New(%d) error = %v, want value error", bad, err)
		}
	}
}

type vendorSlot uint8

func (v vendorSlot) Value() uint8 { return uint8(v) }

func TestFromAny(t *testing.T) {
	if id, err := FromAny(Key2); err != nil || id != Key2 {
		t.Errorf("FromAny(Key2) = %d, %v", id, err)
	}
	if id, err := FromAny(vendorSlot(9)); err != nil || id != 9 {
		t.Errorf("FromAny(vendorSlot) = %d, %v", id, err)
	}
	if id, err := FromAny(int64(3)); err != nil || id != 3 {
		t.Errorf("FromAny(int64) = %d, %v", id, err)
	}
	if _, err := FromAny("KEY_1"); !errors.Is(err, she.ErrInvalidType) {
		t.Errorf("FromAny(string) error = %v, want type error", err)
	}
	if _, err := FromAny(ID(16)); !errors.Is(err, she.ErrInvalidValue) {
		t.Errorf("FromAny(ID(16)) error = %v, want value error", err)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		want    ID
		wantErr error
	}{
		{"MASTER_ECU_KEY", MasterECUKey, nil},
		{" key_1 ", Key1, nil},
		{"4", Key1, nil},
		{"0xE", RAMKey, nil},
		{"15", 15, nil},
		{"16", 0, she.ErrOutOfRange},
		{"-1", 0, she.ErrOutOfRange},
		{"KEY_11", 0, ErrUnknownLabel},
		{"", 0, she.ErrEmptyInput},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := Parse(AUTOSAR, tc.input)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Errorf("Parse(%q) error = %v, want %v", tc.input, err, tc.wantErr)
				}
				return
			}
			if err != nil || got != tc.want {
				t.Errorf("Parse(%q) = %d, %v", tc.input, got, err)
			}
		})
	}

	// Without a set only numbers resolve.
	if _, err := Parse(nil, "KEY_1"); !errors.Is(err, ErrUnknownLabel) {
		t.Errorf("Parse(nil, KEY_1) error = %v", err)
	}
}

func TestNewTableValidation(t *testing.T) {
	if _, err := NewTable("", nil); !errors.Is(err, ErrEmptySetName) {
		t.Errorf("empty name error = %v", err)
	}
	if _, err := NewTable("v", map[ID]string{16: "X"}); !errors.Is(err, ErrInvalidID) {
		t.Errorf("bad id error = %v", err)
	}
	if _, err := NewTable("v", map[ID]string{1: ""}); !errors.Is(err, ErrEmptyLabel) {
		t.Errorf("empty label error = %v", err)
	}
	if _, err := NewTable("v", map[ID]string{1: "A", 2: "a"}); !errors.Is(err, ErrDuplicateLabel) {
		t.Errorf("duplicate label error = %v", err)
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	if set, err := r.Lookup("AUTOSAR"); err != nil || set != AUTOSAR {
		t.Fatalf("Lookup(AUTOSAR) = %v, %v", set, err)
	}

	vendor := MustTable("acme", map[ID]string{
		0x1: "UPDATE_KEY",
		0x4: "CHANNEL_KEY",
	})
	if err := r.Register(vendor); err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	if err := r.Register(vendor); !errors.Is(err, ErrDuplicateSet) {
		t.Errorf("second Register() error = %v, want %v", err, ErrDuplicateSet)
	}
	if err := r.Register(nil); !errors.Is(err, ErrEmptySetName) {
		t.Errorf("Register(nil) error = %v", err)
	}
	if err := r.Register((*Table)(nil)); !errors.Is(err, ErrEmptySetName) {
		t.Errorf("Register(nil *Table) error = %v", err)
	}
	var empty *Table
	if _, ok := empty.Label(Key1); ok {
		t.Error("nil *Table reported a label")
	}
	if _, ok := empty.Lookup("KEY_1"); ok {
		t.Error("nil *Table resolved a label")
	}

	set, err := r.Lookup("acme")
	if err != nil {
		t.Fatalf("Lookup(acme) error: %v", err)
	}
	id, err := Parse(set, "CHANNEL_KEY")
	if err != nil || id != 4 {
		t.Errorf("Parse(acme, CHANNEL_KEY) = %d, %v", id, err)
	}

	if _, err := r.Lookup("nope"); !errors.Is(err, ErrUnknownSet) {
		t.Errorf("Lookup(nope) error = %v", err)
	}

	names := r.Names()
	if len(names) != 2 || names[0] != "acme" || names[1] != "autosar" {
		t.Errorf("Names() = %v", names)
	}
}
