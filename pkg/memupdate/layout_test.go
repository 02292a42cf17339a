package memupdate

import (
	"encoding/hex"
	"testing"
)

func TestLayoutPack(t *testing.T) {
	tests := []struct {
		name   string
		layout layout
		values []uint64
		want   string
	}{
		{"m2 counter 1", m2Layout, []uint64{1, 0}, "00000010000000000000000000000000"},
		{"m2 max counter", m2Layout, []uint64{0x0FFFFFFF, 0}, "fffffff0000000000000000000000000"},
		{"m2 fid 63", m2Layout, []uint64{0, 63}, "0000000fc00000000000000000000000"},
		{"m2 write protection", m2Layout, []uint64{0, 32}, "00000008000000000000000000000000"},
		{"m2 cmac usage", m2Layout, []uint64{0, 1}, "00000000400000000000000000000000"},
		{"m2 both max", m2Layout, []uint64{0x0FFFFFFF, 63}, "ffffffffc00000000000000000000000"},
		{"m4 counter 1", m4Layout, []uint64{1, 1}, "00000018000000000000000000000000"},
		{"m4 counter 0", m4Layout, []uint64{0, 1}, "00000008000000000000000000000000"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := tc.layout.pack(tc.values...)
			if got := hex.EncodeToString(b[:]); got != tc.want {
				t.Errorf("pack(%v) = %s, want %s", tc.values, got, tc.want)
			}

			got := tc.layout.unpack(b)
			for i := range tc.values {
				if got[i] != tc.values[i] {
					t.Errorf("unpack()[%d] = %d, want %d", i, got[i], tc.values[i])
				}
			}
			if !tc.layout.padded(b) {
				t.Error("packed block reports non-zero padding")
			}
		})
	}
}

func TestLayoutPadding(t *testing.T) {
	b := m2Layout.pack(5, 7)
	b[15] = 0x01
	if m2Layout.padded(b) {
		t.Error("bit 0 set, padded() = true")
	}

	// Bit 93 is the first padding bit below the fid.
	b = m2Layout.pack(5, 7)
	b[4] |= 0x20
	if m2Layout.padded(b) {
		t.Error("bit 93 set, padded() = true")
	}
}

func TestBitFieldPutClears(t *testing.T) {
	var b block
	counterBits.put(&b, 0x0FFFFFFF)
	counterBits.put(&b, 0)
	if b != (block{}) {
		t.Errorf("put(0) left bits set: %x", b)
	}
}
