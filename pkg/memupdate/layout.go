package memupdate

// block is one 128-bit AES block.
type block [16]byte

// bitField is a big-endian bit range inside a block. msb is the position of
// its most significant bit; position 127 is the top bit of byte 0.
type bitField struct {
	name  string
	msb   int
	width int
}

func (f bitField) put(b *block, v uint64) {
	for i := 0; i < f.width; i++ {
		pos := f.msb - i
		idx, mask := 15-pos/8, byte(1)<<(pos%8)
		if (v>>(f.width-1-i))&1 == 1 {
			b[idx] |= mask
		} else {
			b[idx] &^= mask
		}
	}
}

func (f bitField) get(b *block) uint64 {
	var v uint64
	for i := 0; i < f.width; i++ {
		pos := f.msb - i
		v <<= 1
		if b[15-pos/8]&(byte(1)<<(pos%8)) != 0 {
			v |= 1
		}
	}
	return v
}

// layout lists the fields of a counter block. Bits not covered are zero.
type layout []bitField

var (
	counterBits = bitField{name: "counter", msb: 127, width: 28}
	fidBits     = bitField{name: "fid", msb: 99, width: 6}
	markerBit   = bitField{name: "marker", msb: 99, width: 1}

	// m2Layout is the first plaintext block of M2.
	m2Layout = layout{counterBits, fidBits}

	// m4Layout is the block encrypted under K3 in M4.
	m4Layout = layout{counterBits, markerBit}
)

// pack builds a block from one value per field, in layout order.
func (l layout) pack(values ...uint64) block {
	var b block
	for i, f := range l {
		f.put(&b, values[i])
	}
	return b
}

// unpack returns one value per field, in layout order.
func (l layout) unpack(b block) []uint64 {
	values := make([]uint64, len(l))
	for i, f := range l {
		values[i] = f.get(&b)
	}
	return values
}

// padded reports whether every bit outside the layout's fields is zero.
func (l layout) padded(b block) bool {
	return l.pack(l.unpack(b)...) == b
}
