package she

import (
	"encoding/hex"
	"fmt"
	"math"
	"strings"
)

// ByteField describes a fixed-width byte field of a SHE record.
// BitSize must be a multiple of 8.
type ByteField struct {
	Name    string
	BitSize int
}

// Size returns the field width in bytes.
func (f ByteField) Size() int {
	return f.BitSize / 8
}

// FromHex decodes a hex string into the field. The string must be non-empty,
// hold an even number of hex digits and decode to exactly Size() bytes.
func (f ByteField) FromHex(s string) ([]byte, error) {
	if s == "" {
		return nil, fmt.Errorf("%w: %s", ErrEmptyInput, f.Name)
	}
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("%w: %s has %d digits", ErrOddHexLength, f.Name, len(s))
	}

	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidHex, f.Name, err)
	}
	return f.check(b)
}

// FromBytes validates raw bytes for the field and returns a private copy.
func (f ByteField) FromBytes(b []byte) ([]byte, error) {
	if len(b) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyInput, f.Name)
	}
	return f.check(append([]byte(nil), b...))
}

func (f ByteField) check(b []byte) ([]byte, error) {
	if len(b) != f.Size() {
		return nil, fmt.Errorf("%w: %s is %d bytes, want %d", ErrInvalidLength, f.Name, len(b), f.Size())
	}
	return b, nil
}

// IntField describes an unsigned integer field of BitSize bits.
type IntField struct {
	Name    string
	BitSize int
}

// Max returns the largest value the field can hold.
func (f IntField) Max() uint64 {
	if f.BitSize >= 64 {
		return math.MaxUint64
	}
	return 1<<f.BitSize - 1
}

// Check rejects values above Max.
func (f IntField) Check(v uint64) (uint64, error) {
	if v > f.Max() {
		return 0, fmt.Errorf("%w: %s must be at most %d (%d bits), got %d", ErrOutOfRange, f.Name, f.Max(), f.BitSize, v)
	}
	return v, nil
}

// CheckInt rejects negative values and values above Max.
func (f IntField) CheckInt(v int64) (uint64, error) {
	if v < 0 {
		return 0, fmt.Errorf("%w: %s must be at least 0, got %d", ErrOutOfRange, f.Name, v)
	}
	return f.Check(uint64(v))
}

// Identifier is implemented by named identifiers that stand in for an
// integer field, such as key slots.
type Identifier interface {
	Value() uint8
}

// Coerce validates a dynamically typed value for the field. Go integer kinds
// and Identifiers are accepted; anything else is ErrInvalidType.
func (f IntField) Coerce(v any) (uint64, error) {
	switch x := v.(type) {
	case Identifier:
		return f.Check(uint64(x.Value()))
	case int:
		return f.CheckInt(int64(x))
	case int8:
		return f.CheckInt(int64(x))
	case int16:
		return f.CheckInt(int64(x))
	case int32:
		return f.CheckInt(int64(x))
	case int64:
		return f.CheckInt(x)
	case uint:
		return f.Check(uint64(x))
	case uint8:
		return f.Check(uint64(x))
	case uint16:
		return f.Check(uint64(x))
	case uint32:
		return f.Check(uint64(x))
	case uint64:
		return f.Check(x)
	default:
		return 0, fmt.Errorf("%w: %s must be an integer, got %T", ErrInvalidType, f.Name, v)
	}
}

// Field descriptors of the key-update record.
var (
	KeyField     = ByteField{Name: "key", BitSize: 128}
	UIDField     = ByteField{Name: "uid", BitSize: 120}
	CounterField = IntField{Name: "counter", BitSize: 28}
	FIDField     = IntField{Name: "fid", BitSize: 6}
	SlotField    = IntField{Name: "key id", BitSize: 4}
)

// Sizes in bytes.
const (
	KeySize = 16
	UIDSize = 15
)

// Key is a 128-bit AES key.
type Key [KeySize]byte

// ParseKey decodes a 32-digit hex string into a Key.
func ParseKey(s string) (Key, error) {
	var k Key
	b, err := KeyField.FromHex(s)
	if err != nil {
		return k, err
	}
	copy(k[:], b)
	return k, nil
}

// KeyFromBytes copies exactly 16 bytes into a Key.
func KeyFromBytes(b []byte) (Key, error) {
	var k Key
	b, err := KeyField.FromBytes(b)
	if err != nil {
		return k, err
	}
	copy(k[:], b)
	return k, nil
}

// Bytes returns a copy of the key as a slice.
func (k Key) Bytes() []byte {
	return append([]byte(nil), k[:]...)
}

// IsZero reports whether every byte of the key is zero.
func (k Key) IsZero() bool {
	return k == Key{}
}

func (k Key) String() string {
	return hex.EncodeToString(k[:])
}

// UID is the 120-bit unique identifier of a SHE module.
type UID [UIDSize]byte

// WildcardUID is the all-zero UID a key update may carry instead of the
// module's own UID, unless the target slot forbids it.
var WildcardUID = UID{}

// ParseUID decodes a 30-digit hex string into a UID.
func ParseUID(s string) (UID, error) {
	var u UID
	b, err := UIDField.FromHex(s)
	if err != nil {
		return u, err
	}
	copy(u[:], b)
	return u, nil
}

// UIDFromBytes copies exactly 15 bytes into a UID.
func UIDFromBytes(b []byte) (UID, error) {
	var u UID
	b, err := UIDField.FromBytes(b)
	if err != nil {
		return u, err
	}
	copy(u[:], b)
	return u, nil
}

// Bytes returns a copy of the UID as a slice.
func (u UID) Bytes() []byte {
	return append([]byte(nil), u[:]...)
}

// IsWildcard reports whether u is the all-zero wildcard UID.
func (u UID) IsWildcard() bool {
	return u == WildcardUID
}

func (u UID) String() string {
	return hex.EncodeToString(u[:])
}

// Counter is the 28-bit anti-rollback counter of a key slot.
type Counter uint32

// MaxCounter is the largest counter value.
const MaxCounter Counter = 1<<28 - 1

// NewCounter validates v as a 28-bit counter.
func NewCounter(v int64) (Counter, error) {
	c, err := CounterField.CheckInt(v)
	if err != nil {
		return 0, err
	}
	return Counter(c), nil
}

// Valid reports whether c fits in 28 bits.
func (c Counter) Valid() bool {
	return c <= MaxCounter
}

// trimHex strips an optional 0x prefix and surrounding whitespace from
// user-supplied hex.
func trimHex(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s = s[2:]
	}
	return s
}

// ParseHexKey is ParseKey for user input: whitespace and a 0x prefix are allowed.
func ParseHexKey(s string) (Key, error) {
	return ParseKey(trimHex(s))
}

// ParseHexUID is ParseUID for user input: whitespace and a 0x prefix are allowed.
func ParseHexUID(s string) (UID, error) {
	return ParseUID(trimHex(s))
}
