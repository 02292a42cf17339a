package memupdate

import (
	"encoding/hex"

	"github.com/backkem/she/pkg/keyslot"
	"github.com/backkem/she/pkg/she"
)

// Message sizes in bytes.
const (
	M1Size = 16
	M2Size = 32
	M3Size = 16
	M4Size = 32
	M5Size = 16
)

// Field descriptors for the wire messages.
var (
	m1Field = she.ByteField{Name: "M1", BitSize: M1Size * 8}
	m2Field = she.ByteField{Name: "M2", BitSize: M2Size * 8}
	m3Field = she.ByteField{Name: "M3", BitSize: M3Size * 8}
	m4Field = she.ByteField{Name: "M4", BitSize: M4Size * 8}
	m5Field = she.ByteField{Name: "M5", BitSize: M5Size * 8}
)

// M1 carries the target UID and the slot pair: UID(15) | ID<<4 | AuthID.
type M1 [M1Size]byte

// M2 carries the encrypted counter, flags and new key.
type M2 [M2Size]byte

// M3 is the CMAC over M1 | M2 under K2.
type M3 [M3Size]byte

// M4 is the module's confirmation: M1 | ENC_ECB,K3(counter block).
type M4 [M4Size]byte

// M5 is the CMAC over M4 under K4.
type M5 [M5Size]byte

// UID returns the UID field of M1.
func (m M1) UID() she.UID {
	var u she.UID
	copy(u[:], m[:she.UIDSize])
	return u
}

// NewKeyID returns the target slot (high nibble of the last byte).
func (m M1) NewKeyID() keyslot.ID {
	return keyslot.ID((m[15] & 0xF0) >> 4)
}

// AuthKeyID returns the authorizing slot (low nibble of the last byte).
func (m M1) AuthKeyID() keyslot.ID {
	return keyslot.ID(m[15] & 0x0F)
}

func (m M1) String() string { return hex.EncodeToString(m[:]) }
func (m M2) String() string { return hex.EncodeToString(m[:]) }
func (m M3) String() string { return hex.EncodeToString(m[:]) }
func (m M4) String() string { return hex.EncodeToString(m[:]) }
func (m M5) String() string { return hex.EncodeToString(m[:]) }

// M1 returns the M1 copy at the head of M4.
func (m M4) M1() M1 {
	var m1 M1
	copy(m1[:], m[:M1Size])
	return m1
}

// ParseM1 decodes a hex M1.
func ParseM1(s string) (M1, error) {
	var m M1
	b, err := m1Field.FromHex(s)
	if err != nil {
		return m, err
	}
	copy(m[:], b)
	return m, nil
}

// ParseM2 decodes a hex M2.
func ParseM2(s string) (M2, error) {
	var m M2
	b, err := m2Field.FromHex(s)
	if err != nil {
		return m, err
	}
	copy(m[:], b)
	return m, nil
}

// ParseM3 decodes a hex M3.
func ParseM3(s string) (M3, error) {
	var m M3
	b, err := m3Field.FromHex(s)
	if err != nil {
		return m, err
	}
	copy(m[:], b)
	return m, nil
}

// ParseM4 decodes a hex M4.
func ParseM4(s string) (M4, error) {
	var m M4
	b, err := m4Field.FromHex(s)
	if err != nil {
		return m, err
	}
	copy(m[:], b)
	return m, nil
}

// ParseM5 decodes a hex M5.
func ParseM5(s string) (M5, error) {
	var m M5
	b, err := m5Field.FromHex(s)
	if err != nil {
		return m, err
	}
	copy(m[:], b)
	return m, nil
}

// M1FromBytes validates and copies a raw M1.
func M1FromBytes(b []byte) (M1, error) {
	var m M1
	b, err := m1Field.FromBytes(b)
	if err != nil {
		return m, err
	}
	copy(m[:], b)
	return m, nil
}

// M2FromBytes validates and copies a raw M2.
func M2FromBytes(b []byte) (M2, error) {
	var m M2
	b, err := m2Field.FromBytes(b)
	if err != nil {
		return m, err
	}
	copy(m[:], b)
	return m, nil
}

// M3FromBytes validates and copies a raw M3.
func M3FromBytes(b []byte) (M3, error) {
	var m M3
	b, err := m3Field.FromBytes(b)
	if err != nil {
		return m, err
	}
	copy(m[:], b)
	return m, nil
}

// M4FromBytes validates and copies a raw M4.
func M4FromBytes(b []byte) (M4, error) {
	var m M4
	b, err := m4Field.FromBytes(b)
	if err != nil {
		return m, err
	}
	copy(m[:], b)
	return m, nil
}

// M5FromBytes validates and copies a raw M5.
func M5FromBytes(b []byte) (M5, error) {
	var m M5
	b, err := m5Field.FromBytes(b)
	if err != nil {
		return m, err
	}
	copy(m[:], b)
	return m, nil
}

// Messages is the full M1..M5 set of one memory update.
// Each field is length-checked on its own; whether they belong together is
// only established by VerifyRequest / VerifyConfirmation.
type Messages struct {
	M1 M1
	M2 M2
	M3 M3
	M4 M4
	M5 M5
}

// ParseMessages decodes all five messages from hex.
func ParseMessages(m1, m2, m3, m4, m5 string) (Messages, error) {
	var (
		msgs Messages
		err  error
	)
	if msgs.M1, err = ParseM1(m1); err != nil {
		return Messages{}, err
	}
	if msgs.M2, err = ParseM2(m2); err != nil {
		return Messages{}, err
	}
	if msgs.M3, err = ParseM3(m3); err != nil {
		return Messages{}, err
	}
	if msgs.M4, err = ParseM4(m4); err != nil {
		return Messages{}, err
	}
	if msgs.M5, err = ParseM5(m5); err != nil {
		return Messages{}, err
	}
	return msgs, nil
}

// ParseRequest decodes the trusted party's half (M1, M2, M3) from hex.
// M4 and M5 are left zero.
func ParseRequest(m1, m2, m3 string) (Messages, error) {
	var (
		msgs Messages
		err  error
	)
	if msgs.M1, err = ParseM1(m1); err != nil {
		return Messages{}, err
	}
	if msgs.M2, err = ParseM2(m2); err != nil {
		return Messages{}, err
	}
	if msgs.M3, err = ParseM3(m3); err != nil {
		return Messages{}, err
	}
	return msgs, nil
}

// Request returns M1 | M2 | M3 as sent to the module.
func (m Messages) Request() []byte {
	out := make([]byte, 0, M1Size+M2Size+M3Size)
	out = append(out, m.M1[:]...)
	out = append(out, m.M2[:]...)
	return append(out, m.M3[:]...)
}

// Confirmation returns M4 | M5 as returned by the module.
func (m Messages) Confirmation() []byte {
	out := make([]byte, 0, M4Size+M5Size)
	out = append(out, m.M4[:]...)
	return append(out, m.M5[:]...)
}
