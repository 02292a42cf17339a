package crypto

import (
	"bytes"
	"errors"
	"testing"
)

func TestBytesXOR(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want string
	}{
		{"zeros", "0000", "0000", "0000"},
		{"identity", "a5a5", "0000", "a5a5"},
		{"self cancels", "deadbeef", "deadbeef", "00000000"},
		{"mixed", "0f0f0f", "f0f00f", "ffff00"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := Bytes(mustHex(t, tc.a))
			b := mustHex(t, tc.b)

			got, err := a.XOR(b)
			if err != nil {
				t.Fatalf("XOR() error: %v", err)
			}
			if got.String() != tc.want {
				t.Errorf("XOR() = %s, want %s", got, tc.want)
			}

			// a ^ b ^ b == a
			back, err := got.XOR(b)
			if err != nil {
				t.Fatalf("XOR() error: %v", err)
			}
			if !back.Equal(a) {
				t.Errorf("a^b^b = %s, want %s", back, a)
			}
		})
	}
}

func TestBytesXORLengthMismatch(t *testing.T) {
	_, err := Bytes{1, 2, 3}.XOR([]byte{1, 2})
	if !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("XOR() error = %v, want %v", err, ErrLengthMismatch)
	}
}

func TestBytesXORDoesNotModifyOperands(t *testing.T) {
	a := Bytes{0x01, 0x02}
	b := []byte{0xff, 0xff}
	if _, err := a.XOR(b); err != nil {
		t.Fatalf("XOR() error: %v", err)
	}
	if !a.Equal([]byte{0x01, 0x02}) || !bytes.Equal(b, []byte{0xff, 0xff}) {
		t.Error("XOR() modified an operand")
	}
}

// Known answer from the AUTOSAR SHE Miyaguchi-Preneel example.
func TestMiyaguchiPreneelKnownAnswer(t *testing.T) {
	got, err := MiyaguchiPreneel(Standard,
		mustHex(t, "6bc1bee22e409f96e93d7e117393172a"),
		mustHex(t, "ae2d8a571e03ac9c9eb76fac45af8e51"),
		mustHex(t, "80000000000000000000000000000100"),
	)
	if err != nil {
		t.Fatalf("MiyaguchiPreneel() error: %v", err)
	}

	want := "c7277a0dc1fb853b5f4d9cbd26be40c6"
	if got.String() != want {
		t.Errorf("MiyaguchiPreneel() = %s, want %s", got, want)
	}
}

func TestMiyaguchiPreneelOrderMatters(t *testing.T) {
	a := mustHex(t, "6bc1bee22e409f96e93d7e117393172a")
	b := mustHex(t, "ae2d8a571e03ac9c9eb76fac45af8e51")

	ab, err := MiyaguchiPreneel(nil, a, b)
	if err != nil {
		t.Fatalf("MiyaguchiPreneel() error: %v", err)
	}
	ba, err := MiyaguchiPreneel(nil, b, a)
	if err != nil {
		t.Fatalf("MiyaguchiPreneel() error: %v", err)
	}
	if ab.Equal(ba) {
		t.Error("compression should not be commutative")
	}
}

func TestMiyaguchiPreneelSingleBlock(t *testing.T) {
	// With one block M and H = 0: H = E_0(M) ^ 0 ^ M.
	m := mustHex(t, "00112233445566778899aabbccddeeff")
	zero := make([]byte, BlockSize)

	em, err := AESECBEncrypt(zero, m)
	if err != nil {
		t.Fatalf("EncryptBlock() error: %v", err)
	}
	want, err := Bytes(em).XOR(m)
	if err != nil {
		t.Fatalf("XOR() error: %v", err)
	}

	got, err := MiyaguchiPreneel(Standard, m)
	if err != nil {
		t.Fatalf("MiyaguchiPreneel() error: %v", err)
	}
	if !got.Equal(want) {
		t.Errorf("MiyaguchiPreneel() = %s, want %s", got, want)
	}
	if got.String() != "c8b213ccca885bc6fd78fee6722698f4" {
		t.Errorf("MiyaguchiPreneel() = %s, want c8b213ccca885bc6fd78fee6722698f4", got)
	}
}

func TestMiyaguchiPreneelErrors(t *testing.T) {
	if _, err := MiyaguchiPreneel(Standard); !errors.Is(err, ErrNoInput) {
		t.Errorf("no input: error = %v, want %v", err, ErrNoInput)
	}
	if _, err := MiyaguchiPreneel(Standard, make([]byte, 15)); !errors.Is(err, ErrInvalidBlockSize) {
		t.Errorf("short block: error = %v, want %v", err, ErrInvalidBlockSize)
	}
}
