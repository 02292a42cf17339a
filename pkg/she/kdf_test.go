package she

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/backkem/she/pkg/crypto"
)

func TestConstantsMatchPublishedHex(t *testing.T) {
	tests := []struct {
		name string
		got  Key
		hex  string
	}{
		{"KEY_UPDATE_ENC_C", KeyUpdateEncC, "010153484500800000000000000000B0"},
		{"KEY_UPDATE_MAC_C", KeyUpdateMacC, "010253484500800000000000000000B0"},
		{"DEBUG_KEY_C", DebugKeyC, "010353484500800000000000000000B0"},
		{"PRNG_KEY_C", PRNGKeyC, "010453484500800000000000000000B0"},
		{"PRNG_SEED_KEY_C", PRNGSeedKeyC, "010553484500800000000000000000B0"},
		{"PRNG_EXTENSION_C", PRNGExtensionC, "80000000000000000000000000000100"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			want, err := ParseKey(tc.hex)
			if err != nil {
				t.Fatalf("ParseKey() error: %v", err)
			}
			if tc.got != want {
				t.Errorf("%s = %s, want %s", tc.name, tc.got, want)
			}
		})
	}
}

// Sub-key vectors from the AUTOSAR SHE memory update example.
func TestDeriveKeyUpdateSubKeys(t *testing.T) {
	authKey, _ := ParseKey("000102030405060708090a0b0c0d0e0f")
	newKey, _ := ParseKey("0f0e0d0c0b0a09080706050403020100")

	tests := []struct {
		name     string
		key      Key
		constant Key
		want     string
	}{
		{"K1", authKey, KeyUpdateEncC, "118a46447a770d87828a69c222e2d17e"},
		{"K2", authKey, KeyUpdateMacC, "2ebb2a3da62dbd64b18ba6493e9fbe22"},
		{"K3", newKey, KeyUpdateEncC, "ed2de7864a47f6bac319a9dc496a788f"},
		{"K4", newKey, KeyUpdateMacC, "ec9386fefaa1c598246144343de5f26a"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DeriveKey(crypto.Standard, tc.key, tc.constant)
			if err != nil {
				t.Fatalf("DeriveKey() error: %v", err)
			}
			if got.String() != tc.want {
				t.Errorf("%s = %s, want %s", tc.name, got, tc.want)
			}
		})
	}
}

func TestDerivedKeysKnownAnswer(t *testing.T) {
	secret, _ := ParseKey("2b7e151628aed2a6abf7158809cf4f3c")

	tests := []struct {
		name   string
		derive func(crypto.Primitives, Key) (Key, error)
		want   string
	}{
		{"DebugKey", DebugKey, "a6d60855f5b7bc7fc2fbae1befa78787"},
		{"PRNGKey", PRNGKey, "a1be019264992b2b725a4dd4c7767002"},
		{"PRNGSeedKey", PRNGSeedKey, "8abc8f6e2a8264fd38088be622ca0416"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.derive(nil, secret)
			if err != nil {
				t.Fatalf("%s() error: %v", tc.name, err)
			}
			if got.String() != tc.want {
				t.Errorf("%s() = %s, want %s", tc.name, got, tc.want)
			}
		})
	}
}

func TestDebugAuthorization(t *testing.T) {
	master, _ := ParseKey("000102030405060708090a0b0c0d0e0f")
	uid, _ := ParseUID("000000000000000000000000000001")
	var challenge [ChallengeSize]byte
	for i := range challenge {
		challenge[i] = byte(i)
	}

	k, err := DebugKey(crypto.Standard, master)
	if err != nil {
		t.Fatalf("DebugKey() error: %v", err)
	}
	if k.String() != "1b5f959633c8c39ec42e965132bcec9b" {
		t.Errorf("DebugKey() = %s", k)
	}

	got, err := DebugAuthorization(crypto.Standard, master, challenge, uid)
	if err != nil {
		t.Fatalf("DebugAuthorization() error: %v", err)
	}
	if want := "cf22f592d2c48bcd815608af5bab7224"; hex.EncodeToString(got) != want {
		t.Errorf("DebugAuthorization() = %x, want %s", got, want)
	}

	// A different challenge gives a different answer.
	challenge[0] ^= 0xff
	other, err := DebugAuthorization(nil, master, challenge, uid)
	if err != nil {
		t.Fatalf("DebugAuthorization() error: %v", err)
	}
	if bytes.Equal(got, other) {
		t.Error("authorization did not depend on the challenge")
	}
}
