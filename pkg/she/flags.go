package she

import (
	"fmt"
	"strings"
)

// Flag is one of the six key protection flags that make up a FID.
// The value of a Flag is its bit position inside the FID.
type Flag uint8

// Protection flags by FID bit position.
const (
	// FlagCMACUsage restricts the key to MAC verification.
	FlagCMACUsage Flag = 0

	// FlagWildcard forbids updating the key with the wildcard UID.
	FlagWildcard Flag = 1

	// FlagKeyUsage selects MAC rather than encryption usage for the key.
	FlagKeyUsage Flag = 2

	// FlagDebuggerProtection disables the key while a debugger is attached.
	FlagDebuggerProtection Flag = 3

	// FlagBootProtection disables the key when secure boot failed.
	FlagBootProtection Flag = 4

	// FlagWriteProtection makes the key slot permanently read-only.
	FlagWriteProtection Flag = 5
)

// AllFlags lists every flag from bit 5 down to bit 0.
var AllFlags = []Flag{
	FlagWriteProtection,
	FlagBootProtection,
	FlagDebuggerProtection,
	FlagKeyUsage,
	FlagWildcard,
	FlagCMACUsage,
}

// Mask returns the FID bit weight of the flag.
func (f Flag) Mask() uint8 {
	return 1 << f
}

// String returns the snake_case name used in job files.
func (f Flag) String() string {
	switch f {
	case FlagWriteProtection:
		return "write_protection"
	case FlagBootProtection:
		return "boot_protection"
	case FlagDebuggerProtection:
		return "debugger_protection"
	case FlagKeyUsage:
		return "key_usage"
	case FlagWildcard:
		return "wildcard"
	case FlagCMACUsage:
		return "cmac_usage"
	default:
		return "unknown"
	}
}

// IsValid returns true if the flag is a defined bit position.
func (f Flag) IsValid() bool {
	return f <= FlagWriteProtection
}

// ParseFlag maps a flag name back to its Flag.
func ParseFlag(name string) (Flag, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, f := range AllFlags {
		if f.String() == n {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown security flag %q", ErrInvalidValue, name)
}

// SecurityFlags is the set of protection flags of a key slot, packed as the
// 6-bit FID. The zero value has every flag cleared.
type SecurityFlags struct {
	fid uint8
}

// NewSecurityFlags builds flags from a FID in [0, 63].
func NewSecurityFlags(fid int) (SecurityFlags, error) {
	v, err := FIDField.CheckInt(int64(fid))
	if err != nil {
		return SecurityFlags{}, err
	}
	return SecurityFlags{fid: uint8(v)}, nil
}

// FlagsOf returns flags with exactly the given flags set.
func FlagsOf(flags ...Flag) SecurityFlags {
	var s SecurityFlags
	for _, f := range flags {
		s.Set(f, true)
	}
	return s
}

// FID returns the packed flag value.
func (s SecurityFlags) FID() uint8 {
	return s.fid
}

// SetFID replaces every flag with the decomposition of fid.
func (s *SecurityFlags) SetFID(fid int) error {
	v, err := FIDField.CheckInt(int64(fid))
	if err != nil {
		return err
	}
	s.fid = uint8(v)
	return nil
}

// Has reports whether flag f is set.
func (s SecurityFlags) Has(f Flag) bool {
	return f.IsValid() && s.fid&f.Mask() != 0
}

// Set sets or clears flag f. Undefined flags are ignored.
func (s *SecurityFlags) Set(f Flag, on bool) {
	if !f.IsValid() {
		return
	}
	if on {
		s.fid |= f.Mask()
	} else {
		s.fid &^= f.Mask()
	}
}

// Convenience accessors for the individual flags.

func (s SecurityFlags) WriteProtection() bool    { return s.Has(FlagWriteProtection) }
func (s SecurityFlags) BootProtection() bool     { return s.Has(FlagBootProtection) }
func (s SecurityFlags) DebuggerProtection() bool { return s.Has(FlagDebuggerProtection) }
func (s SecurityFlags) KeyUsage() bool           { return s.Has(FlagKeyUsage) }
func (s SecurityFlags) Wildcard() bool           { return s.Has(FlagWildcard) }
func (s SecurityFlags) CMACUsage() bool          { return s.Has(FlagCMACUsage) }

func (s *SecurityFlags) SetWriteProtection(on bool)    { s.Set(FlagWriteProtection, on) }
func (s *SecurityFlags) SetBootProtection(on bool)     { s.Set(FlagBootProtection, on) }
func (s *SecurityFlags) SetDebuggerProtection(on bool) { s.Set(FlagDebuggerProtection, on) }
func (s *SecurityFlags) SetKeyUsage(on bool)           { s.Set(FlagKeyUsage, on) }
func (s *SecurityFlags) SetWildcard(on bool)           { s.Set(FlagWildcard, on) }
func (s *SecurityFlags) SetCMACUsage(on bool)          { s.Set(FlagCMACUsage, on) }

// Flags returns the set flags, most significant first.
func (s SecurityFlags) Flags() []Flag {
	var out []Flag
	for _, f := range AllFlags {
		if s.Has(f) {
			out = append(out, f)
		}
	}
	return out
}

// String returns the set flag names joined by "|", or "none".
func (s SecurityFlags) String() string {
	set := s.Flags()
	if len(set) == 0 {
		return "none"
	}
	names := make([]string, len(set))
	for i, f := range set {
		names[i] = f.String()
	}
	return strings.Join(names, "|")
}
