package main

import (
	"errors"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/backkem/she/pkg/keyslot"
	"github.com/backkem/she/pkg/memupdate"
	"github.com/backkem/she/pkg/she"
)

// jobSpec is an unparsed update job, filled from a TOML file and/or flags.
type jobSpec struct {
	AuthKey   string
	NewKey    string
	AuthKeyID string
	NewKeyID  string
	Counter   string
	UID       string
	FID       string
	Flags     []string
	SlotSet   string
}

type jobFile struct {
	AuthKey   string   `toml:"auth_key"`
	NewKey    string   `toml:"new_key"`
	AuthKeyID any      `toml:"auth_key_id"`
	NewKeyID  any      `toml:"new_key_id"`
	Counter   int64    `toml:"counter"`
	UID       string   `toml:"uid"`
	FID       int64    `toml:"fid"`
	Flags     []string `toml:"flags"`
	SlotSet   string   `toml:"slot_set"`
}

// loadJobFile reads a job file. Keys that are absent stay empty.
func loadJobFile(path string) (jobSpec, error) {
	var raw jobFile
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return jobSpec{}, fmt.Errorf("load job: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return jobSpec{}, fmt.Errorf("load job: unknown key %q", undecoded[0].String())
	}

	var spec jobSpec
	if meta.IsDefined("auth_key") {
		spec.AuthKey = strings.TrimSpace(raw.AuthKey)
	}
	if meta.IsDefined("new_key") {
		spec.NewKey = strings.TrimSpace(raw.NewKey)
	}
	if meta.IsDefined("auth_key_id") {
		if spec.AuthKeyID, err = slotValue("auth_key_id", raw.AuthKeyID); err != nil {
			return jobSpec{}, err
		}
	}
	if meta.IsDefined("new_key_id") {
		if spec.NewKeyID, err = slotValue("new_key_id", raw.NewKeyID); err != nil {
			return jobSpec{}, err
		}
	}
	if meta.IsDefined("counter") {
		spec.Counter = strconv.FormatInt(raw.Counter, 10)
	}
	if meta.IsDefined("uid") {
		spec.UID = strings.TrimSpace(raw.UID)
	}
	if meta.IsDefined("fid") {
		spec.FID = strconv.FormatInt(raw.FID, 10)
	}
	if meta.IsDefined("flags") {
		spec.Flags = raw.Flags
	}
	if meta.IsDefined("slot_set") {
		spec.SlotSet = strings.TrimSpace(raw.SlotSet)
	}
	return spec, nil
}

// slotValue accepts a slot given as TOML integer or name.
func slotValue(key string, v any) (string, error) {
	switch v := v.(type) {
	case int64:
		return strconv.FormatInt(v, 10), nil
	case string:
		return strings.TrimSpace(v), nil
	}
	return "", fmt.Errorf("%s: %w: got %T", key, she.ErrInvalidType, v)
}

// register binds the job flags to spec.
func (s *jobSpec) register(fs *flag.FlagSet) {
	fs.StringVar(&s.AuthKey, "auth-key", "", "current key of the authorizing slot (hex)")
	fs.StringVar(&s.NewKey, "new-key", "", "key to load (hex)")
	fs.StringVar(&s.AuthKeyID, "auth-id", "", "authorizing slot, name or number")
	fs.StringVar(&s.NewKeyID, "new-id", "", "target slot, name or number")
	fs.StringVar(&s.Counter, "counter", "", "28-bit update counter")
	fs.StringVar(&s.UID, "uid", "", "15-byte module UID (hex)")
	fs.StringVar(&s.FID, "fid", "", "6-bit protection flag value")
	fs.Func("flag", "protection flag name, repeatable (e.g. write_protection)", func(v string) error {
		s.Flags = append(s.Flags, v)
		return nil
	})
	fs.StringVar(&s.SlotSet, "slot-set", "", "key slot set for slot names (default autosar)")
}

// override copies the fields whose flags were set on the command line.
// -fid and -flag each replace both flag sources of the file.
func (s *jobSpec) override(fs *flag.FlagSet, cli jobSpec) {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "auth-key":
			s.AuthKey = cli.AuthKey
		case "new-key":
			s.NewKey = cli.NewKey
		case "auth-id":
			s.AuthKeyID = cli.AuthKeyID
		case "new-id":
			s.NewKeyID = cli.NewKeyID
		case "counter":
			s.Counter = cli.Counter
		case "uid":
			s.UID = cli.UID
		case "fid":
			s.FID = cli.FID
			s.Flags = nil
		case "flag":
			s.Flags = cli.Flags
			s.FID = ""
		case "slot-set":
			s.SlotSet = cli.SlotSet
		}
	})
}

// slotSet resolves the configured slot set.
func slotSet(name string) (keyslot.Set, error) {
	if name == "" {
		return keyslot.AUTOSAR, nil
	}
	return keyslot.Lookup(name)
}

// info parses the job into validated update parameters.
func (s jobSpec) info() (memupdate.UpdateInfo, error) {
	set, err := slotSet(s.SlotSet)
	if err != nil {
		return memupdate.UpdateInfo{}, err
	}

	var p memupdate.UpdateParams
	if p.AuthKey, err = she.ParseHexKey(s.AuthKey); err != nil {
		return memupdate.UpdateInfo{}, fmt.Errorf("auth key: %w", err)
	}
	if p.NewKey, err = she.ParseHexKey(s.NewKey); err != nil {
		return memupdate.UpdateInfo{}, fmt.Errorf("new key: %w", err)
	}
	if p.AuthKeyID, err = keyslot.Parse(set, s.AuthKeyID); err != nil {
		return memupdate.UpdateInfo{}, fmt.Errorf("auth key id: %w", err)
	}
	if p.NewKeyID, err = keyslot.Parse(set, s.NewKeyID); err != nil {
		return memupdate.UpdateInfo{}, fmt.Errorf("new key id: %w", err)
	}
	if p.UID, err = she.ParseHexUID(s.UID); err != nil {
		return memupdate.UpdateInfo{}, fmt.Errorf("uid: %w", err)
	}
	if p.Counter, err = parseCounter(s.Counter); err != nil {
		return memupdate.UpdateInfo{}, err
	}
	if p.Flags, err = s.securityFlags(); err != nil {
		return memupdate.UpdateInfo{}, err
	}
	return memupdate.NewUpdateInfo(p)
}

func parseCounter(s string) (she.Counter, error) {
	if s == "" {
		return 0, fmt.Errorf("counter: %w", she.ErrEmptyInput)
	}
	v, err := strconv.ParseInt(strings.TrimSpace(s), 0, 64)
	if err != nil {
		return 0, fmt.Errorf("counter: %w: %v", she.ErrInvalidValue, err)
	}
	c, err := she.NewCounter(v)
	if err != nil {
		return 0, fmt.Errorf("counter: %w", err)
	}
	return c, nil
}

func (s jobSpec) securityFlags() (she.SecurityFlags, error) {
	if s.FID != "" && len(s.Flags) > 0 {
		return she.SecurityFlags{}, errors.New("fid and flags are mutually exclusive")
	}
	if s.FID != "" {
		v, err := strconv.ParseInt(strings.TrimSpace(s.FID), 0, 64)
		if err != nil {
			return she.SecurityFlags{}, fmt.Errorf("fid: %w: %v", she.ErrInvalidValue, err)
		}
		flags, err := she.NewSecurityFlags(int(v))
		if err != nil {
			return she.SecurityFlags{}, fmt.Errorf("fid: %w", err)
		}
		return flags, nil
	}

	flags := make([]she.Flag, 0, len(s.Flags))
	for _, name := range s.Flags {
		f, err := she.ParseFlag(name)
		if err != nil {
			return she.SecurityFlags{}, err
		}
		flags = append(flags, f)
	}
	return she.FlagsOf(flags...), nil
}
