package main

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/backkem/she/pkg/keyslot"
	"github.com/backkem/she/pkg/keystore"
	"github.com/backkem/she/pkg/memupdate"
	"github.com/backkem/she/pkg/she"
	"github.com/pion/logging"
)

// newFlagSet returns a flag set with the options shared by every command.
func newFlagSet(name string, stderr io.Writer) (*flag.FlagSet, *bool) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	verbose := fs.Bool("v", false, "enable debug logging")
	return fs, verbose
}

func loggerFactory(verbose bool, stderr io.Writer) logging.LoggerFactory {
	lf := logging.NewDefaultLoggerFactory()
	lf.Writer = stderr
	if verbose {
		lf.DefaultLogLevel = logging.LogLevelDebug
	}
	return lf
}

func runGenerate(args []string, stdout, stderr io.Writer) error {
	fs, verbose := newFlagSet("generate", stderr)
	config := fs.String("config", "", "TOML job file; flags override its keys")
	keys := fs.Bool("keys", false, "also print K1..K4")
	var cli jobSpec
	cli.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	lf := loggerFactory(*verbose, stderr)
	log := lf.NewLogger("she-keyupdate")

	var spec jobSpec
	if *config != "" {
		var err error
		if spec, err = loadJobFile(*config); err != nil {
			return err
		}
		log.Debugf("loaded job from %s", *config)
	}
	spec.override(fs, cli)

	info, err := spec.info()
	if err != nil {
		return err
	}
	p, err := memupdate.NewWithConfig(memupdate.FromInfo{Info: info}, memupdate.Config{LoggerFactory: lf})
	if err != nil {
		return err
	}

	if *keys {
		for i, derive := range []func() (she.Key, error){p.K1, p.K2, p.K3, p.K4} {
			k, err := derive()
			if err != nil {
				return err
			}
			fmt.Fprintf(stdout, "K%d %s\n", i+1, k)
		}
	}
	msgs, err := p.Messages()
	if err != nil {
		return err
	}
	printMessages(stdout, msgs)
	return nil
}

func runParse(args []string, stdout, stderr io.Writer) error {
	fs, verbose := newFlagSet("parse", stderr)
	authKey := fs.String("auth-key", "", "current key of the authorizing slot (hex)")
	m1 := fs.String("m1", "", "M1 (hex)")
	m2 := fs.String("m2", "", "M2 (hex)")
	setName := fs.String("slot-set", "", "key slot set for slot names (default autosar)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	key, err := she.ParseHexKey(*authKey)
	if err != nil {
		return fmt.Errorf("auth key: %w", err)
	}
	var msgs memupdate.Messages
	if msgs.M1, err = memupdate.ParseM1(strings.TrimSpace(*m1)); err != nil {
		return err
	}
	if msgs.M2, err = memupdate.ParseM2(strings.TrimSpace(*m2)); err != nil {
		return err
	}
	set, err := slotSet(*setName)
	if err != nil {
		return err
	}

	cfg := memupdate.Config{LoggerFactory: loggerFactory(*verbose, stderr)}
	p, err := memupdate.NewWithConfig(memupdate.FromMessages{AuthKey: key, Messages: msgs}, cfg)
	if err != nil {
		return err
	}
	printInfo(stdout, p.Info(), set)
	return nil
}

func runVerify(args []string, stdout, stderr io.Writer) error {
	fs, verbose := newFlagSet("verify", stderr)
	authKey := fs.String("auth-key", "", "current key of the authorizing slot (hex)")
	m := make([]*string, 5)
	for i := range m {
		m[i] = fs.String(fmt.Sprintf("m%d", i+1), "", fmt.Sprintf("M%d (hex)", i+1))
	}
	setName := fs.String("slot-set", "", "key slot set for slot names (default autosar)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	key, err := she.ParseHexKey(*authKey)
	if err != nil {
		return fmt.Errorf("auth key: %w", err)
	}
	msgs, err := memupdate.ParseRequest(*m[0], *m[1], *m[2])
	if err != nil {
		return err
	}
	set, err := slotSet(*setName)
	if err != nil {
		return err
	}

	cfg := memupdate.Config{LoggerFactory: loggerFactory(*verbose, stderr)}
	p, err := memupdate.OpenWithConfig(key, msgs, cfg)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, "request: ok")

	if *m[3] != "" || *m[4] != "" {
		m4, err := memupdate.ParseM4(*m[3])
		if err != nil {
			return err
		}
		m5, err := memupdate.ParseM5(*m[4])
		if err != nil {
			return err
		}
		if err := p.VerifyConfirmation(m4, m5); err != nil {
			return err
		}
		fmt.Fprintln(stdout, "confirmation: ok")
	}
	printInfo(stdout, p.Info(), set)
	return nil
}

// slotFlags collects repeated -slot NAME=KEY flags.
type slotFlags []string

func (s *slotFlags) String() string { return strings.Join(*s, ",") }

func (s *slotFlags) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func runApply(args []string, stdout, stderr io.Writer) error {
	fs, verbose := newFlagSet("apply", stderr)
	uid := fs.String("uid", "", "15-byte module UID (hex)")
	var slots slotFlags
	fs.Var(&slots, "slot", "provisioned slot as NAME=KEY, repeatable")
	m1 := fs.String("m1", "", "M1 (hex)")
	m2 := fs.String("m2", "", "M2 (hex)")
	m3 := fs.String("m3", "", "M3 (hex)")
	setName := fs.String("slot-set", "", "key slot set for slot names (default autosar)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	u, err := she.ParseHexUID(*uid)
	if err != nil {
		return fmt.Errorf("uid: %w", err)
	}
	set, err := slotSet(*setName)
	if err != nil {
		return err
	}
	msgs, err := memupdate.ParseRequest(*m1, *m2, *m3)
	if err != nil {
		return err
	}

	store := keystore.New(keystore.Config{UID: u, LoggerFactory: loggerFactory(*verbose, stderr)})
	for _, entry := range slots {
		name, hexKey, ok := strings.Cut(entry, "=")
		if !ok {
			return fmt.Errorf("slot %q: want NAME=KEY", entry)
		}
		id, err := keyslot.Parse(set, name)
		if err != nil {
			return fmt.Errorf("slot %q: %w", entry, err)
		}
		key, err := she.ParseHexKey(hexKey)
		if err != nil {
			return fmt.Errorf("slot %q: %w", entry, err)
		}
		if err := store.Provision(id, keystore.Slot{Key: key}); err != nil {
			return err
		}
	}

	m4, m5, err := store.Apply(msgs)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "M4 %s\nM5 %s\n", m4, m5)
	return nil
}

func printMessages(w io.Writer, msgs memupdate.Messages) {
	fmt.Fprintf(w, "M1 %s\nM2 %s\nM3 %s\n", msgs.M1, msgs.M2, msgs.M3)
	fmt.Fprintf(w, "M4 %s\nM5 %s\n", msgs.M4, msgs.M5)
}

func slotName(set keyslot.Set, id keyslot.ID) string {
	if label, ok := set.Label(id); ok {
		return fmt.Sprintf("%s (%d)", label, id)
	}
	return fmt.Sprintf("%d", id)
}

func printInfo(w io.Writer, info memupdate.UpdateInfo, set keyslot.Set) {
	fmt.Fprintf(w, "new_key_id  %s\n", slotName(set, info.NewKeyID()))
	fmt.Fprintf(w, "auth_key_id %s\n", slotName(set, info.AuthKeyID()))
	fmt.Fprintf(w, "counter     %d\n", info.Counter())
	fmt.Fprintf(w, "uid         %s\n", info.UID())
	fmt.Fprintf(w, "fid         %d (%s)\n", info.Flags().FID(), info.Flags())
	fmt.Fprintf(w, "new_key     %s\n", info.NewKey())
}
