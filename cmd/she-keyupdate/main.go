// she-keyupdate generates and checks SHE memory update messages.
//
// Usage:
//
//	she-keyupdate <command> [options]
//
// Commands:
//
//	generate   Compute M1..M5 from update parameters (flags or -config job file)
//	parse      Recover the update parameters from -auth-key, -m1 and -m2
//	verify     Authenticate -m1..-m3 (and optionally -m4, -m5) under -auth-key
//	apply      Apply -m1..-m3 to an in-memory key store and print M4, M5
//
// Every command accepts -v for debug logging and -slot-set to name key
// slots from a registered slot set (default: autosar).
//
// Example:
//
//	she-keyupdate generate -auth-key 000102030405060708090a0b0c0d0e0f \
//	    -new-key 0f0e0d0c0b0a09080706050403020100 -auth-id MASTER_ECU_KEY \
//	    -new-id KEY_1 -counter 1 -uid 000000000000000000000000000001
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "she-keyupdate: %v\n", err)
		}
		os.Exit(1)
	}
}

type command struct {
	name    string
	summary string
	run     func(args []string, stdout, stderr io.Writer) error
}

var commands = []command{
	{"generate", "compute M1..M5 from update parameters", runGenerate},
	{"parse", "recover update parameters from M1 and M2", runParse},
	{"verify", "authenticate received messages", runVerify},
	{"apply", "apply a request to an in-memory key store", runApply},
}

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		usage(stderr)
		return errors.New("missing command")
	}
	for _, c := range commands {
		if c.name == args[0] {
			return c.run(args[1:], stdout, stderr)
		}
	}
	if args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		usage(stdout)
		return nil
	}
	usage(stderr)
	return fmt.Errorf("unknown command %q", args[0])
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: she-keyupdate <command> [options]")
	fmt.Fprintln(w)
	for _, c := range commands {
		fmt.Fprintf(w, "  %-9s %s\n", c.name, c.summary)
	}
}
