// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/bitmark-inc/disperse/ledger"
	"github.com/bitmark-inc/disperse/rpc/certificate"
	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/logger"
)

const (
	rpcCertificateKeyFilename = "rpc.crt"
	rpcPrivateKeyFilename     = "rpc.key"

	dumpPageSize = 100
)

// setup command handler
//
// commands that run to create key and certificate files these
// commands cannot access any internal database or states or the
// configuration file
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {
	case "gen-rpc-cert", "rpc":
		certificateFilename := getFilenameWithDirectory(arguments, rpcCertificateKeyFilename)
		privateKeyFilename := getFilenameWithDirectory(arguments, rpcPrivateKeyFilename)

		addresses := []string{}
		if len(arguments) >= 2 {
			for _, a := range arguments[1:] {
				if "" != a {
					addresses = append(addresses, a)
				}
			}
		}

		err := certificate.Generate("rpc", certificateFilename, privateKeyFilename, addresses)
		if nil != err {
			fmt.Printf("generate RPC key: %q and certificate: %q error: %s\n", privateKeyFilename, certificateFilename, err)
			exitwithstatus.Exit(1)
		}
		fmt.Printf("generated RPC key: %q and certificate: %q\n", privateKeyFilename, certificateFilename)

	case "start", "run":
		return false // continue processing

	case "config-test", "cfg":
		return false // defer processing until configuration is read

	case "fingerprint", "fp", "events", "e", "pools", "p":
		return false // defer processing until database is loaded

	case "version", "v":
		fmt.Printf("%s\n", version)
		return true

	default:
		switch command {
		case "help", "h", "?":
		case "", " ":
			fmt.Printf("error: missing command\n")
		default:
			fmt.Printf("error: no such command: %q\n", command)
		}
		fmt.Printf("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE [[command|help] arguments...]", program)

		fmt.Printf("supported commands:\n\n")
		fmt.Printf("  help                       (h)      - display this message\n\n")
		fmt.Printf("  version                    (v)      - display version sting\n\n")

		fmt.Printf("  gen-rpc-cert [DIR]         (rpc)    - create private key in:  %q\n", "DIR/"+rpcPrivateKeyFilename)
		fmt.Printf("                                        and the certificate in: %q\n", "DIR/"+rpcCertificateKeyFilename)
		fmt.Printf("\n")

		fmt.Printf("  gen-rpc-cert [DIR] [IPs...]         - create private key in:  %q\n", "DIR/"+rpcPrivateKeyFilename)
		fmt.Printf("                                        and the certificate in: %q\n", "DIR/"+rpcCertificateKeyFilename)
		fmt.Printf("\n")

		fmt.Printf("  start                      (run)    - just run the program, same as no arguments\n")
		fmt.Printf("                                        for convienience when passing script arguments\n")
		fmt.Printf("\n")

		fmt.Printf("  config-test                (cfg)    - just check the configuration file\n")
		fmt.Printf("\n")

		fmt.Printf("  fingerprint                (fp)     - display the SHA3-256 fingerprint of the RPC certificate\n")
		fmt.Printf("\n")

		fmt.Printf("  events [START [FILE]]      (e)      - dump events as JSON structures to stdout/file\n")
		fmt.Printf("\n")

		fmt.Printf("  pools [START [FILE]]       (p)      - dump pools as JSON structures to stdout/file\n")
		fmt.Printf("\n")

		exitwithstatus.Exit(1)
	}

	// indicate processing complete and preform normal exit from main
	return true
}

// configuration file enquiry commands
// have configuration file read and decoded, but nothing else
func processConfigCommand(arguments []string, options *Configuration) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "config-test", "cfg":
		b, err := json.Marshal(options)
		if err != nil {
			exitwithstatus.Message("error: %s", err)
		}
		var out bytes.Buffer
		_ = json.Indent(&out, b, "", "  ")
		_, _ = out.WriteTo(os.Stdout)
		_, _ = os.Stdout.WriteString("\n")

	default: // unknown commands fall through to data command
		return false
	}

	// indicate processing complete and perform normal exit from main
	return true
}

// data command handler
// the ledger storage is open so these commands can read its records
func processDataCommand(log *logger.L, arguments []string, options *Configuration, l *ledger.Ledger) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {

	case "start", "run":
		return false // continue processing

	case "fingerprint", "fp":
		rpc := options.ClientRPC
		_, fingerprint, err := certificate.Load(log, "client_rpc", rpc.Certificate, rpc.PrivateKey)
		if nil != err {
			exitwithstatus.Message("error: cannot load certificate: %q  error: %s", rpc.Certificate, err)
		}
		fmt.Printf("rpc fingerprint: %x\n", fingerprint)

	case "events", "e":
		fd, start := dumpArguments(arguments)
		err := dump(fd, start, func(start uint64) ([]interface{}, uint64, error) {
			events, err := l.Events(context.Background(), start, dumpPageSize)
			if nil != err || 0 == len(events) {
				return nil, 0, err
			}
			items := make([]interface{}, len(events))
			for i := range events {
				items[i] = events[i]
			}
			return items, events[len(events)-1].Sequence + 1, nil
		})
		if nil != err {
			exitwithstatus.Message("dump events error: %s", err)
		}

	case "pools", "p":
		fd, start := dumpArguments(arguments)
		err := dump(fd, start, func(start uint64) ([]interface{}, uint64, error) {
			pools, err := l.Pools(context.Background(), start, dumpPageSize)
			if nil != err || 0 == len(pools) {
				return nil, 0, err
			}
			items := make([]interface{}, len(pools))
			for i := range pools {
				items[i] = pools[i]
			}
			return items, pools[len(pools)-1].Id + 1, nil
		})
		if nil != err {
			exitwithstatus.Message("dump pools error: %s", err)
		}

	default:
		exitwithstatus.Message("error: no such command: %s", command)

	}

	// indicate processing complete and perform normal exit from main
	return true
}

// optional START and FILE arguments
func dumpArguments(arguments []string) (*os.File, uint64) {
	start := uint64(1)
	if len(arguments) > 0 {
		n, err := strconv.ParseUint(arguments[0], 10, 64)
		if nil != err {
			exitwithstatus.Message("error in start number: %s", err)
		}
		if n > 0 {
			start = n
		}
	}

	fd := os.Stdout
	if len(arguments) > 1 && "" != arguments[1] && "-" != arguments[1] {
		var err error
		fd, err = os.Create(arguments[1])
		if nil != err {
			exitwithstatus.Message("error: creating: %q error: %s", arguments[1], err)
		}
	}
	return fd, start
}

// write pages from fetch as one JSON array
func dump(fd *os.File, start uint64, fetch func(start uint64) ([]interface{}, uint64, error)) error {
	defer fd.Close()

	fmt.Fprintf(fd, "[\n")
	for {
		items, next, err := fetch(start)
		if nil != err {
			return err
		}
		if 0 == len(items) {
			break
		}
		for _, item := range items {
			s, err := json.MarshalIndent(item, "  ", "  ")
			if nil != err {
				return err
			}
			fmt.Fprintf(fd, "  %s,\n", s)
		}
		start = next
	}
	fmt.Fprintf(fd, "{}]\n")
	return nil
}

// get the working directory; if not set in the arguments
// it's set to the current directory
func getFilenameWithDirectory(arguments []string, name string) string {
	dir := "."
	if len(arguments) >= 1 {
		dir = arguments[0]
	}

	return filepath.Join(dir, name)
}
