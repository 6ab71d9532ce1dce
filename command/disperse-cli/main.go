// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/disperse/chain"
	"github.com/bitmark-inc/disperse/fault"
)

type metadata struct {
	keyFile  string
	connect  string
	password string
	verbose  bool
	e        io.Writer
	w        io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {

	app := cli.NewApp()
	app.Name = "disperse-cli"
	app.Usage = "client for the disperserd ledger"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "network, n",
			Value: chain.Local,
			Usage: " select the key file for `NETWORK` [local|testing|devnet]",
		},
		cli.StringFlag{
			Name:  "connect, c",
			Value: "127.0.0.1:2130",
			Usage: " disperserd RPC `HOST:PORT`",
		},
		cli.StringFlag{
			Name:  "key, k",
			Value: "",
			Usage: " key `FILE` [default: XDG_CONFIG_HOME/disperse-cli/NETWORK.key]",
		},
		cli.StringFlag{
			Name:   "password, p",
			Value:  "",
			Usage:  " key file `PASSWORD`",
			EnvVar: "DISPERSE_PASSWORD",
		},
	}

	poolFlag := cli.Uint64Flag{
		Name:  "id, i",
		Value: 0,
		Usage: "*pool `ID`",
	}
	assetFlag := cli.StringFlag{
		Name:  "asset, a",
		Value: nativeName,
		Usage: " asset `ADDRESS` or native",
	}
	amountFlag := cli.StringFlag{
		Name:  "amount, m",
		Value: "",
		Usage: "*amount in base units `VALUE`",
	}
	permitFlag := cli.BoolFlag{
		Name:  "permit",
		Usage: " sign a permit instead of relying on an existing allowance",
	}

	app.Commands = []cli.Command{
		{
			Name:      "generate",
			Usage:     "generate or import a key and store it encrypted",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "private-key, K",
					Value: "",
					Usage: " import an existing hex private `KEY`",
				},
			},
			Action: runGenerate,
		},
		{
			Name:   "info",
			Usage:  "display disperserd status",
			Action: runInfo,
		},
		{
			Name:      "balance",
			Usage:     "display the balance of an account",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				assetFlag,
				cli.StringFlag{
					Name:  "account, o",
					Value: "",
					Usage: " account `ADDRESS` [default: own account]",
				},
			},
			Action: runBalance,
		},
		{
			Name:      "pool",
			Usage:     "display one pool or list pools",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "id, i",
					Value: 0,
					Usage: " pool `ID` [default: list pools]",
				},
				cli.Uint64Flag{
					Name:  "start, s",
					Value: 1,
					Usage: " first pool of the list `ID`",
				},
				cli.IntFlag{
					Name:  "count, n",
					Value: 10,
					Usage: " maximum pools to list `COUNT`",
				},
			},
			Action: runPool,
		},
		{
			Name:      "claimed",
			Usage:     "display the amount an account has claimed from a pool",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				poolFlag,
				cli.StringFlag{
					Name:  "account, o",
					Value: "",
					Usage: " claimer `ADDRESS` [default: own account]",
				},
			},
			Action: runClaimed,
		},
		{
			Name:      "events",
			Usage:     "list ledger events",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "start, s",
					Value: 1,
					Usage: " first event `SEQUENCE`",
				},
				cli.IntFlag{
					Name:  "count, n",
					Value: 10,
					Usage: " maximum events to list `COUNT`",
				},
			},
			Action: runEvents,
		},
		{
			Name:      "approve",
			Usage:     "allow a spender to pull an asset from own account",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				assetFlag,
				amountFlag,
				cli.StringFlag{
					Name:  "spender, s",
					Value: "",
					Usage: " spender `ADDRESS` [default: the ledger]",
				},
			},
			Action: runApprove,
		},
		{
			Name:      "transfer",
			Usage:     "send an asset from own account",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				assetFlag,
				amountFlag,
				cli.StringFlag{
					Name:  "to, t",
					Value: "",
					Usage: "*recipient `ADDRESS`",
				},
			},
			Action: runTransfer,
		},
		{
			Name:      "wrap",
			Usage:     "convert native value to the wrapped asset",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{amountFlag},
			Action:    runWrap,
		},
		{
			Name:      "unwrap",
			Usage:     "convert the wrapped asset back to native value",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{amountFlag},
			Action:    runUnwrap,
		},
		{
			Name:      "permit",
			Usage:     "sign a permit for the ledger, print it or submit it",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				assetFlag,
				amountFlag,
				cli.Uint64Flag{
					Name:  "expiry, e",
					Value: defaultPermitLifetime,
					Usage: " seconds the permit remains valid `SECONDS`",
				},
				cli.BoolFlag{
					Name:  "submit",
					Usage: " submit the permit instead of printing it",
				},
			},
			Action: runPermit,
		},
		{
			Name:      "disperse",
			Usage:     "send an asset to many recipients at once",
			ArgsUsage: "ADDRESS:AMOUNT...\n   (* = required)",
			Flags: []cli.Flag{
				assetFlag,
				permitFlag,
				cli.StringFlag{
					Name:  "file, f",
					Value: "",
					Usage: " JSON `FILE` of [{\"recipient\": ..., \"amount\": ...}]",
				},
				cli.BoolFlag{
					Name:  "simple",
					Usage: " pull each amount directly from the sender",
				},
			},
			Action: runDisperse,
		},
		{
			Name:      "create",
			Usage:     "create a distribution pool from a JSON schedule",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				permitFlag,
				cli.StringFlag{
					Name:  "file, f",
					Value: "",
					Usage: "*JSON schedule `FILE`",
				},
				cli.BoolFlag{
					Name:  "fund",
					Usage: " fund the pool as it is created",
				},
			},
			Action: runCreate,
		},
		{
			Name:      "fund",
			Usage:     "fund an initialised pool",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{poolFlag, permitFlag},
			Action:    runFund,
		},
		{
			Name:      "claim",
			Usage:     "claim from a funded pool",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				poolFlag,
				cli.IntFlag{
					Name:  "index, x",
					Value: -1,
					Usage: " schedule `INDEX` [default: found from own account]",
				},
			},
			Action: runClaim,
		},
		{
			Name:      "distribute",
			Usage:     "pay every unclaimed entry of a pool",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{poolFlag},
			Action:    runDistribute,
		},
		{
			Name:      "cancel",
			Usage:     "close pools and refund what is left",
			ArgsUsage: "ID...\n   (* = required)",
			Action:    runCancel,
		},
		{
			Name:  "version",
			Usage: "display disperse-cli version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	// read the key file location
	app.Before = func(c *cli.Context) error {

		e := c.App.ErrWriter
		w := c.App.Writer
		verbose := c.GlobalBool("verbose")

		network := c.GlobalString("network")
		if !chain.Valid(network) {
			return fmt.Errorf("network: %q: %w", network, fault.ErrInvalidChain)
		}

		file := c.GlobalString("key")
		if "" == file {
			p := os.Getenv("XDG_CONFIG_HOME")
			if "" == p {
				home, err := os.UserHomeDir()
				if nil != err {
					return fmt.Errorf("XDG_CONFIG_HOME environment is not set")
				}
				p = filepath.Join(home, ".config")
			}
			file = filepath.Join(p, app.Name, network+".key")
		}

		if verbose {
			fmt.Fprintf(e, "key file: %q\n", file)
		}

		c.App.Metadata["config"] = &metadata{
			keyFile:  file,
			connect:  c.GlobalString("connect"),
			password: c.GlobalString("password"),
			verbose:  verbose,
			e:        e,
			w:        w,
		}
		return nil
	}

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}
