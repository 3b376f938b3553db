// Command secret produces the SECRET_KEY and QUOTE_API_KEY_ENCRYPTED values read by the server.
//
//	secret genkey
//	SECRET_KEY=... secret encrypt <api-key>
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(&genkeyCmd{out: os.Stdout, errOut: os.Stderr}, "")
	commander.Register(&encryptCmd{out: os.Stdout, errOut: os.Stderr, getenv: os.Getenv}, "")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
