package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/google/subcommands"

	"github.com/ndewijer/Position-Ledger-Backend/internal/config"
)

type genkeyCmd struct {
	out    io.Writer
	errOut io.Writer
}

func (*genkeyCmd) Name() string     { return "genkey" }
func (*genkeyCmd) Synopsis() string { return "print a new random SECRET_KEY" }
func (*genkeyCmd) Usage() string {
	return `secret genkey

  Prints a base64 fernet key. Store it as SECRET_KEY.
`
}

func (*genkeyCmd) SetFlags(*flag.FlagSet) {}

func (c *genkeyCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	key, err := config.GenerateSecretKey()
	if err != nil {
		fmt.Fprintln(c.errOut, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintln(c.out, key)
	return subcommands.ExitSuccess
}

type encryptCmd struct {
	key    string
	out    io.Writer
	errOut io.Writer
	getenv func(string) string
}

func (*encryptCmd) Name() string     { return "encrypt" }
func (*encryptCmd) Synopsis() string { return "encrypt a quote API key into QUOTE_API_KEY_ENCRYPTED" }
func (*encryptCmd) Usage() string {
	return `secret encrypt [-key <secret-key>] <api-key>

  Prints a fernet token for the API key. The key defaults to $SECRET_KEY.
`
}

func (c *encryptCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.key, "key", "", "fernet key; defaults to $SECRET_KEY")
}

func (c *encryptCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprint(c.errOut, c.Usage())
		return subcommands.ExitUsageError
	}

	key := c.key
	if key == "" {
		key = c.getenv("SECRET_KEY")
	}
	if key == "" {
		fmt.Fprintln(c.errOut, "SECRET_KEY or -key is required")
		return subcommands.ExitUsageError
	}

	token, err := config.EncryptSecret(f.Arg(0), key)
	if err != nil {
		fmt.Fprintln(c.errOut, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintln(c.out, token)
	return subcommands.ExitSuccess
}
