package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"

	"github.com/SotorivaXL/academic-event-manag-main/core"
	"github.com/SotorivaXL/academic-event-manag-main/core/client"
)

func (cli *commandLine) clientCmd(args []string) error {
	ctx := context.Background()
	action, rest := subcommand(args)

	fs := newFlagSet("client "+action, cli.out)
	name := fs.String("name", "", "Institution name.")
	cnpj := fs.String("cnpj", "", "CNPJ, with or without mask.")
	slug := fs.String("slug", "", "Tenant slug.")
	email := fs.String("email", "", "Contact email.")
	phone := fs.String("phone", "", "Contact phone.")
	logo := fs.String("logo", "", "Logo URL.")
	config := fs.String("config", "", "Extra configuration as a JSON object.")
	minPct := fs.Int("min", -1, "Default minimum attendance percentage.")

	switch action {
	case "show":
		if err := parse(fs, rest); err != nil {
			return err
		}
		c, err := cli.clients.Current(ctx)
		if err != nil {
			return err
		}
		cli.printClient(c)
		return nil

	case "update":
		if err := parse(fs, rest); err != nil {
			return err
		}
		uc := client.UpdateClient{
			Name:         *name,
			CNPJ:         *cnpj,
			Slug:         *slug,
			LogoURL:      *logo,
			ContactEmail: *email,
			ContactPhone: *phone,
		}
		if *config != "" {
			uc.Config = json.RawMessage(*config)
		}
		flagSet(fs, "min", func() { uc.DefaultMinPresencePct = minPct })
		c, err := cli.clients.Update(ctx, uc)
		if err != nil {
			return err
		}
		cli.printClient(c)
		return nil

	default:
		cli.printUsage()
		return errHelp
	}
}

// flagSet calls fn when the named flag was given on the command line.
func flagSet(fs *flag.FlagSet, name string, fn func()) {
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			fn()
		}
	})
}

func (cli *commandLine) printClient(c client.Client) {
	fmt.Fprintf(cli.out, "%s (%s)\n", c.Name, c.Slug)
	fmt.Fprintf(cli.out, "  cnpj: %s\n", c.CNPJ)
	fmt.Fprintf(cli.out, "  contact: %s %s\n", c.ContactEmail, core.MaskPhone(c.ContactPhone))
	fmt.Fprintf(cli.out, "  default minimum attendance: %d%%\n", c.DefaultMinPresencePct)
	fmt.Fprintf(cli.out, "  config: %s\n", string(c.Config))
}
