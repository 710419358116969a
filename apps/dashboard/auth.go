package main

import (
	"context"
	"fmt"
	"syscall"
)

func (cli *commandLine) loginCmd(args []string) error {
	fs := newFlagSet("login", cli.out)
	username := fs.String("username", "", "The user's email. The password will be prompted next.")
	if err := parse(fs, args, username); err != nil {
		return err
	}

	fmt.Fprint(cli.out, "Enter password:")
	pwd, err := readPasswordFunc(int(syscall.Stdin))
	fmt.Fprintln(cli.out)
	if err != nil {
		return err
	}
	if len(pwd) == 0 {
		fs.Usage()
		return errHelp
	}

	usr, err := cli.session.Login(context.Background(), *username, string(pwd))
	if err != nil {
		return err
	}
	cli.state.Clear()
	fmt.Fprintf(cli.out, "logged in as %s (%s)\n", usr.Name, usr.Role)
	return nil
}

func (cli *commandLine) whoami() error {
	usr, ok := cli.session.CurrentUser()
	if !ok {
		return errNotLoggedIn
	}
	fmt.Fprintf(cli.out, "%s <%s> (%s)\n", usr.Name, usr.Email, usr.Role)
	return nil
}
