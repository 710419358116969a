package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"golang.org/x/term"

	"github.com/SotorivaXL/academic-event-manag-main/core"
	"github.com/SotorivaXL/academic-event-manag-main/core/attendance"
	"github.com/SotorivaXL/academic-event-manag-main/core/auth"
	"github.com/SotorivaXL/academic-event-manag-main/core/certificate"
	"github.com/SotorivaXL/academic-event-manag-main/core/client"
	"github.com/SotorivaXL/academic-event-manag-main/core/enrollment"
	"github.com/SotorivaXL/academic-event-manag-main/core/event"
	"github.com/SotorivaXL/academic-event-manag-main/core/mirror"
	"github.com/SotorivaXL/academic-event-manag-main/core/student"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp        = errors.New("help provided")
	errNotLoggedIn = errors.New("not logged in: run `dashboard login -username EMAIL` first")
)

type commandLine struct {
	conf        *core.Config
	logger      core.Logger
	session     *auth.Session
	events      *event.Service
	students    *student.Service
	enrollments *enrollment.Service
	clients     *client.Service
	state       *mirror.State
	guard       *mirror.Guard
	recorder    *attendance.Recorder
	engine      *certificate.Engine
	out         io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  login -username EMAIL                         - log in (the password is prompted)")
	fmt.Fprintln(cli.out, "  logout | whoami")
	fmt.Fprintln(cli.out, "  events                                        - list events and their days")
	fmt.Fprintln(cli.out, "  event create|update|show|delete [flags]       - manage one event")
	fmt.Fprintln(cli.out, "  day add|update|delete -event ID [flags]       - manage the days (sessions) of an event")
	fmt.Fprintln(cli.out, "  students [-query Q] [-page N] [-size N]       - search students")
	fmt.Fprintln(cli.out, "  student add|update|delete [flags]             - manage one student")
	fmt.Fprintln(cli.out, "  enrollments -event ID                         - list the enrollments of an event")
	fmt.Fprintln(cli.out, "  enroll -event ID -student ID | cancel -id ID  - enroll a student, cancel an enrollment")
	fmt.Fprintln(cli.out, "  qr -enrollment ID -out FILE.png               - save the QR code of an enrollment")
	fmt.Fprintln(cli.out, "  checkin -event ID -session ID -code QR        - record a check-in or check-out")
	fmt.Fprintln(cli.out, "  stats -event ID                               - attendance statistics of an event")
	fmt.Fprintln(cli.out, "  report -event ID -out FILE.xlsx               - export the attendance spreadsheet")
	fmt.Fprintln(cli.out, "  certificates preview|issue -event ID          - preview or batch issue certificates")
	fmt.Fprintln(cli.out, "  certificates summary | revoke -id ID")
	fmt.Fprintln(cli.out, "  client show | client update [flags]           - institution settings")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	cmd, rest := args[1], args[2:]
	if cmd == "login" {
		return cli.loginCmd(rest)
	}
	if cmd == "logout" {
		cli.session.Logout()
		cli.state.Clear()
		fmt.Fprintln(cli.out, "logged out")
		return nil
	}

	if !cli.session.Restore() {
		return errNotLoggedIn
	}

	switch cmd {
	case "whoami":
		return cli.whoami()
	case "events":
		return cli.listEvents()
	case "event":
		return cli.eventCmd(rest)
	case "day":
		return cli.dayCmd(rest)
	case "students":
		return cli.listStudents(rest)
	case "student":
		return cli.studentCmd(rest)
	case "enrollments":
		return cli.listEnrollments(rest)
	case "enroll":
		return cli.enroll(rest)
	case "cancel":
		return cli.cancel(rest)
	case "qr":
		return cli.qr(rest)
	case "checkin":
		return cli.checkIn(rest)
	case "stats":
		return cli.stats(rest)
	case "report":
		return cli.report(rest)
	case "certificates":
		return cli.certificatesCmd(rest)
	case "client":
		return cli.clientCmd(rest)
	default:
		cli.printUsage()
		return errHelp
	}
}

// subcommand splits "<name> [flags]" for commands with actions.
func subcommand(args []string) (string, []string) {
	if len(args) == 0 {
		return "", nil
	}
	return args[0], args[1:]
}

// parse parses args into fs; missing required flags print the flag set usage.
func parse(fs *flag.FlagSet, args []string, required ...*string) error {
	if err := fs.Parse(args); err != nil {
		return err
	}
	for _, r := range required {
		if strings.TrimSpace(*r) == "" {
			fs.Usage()
			return errHelp
		}
	}
	return nil
}

func newFlagSet(name string, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)
	return fs
}

func (cli *commandLine) table() *tabwriter.Writer {
	return tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
}

// describe renders err on a single line.
func describe(err error) string {
	var vErr *core.ValidationError
	if errors.As(err, &vErr) && len(vErr.Fields) > 0 {
		msgs := make([]string, len(vErr.Fields))
		for i, f := range vErr.Fields {
			msgs[i] = f.Field + ": " + f.Error
		}
		return strings.Join(msgs, "; ")
	}
	return err.Error()
}
