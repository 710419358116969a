package main

import (
	"context"
	"fmt"

	"github.com/SotorivaXL/academic-event-manag-main/core"
	"github.com/SotorivaXL/academic-event-manag-main/core/student"
)

func (cli *commandLine) listStudents(args []string) error {
	fs := newFlagSet("students", cli.out)
	query := fs.String("query", "", "Name, CPF or RA to search for.")
	page := fs.Int("page", 1, "Page number.")
	size := fs.Int("size", 10, "Page size.")
	if err := parse(fs, args); err != nil {
		return err
	}

	ticket := cli.guard.Begin("students")
	found, err := cli.students.List(context.Background(), *query, *page, *size)
	if err != nil {
		return err
	}
	if err = cli.guard.Commit(ticket, func() {
		for _, s := range found {
			cli.state.PutStudent(s)
		}
	}); err != nil {
		return err
	}

	w := cli.table()
	fmt.Fprintln(w, "ID\tNAME\tCPF\tRA\tEMAIL")
	for _, s := range found {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", s.ID, s.Name, core.MaskCPF(s.CPF), s.RA, s.Email)
	}
	return w.Flush()
}

func (cli *commandLine) studentCmd(args []string) error {
	ctx := context.Background()
	action, rest := subcommand(args)

	fs := newFlagSet("student "+action, cli.out)
	id := fs.String("id", "", "Student id.")
	name := fs.String("name", "", "Full name.")
	email := fs.String("email", "", "Email.")
	cpf := fs.String("cpf", "", "CPF, with or without mask.")
	ra := fs.String("ra", "", "Academic registry (RA).")
	phone := fs.String("phone", "", "Phone, with or without mask.")

	switch action {
	case "add":
		if err := parse(fs, rest); err != nil {
			return err
		}
		s, err := cli.students.Create(ctx, student.NewStudent{Name: *name, Email: *email, CPF: *cpf, RA: *ra, Phone: *phone})
		if err != nil {
			return err
		}
		cli.state.PutStudent(s)
		fmt.Fprintf(cli.out, "student %s created\n", s.ID)
		return nil

	case "update":
		if err := parse(fs, rest, id); err != nil {
			return err
		}
		s, err := cli.students.Update(ctx, *id, student.UpdateStudent{Name: *name, Email: *email, CPF: *cpf, RA: *ra, Phone: *phone})
		if err != nil {
			return err
		}
		cli.state.PutStudent(s)
		fmt.Fprintf(cli.out, "student %s updated\n", s.ID)
		return nil

	case "delete":
		if err := parse(fs, rest, id); err != nil {
			return err
		}
		if err := cli.students.Delete(ctx, *id); err != nil {
			return err
		}
		cli.state.DeleteStudent(*id)
		fmt.Fprintf(cli.out, "student %s deleted\n", *id)
		return nil

	default:
		cli.printUsage()
		return errHelp
	}
}
