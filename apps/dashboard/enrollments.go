package main

import (
	"context"
	"fmt"

	"github.com/SotorivaXL/academic-event-manag-main/core"
	"github.com/SotorivaXL/academic-event-manag-main/core/enrollment"
)

// syncEnrollments reloads the enrollments of an event into the local mirror.
func (cli *commandLine) syncEnrollments(ctx context.Context, eventID string) ([]enrollment.Enrollment, error) {
	ticket := cli.guard.Begin("enrollments:" + eventID)
	list, err := cli.enrollments.List(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err = cli.guard.Commit(ticket, func() { cli.state.SetEnrollments(eventID, list) }); err != nil {
		return nil, err
	}
	return list, nil
}

func (cli *commandLine) studentName(id string) string {
	for _, s := range cli.state.Snapshot().Students {
		if s.ID == id {
			return s.Name
		}
	}
	return ""
}

func (cli *commandLine) listEnrollments(args []string) error {
	fs := newFlagSet("enrollments", cli.out)
	eventID := fs.String("event", "", "Event id.")
	if err := parse(fs, args, eventID); err != nil {
		return err
	}

	list, err := cli.syncEnrollments(context.Background(), *eventID)
	if err != nil {
		return err
	}
	w := cli.table()
	fmt.Fprintln(w, "ID\tSTUDENT\tSTATUS\tQR CODE\tENROLLED AT")
	for _, e := range list {
		student := e.StudentID
		if name := cli.studentName(e.StudentID); name != "" {
			student += " " + name
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", e.ID, student, e.Status, e.QRCode, e.EnrolledAt.Format("02/01/2006 15:04"))
	}
	return w.Flush()
}

func (cli *commandLine) enroll(args []string) error {
	fs := newFlagSet("enroll", cli.out)
	eventID := fs.String("event", "", "Event id.")
	studentID := fs.String("student", "", "Student id.")
	if err := parse(fs, args); err != nil {
		return err
	}

	e, err := cli.enrollments.Enroll(context.Background(), *eventID, *studentID)
	if err != nil {
		return err
	}
	cli.state.PutEnrollment(e)
	fmt.Fprintf(cli.out, "enrollment %s: %s (qr %s)\n", e.ID, e.Status, e.QRCode)
	return nil
}

func (cli *commandLine) cancel(args []string) error {
	fs := newFlagSet("cancel", cli.out)
	id := fs.String("id", "", "Enrollment id.")
	if err := parse(fs, args, id); err != nil {
		return err
	}

	e, err := cli.enrollments.Cancel(context.Background(), *id)
	if err != nil {
		return err
	}
	cli.state.PutEnrollment(e)
	fmt.Fprintf(cli.out, "enrollment %s cancelled\n", e.ID)
	return nil
}

func (cli *commandLine) qr(args []string) error {
	fs := newFlagSet("qr", cli.out)
	id := fs.String("enrollment", "", "Enrollment id (list the event enrollments first).")
	out := fs.String("out", "", "PNG file to write.")
	size := fs.Int("size", enrollment.QRSize, "Image size in pixels.")
	if err := parse(fs, args, id, out); err != nil {
		return err
	}

	for _, e := range cli.state.Snapshot().Enrollments {
		if e.ID != *id {
			continue
		}
		if err := enrollment.WriteQRCode(e, *size, *out); err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "qr code of enrollment %s saved to %s\n", e.ID, *out)
		return nil
	}
	return core.NewNotFoundError("enrollment", *id)
}
