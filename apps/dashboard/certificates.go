package main

import (
	"context"
	"fmt"

	"github.com/SotorivaXL/academic-event-manag-main/core/attendance"
	"github.com/SotorivaXL/academic-event-manag-main/core/certificate"
	"github.com/SotorivaXL/academic-event-manag-main/core/event"
	"github.com/SotorivaXL/academic-event-manag-main/services/certpdf"
)

// loadStudents fetches the students of the event's enrollments that are not mirrored yet.
func (cli *commandLine) loadStudents(ctx context.Context, eventID string) {
	snap := cli.state.Snapshot()
	known := make(map[string]struct{}, len(snap.Students))
	for _, s := range snap.Students {
		known[s.ID] = struct{}{}
	}
	for _, e := range snap.Enrollments {
		if e.EventID != eventID {
			continue
		}
		if _, ok := known[e.StudentID]; ok {
			continue
		}
		s, err := cli.students.Get(ctx, e.StudentID)
		if err != nil {
			cli.logger.Warn("loading student "+e.StudentID, err)
			continue
		}
		cli.state.PutStudent(s)
		known[s.ID] = struct{}{}
	}
}

func (cli *commandLine) certificatesCmd(args []string) error {
	ctx := context.Background()
	action, rest := subcommand(args)

	fs := newFlagSet("certificates "+action, cli.out)
	eventID := fs.String("event", "", "Event id.")
	id := fs.String("id", "", "Certificate id or verification code.")

	switch action {
	case "preview":
		if err := parse(fs, rest, eventID); err != nil {
			return err
		}
		ev, err := cli.eventData(ctx, *eventID)
		if err != nil {
			return err
		}
		cli.loadStudents(ctx, ev.ID)
		return cli.preview(ev)

	case "issue":
		if err := parse(fs, rest); err != nil {
			return err
		}
		var ev event.Event
		if *eventID != "" {
			var err error
			if ev, err = cli.eventData(ctx, *eventID); err != nil {
				return err
			}
			cli.loadStudents(ctx, ev.ID)
		}
		return cli.issue(ctx, *eventID)

	case "summary":
		if err := parse(fs, rest); err != nil {
			return err
		}
		s := certificate.Summarize(cli.state.CertificateData())
		fmt.Fprintf(cli.out, "certificates: %d  issued: %d\n", s.Total, s.Issued)
		fmt.Fprintf(cli.out, "events with certificates: %d of %d active\n", s.EventsWithCertificates, s.AvailableEvents)
		fmt.Fprintf(cli.out, "certification rate: %d%%\n", s.CertificationRate)
		return nil

	case "revoke":
		if err := parse(fs, rest, id); err != nil {
			return err
		}
		c, ok := cli.state.Certificate(*id)
		if !ok {
			return fmt.Errorf("certificate %s not found", *id)
		}
		c, err := certificate.Revoke(c)
		if err != nil {
			return err
		}
		cli.state.PutCertificate(c)
		fmt.Fprintf(cli.out, "certificate %s revoked\n", c.VerificationCode)
		return nil

	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) preview(ev event.Event) error {
	candidates := cli.engine.Candidates(ev.ID, cli.state.CertificateData())
	fmt.Fprintf(cli.out, "%s (minimum attendance %d%%)\n", ev.Title, ev.MinAttendancePercentage)

	w := cli.table()
	fmt.Fprintln(w, "ENROLLMENT\tSTUDENT\tATTENDED\tRATE\tELIGIBLE\tCERTIFICATE")
	for _, c := range candidates {
		eligible := "no"
		if c.Eligible {
			eligible = "yes"
		}
		cert := "-"
		if c.HasCertificate() {
			cert = fmt.Sprintf("%s (%s)", c.Certificate.VerificationCode, c.Certificate.Status)
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d%%\t%s\t%s\n", c.Enrollment.ID, c.Student.Name, c.Attended, c.AttendanceRate, eligible, cert)
	}
	return w.Flush()
}

// issue batch issues the certificates of an event, rendering each one to PDF as it is created.
func (cli *commandLine) issue(ctx context.Context, eventID string) error {
	var issuer string
	if c, err := cli.clients.Current(ctx); err == nil {
		issuer = c.Name
	}

	data := cli.state.CertificateData()
	var renderErrs int
	count, err := cli.engine.BatchGenerate(eventID, data, func(c certificate.Certificate) {
		doc, ok := document(data, c, issuer)
		if ok {
			path, err := certpdf.WriteFile(cli.conf.Dashboard.CertificatesDir, doc)
			if err != nil {
				cli.logger.Error("rendering certificate "+c.ID, err)
				renderErrs++
			}
			c.PDFPath = path
		}
		cli.state.PutCertificate(c)
		fmt.Fprintf(cli.out, "issued %s to %s\n", c.VerificationCode, doc.Student.Name)
	})
	if err != nil {
		return err
	}

	if count == 0 {
		fmt.Fprintln(cli.out, "no certificates were generated: check the eligibility criteria")
		return nil
	}
	fmt.Fprintf(cli.out, "%d certificate(s) issued\n", count)
	if renderErrs > 0 {
		return fmt.Errorf("%d certificate PDF(s) could not be rendered", renderErrs)
	}
	return nil
}

// document gathers what is printed on certificate c.
func document(data certificate.Data, c certificate.Certificate, issuer string) (certpdf.Document, bool) {
	doc := certpdf.Document{Certificate: c, Issuer: issuer}
	var eventID, studentID string
	for _, e := range data.Enrollments {
		if e.ID == c.EnrollmentID {
			eventID, studentID = e.EventID, e.StudentID
			break
		}
	}
	for _, ev := range data.Events {
		if ev.ID == eventID {
			doc.Event = ev
		}
	}
	for _, s := range data.Students {
		if s.ID == studentID {
			doc.Student = s
		}
	}
	doc.AttendanceRate = attendance.Percentage(attendance.ForEnrollment(data.Attendances, c.EnrollmentID))
	return doc, doc.Event.ID != "" && doc.Student.ID != ""
}
