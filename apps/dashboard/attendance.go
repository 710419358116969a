package main

import (
	"context"
	"fmt"

	"github.com/SotorivaXL/academic-event-manag-main/core/attendance"
	"github.com/SotorivaXL/academic-event-manag-main/core/event"
	"github.com/SotorivaXL/academic-event-manag-main/services/report"
)

func sessionIDs(ev event.Event) []string {
	ids := make([]string, len(ev.Days))
	for i, d := range ev.Days {
		ids[i] = d.ID
	}
	return ids
}

// eventData loads an event and its enrollments, falling back to the mirrored enrollments when the
// backend cannot be reached.
func (cli *commandLine) eventData(ctx context.Context, eventID string) (event.Event, error) {
	ev, err := cli.localEvent(ctx, eventID)
	if err != nil {
		return event.Event{}, err
	}
	if _, err = cli.syncEnrollments(ctx, eventID); err != nil {
		cli.logger.Warn("reloading enrollments of event "+eventID+", using the local copy", err)
	}
	return ev, nil
}

func (cli *commandLine) checkIn(args []string) error {
	fs := newFlagSet("checkin", cli.out)
	eventID := fs.String("event", "", "Event id.")
	sessionID := fs.String("session", "", "Day (session) id.")
	code := fs.String("code", "", "Scanned QR code.")
	if err := parse(fs, args); err != nil {
		return err
	}

	if *eventID != "" {
		ev, err := cli.eventData(context.Background(), *eventID)
		if err != nil {
			return err
		}
		if *sessionID != "" {
			if _, ok := ev.Day(*sessionID); !ok {
				return fmt.Errorf("session %s does not belong to event %s", *sessionID, ev.ID)
			}
		}
	}

	snap := cli.state.Snapshot()
	res, err := cli.recorder.CheckIn(attendance.Scan{EventID: *eventID, SessionID: *sessionID, QRCode: *code}, snap.Enrollments, snap.Attendances)
	if err != nil {
		return err
	}
	cli.state.PutAttendance(res.Attendance)

	who := res.Enrollment.StudentID
	if name := cli.studentName(who); name != "" {
		who = name
	}
	switch res.Kind {
	case attendance.KindCheckOut:
		fmt.Fprintf(cli.out, "check-out: %s at %s\n", who, res.Attendance.CheckedOutAt.Format("15:04:05"))
	default:
		fmt.Fprintf(cli.out, "check-in: %s at %s\n", who, res.Attendance.CheckedInAt.Format("15:04:05"))
	}
	return nil
}

func (cli *commandLine) stats(args []string) error {
	fs := newFlagSet("stats", cli.out)
	eventID := fs.String("event", "", "Event id.")
	if err := parse(fs, args, eventID); err != nil {
		return err
	}

	ev, err := cli.eventData(context.Background(), *eventID)
	if err != nil {
		return err
	}
	snap := cli.state.Snapshot()
	st := attendance.EventStats(ev.ID, sessionIDs(ev), snap.Enrollments, snap.Attendances)

	fmt.Fprintf(cli.out, "%s\n", ev.Title)
	fmt.Fprintf(cli.out, "enrolled: %d  attendances: %d  attendance rate: %d%%\n", st.Enrolled, st.TotalAttendances, st.Rate)
	w := cli.table()
	fmt.Fprintln(w, "SESSION\tDATE\tATTENDANCES\tRATE")
	for _, s := range st.Sessions {
		d, _ := ev.Day(s.SessionID)
		fmt.Fprintf(w, "%s\t%s %s\t%d\t%d%%\n", s.SessionID, d.Date, d.StartTime, s.Attendances, s.Rate)
	}
	return w.Flush()
}

func (cli *commandLine) report(args []string) error {
	fs := newFlagSet("report", cli.out)
	eventID := fs.String("event", "", "Event id.")
	out := fs.String("out", "", "Spreadsheet file to write (.xlsx).")
	if err := parse(fs, args, eventID, out); err != nil {
		return err
	}

	ev, err := cli.eventData(context.Background(), *eventID)
	if err != nil {
		return err
	}
	if err = report.SaveAttendance(*out, ev, cli.state.CertificateData()); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "attendance report saved to %s\n", *out)
	return nil
}
