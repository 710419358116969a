package report

import (
	"io"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/SotorivaXL/academic-event-manag-main/core/attendance"
	"github.com/SotorivaXL/academic-event-manag-main/core/certificate"
	"github.com/SotorivaXL/academic-event-manag-main/core/event"
)

const (
	SheetParticipants = "Participantes"
	SheetSessions     = "Sessoes"
)

// Attendance builds the attendance workbook of an event: one row per confirmed participant with a
// column per session, and a sheet of per-session tallies. The caller closes the returned file.
func Attendance(ev event.Event, data certificate.Data) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetParticipants); err != nil {
		f.Close()
		return nil, errors.Wrap(err, "naming sheet")
	}
	if _, err := f.NewSheet(SheetSessions); err != nil {
		f.Close()
		return nil, errors.Wrap(err, "adding sheet")
	}
	if err := participants(f, ev, data); err != nil {
		f.Close()
		return nil, err
	}
	if err := sessions(f, ev, data); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func participants(f *excelize.File, ev event.Event, data certificate.Data) error {
	header := []interface{}{"Aluno", "CPF", "RA"}
	for _, d := range ev.Days {
		header = append(header, d.Date+" "+d.StartTime)
	}
	header = append(header, "Presenças", "% Presença", "Elegível", "Certificado")
	if err := writeHeader(f, SheetParticipants, header); err != nil {
		return err
	}

	for i, c := range certificate.NewEngine().Candidates(ev.ID, data) {
		records := attendance.ForEnrollment(data.Attendances, c.Enrollment.ID)
		row := []interface{}{c.Student.Name, c.Student.CPF, c.Student.RA}
		for _, d := range ev.Days {
			row = append(row, mark(records, d.ID))
		}
		eligible := "não"
		if c.Eligible {
			eligible = "sim"
		}
		code := ""
		if c.HasCertificate() && c.Certificate.IsIssued() {
			code = c.Certificate.VerificationCode
		}
		row = append(row, c.Attended, c.AttendanceRate, eligible, code)

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errors.Wrap(err, "locating row")
		}
		if err = f.SetSheetRow(SheetParticipants, cell, &row); err != nil {
			return errors.Wrap(err, "writing participant row")
		}
	}
	return errors.Wrap(f.SetColWidth(SheetParticipants, "A", "A", 32), "sizing columns")
}

// mark is the cell of one session: empty when absent, "entrada" while open, "completa" after check-out.
func mark(records []attendance.Attendance, sessionID string) string {
	for _, a := range records {
		if a.SessionID != sessionID {
			continue
		}
		if a.IsOpen() {
			return "entrada"
		}
		return "completa"
	}
	return ""
}

func sessions(f *excelize.File, ev event.Event, data certificate.Data) error {
	if err := writeHeader(f, SheetSessions, []interface{}{"Data", "Início", "Fim", "Sala", "Capacidade", "Presenças", "% Presença"}); err != nil {
		return err
	}
	ids := make([]string, len(ev.Days))
	for i, d := range ev.Days {
		ids[i] = d.ID
	}
	st := attendance.EventStats(ev.ID, ids, data.Enrollments, data.Attendances)
	for i, d := range ev.Days {
		row := []interface{}{d.Date, d.StartTime, d.EndTime, d.Room, d.Capacity, st.Sessions[i].Attendances, st.Sessions[i].Rate}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errors.Wrap(err, "locating row")
		}
		if err = f.SetSheetRow(SheetSessions, cell, &row); err != nil {
			return errors.Wrap(err, "writing session row")
		}
	}

	total := []interface{}{"Total", "", "", "", "", st.TotalAttendances, st.Rate}
	cell, err := excelize.CoordinatesToCellName(1, len(ev.Days)+2)
	if err != nil {
		return errors.Wrap(err, "locating row")
	}
	return errors.Wrap(f.SetSheetRow(SheetSessions, cell, &total), "writing totals")
}

func writeHeader(f *excelize.File, sheet string, header []interface{}) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return errors.Wrap(err, "writing header")
	}
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return errors.Wrap(err, "creating header style")
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return errors.Wrap(err, "locating header")
	}
	return errors.Wrap(f.SetCellStyle(sheet, "A1", last, style), "styling header")
}

// WriteAttendance writes the attendance workbook of ev to w.
func WriteAttendance(w io.Writer, ev event.Event, data certificate.Data) error {
	f, err := Attendance(ev, data)
	if err != nil {
		return err
	}
	defer f.Close()
	return errors.Wrap(f.Write(w), "writing workbook")
}

// SaveAttendance writes the attendance workbook of ev to path (.xlsx).
func SaveAttendance(path string, ev event.Event, data certificate.Data) error {
	f, err := Attendance(ev, data)
	if err != nil {
		return err
	}
	defer f.Close()
	return errors.Wrap(f.SaveAs(path), "saving workbook")
}
