package certpdf

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/SotorivaXL/academic-event-manag-main/core/certificate"
	"github.com/SotorivaXL/academic-event-manag-main/core/event"
	"github.com/SotorivaXL/academic-event-manag-main/core/student"
)

func document() Document {
	return Document{
		Certificate: certificate.Certificate{
			ID:               "c1",
			IssuedAt:         time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			VerificationCode: "AB12CD34",
			Status:           certificate.StatusIssued,
		},
		Student:        student.Student{Name: "João Conceição"},
		Event:          event.Event{Title: "Semana Acadêmica", StartDate: "2024-05-01", EndDate: "2024-05-03T18:00:00Z"},
		AttendanceRate: 75,
		Issuer:         "Universidade Demo",
	}
}

func TestWorkloadHours(t *testing.T) {
	d := document()
	d.Event.Days = make([]event.Day, 3)
	assert.Equal(t, 6, d.WorkloadHours())

	d.Event.WorkloadHours = 4
	assert.Equal(t, 4, d.WorkloadHours())
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "01/05/2024", formatDate("2024-05-01"))
	assert.Equal(t, "03/05/2024", formatDate("2024-05-03T18:00:00Z"))
	assert.Equal(t, "amanhã", formatDate("amanhã"))
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, Render(&buf, document()))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestWriteFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "certpdf")
	if !assert.NoError(t, err) {
		return
	}
	defer os.RemoveAll(dir)

	path, err := WriteFile(filepath.Join(dir, "out"), document())
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "out", "c1.pdf"), path)
	info, err := os.Stat(path)
	if assert.NoError(t, err) {
		assert.True(t, info.Size() > 0)
	}

	d := document()
	d.Certificate.ID = ""
	_, err = WriteFile(dir, d)
	assert.Error(t, err)
}
