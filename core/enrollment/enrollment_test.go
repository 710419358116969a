package enrollment

import (
	"bytes"
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/SotorivaXL/academic-event-manag-main/core"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in   string
		want Status
	}{
		{"confirmed", StatusConfirmed},
		{" Confirmed ", StatusConfirmed},
		{"waitlist", StatusWaitlist},
		{"cancelled", StatusCancelled},
		{"canceled", StatusCancelled},
		{"pending", StatusPending},
		{"", StatusPending},
		{"whatever", StatusPending},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseStatus(tt.in))
		})
	}
}

func TestConfirmedAndByQRCode(t *testing.T) {
	enrollments := []Enrollment{
		{ID: "1", EventID: "e1", Status: StatusConfirmed, QRCode: "QR-1"},
		{ID: "2", EventID: "e1", Status: StatusPending, QRCode: "QR-2"},
		{ID: "3", EventID: "e2", Status: StatusConfirmed, QRCode: "QR-3"},
		{ID: "4", EventID: "e1", Status: StatusConfirmed, QRCode: "QR-4"},
	}

	conf := Confirmed(enrollments, "e1")
	if assert.Len(t, conf, 2) {
		assert.Equal(t, "1", conf[0].ID)
		assert.Equal(t, "4", conf[1].ID)
	}

	e, ok := ByQRCode(enrollments, "e1", " QR-4 ")
	assert.True(t, ok)
	assert.Equal(t, "4", e.ID)

	_, ok = ByQRCode(enrollments, "e1", "QR-2")
	assert.False(t, ok, "pending enrollments cannot check in")
	_, ok = ByQRCode(enrollments, "e1", "QR-3")
	assert.False(t, ok, "other event")
	_, ok = ByQRCode(enrollments, "e1", "")
	assert.False(t, ok)
}

type fakeRepo struct {
	req NewEnrollment
	err error
}

func (r *fakeRepo) ListEnrollments(_ context.Context, eventID string) ([]Enrollment, error) {
	return []Enrollment{{ID: "1", EventID: eventID}}, r.err
}

func (r *fakeRepo) Enroll(_ context.Context, eventID string, ne NewEnrollment) (Enrollment, error) {
	r.req = ne
	if r.err != nil {
		return Enrollment{}, r.err
	}
	return Enrollment{ID: "1", EventID: eventID, StudentID: ne.StudentID, Status: StatusConfirmed}, nil
}

func (r *fakeRepo) CancelEnrollment(_ context.Context, id string) (Enrollment, error) {
	if r.err != nil {
		return Enrollment{}, r.err
	}
	return Enrollment{ID: id, Status: StatusCancelled}, nil
}

func TestService(t *testing.T) {
	repo := new(fakeRepo)
	svc := NewService(repo)
	ctx := context.Background()

	list, err := svc.List(ctx, "")
	assert.NoError(t, err)
	assert.Empty(t, list)

	_, err = svc.Enroll(ctx, "", "s1")
	assert.True(t, core.IsValidation(err))

	e, err := svc.Enroll(ctx, "e1", "s1")
	assert.NoError(t, err)
	assert.Equal(t, StatusConfirmed, e.Status)
	assert.Equal(t, NewEnrollment{StudentID: "s1", Idempotent: true, ReactivateIfCanceled: true}, repo.req)

	e, err = svc.Cancel(ctx, "1")
	assert.NoError(t, err)
	assert.Equal(t, StatusCancelled, e.Status)

	repo.err = core.NewAPIError(404, "")
	_, err = svc.Cancel(ctx, "9")
	assert.True(t, core.IsNotFound(err))
	_, err = svc.Enroll(ctx, "e9", "s1")
	assert.True(t, core.IsNotFound(err))
}

func TestQRCodePNG(t *testing.T) {
	_, err := QRCodePNG(Enrollment{ID: "1"}, 0)
	assert.Error(t, err)

	png, err := QRCodePNG(Enrollment{ID: "1", QRCode: "ENR-1-abc"}, 0)
	assert.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))

	dir, err := ioutil.TempDir("", "qr")
	if !assert.NoError(t, err) {
		return
	}
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "1.png")
	assert.NoError(t, WriteQRCode(Enrollment{ID: "1", QRCode: "ENR-1-abc"}, 128, path))
	_, err = os.Stat(path)
	assert.NoError(t, err)
}
