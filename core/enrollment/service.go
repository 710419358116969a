package enrollment

import (
	"context"
	"net/http"

	"github.com/pkg/errors"

	"github.com/SotorivaXL/academic-event-manag-main/core"
)

// Repository is the remote store of enrollments.
type Repository interface {
	ListEnrollments(ctx context.Context, eventID string) ([]Enrollment, error)
	Enroll(ctx context.Context, eventID string, ne NewEnrollment) (Enrollment, error)
	CancelEnrollment(ctx context.Context, id string) (Enrollment, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns the enrollments of an event; no event selected means no enrollments.
func (svc *Service) List(ctx context.Context, eventID string) ([]Enrollment, error) {
	if eventID == "" {
		return []Enrollment{}, nil
	}
	enrollments, err := svc.repo.ListEnrollments(ctx, eventID)
	return enrollments, errors.Wrap(err, "listing enrollments")
}

// Enroll enrolls a student. Enrolling again returns the existing enrollment, reactivating it when it
// was cancelled.
func (svc *Service) Enroll(ctx context.Context, eventID, studentID string) (Enrollment, error) {
	if eventID == "" || studentID == "" {
		return Enrollment{}, core.NewValidationError(core.ErrSelectionRequired)
	}
	e, err := svc.repo.Enroll(ctx, eventID, NewEnrollment{
		StudentID:            studentID,
		Idempotent:           true,
		ReactivateIfCanceled: true,
	})
	if err != nil {
		if core.APIStatus(err) == http.StatusNotFound {
			return Enrollment{}, core.NewNotFoundError("event or student", eventID+"/"+studentID)
		}
		return Enrollment{}, errors.Wrap(err, "enrolling student")
	}
	return e, nil
}

func (svc *Service) Cancel(ctx context.Context, id string) (Enrollment, error) {
	e, err := svc.repo.CancelEnrollment(ctx, id)
	if err != nil {
		if core.APIStatus(err) == http.StatusNotFound {
			return Enrollment{}, core.NewNotFoundError("enrollment", id)
		}
		return Enrollment{}, errors.Wrap(err, "cancelling enrollment")
	}
	return e, nil
}
