package restapi

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/SotorivaXL/academic-event-manag-main/core"
	"github.com/SotorivaXL/academic-event-manag-main/core/enrollment"
)

var _ enrollment.Repository = (*Client)(nil)

func (c *Client) ListEnrollments(ctx context.Context, eventID string) ([]enrollment.Enrollment, error) {
	var res []apiEnrollment
	if err := c.get(ctx, "/enrollments", url.Values{"event_id": {eventID}}, &res); err != nil {
		return nil, err
	}
	enrollments := make([]enrollment.Enrollment, len(res))
	for i, a := range res {
		enrollments[i] = a.enrollment(time.Now)
	}
	return enrollments, nil
}

func (c *Client) Enroll(ctx context.Context, eventID string, ne enrollment.NewEnrollment) (enrollment.Enrollment, error) {
	studentID, err := strconv.ParseInt(ne.StudentID, 10, 64)
	if err != nil {
		return enrollment.Enrollment{}, core.NewValidationError(err, core.FieldError{Field: "student_id", Error: "invalid student id"})
	}
	var res apiEnrollment
	err = c.write(ctx, http.MethodPost, eventPath(eventID)+"/enrollments", enrollRequest{
		StudentID:            studentID,
		Idempotent:           ne.Idempotent,
		ReactivateIfCanceled: ne.ReactivateIfCanceled,
	}, &res)
	if err != nil {
		return enrollment.Enrollment{}, err
	}
	return res.enrollment(time.Now), nil
}

func (c *Client) CancelEnrollment(ctx context.Context, id string) (enrollment.Enrollment, error) {
	var res apiEnrollment
	if err := c.write(ctx, http.MethodPost, "/enrollments/"+escape(id)+"/cancel", nil, &res); err != nil {
		return enrollment.Enrollment{}, err
	}
	return res.enrollment(time.Now), nil
}
