package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

type enrollRequest struct {
	StudentID            int64 `json:"student_id" validate:"required"`
	Idempotent           bool  `json:"idempotent"`
	ReactivateIfCanceled bool  `json:"reactivate_if_canceled"`
}

func (api *resourceApi) registerEnrollments(g *echo.Group) {
	g.GET("/enrollments", api.listEnrollments)
	g.POST("/events/:id/enrollments", api.enroll)
	g.POST("/enrollments/:id/cancel", api.cancelEnrollment)
}

// listEnrollments lists every enrollment, or those of event_id when given.
func (api *resourceApi) listEnrollments(ctx echo.Context) error {
	var eventID int64
	if v := ctx.QueryParam("event_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fieldError("event_id", "event_id must be a number")
		}
		eventID = id
	}
	return ctx.JSON(http.StatusOK, api.db.ListEnrollments(eventID))
}

func (api *resourceApi) enroll(ctx echo.Context) error {
	eventID, err := idParam(ctx, "id")
	if err != nil {
		return err
	}
	var data enrollRequest
	if err = api.bind(ctx, &data); err != nil {
		return err
	}

	e, isNew, err := api.db.Enroll(eventID, data.StudentID, data.Idempotent, data.ReactivateIfCanceled)
	if err != nil {
		return err
	}
	if isNew {
		return created(ctx, e)
	}
	return ctx.JSON(http.StatusOK, e)
}

func (api *resourceApi) cancelEnrollment(ctx echo.Context) error {
	id, err := idParam(ctx, "id")
	if err != nil {
		return err
	}
	e, err := api.db.CancelEnrollment(id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, e)
}
