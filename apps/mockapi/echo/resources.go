package echoapi

import (
	"net/http"
	"strconv"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/SotorivaXL/academic-event-manag-main/core"
	inmemdb "github.com/SotorivaXL/academic-event-manag-main/storage/inmem"
)

type resourceApi struct {
	db         *inmemdb.DB
	validate   *validator.Validate
	translator ut.Translator
}

// bind decodes the request body into data and validates it.
func (api *resourceApi) bind(ctx echo.Context, data interface{}) error {
	if err := ctx.Bind(data); err != nil {
		return errors.Wrapf(err, "binding to %T", data)
	}
	if err := api.validate.Struct(data); err != nil {
		return core.NewFieldErrors(err, api.translator)
	}
	return nil
}

func idParam(ctx echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, inmemdb.ErrNotFound
	}
	return id, nil
}

func intQuery(ctx echo.Context, name string, def int) int {
	if v, err := strconv.Atoi(ctx.QueryParam(name)); err == nil {
		return v
	}
	return def
}

func fieldError(field, msg string) error {
	return core.NewValidationError(errors.New("invalid data"), core.FieldError{Field: field, Error: msg})
}

func orString(v, cur string) string {
	if v != "" {
		return v
	}
	return cur
}

func orInt(v, cur int) int {
	if v != 0 {
		return v
	}
	return cur
}

func created(ctx echo.Context, v interface{}) error {
	return ctx.JSON(http.StatusCreated, v)
}
