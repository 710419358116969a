package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/SotorivaXL/academic-event-manag-main/core"
	inmemdb "github.com/SotorivaXL/academic-event-manag-main/storage/inmem"
)

const defaultPageSize = 10

type (
	studentRequest struct {
		Name  string `json:"name" validate:"required"`
		Email string `json:"email" validate:"omitempty,email"`
		CPF   string `json:"cpf" validate:"required,cpf"`
		RA    string `json:"ra" validate:"required"`
		Phone string `json:"phone" validate:"omitempty,phone"`
	}

	studentPatch struct {
		Name  string `json:"name"`
		Email string `json:"email" validate:"omitempty,email"`
		CPF   string `json:"cpf" validate:"omitempty,cpf"`
		RA    string `json:"ra"`
		Phone string `json:"phone" validate:"omitempty,phone"`
	}

	studentPage struct {
		Data  []inmemdb.Student `json:"data"`
		Total int               `json:"total"`
		Page  int               `json:"page"`
		Size  int               `json:"size"`
	}
)

func (api *resourceApi) registerStudents(g *echo.Group) {
	sg := g.Group("/students")
	sg.GET("", api.listStudents)
	sg.POST("", api.createStudent)
	sg.GET("/:id", api.getStudent)
	sg.PUT("/:id", api.updateStudent)
	sg.DELETE("/:id", api.deleteStudent)
}

func (api *resourceApi) listStudents(ctx echo.Context) error {
	page := intQuery(ctx, "page", 1)
	if page < 1 {
		page = 1
	}
	size := intQuery(ctx, "size", defaultPageSize)
	if size < 1 {
		size = defaultPageSize
	}

	found, total := api.db.SearchStudents(ctx.QueryParam("query"), page, size)
	return ctx.JSON(http.StatusOK, studentPage{Data: found, Total: total, Page: page, Size: size})
}

func (api *resourceApi) getStudent(ctx echo.Context) error {
	id, err := idParam(ctx, "id")
	if err != nil {
		return err
	}
	s, err := api.db.GetStudent(id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, s)
}

func (api *resourceApi) createStudent(ctx echo.Context) error {
	var data studentRequest
	if err := api.bind(ctx, &data); err != nil {
		return err
	}
	s, err := api.db.CreateStudent(inmemdb.Student{
		Name:  data.Name,
		Email: data.Email,
		CPF:   core.Digits(data.CPF),
		RA:    data.RA,
		Phone: core.Digits(data.Phone),
	})
	if err == inmemdb.ErrConflict {
		return fieldError("cpf", "a student with this CPF already exists")
	}
	if err != nil {
		return err
	}
	return created(ctx, s)
}

func (api *resourceApi) updateStudent(ctx echo.Context) error {
	id, err := idParam(ctx, "id")
	if err != nil {
		return err
	}
	var data studentPatch
	if err = api.bind(ctx, &data); err != nil {
		return err
	}
	s, err := api.db.GetStudent(id)
	if err != nil {
		return err
	}

	s.Name = orString(data.Name, s.Name)
	s.Email = orString(data.Email, s.Email)
	s.CPF = orString(core.Digits(data.CPF), s.CPF)
	s.RA = orString(data.RA, s.RA)
	s.Phone = orString(core.Digits(data.Phone), s.Phone)

	s, err = api.db.UpdateStudent(s)
	if err == inmemdb.ErrConflict {
		return fieldError("cpf", "a student with this CPF already exists")
	}
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, s)
}

func (api *resourceApi) deleteStudent(ctx echo.Context) error {
	id, err := idParam(ctx, "id")
	if err != nil {
		return err
	}
	if err = api.db.DeleteStudent(id); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}
