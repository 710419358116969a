package student

import (
	"context"
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/SotorivaXL/academic-event-manag-main/core"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// Repository is the remote store of students.
type Repository interface {
	ListStudents(ctx context.Context, query string, page, size int) ([]Student, error)
	GetStudent(ctx context.Context, id string) (Student, error)
	CreateStudent(ctx context.Context, ns NewStudent) (Student, error)
	UpdateStudent(ctx context.Context, id string, us UpdateStudent) (Student, error)
	DeleteStudent(ctx context.Context, id string) error
}

type Service struct {
	repo       Repository
	validate   *validator.Validate
	translator ut.Translator
}

func NewService(repo Repository, validate *validator.Validate, translator ut.Translator) *Service {
	return &Service{repo: repo, validate: validate, translator: translator}
}

// List searches students by name, CPF or RA. Page and size below 1 fall back to the defaults.
func (svc *Service) List(ctx context.Context, query string, page, size int) ([]Student, error) {
	if page < 1 {
		page = DefaultPage
	}
	if size < 1 {
		size = DefaultPageSize
	}
	students, err := svc.repo.ListStudents(ctx, core.CleanString(query), page, size)
	return students, errors.Wrap(err, "listing students")
}

func (svc *Service) Get(ctx context.Context, id string) (Student, error) {
	s, err := svc.repo.GetStudent(ctx, id)
	if err != nil {
		if core.APIStatus(err) == http.StatusNotFound {
			return Student{}, core.NewNotFoundError("student", id)
		}
		return Student{}, errors.Wrap(err, "getting student")
	}
	return s, nil
}

func (svc *Service) Create(ctx context.Context, ns NewStudent) (Student, error) {
	ns.Clean()
	if err := core.NewFieldErrors(svc.validate.Struct(ns), svc.translator); err != nil {
		return Student{}, err
	}
	s, err := svc.repo.CreateStudent(ctx, ns)
	return s, errors.Wrap(err, "creating student")
}

func (svc *Service) Update(ctx context.Context, id string, us UpdateStudent) (Student, error) {
	us.Clean()
	if err := core.NewFieldErrors(svc.validate.Struct(us), svc.translator); err != nil {
		return Student{}, err
	}
	s, err := svc.repo.UpdateStudent(ctx, id, us)
	if err != nil {
		if core.APIStatus(err) == http.StatusNotFound {
			return Student{}, core.NewNotFoundError("student", id)
		}
		return Student{}, errors.Wrap(err, "updating student")
	}
	return s, nil
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	return errors.Wrap(svc.repo.DeleteStudent(ctx, id), "deleting student")
}
