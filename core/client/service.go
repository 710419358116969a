package client

import (
	"context"
	"encoding/json"
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/SotorivaXL/academic-event-manag-main/core"
)

var (
	// errors
	ErrDeleteUnsupported = errors.New("deleting the client is not supported by the backend")
	errInvalidConfig     = errors.New("config must be a JSON object")
)

// Repository is the remote store of the current tenant's configuration.
type Repository interface {
	GetClient(ctx context.Context) (Client, error)
	CreateClient(ctx context.Context, nc NewClient) (Client, error)
	UpdateClient(ctx context.Context, uc UpdateClient) (Client, error)
}

type Service struct {
	repo       Repository
	validate   *validator.Validate
	translator ut.Translator
}

func NewService(repo Repository, validate *validator.Validate, translator ut.Translator) *Service {
	return &Service{repo: repo, validate: validate, translator: translator}
}

// Current returns the client of the configured tenant.
func (svc *Service) Current(ctx context.Context) (Client, error) {
	c, err := svc.repo.GetClient(ctx)
	if err != nil {
		if core.APIStatus(err) == http.StatusNotFound {
			return Client{}, core.NewNotFoundError("client", "")
		}
		return Client{}, errors.Wrap(err, "getting client")
	}
	return c, nil
}

func (svc *Service) Create(ctx context.Context, nc NewClient) (Client, error) {
	nc.Clean()
	if err := core.NewFieldErrors(svc.validate.Struct(nc), svc.translator); err != nil {
		return Client{}, err
	}
	if err := checkConfig(nc.Config); err != nil {
		return Client{}, err
	}
	c, err := svc.repo.CreateClient(ctx, nc)
	return c, errors.Wrap(err, "creating client")
}

func (svc *Service) Update(ctx context.Context, uc UpdateClient) (Client, error) {
	uc.Clean()
	if err := core.NewFieldErrors(svc.validate.Struct(uc), svc.translator); err != nil {
		return Client{}, err
	}
	if len(uc.Config) > 0 {
		if err := checkConfig(uc.Config); err != nil {
			return Client{}, err
		}
	}
	c, err := svc.repo.UpdateClient(ctx, uc)
	return c, errors.Wrap(err, "updating client")
}

// Delete always fails: the backend has no endpoint for it.
func (svc *Service) Delete(context.Context, string) error {
	return ErrDeleteUnsupported
}

func checkConfig(raw json.RawMessage) error {
	var obj map[string]interface{}
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return core.NewValidationError(errInvalidConfig, core.FieldError{Field: "config_json", Error: errInvalidConfig.Error()})
	}
	return nil
}
