package student

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/SotorivaXL/academic-event-manag-main/core"
)

type fakeRepo struct {
	created   []NewStudent
	query     string
	page      int
	size      int
	updateErr error
}

func (r *fakeRepo) ListStudents(_ context.Context, query string, page, size int) ([]Student, error) {
	r.query, r.page, r.size = query, page, size
	return []Student{{ID: "1", Name: "Ana"}}, nil
}

func (r *fakeRepo) GetStudent(_ context.Context, id string) (Student, error) {
	if id == "1" {
		return Student{ID: "1", Name: "Ana"}, nil
	}
	return Student{}, core.NewAPIError(404, "")
}

func (r *fakeRepo) CreateStudent(_ context.Context, ns NewStudent) (Student, error) {
	r.created = append(r.created, ns)
	return Student{ID: "2", Name: ns.Name, CPF: ns.CPF, RA: ns.RA, Email: ns.Email, Phone: ns.Phone}, nil
}

func (r *fakeRepo) UpdateStudent(_ context.Context, id string, us UpdateStudent) (Student, error) {
	if r.updateErr != nil {
		return Student{}, r.updateErr
	}
	return Student{ID: id, Name: us.Name}, nil
}

func (r *fakeRepo) DeleteStudent(context.Context, string) error {
	return nil
}

func newService(repo Repository) *Service {
	validate, translator := core.NewValidator()
	return NewService(repo, validate, translator)
}

func TestService_Create(t *testing.T) {
	tests := []struct {
		name       string
		ns         NewStudent
		wantFields []string
	}{
		{
			name: "valid with masks",
			ns:   NewStudent{Name: "Ana Souza", CPF: "529.982.247-25", RA: "2024001", Phone: "(11) 98765-4321", Email: "ana@uni.br"},
		},
		{
			name: "valid without optionals",
			ns:   NewStudent{Name: "Ana", CPF: "11144477735", RA: "1"},
		},
		{
			name:       "missing required",
			ns:         NewStudent{},
			wantFields: []string{"name", "cpf", "ra"},
		},
		{
			name:       "bad cpf and phone",
			ns:         NewStudent{Name: "Ana", CPF: "111.111.111-11", RA: "1", Phone: "1234"},
			wantFields: []string{"cpf", "phone"},
		},
		{
			name:       "bad email",
			ns:         NewStudent{Name: "Ana", CPF: "11144477735", RA: "1", Email: "ana@"},
			wantFields: []string{"email"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(fakeRepo)
			s, err := newService(repo).Create(context.Background(), tt.ns)
			if tt.wantFields == nil {
				assert.NoError(t, err)
				assert.Len(t, repo.created, 1)
				assert.Equal(t, core.Digits(tt.ns.CPF), s.CPF)
				assert.NotContains(t, s.Phone, "(")
				return
			}
			if assert.True(t, core.IsValidation(err)) {
				fields := err.(*core.ValidationError).FieldMap()
				for _, f := range tt.wantFields {
					assert.Contains(t, fields, f)
				}
			}
			assert.Empty(t, repo.created)
		})
	}
}

func TestService_CreateCleansName(t *testing.T) {
	repo := new(fakeRepo)
	s, err := newService(repo).Create(context.Background(), NewStudent{Name: " Ana Souza ", CPF: "529.982.247-25", RA: "1"})
	assert.NoError(t, err)
	assert.Equal(t, "Ana Souza", s.Name)
	assert.Equal(t, "52998224725", s.CPF)
}

func TestService_ListDefaults(t *testing.T) {
	repo := new(fakeRepo)
	svc := newService(repo)

	_, err := svc.List(context.Background(), " ana ", 0, -1)
	assert.NoError(t, err)
	assert.Equal(t, "ana", repo.query)
	assert.Equal(t, DefaultPage, repo.page)
	assert.Equal(t, DefaultPageSize, repo.size)

	_, _ = svc.List(context.Background(), "", 3, 50)
	assert.Equal(t, 3, repo.page)
	assert.Equal(t, 50, repo.size)
}

func TestService_GetAndUpdate(t *testing.T) {
	repo := new(fakeRepo)
	svc := newService(repo)

	s, err := svc.Get(context.Background(), "1")
	assert.NoError(t, err)
	assert.Equal(t, "Ana", s.Name)

	_, err = svc.Get(context.Background(), "9")
	assert.True(t, core.IsNotFound(err))

	_, err = svc.Update(context.Background(), "1", UpdateStudent{CPF: "123"})
	assert.True(t, core.IsValidation(err))

	repo.updateErr = core.NewAPIError(404, "")
	_, err = svc.Update(context.Background(), "9", UpdateStudent{Name: "Bia"})
	assert.True(t, core.IsNotFound(err))
}
