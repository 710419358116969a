package student

import "github.com/SotorivaXL/academic-event-manag-main/core"

type Student struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	CPF   string `json:"cpf"`
	RA    string `json:"ra,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// NewStudent contains information needed to register a Student.
type NewStudent struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email,omitempty" validate:"omitempty,email"`
	CPF   string `json:"cpf" validate:"required,cpf"`
	RA    string `json:"ra" validate:"required"`
	Phone string `json:"phone,omitempty" validate:"omitempty,phone"`
}

// Clean trims text fields and strips the CPF and phone masks.
func (ns *NewStudent) Clean() {
	ns.Name = core.CleanString(ns.Name)
	ns.Email = core.CleanString(ns.Email)
	ns.RA = core.CleanString(ns.RA)
	ns.CPF = core.Digits(ns.CPF)
	ns.Phone = core.Digits(ns.Phone)
}

// UpdateStudent defines what information may be provided to modify an existing Student.
// Empty fields are left unchanged.
type UpdateStudent struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty" validate:"omitempty,email"`
	CPF   string `json:"cpf,omitempty" validate:"omitempty,cpf"`
	RA    string `json:"ra,omitempty"`
	Phone string `json:"phone,omitempty" validate:"omitempty,phone"`
}

func (us *UpdateStudent) Clean() {
	us.Name = core.CleanString(us.Name)
	us.Email = core.CleanString(us.Email)
	us.RA = core.CleanString(us.RA)
	us.CPF = core.Digits(us.CPF)
	us.Phone = core.Digits(us.Phone)
}
