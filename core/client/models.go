package client

import (
	"encoding/json"

	"github.com/SotorivaXL/academic-event-manag-main/core"
)

// Client is the tenant the dashboard administers: branding, contact data and certificate defaults.
type Client struct {
	ID                      string          `json:"id"`
	Name                    string          `json:"name"`
	CNPJ                    string          `json:"cnpj"`
	Slug                    string          `json:"slug"`
	LogoURL                 string          `json:"logo_url,omitempty"`
	ContactEmail            string          `json:"contact_email"`
	ContactPhone            string          `json:"contact_phone,omitempty"`
	CertificateTemplateHTML string          `json:"certificate_template_html"`
	DefaultMinPresencePct   int             `json:"default_min_presence_pct"`
	LGPDPolicyText          string          `json:"lgpd_policy_text"`
	Config                  json.RawMessage `json:"config_json"`
}

type NewClient struct {
	Name                    string          `json:"name" validate:"required"`
	CNPJ                    string          `json:"cnpj" validate:"required,cnpj"`
	Slug                    string          `json:"slug" validate:"required,alphanum_"`
	LogoURL                 string          `json:"logo_url,omitempty" validate:"omitempty,url"`
	ContactEmail            string          `json:"contact_email" validate:"required,email"`
	ContactPhone            string          `json:"contact_phone,omitempty" validate:"omitempty,phone"`
	CertificateTemplateHTML string          `json:"certificate_template_html"`
	DefaultMinPresencePct   int             `json:"default_min_presence_pct" validate:"gte=0,lte=100"`
	LGPDPolicyText          string          `json:"lgpd_policy_text"`
	Config                  json.RawMessage `json:"config_json"`
}

func (nc *NewClient) Clean() {
	nc.Name = core.CleanString(nc.Name)
	nc.Slug = core.CleanString(nc.Slug, true)
	nc.ContactEmail = core.CleanString(nc.ContactEmail, true)
	nc.CNPJ = core.Digits(nc.CNPJ)
	nc.ContactPhone = core.Digits(nc.ContactPhone)
	if len(nc.Config) == 0 {
		nc.Config = json.RawMessage("{}")
	}
}

// UpdateClient defines what may change on the current Client. Empty fields are left unchanged.
type UpdateClient struct {
	Name                    string          `json:"name,omitempty"`
	CNPJ                    string          `json:"cnpj,omitempty" validate:"omitempty,cnpj"`
	Slug                    string          `json:"slug,omitempty" validate:"omitempty,alphanum_"`
	LogoURL                 string          `json:"logo_url,omitempty" validate:"omitempty,url"`
	ContactEmail            string          `json:"contact_email,omitempty" validate:"omitempty,email"`
	ContactPhone            string          `json:"contact_phone,omitempty" validate:"omitempty,phone"`
	CertificateTemplateHTML string          `json:"certificate_template_html,omitempty"`
	DefaultMinPresencePct   *int            `json:"default_min_presence_pct,omitempty" validate:"omitempty,gte=0,lte=100"`
	LGPDPolicyText          string          `json:"lgpd_policy_text,omitempty"`
	Config                  json.RawMessage `json:"config_json,omitempty"`
}

func (uc *UpdateClient) Clean() {
	uc.Name = core.CleanString(uc.Name)
	uc.Slug = core.CleanString(uc.Slug, true)
	uc.ContactEmail = core.CleanString(uc.ContactEmail, true)
	uc.CNPJ = core.Digits(uc.CNPJ)
	uc.ContactPhone = core.Digits(uc.ContactPhone)
}
