package echoapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/SotorivaXL/academic-event-manag-main/core"
	"github.com/SotorivaXL/academic-event-manag-main/core/auth"
	inmemdb "github.com/SotorivaXL/academic-event-manag-main/storage/inmem"
)

type (
	clientRequest struct {
		Name                    string          `json:"name" validate:"required"`
		CNPJ                    string          `json:"cnpj" validate:"required,cnpj"`
		Slug                    string          `json:"slug" validate:"required,alphanum_"`
		LogoURL                 string          `json:"logo_url" validate:"omitempty,url"`
		ContactEmail            string          `json:"contact_email" validate:"required,email"`
		ContactPhone            string          `json:"contact_phone" validate:"omitempty,phone"`
		CertificateTemplateHTML string          `json:"certificate_template_html"`
		DefaultMinPresencePct   int             `json:"default_min_presence_pct" validate:"gte=0,lte=100"`
		LGPDPolicyText          string          `json:"lgpd_policy_text"`
		ConfigJSON              json.RawMessage `json:"config_json"`
	}

	clientPatch struct {
		Name                    string          `json:"name"`
		CNPJ                    string          `json:"cnpj" validate:"omitempty,cnpj"`
		Slug                    string          `json:"slug" validate:"omitempty,alphanum_"`
		LogoURL                 string          `json:"logo_url" validate:"omitempty,url"`
		ContactEmail            string          `json:"contact_email" validate:"omitempty,email"`
		ContactPhone            string          `json:"contact_phone" validate:"omitempty,phone"`
		CertificateTemplateHTML string          `json:"certificate_template_html"`
		DefaultMinPresencePct   *int            `json:"default_min_presence_pct" validate:"omitempty,gte=0,lte=100"`
		LGPDPolicyText          string          `json:"lgpd_policy_text"`
		ConfigJSON              json.RawMessage `json:"config_json"`
	}
)

func (api *resourceApi) registerClient(g *echo.Group) {
	cg := g.Group("/client")
	cg.GET("", api.getClient)
	cg.POST("", api.createClient, roleMiddleware(auth.RoleAdmin))
	cg.PUT("", api.updateClient, roleMiddleware(auth.RoleAdmin, auth.RoleClient, auth.RoleCliente))
}

// configObject returns raw as a JSON object, {} when empty.
func configObject(raw json.RawMessage) (json.RawMessage, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return json.RawMessage("{}"), nil
	}
	var obj map[string]interface{}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fieldError("config_json", "config must be a JSON object")
	}
	return raw, nil
}

func (api *resourceApi) getClient(ctx echo.Context) error {
	c, err := api.db.GetClient()
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, c)
}

func (api *resourceApi) createClient(ctx echo.Context) error {
	var data clientRequest
	if err := api.bind(ctx, &data); err != nil {
		return err
	}
	cfg, err := configObject(data.ConfigJSON)
	if err != nil {
		return err
	}

	c, err := api.db.CreateClient(inmemdb.Client{
		Name:                    data.Name,
		CNPJ:                    core.Digits(data.CNPJ),
		Slug:                    strings.ToLower(data.Slug),
		LogoURL:                 data.LogoURL,
		ContactEmail:            data.ContactEmail,
		ContactPhone:            optString(core.Digits(data.ContactPhone)),
		CertificateTemplateHTML: data.CertificateTemplateHTML,
		DefaultMinPresencePct:   data.DefaultMinPresencePct,
		LGPDPolicyText:          data.LGPDPolicyText,
		ConfigJSON:              cfg,
	})
	if err != nil {
		return err
	}
	return created(ctx, c)
}

func (api *resourceApi) updateClient(ctx echo.Context) error {
	var data clientPatch
	if err := api.bind(ctx, &data); err != nil {
		return err
	}
	c, err := api.db.GetClient()
	if err != nil {
		return err
	}

	c.Name = orString(data.Name, c.Name)
	c.CNPJ = orString(core.Digits(data.CNPJ), c.CNPJ)
	c.Slug = orString(strings.ToLower(data.Slug), c.Slug)
	c.LogoURL = orString(data.LogoURL, c.LogoURL)
	c.ContactEmail = orString(data.ContactEmail, c.ContactEmail)
	if data.ContactPhone != "" {
		c.ContactPhone = optString(core.Digits(data.ContactPhone))
	}
	c.CertificateTemplateHTML = orString(data.CertificateTemplateHTML, c.CertificateTemplateHTML)
	c.LGPDPolicyText = orString(data.LGPDPolicyText, c.LGPDPolicyText)
	if data.DefaultMinPresencePct != nil {
		c.DefaultMinPresencePct = *data.DefaultMinPresencePct
	}
	if len(data.ConfigJSON) > 0 {
		if c.ConfigJSON, err = configObject(data.ConfigJSON); err != nil {
			return err
		}
	}

	c, err = api.db.UpdateClient(c)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, c)
}
