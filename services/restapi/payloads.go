package restapi

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/SotorivaXL/academic-event-manag-main/core/auth"
	"github.com/SotorivaXL/academic-event-manag-main/core/client"
	"github.com/SotorivaXL/academic-event-manag-main/core/enrollment"
	"github.com/SotorivaXL/academic-event-manag-main/core/event"
	"github.com/SotorivaXL/academic-event-manag-main/core/student"
)

// Wire shapes of the backend. Ids are numeric on the wire and strings in the domain.

type loginResponse struct {
	AccessToken  string  `json:"access_token" validate:"required"`
	RefreshToken string  `json:"refresh_token"`
	TokenType    string  `json:"token_type"`
	User         apiUser `json:"user"`
}

type apiUser struct {
	ID     int      `json:"id"`
	Name   string   `json:"name"`
	Email  string   `json:"email"`
	Status string   `json:"status"`
	Role   string   `json:"role"`
	Roles  []string `json:"roles"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type refreshResponse struct {
	AccessToken  string `json:"access_token" validate:"required"`
	RefreshToken string `json:"refresh_token"`
}

func (l loginResponse) result() auth.LoginResult {
	return auth.LoginResult{
		Tokens:    auth.Tokens{Access: l.AccessToken, Refresh: l.RefreshToken},
		TokenType: l.TokenType,
		User: auth.User{
			ID:     l.User.ID,
			Name:   l.User.Name,
			Email:  l.User.Email,
			Status: l.User.Status,
			Role:   l.User.Role,
			Roles:  l.User.Roles,
		},
	}
}

type apiEvent struct {
	ID             int64    `json:"id" validate:"required"`
	ClientID       int64    `json:"client_id"`
	Title          string   `json:"title" validate:"required"`
	Description    string   `json:"description"`
	Venue          string   `json:"venue"`
	CapacityTotal  int      `json:"capacity_total" validate:"gte=0"`
	WorkloadHours  int      `json:"workload_hours" validate:"gte=0"`
	MinPresencePct int      `json:"min_presence_pct" validate:"gte=0,lte=100"`
	StartAt        *string  `json:"start_at"`
	EndAt          *string  `json:"end_at"`
	Status         string   `json:"status"`
	Tracks         []string `json:"tracks"`
	Speakers       []string `json:"speakers"`
}

func (a apiEvent) event() event.Event {
	return event.Event{
		ID:                      strconv.FormatInt(a.ID, 10),
		Title:                   a.Title,
		Description:             a.Description,
		Location:                a.Venue,
		Capacity:                a.CapacityTotal,
		WorkloadHours:           a.WorkloadHours,
		MinAttendancePercentage: a.MinPresencePct,
		StartDate:               deref(a.StartAt),
		EndDate:                 deref(a.EndAt),
		Status:                  event.ParseStatus(a.Status),
		Tracks:                  a.Tracks,
		Speakers:                a.Speakers,
		Days:                    []event.Day{},
	}
}

type apiEventDay struct {
	ID          int64  `json:"id" validate:"required"`
	EventID     int64  `json:"event_id"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Room        string `json:"room"`
	Capacity    int    `json:"capacity" validate:"gte=0"`
	SessionType string `json:"session_type"`
}

func (a apiEventDay) day() event.Day {
	return event.Day{
		ID:          strconv.FormatInt(a.ID, 10),
		EventID:     strconv.FormatInt(a.EventID, 10),
		Date:        a.Date,
		StartTime:   a.StartTime,
		EndTime:     a.EndTime,
		Room:        a.Room,
		Capacity:    a.Capacity,
		SessionType: a.SessionType,
	}
}

type apiStudent struct {
	ID       int64  `json:"id" validate:"required"`
	ClientID int64  `json:"client_id"`
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email"`
	CPF      string `json:"cpf"`
	RA       string `json:"ra"`
	Phone    string `json:"phone"`
}

func (a apiStudent) student() student.Student {
	return student.Student{
		ID:    strconv.FormatInt(a.ID, 10),
		Name:  a.Name,
		Email: a.Email,
		CPF:   a.CPF,
		RA:    a.RA,
		Phone: a.Phone,
	}
}

// studentList accepts both a bare array and the paginated {data, total, page, size} envelope.
type studentList []apiStudent

func (l *studentList) UnmarshalJSON(b []byte) error {
	var list []apiStudent
	if err := json.Unmarshal(b, &list); err == nil {
		*l = list
		return nil
	}
	var page struct {
		Data []apiStudent `json:"data"`
	}
	if err := json.Unmarshal(b, &page); err != nil {
		return err
	}
	*l = page.Data
	return nil
}

type apiEnrollment struct {
	ID         int64      `json:"id" validate:"required"`
	StudentID  int64      `json:"student_id" validate:"required"`
	EventID    int64      `json:"event_id" validate:"required"`
	Status     string     `json:"status"`
	EnrolledAt *time.Time `json:"enrolled_at"`
	QRCode     string     `json:"qr_code"`
}

func (a apiEnrollment) enrollment(now func() time.Time) enrollment.Enrollment {
	enrolledAt := now()
	if a.EnrolledAt != nil {
		enrolledAt = *a.EnrolledAt
	}
	return enrollment.Enrollment{
		ID:         strconv.FormatInt(a.ID, 10),
		StudentID:  strconv.FormatInt(a.StudentID, 10),
		EventID:    strconv.FormatInt(a.EventID, 10),
		Status:     enrollment.ParseStatus(a.Status),
		EnrolledAt: enrolledAt,
		QRCode:     a.QRCode,
	}
}

type enrollRequest struct {
	StudentID            int64 `json:"student_id"`
	Idempotent           bool  `json:"idempotent"`
	ReactivateIfCanceled bool  `json:"reactivate_if_canceled"`
}

type apiClient struct {
	ID                      int64           `json:"id" validate:"required"`
	Name                    string          `json:"name"`
	CNPJ                    string          `json:"cnpj"`
	Slug                    string          `json:"slug"`
	LogoURL                 string          `json:"logo_url"`
	ContactEmail            string          `json:"contact_email"`
	ContactPhone            *string         `json:"contact_phone"`
	CertificateTemplateHTML string          `json:"certificate_template_html"`
	DefaultMinPresencePct   int             `json:"default_min_presence_pct" validate:"gte=0,lte=100"`
	LGPDPolicyText          string          `json:"lgpd_policy_text"`
	ConfigJSON              json.RawMessage `json:"config_json"`
}

func (a apiClient) client() client.Client {
	cfg := a.ConfigJSON
	if len(cfg) == 0 || string(cfg) == "null" {
		cfg = json.RawMessage("{}")
	}
	return client.Client{
		ID:                      strconv.FormatInt(a.ID, 10),
		Name:                    a.Name,
		CNPJ:                    a.CNPJ,
		Slug:                    a.Slug,
		LogoURL:                 a.LogoURL,
		ContactEmail:            a.ContactEmail,
		ContactPhone:            deref(a.ContactPhone),
		CertificateTemplateHTML: a.CertificateTemplateHTML,
		DefaultMinPresencePct:   a.DefaultMinPresencePct,
		LGPDPolicyText:          a.LGPDPolicyText,
		Config:                  cfg,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
