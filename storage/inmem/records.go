package inmemdb

import (
	"encoding/json"
	"time"
)

// Records are stored in their wire shape: the mock API encodes them as they are.

type User struct {
	ID           int      `json:"id"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Status       string   `json:"status"`
	Role         string   `json:"role,omitempty"`
	Roles        []string `json:"roles"`
	PasswordHash []byte   `json:"-"`
}

type Event struct {
	ID             int64    `json:"id"`
	ClientID       int64    `json:"client_id"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Venue          string   `json:"venue"`
	CapacityTotal  int      `json:"capacity_total"`
	WorkloadHours  int      `json:"workload_hours"`
	MinPresencePct int      `json:"min_presence_pct"`
	StartAt        *string  `json:"start_at"`
	EndAt          *string  `json:"end_at"`
	Status         string   `json:"status"`
	Tracks         []string `json:"tracks,omitempty"`
	Speakers       []string `json:"speakers,omitempty"`
}

type EventDay struct {
	ID          int64  `json:"id"`
	EventID     int64  `json:"event_id"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Room        string `json:"room"`
	Capacity    int    `json:"capacity"`
	SessionType string `json:"session_type,omitempty"`
}

type Student struct {
	ID       int64  `json:"id"`
	ClientID int64  `json:"client_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	CPF      string `json:"cpf"`
	RA       string `json:"ra"`
	Phone    string `json:"phone,omitempty"`
}

type Enrollment struct {
	ID         int64     `json:"id"`
	StudentID  int64     `json:"student_id"`
	EventID    int64     `json:"event_id"`
	Status     string    `json:"status"`
	EnrolledAt time.Time `json:"enrolled_at"`
	QRCode     string    `json:"qr_code"`
}

type Client struct {
	ID                      int64           `json:"id"`
	Name                    string          `json:"name"`
	CNPJ                    string          `json:"cnpj"`
	Slug                    string          `json:"slug"`
	LogoURL                 string          `json:"logo_url,omitempty"`
	ContactEmail            string          `json:"contact_email"`
	ContactPhone            *string         `json:"contact_phone"`
	CertificateTemplateHTML string          `json:"certificate_template_html"`
	DefaultMinPresencePct   int             `json:"default_min_presence_pct"`
	LGPDPolicyText          string          `json:"lgpd_policy_text"`
	ConfigJSON              json.RawMessage `json:"config_json"`
}
