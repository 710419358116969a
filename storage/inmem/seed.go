package inmemdb

import (
	"encoding/json"
	"time"
)

func strPtr(s string) *string { return &s }

// DefaultSeed is the demo tenant the mock API starts with.
// Seed passwords: admin@demo.edu / admin123 and portaria@demo.edu / portaria123.
func DefaultSeed() Seed {
	start := time.Now().AddDate(0, 0, 7).Truncate(24 * time.Hour)
	day := func(offset int) string { return start.AddDate(0, 0, offset).Format("2006-01-02") }

	return Seed{
		Users: []SeedUser{
			{Name: "Administrador", Email: "admin@demo.edu", Password: "admin123", Role: "admin"},
			{Name: "Portaria", Email: "portaria@demo.edu", Password: "portaria123", Role: "gatekeeper"},
		},
		Client: &Client{
			Name:                  "Faculdade Demo",
			CNPJ:                  "11222333000181",
			Slug:                  "demo",
			ContactEmail:          "contato@demo.edu",
			ContactPhone:          strPtr("11987654321"),
			DefaultMinPresencePct: 75,
			LGPDPolicyText:        "Os dados pessoais sao usados apenas para controle de presenca e emissao de certificados.",
			ConfigJSON:            json.RawMessage(`{}`),
		},
		Events: []Event{
			{
				Title:          "Semana Academica de Computacao",
				Description:    "Palestras e oficinas sobre engenharia de software.",
				Venue:          "Auditorio Central",
				CapacityTotal:  120,
				WorkloadHours:  12,
				MinPresencePct: 75,
				StartAt:        strPtr(day(0) + "T08:00:00Z"),
				EndAt:          strPtr(day(2) + "T18:00:00Z"),
				Status:         "published",
				Tracks:         []string{"Backend", "Dados"},
			},
			{
				Title:          "Workshop de Pesquisa",
				Venue:          "Sala 12",
				CapacityTotal:  30,
				MinPresencePct: 100,
				Status:         "draft",
			},
		},
		Days: []EventDay{
			{EventID: 1, Date: day(0), StartTime: "08:00", EndTime: "12:00", Room: "Auditorio", Capacity: 120, SessionType: "palestra"},
			{EventID: 1, Date: day(1), StartTime: "08:00", EndTime: "12:00", Room: "Auditorio", Capacity: 120, SessionType: "palestra"},
			{EventID: 1, Date: day(2), StartTime: "14:00", EndTime: "18:00", Room: "Laboratorio 3", Capacity: 40, SessionType: "oficina"},
		},
		Students: []Student{
			{Name: "Ana Souza", Email: "ana@demo.edu", CPF: "52998224725", RA: "2021001", Phone: "11987654321"},
			{Name: "Bruno Lima", Email: "bruno@demo.edu", CPF: "11144477735", RA: "2021002"},
			{Name: "Carla Mendes", Email: "carla@demo.edu", CPF: "12345678909", RA: "2021003"},
			{Name: "Diego Santos", CPF: "98765432100", RA: "2021004"},
		},
		Enrollments: []Enrollment{
			{EventID: 1, StudentID: 1, Status: statusConfirmed, EnrolledAt: start.AddDate(0, 0, -10)},
			{EventID: 1, StudentID: 2, Status: statusConfirmed, EnrolledAt: start.AddDate(0, 0, -9)},
			{EventID: 1, StudentID: 3, Status: statusCancelled, EnrolledAt: start.AddDate(0, 0, -8)},
		},
	}
}
