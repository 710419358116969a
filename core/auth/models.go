package auth

import (
	"context"
	"strings"
)

// Roles allowed to use the administrative dashboard.
const (
	RoleAdmin   = "admin"
	RoleClient  = "client"
	RoleCliente = "cliente"
)

var AllowedRoles = []string{RoleAdmin, RoleClient, RoleCliente}

// RoleAllowed reports whether role (case insensitive) may use the dashboard.
func RoleAllowed(role string) bool {
	role = strings.ToLower(strings.TrimSpace(role))
	for _, r := range AllowedRoles {
		if r == role {
			return true
		}
	}
	return false
}

type User struct {
	ID     int      `json:"id"`
	Name   string   `json:"name"`
	Email  string   `json:"email"`
	Status string   `json:"status,omitempty"`
	Role   string   `json:"role,omitempty"`
	Roles  []string `json:"roles,omitempty"`
}

// ResolvedRole is the explicit role, else the first of Roles, lower cased.
func (u User) ResolvedRole() string {
	role := u.Role
	if role == "" && len(u.Roles) > 0 {
		role = u.Roles[0]
	}
	return strings.ToLower(strings.TrimSpace(role))
}

func (u User) IsAdmin() bool {
	return u.ResolvedRole() == RoleAdmin
}

type Tokens struct {
	Access  string `json:"access_token"`
	Refresh string `json:"refresh_token"`
}

type LoginResult struct {
	Tokens
	TokenType string
	User      User
}

// Authenticator exchanges credentials and refresh tokens with the backend.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (LoginResult, error)
	Refresh(ctx context.Context, refreshToken string) (Tokens, error)
}
