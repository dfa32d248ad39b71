package dto

import "github.com/procurehub/backend/internal/models"

type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

type SuccessResponse struct {
	OK   bool `json:"ok"`
	Data any  `json:"data,omitempty"`
}

type AuthResponse struct {
	Token   string             `json:"token"`
	Profile models.UserProfile `json:"profile"`
	Role    string             `json:"role"`
}

type ProfileResponse struct {
	Profile models.UserProfile `json:"profile"`
	Role    string             `json:"role"`
	IsAdmin bool               `json:"is_admin"`
}

type AuditLogResponse struct {
	Events []models.AuditEvent `json:"events"`
	Count  int                 `json:"count"`
}
