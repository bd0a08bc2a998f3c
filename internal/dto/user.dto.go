package dto

import (
	"encoding/json"
	"time"

	"github.com/BruksfildServices01/personal-color/internal/models"
)

type UserDTO struct {
	ID          uint       `json:"id"`
	Email       string     `json:"email"`
	Username    string     `json:"username"`
	Name        string     `json:"name"`
	Role        string     `json:"role"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

func NewUserDTO(u *models.User) UserDTO {
	return UserDTO{
		ID:          u.ID,
		Email:       u.Email,
		Username:    u.Username,
		Name:        u.Name,
		Role:        u.Role,
		CreatedAt:   u.CreatedAt,
		LastLoginAt: u.LastLoginAt,
	}
}

type ActivityDTO struct {
	ID        uint            `json:"id"`
	Action    string          `json:"action"`
	Entity    string          `json:"entity,omitempty"`
	EntityID  *uint           `json:"entity_id,omitempty"`
	Metadata  json.RawMessage `json:"metadata,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

func NewActivityDTOs(logs []models.AuditLog) []ActivityDTO {
	out := make([]ActivityDTO, 0, len(logs))
	for _, l := range logs {
		out = append(out, ActivityDTO{
			ID:        l.ID,
			Action:    l.Action,
			Entity:    l.Entity,
			EntityID:  l.EntityID,
			Metadata:  json.RawMessage(l.Metadata),
			CreatedAt: l.CreatedAt,
		})
	}
	return out
}
