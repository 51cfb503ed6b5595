package response

import "github.com/google/uuid"

type CreatedResponse struct {
	ID uuid.UUID `json:"id"`
}

type ResourceGrantResponse struct {
	Permission   string `json:"permission"`
	ResourceType string `json:"resource_type"`
	ResourceID   string `json:"resource_id"`
}
