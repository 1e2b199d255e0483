package dto

import "time"

// CreatePropertyRequest payload for adding a property to the active tenant.
type CreatePropertyRequest struct {
	Name                string  `json:"name"`
	IsActive            bool    `json:"isActive"`
	ExternalPropertyRef *string `json:"externalPropertyRef,omitempty"`
}

// PropertyResponse is the property view returned by list and create.
type PropertyResponse struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	IsActive            bool      `json:"isActive"`
	ExternalPropertyRef *string   `json:"externalPropertyRef"`
	CreatedAt           time.Time `json:"createdAt"`
}
