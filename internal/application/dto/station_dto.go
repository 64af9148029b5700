package dto

import "time"

// CreateStationRequest entrada para dar de alta una estación de servicio.
type CreateStationRequest struct {
	Code    string `json:"code" validate:"required,max=32"`
	Name    string `json:"name" validate:"required,max=200"`
	Address string `json:"address" validate:"omitempty"`
}

// StationResponse salida de una estación.
type StationResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StationListResponse listado paginado de estaciones.
type StationListResponse struct {
	Items []StationResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
