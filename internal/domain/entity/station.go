package entity

import "time"

// Station estación de servicio que emite los Cierres Z.
type Station struct {
	ID        string
	Code      string // código interno de la estación, único
	Name      string
	Address   string
	Status    string // active, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
