package domain

import (
	"time"

	"github.com/google/uuid"
)

type Society struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	CreatedAt time.Time `json:"created_at"`
}

// Unit - отдельный адрес внутри общества (блок + номер)
type Unit struct {
	ID        uuid.UUID `json:"id"`
	SocietyID uuid.UUID `json:"society_id"`
	Block     string    `json:"block"`
	Number    string    `json:"number"`
	UnitType  string    `json:"unit_type"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	UnitTypeResidential = "residential"
	UnitTypeCommercial  = "commercial"
)
