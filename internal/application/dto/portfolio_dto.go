package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ListCarteraRequest filtros del listado de cartera.
type ListCarteraRequest struct {
	PageRequest
	EstadoMora string `query:"estado_mora"`
}

// ClientResponse salida de un cliente de cartera.
type ClientResponse struct {
	ID          string          `json:"id"`
	OperationID string          `json:"operation_id"`
	Nombre      string          `json:"nombre"`
	Prepaga     string          `json:"prepaga"`
	Plan        string          `json:"plan,omitempty"`
	Capitas     int             `json:"capitas"`
	AgentName   string          `json:"agent_name,omitempty"`
	EstadoMora  string          `json:"estado_mora"`
	MontoDeuda  decimal.Decimal `json:"monto_deuda"`
	Vencimiento *time.Time      `json:"vencimiento,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// UpdateMoraRequest entrada para actualizar el estado de mora.
type UpdateMoraRequest struct {
	EstadoMora  string              `json:"estado_mora" validate:"required"`
	MontoDeuda  decimal.NullDecimal `json:"monto_deuda"`
	Vencimiento *time.Time          `json:"vencimiento"`
}

// CarteraSummaryDTO resumen de mora de la cartera.
type CarteraSummaryDTO struct {
	Total      int             `json:"total"`
	PorEstado  map[string]int  `json:"por_estado"` // al_dia, mora_1..3, baja
	DeudaTotal decimal.Decimal `json:"deuda_total"`
}
