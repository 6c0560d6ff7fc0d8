package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de mora de la cartera post-venta.
const (
	MoraAlDia = "al_dia"
	Mora1     = "mora_1" // 1 período impago
	Mora2     = "mora_2" // 2 períodos impagos
	Mora3     = "mora_3" // 3+ períodos impagos, pre-baja
	MoraBaja  = "baja"   // dado de baja por falta de pago
)

// EstadosMora en orden de severidad creciente.
var EstadosMora = []string{MoraAlDia, Mora1, Mora2, Mora3, MoraBaja}

// EsEstadoMora valida una etiqueta de mora.
func EsEstadoMora(s string) bool {
	for _, m := range EstadosMora {
		if s == m {
			return true
		}
	}
	return false
}

// Client es un afiliado de la cartera post-venta. Nace cuando una operación
// llega a cumplidas y se sigue para cobranza (mora).
type Client struct {
	ID          string
	OperationID string // operación de origen
	Nombre      string
	Prepaga     string
	Plan        string
	Capitas     int
	AgentName   string // asesor que cerró la venta
	EstadoMora  string // al_dia, mora_1, mora_2, mora_3, baja
	MontoDeuda  decimal.Decimal
	Vencimiento *time.Time // próximo vencimiento de cuota
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
