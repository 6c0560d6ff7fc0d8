package dto

import "github.com/shopspring/decimal"

// LiquidacionRequest parámetros del reporte de liquidación.
type LiquidacionRequest struct {
	Period string `query:"period"` // YYYY-MM; por defecto el mes en curso
}

// LiquidacionLineDTO una operación liquidada con su neto.
type LiquidacionLineDTO struct {
	OperationID string          `json:"operation_id"`
	Agent       string          `json:"agent"`
	Prepaga     string          `json:"prepaga"`
	Plan        string          `json:"plan,omitempty"`
	Kind        string          `json:"kind"` // ALTA | PASS
	Capitas     decimal.Decimal `json:"capitas"`
	Neto        decimal.Decimal `json:"neto"`
	Overridden  bool            `json:"overridden"` // monto manual aplicado
}

// LiquidacionAgentDTO subtotales por asesor.
type LiquidacionAgentDTO struct {
	Agent     string          `json:"agent"`
	Ops       int             `json:"ops"`
	Capitas   decimal.Decimal `json:"capitas"`
	NetoTotal decimal.Decimal `json:"neto_total"`
}

// LiquidacionDTO reporte de liquidación de un período de facturación.
type LiquidacionDTO struct {
	Period     string                `json:"period"` // YYYY-MM
	Lines      []LiquidacionLineDTO  `json:"lines"`
	Agents     []LiquidacionAgentDTO `json:"agents"`
	TotalOps   int                   `json:"total_ops"`
	TotalPass  int                   `json:"total_pass"`
	Capitas    decimal.Decimal       `json:"capitas"`
	NetoTotal  decimal.Decimal       `json:"neto_total"`
	AvgPerOp   decimal.Decimal       `json:"avg_per_op"`   // neto / operaciones
	AvgPerCap  decimal.Decimal       `json:"avg_per_cap"`  // neto / capitas (ticket)
}
