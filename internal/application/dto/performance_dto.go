package dto

import "github.com/shopspring/decimal"

// PerformanceRequest parámetros para los reportes de performance.
type PerformanceRequest struct {
	Period string `query:"period"` // YYYY-MM; por defecto el mes en curso
	Agent  string `query:"agent"`  // nombre del asesor (insensible a mayúsculas/espacios)
}

// WeeklyPointsDTO puntos de una semana del período.
type WeeklyPointsDTO struct {
	Week   int             `json:"week"`   // 1..5
	Altas  decimal.Decimal `json:"altas"`  // capitas ponderadas
	Passes int             `json:"passes"` // registros PASS
}

// PerformanceDTO métricas de un asesor (o del equipo) en un período.
type PerformanceDTO struct {
	Agent          string            `json:"agent,omitempty"`
	Period         string            `json:"period"` // YYYY-MM
	TotalLeads     int               `json:"total_leads"`
	TotalSales     decimal.Decimal   `json:"total_sales"` // puntos ALTA
	SalesPass      int               `json:"sales_pass"`
	TotalCompleted int               `json:"total_completed"`
	CompletedPass  int               `json:"completed_pass"`
	ConversionRate int               `json:"conversion_rate"` // %
	ComplianceRate int               `json:"compliance_rate"` // %
	AverageTicket  decimal.Decimal   `json:"average_ticket"`
	AvgDaysToClose float64           `json:"avg_days_to_close"`
	NetoTotal      decimal.Decimal   `json:"neto_total"`
	Weekly         []WeeklyPointsDTO `json:"weekly"`
}

// RankingRowDTO una fila del ranking de asesores.
type RankingRowDTO struct {
	Rank      int             `json:"rank"`
	Agent     string          `json:"agent"`
	Altas     decimal.Decimal `json:"altas"`  // puntos ALTA del período
	Passes    int             `json:"passes"` // registros PASS
	Puntos    decimal.Decimal `json:"puntos"` // altas + passes
	NetoTotal decimal.Decimal `json:"neto_total"`
}

// RankingDTO ranking completo de un período.
type RankingDTO struct {
	Period string          `json:"period"`
	Rows   []RankingRowDTO `json:"rows"`
}
