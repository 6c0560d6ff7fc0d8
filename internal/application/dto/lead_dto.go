package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vitalsalud/ventas-crm-api/internal/domain/entity"
)

// CreateLeadRequest entrada para dar de alta un lead/operación.
// Los campos numéricos aceptan número o string (así llegan de los
// formularios y las importaciones).
type CreateLeadRequest struct {
	Titular          string            `json:"titular" validate:"omitempty,max=200"`
	Tipo             string            `json:"tipo" validate:"omitempty,oneof=alta pass"`
	Origen           string            `json:"origen" validate:"omitempty,max=100"`
	Prepaga          string            `json:"prepaga" validate:"omitempty,max=100"`
	QuotedPrepaga    string            `json:"prepaga_cotizada" validate:"omitempty,max=100"`
	Plan             string            `json:"plan" validate:"omitempty,max=50"`
	QuotedPlan       string            `json:"plan_cotizado" validate:"omitempty,max=50"`
	CondicionLaboral string            `json:"condicion_laboral" validate:"omitempty,max=50"`
	Capitas          entity.FlexNumber `json:"capitas"`
	FullPrice        entity.FlexNumber `json:"full_price"`
	Aportes          entity.FlexNumber `json:"aportes"`
	Descuento        entity.FlexNumber `json:"descuento"`
	FechaIngreso     string            `json:"fecha_ingreso" validate:"omitempty,max=20"`
	AgentName        string            `json:"agent_name" validate:"omitempty,max=200"`
}

// ListLeadsRequest filtros del listado de leads.
type ListLeadsRequest struct {
	PageRequest
	Status string `query:"status"`
	Agent  string `query:"agent"`
}

// ChangeStatusRequest entrada para mover una operación en el pipeline.
type ChangeStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ApproveBillingRequest entrada para la aprobación manual de facturación.
type ApproveBillingRequest struct {
	Approved      bool   `json:"approved"`
	BillingPeriod string `json:"billing_period" validate:"omitempty,len=7"` // YYYY-MM
}

// BillingOverrideRequest entrada para fijar el monto manual de una operación.
// Override nulo limpia el valor y vuelve a la fórmula.
type BillingOverrideRequest struct {
	Override decimal.NullDecimal `json:"override"`
}

// LeadResponse salida de una operación, con el neto calculado.
type LeadResponse struct {
	ID              string              `json:"id"`
	Titular         string              `json:"titular,omitempty"`
	Status          string              `json:"status"`
	Tipo            string              `json:"tipo"`
	SubState        string              `json:"sub_state,omitempty"`
	Origen          string              `json:"origen,omitempty"`
	Prepaga         string              `json:"prepaga,omitempty"`
	Plan            string              `json:"plan,omitempty"`
	Capitas         entity.FlexNumber   `json:"capitas"`
	FullPrice       entity.FlexNumber   `json:"full_price"`
	Neto            decimal.Decimal     `json:"neto"` // billing.CalculateNet
	BillingOverride decimal.NullDecimal `json:"billing_override"`
	BillingPeriod   string              `json:"billing_period,omitempty"`
	BillingApproved bool                `json:"billing_approved"`
	FechaIngreso    string              `json:"fecha_ingreso,omitempty"`
	AgentName       string              `json:"agent_name,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	LastUpdate      *time.Time          `json:"last_update,omitempty"`
}
