package billing

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vitalsalud/ventas-crm-api/internal/domain/entity"
	"github.com/vitalsalud/ventas-crm-api/pkg/normalize"
)

// Condición laboral que activa la excepción DoctoRed plan 500. La
// comparación es exacta y sensible a mayúsculas: así viene cargado el campo
// en el origen y así lo exige la prepaga.
const condicionEmpleado = "empleado"

// CalculateNet devuelve el neto facturable de una operación en pesos,
// redondeado a 2 decimales. Precedencia estricta:
//
//  1. Override manual (billing_override): manda sobre toda fórmula.
//  2. Política PASS: si Rules.PassRevenueZero está activa y la operación es
//     PASS, liquida cero.
//  3. Fórmula por familia de prepaga (primera que matchee por substring):
//     "preven"  → (full − descuento) × tasa_por_plan
//     "ampf"    → full × multiplicador AMPF
//     resto     → full × (1 − tasa_impositiva) × multiplicador general,
//     salvo DoctoRed plan 500 con condición "empleado", que
//     usa aportes en lugar de full.
//
// Nunca retorna error: campos ausentes o no parseables valen cero
// (degradación silenciosa, el cálculo es un auxiliar de reporte).
func CalculateNet(op *entity.Operation, rules Rules) decimal.Decimal {
	if op == nil {
		return decimal.Zero
	}
	if op.BillingOverride.Valid {
		return op.BillingOverride.Decimal.Round(2)
	}
	if rules.PassRevenueZero && op.IsPass() {
		return decimal.Zero
	}

	full := op.FullPrice.Decimal()
	if !op.FullPrice.Defined() {
		full = op.Price.Decimal()
	}
	aportes := op.Aportes.Decimal()
	descuento := op.Descuento.Decimal()

	proveedor := op.ProveedorFold()
	plan := op.PlanEfectivo()

	var valor decimal.Decimal
	switch {
	case strings.Contains(proveedor, "preven"):
		base := full.Sub(descuento)
		valor = base.Mul(rules.prevencionRate(plan))

	case strings.Contains(proveedor, "ampf"):
		valor = full.Mul(rules.AMPFMultiplier)

	default:
		base := full
		if strings.Contains(proveedor, "doctored") &&
			strings.Contains(plan, "500") &&
			op.CondicionLaboral == condicionEmpleado {
			base = aportes
		}
		base = base.Mul(decimal.NewFromInt(1).Sub(rules.GeneralTaxRate))
		valor = base.Mul(rules.GeneralMultiplier)
	}

	return valor.Round(2)
}

// EsAMPF indica si la operación pertenece a AMPF, sea por prepaga o por plan.
// AMPF registra siempre 1 punto por alta sin importar las capitas.
func EsAMPF(op *entity.Operation) bool {
	if strings.Contains(op.ProveedorFold(), "ampf") {
		return true
	}
	return strings.Contains(normalize.Fold(op.PlanEfectivo()), "ampf")
}
