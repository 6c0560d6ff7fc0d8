// Package billing: cálculo del neto facturable de una operación según la
// prepaga. Es la única fuente de verdad de las fórmulas de liquidación;
// ningún otro módulo debe recalcular montos por su cuenta.
package billing

import "github.com/shopspring/decimal"

// Rules agrupa toda la parametrización del cálculo de neto. Se carga una
// sola vez (config) y se pasa por valor a cada consumidor: no hay tablas
// globales mutables repetidas por módulo.
type Rules struct {
	// PrevencionRates: tasa por plan para la familia Prevención Salud.
	// Clave = código de plan exacto (A1, A2 CP, ...).
	PrevencionRates map[string]decimal.Decimal
	// PrevencionDefault: tasa cuando el plan no figura en la tabla.
	PrevencionDefault decimal.Decimal
	// AMPFMultiplier: AMPF liquida precio full por este multiplicador.
	AMPFMultiplier decimal.Decimal
	// GeneralTaxRate: deducción impositiva del grupo general (10.5%).
	GeneralTaxRate decimal.Decimal
	// GeneralMultiplier: multiplicador del grupo general.
	GeneralMultiplier decimal.Decimal
	// PassRevenueZero: política de facturación de operaciones PASS.
	// true  → una PASS liquida $0 (criterio del tablero de OPS);
	// false → la PASS suma y OPS define el monto manual (criterio admin).
	// Es una decisión de negocio única, configurada en el arranque; los
	// consumidores no deben reimplementarla por su cuenta.
	PassRevenueZero bool
}

// DefaultRules devuelve la parametrización vigente.
func DefaultRules() Rules {
	return Rules{
		PrevencionRates: map[string]decimal.Decimal{
			"A1":    decimal.NewFromFloat(0.90),
			"A1 CP": decimal.NewFromFloat(0.90),
			"A2":    decimal.NewFromFloat(1.30),
			"A2 CP": decimal.NewFromFloat(1.30),
			"A4":    decimal.NewFromFloat(1.50),
			"A5":    decimal.NewFromFloat(1.50),
		},
		PrevencionDefault: decimal.NewFromFloat(1.30),
		AMPFMultiplier:    decimal.NewFromInt(2),
		GeneralTaxRate:    decimal.NewFromFloat(0.105),
		GeneralMultiplier: decimal.NewFromFloat(1.8),
		PassRevenueZero:   false,
	}
}

// prevencionRate devuelve la tasa del plan o el default.
func (r Rules) prevencionRate(plan string) decimal.Decimal {
	if rate, ok := r.PrevencionRates[plan]; ok {
		return rate
	}
	return r.PrevencionDefault
}
