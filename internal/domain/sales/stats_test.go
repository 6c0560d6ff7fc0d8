package sales_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/vitalsalud/ventas-crm-api/internal/domain/billing"
	"github.com/vitalsalud/ventas-crm-api/internal/domain/entity"
	"github.com/vitalsalud/ventas-crm-api/internal/domain/sales"
)

func fechaAR(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 10, 0, 0, 0, sales.ZonaVentas)
}

// ── EsLiquidada ───────────────────────────────────────────────────────────────

func TestEsLiquidada_RequiereCumplidasYAprobacion(t *testing.T) {
	p := marzo2025()

	op := &entity.Operation{
		ID:              "op-1",
		Status:          entity.StatusCumplidas,
		BillingApproved: true,
		BillingPeriod:   "2025-03",
	}
	assert.True(t, sales.EsLiquidada(op, p))

	sinAprobar := *op
	sinAprobar.BillingApproved = false
	assert.False(t, sales.EsLiquidada(&sinAprobar, p), "sin billing_approved no liquida")

	enLegajo := *op
	enLegajo.Status = entity.StatusLegajo
	assert.False(t, sales.EsLiquidada(&enLegajo, p), "solo cumplidas liquida")
}

func TestEsLiquidada_BillingPeriodEsAutoritativo(t *testing.T) {
	p := marzo2025()

	// billing_period de otro mes manda aunque created_at caiga en marzo.
	op := &entity.Operation{
		ID:              "op-2",
		Status:          entity.StatusCumplidas,
		BillingApproved: true,
		BillingPeriod:   "2025-02",
		CreatedAt:       fechaAR(2025, time.March, 10),
	}
	assert.False(t, sales.EsLiquidada(op, p))

	// Sin billing_period cae al fallback por created_at.
	op.BillingPeriod = ""
	assert.True(t, sales.EsLiquidada(op, p))

	op.CreatedAt = fechaAR(2025, time.April, 2)
	assert.False(t, sales.EsLiquidada(op, p))
}

// ── ComputeStats ──────────────────────────────────────────────────────────────

// Fixture de marzo 2025 para un asesor:
//   - lead-1: ALTA liquidada, Prevención A2, 3 capitas, cerrada en 9 días.
//   - lead-2: ALTA en médicas (vende pero no liquida), 2 capitas.
//   - lead-3: PASS liquidada con override manual de $40.000.
//   - lead-4: lead ingresado sin fecha de venta resoluble (solo intake).
func fixtureMarzo() []*entity.Operation {
	cierre1 := fechaAR(2025, time.March, 14)
	return []*entity.Operation{
		{
			ID:              "lead-1",
			Status:          entity.StatusCumplidas,
			Tipo:            entity.TipoAlta,
			Prepaga:         "Prevención Salud",
			Plan:            "A2",
			Capitas:         entity.Flex("3"),
			FullPrice:       entity.Flex("100000"),
			Descuento:       entity.Flex("10000"),
			FechaIngreso:    "2025-03-05",
			CreatedAt:       fechaAR(2025, time.March, 5),
			LastUpdate:      &cierre1,
			BillingPeriod:   "2025-03",
			BillingApproved: true,
			AgentName:       "Juan Pérez",
		},
		{
			ID:           "lead-2",
			Status:       entity.StatusMedicas,
			Tipo:         entity.TipoAlta,
			Prepaga:      "Swiss Medical",
			Capitas:      entity.Flex("2"),
			FullPrice:    entity.Flex("80000"),
			FechaIngreso: "2025-03-12",
			CreatedAt:    fechaAR(2025, time.March, 12),
			AgentName:    "Juan Pérez",
		},
		{
			ID:              "lead-3",
			Status:          entity.StatusCumplidas,
			Tipo:            entity.TipoPass,
			FechaIngreso:    "2025-03-18",
			CreatedAt:       fechaAR(2025, time.March, 18),
			BillingPeriod:   "2025-03",
			BillingApproved: true,
			BillingOverride: decimal.NullDecimal{Decimal: decimal.NewFromInt(40000), Valid: true},
			AgentName:       "Juan Pérez",
		},
		{
			ID:           "lead-4",
			Status:       entity.StatusIngresado,
			Tipo:         entity.TipoAlta,
			FechaIngreso: "",
			CreatedAt:    fechaAR(2025, time.March, 25),
			AgentName:    "Juan Pérez",
		},
	}
}

func TestComputeStats_FixtureCompleto(t *testing.T) {
	st := sales.ComputeStats(fixtureMarzo(), marzo2025(), billing.DefaultRules())

	// Intake: las 4 operaciones se crearon en marzo.
	assert.Equal(t, 4, st.TotalLeads)

	// Ventas normalizadas: lead-1 (3 capitas) + lead-2 (2 capitas) + lead-3 PASS.
	assert.True(t, decimal.NewFromInt(5).Equal(st.TotalSales), "puntos ALTA: %s", st.TotalSales)
	assert.Equal(t, 1, st.SalesPass)

	// Liquidación oficial: lead-1 y lead-3 (una de ellas PASS).
	assert.Equal(t, 2, st.TotalCompleted)
	assert.Equal(t, 1, st.CompletedPass)

	// Neto: lead-1 = (100000−10000)×1.3 = 117000; lead-3 override = 40000.
	assert.True(t, decimal.NewFromInt(157000).Equal(st.NetoTotal), "neto: %s", st.NetoTotal)

	// Capitas liquidadas: solo las ALTA (PASS excluida del denominador).
	assert.True(t, decimal.NewFromInt(3).Equal(st.CapitasLiq), "capitas liquidadas: %s", st.CapitasLiq)

	// Ticket promedio: 157000 / 3 = 52333.33… → 52333.
	assert.True(t, decimal.NewFromInt(52333).Equal(st.AverageTicket), "ticket: %s", st.AverageTicket)

	// Conversión: (5 + 1) / 4 leads = 150%.
	assert.Equal(t, 150, st.ConversionRate)

	// Cumplimiento: 2 liquidadas / 6 puntos = 33%.
	assert.Equal(t, 33, st.ComplianceRate)

	// Velocidad: lead-1 cerró en 9 días; lead-3 el mismo día (0).
	assert.InDelta(t, 4.5, st.AvgDaysToClose, 0.01)
}

func TestComputeStats_SinRegistros(t *testing.T) {
	st := sales.ComputeStats(nil, marzo2025(), billing.DefaultRules())
	assert.Zero(t, st.TotalLeads)
	assert.Zero(t, st.ConversionRate, "sin leads la conversión es 0, no división por cero")
	assert.Zero(t, st.ComplianceRate)
	assert.True(t, st.AverageTicket.IsZero())
	assert.Zero(t, st.AvgDaysToClose)
}

func TestComputeStats_DeduplicaTambienLosCrudos(t *testing.T) {
	ops := fixtureMarzo()
	ops = append(ops, ops[0]) // lead-1 repetida
	st := sales.ComputeStats(ops, marzo2025(), billing.DefaultRules())
	assert.Equal(t, 4, st.TotalLeads, "una fila repetida no duplica intake")
	assert.Equal(t, 2, st.TotalCompleted, "ni la liquidación")
}

func TestComputeStats_PoliticaPassCeroSoloAfectaElNeto(t *testing.T) {
	rules := billing.DefaultRules()
	rules.PassRevenueZero = true

	st := sales.ComputeStats(fixtureMarzo(), marzo2025(), rules)

	// El override de lead-3 manda incluso con la política activa.
	assert.True(t, decimal.NewFromInt(157000).Equal(st.NetoTotal), "neto con override: %s", st.NetoTotal)

	// Sin override, la PASS liquida cero.
	ops := fixtureMarzo()
	ops[2].BillingOverride = decimal.NullDecimal{}
	st = sales.ComputeStats(ops, marzo2025(), rules)
	assert.True(t, decimal.NewFromInt(117000).Equal(st.NetoTotal), "neto sin PASS: %s", st.NetoTotal)
	assert.Equal(t, 2, st.TotalCompleted, "la política no saca a la PASS del conteo")
}
