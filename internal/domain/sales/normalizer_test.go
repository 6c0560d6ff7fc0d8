package sales_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalsalud/ventas-crm-api/internal/domain/entity"
	"github.com/vitalsalud/ventas-crm-api/internal/domain/sales"
)

// Marzo 2025: arranca sábado 1/3. Es el período de referencia de estos tests
// porque ejercita a la vez el corrimiento de fin de semana y la semana 1
// que no empieza en lunes.
func marzo2025() sales.Period { return sales.MonthPeriod(2025, time.March) }

func opAlta(id, fecha string) *entity.Operation {
	return &entity.Operation{
		ID:           id,
		Status:       entity.StatusIngresado,
		Tipo:         entity.TipoAlta,
		FechaIngreso: fecha,
		AgentName:    "Juan Pérez",
	}
}

// ── Resolución de fechas ──────────────────────────────────────────────────────

func TestResolveSaleDate_ISO(t *testing.T) {
	got, ok := sales.ResolveSaleDate("2025-03-01")
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, sales.ZonaVentas), got)
}

func TestResolveSaleDate_DiaMesAnio(t *testing.T) {
	got, ok := sales.ResolveSaleDate("1/3/2025")
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, sales.ZonaVentas), got)

	got, ok = sales.ResolveSaleDate("15/12/2024")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 12, 15, 0, 0, 0, 0, sales.ZonaVentas), got)
}

func TestResolveSaleDate_Invalida(t *testing.T) {
	for _, raw := range []string{"", "sin fecha", "32/13/2025", "0/5/2025"} {
		_, ok := sales.ResolveSaleDate(raw)
		assert.False(t, ok, "la fecha %q no debe resolver", raw)
	}
}

// ── Corrimiento de fin de semana ──────────────────────────────────────────────

func TestWeekendShift_SabadoYDomingoCaenElMismoLunes(t *testing.T) {
	sabado := time.Date(2025, 3, 1, 0, 0, 0, 0, sales.ZonaVentas)  // sábado
	domingo := time.Date(2025, 3, 2, 0, 0, 0, 0, sales.ZonaVentas) // domingo
	lunes := time.Date(2025, 3, 3, 0, 0, 0, 0, sales.ZonaVentas)

	assert.Equal(t, lunes, sales.WeekendShift(sabado), "sábado corre +2 al lunes")
	assert.Equal(t, lunes, sales.WeekendShift(domingo), "domingo corre +1 al mismo lunes")
}

func TestWeekendShift_DiaHabilEsNoOp(t *testing.T) {
	for d := 3; d <= 7; d++ { // lunes 3/3 a viernes 7/3
		dia := time.Date(2025, 3, d, 0, 0, 0, 0, sales.ZonaVentas)
		assert.Equal(t, dia, sales.WeekendShift(dia), "día hábil no se corre")
	}
}

// ── Normalización ─────────────────────────────────────────────────────────────

func TestNormalize_VentaDeSabadoInicialCaeEnSemana1(t *testing.T) {
	// Venta del sábado 1/3 → corrida al lunes 3/3, semana 1 del período.
	events := sales.Normalize([]*entity.Operation{opAlta("op-1", "2025-03-01")}, marzo2025())
	require.Len(t, events, 1)
	assert.Equal(t, 1, events[0].WeekIndex)
	assert.Equal(t, time.Date(2025, 3, 3, 0, 0, 0, 0, sales.ZonaVentas), events[0].SaleDate)
}

func TestNormalize_SemanasDelPeriodo(t *testing.T) {
	// Marzo 2025: semana 1 = 1..9 (el sábado/domingo inicial absorbe hasta el
	// lunes 3), semana 2 desde el lunes 10, ... semana 5 desde el lunes 31.
	casos := map[string]int{
		"2025-03-01": 1, // sábado inicial → lunes 3
		"2025-03-07": 1, // viernes de la primera semana
		"2025-03-10": 2,
		"2025-03-14": 2,
		"2025-03-17": 3,
		"2025-03-24": 4,
		"2025-03-28": 4,
		"2025-03-31": 5,
	}
	for fecha, semana := range casos {
		events := sales.Normalize([]*entity.Operation{opAlta("op-"+fecha, fecha)}, marzo2025())
		require.Len(t, events, 1, "la venta del %s debe entrar al período", fecha)
		assert.Equal(t, semana, events[0].WeekIndex, "semana de %s", fecha)
	}
}

func TestNormalize_VentanaSemiabierta(t *testing.T) {
	dentro := opAlta("op-inicio", "2025-03-01")  // == inicio → incluida
	fuera := opAlta("op-fin", "2025-04-01")      // == fin exclusivo → excluida
	anterior := opAlta("op-prev", "2025-02-28")  // anterior → excluida

	events := sales.Normalize([]*entity.Operation{dentro, fuera, anterior}, marzo2025())
	require.Len(t, events, 1)
	assert.Equal(t, "op-inicio", events[0].LeadID)
}

func TestNormalize_FinDeSemanaDeFinDeMesSaleDelPeriodo(t *testing.T) {
	// Sábado 31/5/2025 corre al lunes 2/6: sale de mayo y entra a junio.
	op := opAlta("op-31-5", "2025-05-31")

	mayo := sales.MonthPeriod(2025, time.May)
	assert.Empty(t, sales.Normalize([]*entity.Operation{op}, mayo))

	junio := sales.MonthPeriod(2025, time.June)
	events := sales.Normalize([]*entity.Operation{op}, junio)
	require.Len(t, events, 1)
	assert.Equal(t, 1, events[0].WeekIndex)
}

func TestNormalize_DeduplicaPorID(t *testing.T) {
	a := opAlta("op-dup", "2025-03-05")
	b := opAlta("op-dup", "2025-03-20") // misma id, gana la primera
	events := sales.Normalize([]*entity.Operation{a, b}, marzo2025())
	require.Len(t, events, 1)
	assert.Equal(t, 1, events[0].WeekIndex, "debe conservarse la primera aparición")
}

func TestNormalize_SinFechaValidaQuedaExcluida(t *testing.T) {
	op := opAlta("op-sin-fecha", "no es una fecha")
	assert.Empty(t, sales.Normalize([]*entity.Operation{op}, marzo2025()),
		"una venta sin fecha resoluble se excluye, no se fecha en cero")
}

func TestNormalize_EstadoNoOperativoQuedaExcluido(t *testing.T) {
	op := opAlta("op-x", "2025-03-05")
	op.Status = entity.Status("cotizacion")
	assert.Empty(t, sales.Normalize([]*entity.Operation{op}, marzo2025()))
}

// ── Clasificación ALTA / PASS ─────────────────────────────────────────────────

func TestNormalize_SenalesPassIndependientes(t *testing.T) {
	porTipo := opAlta("op-tipo", "2025-03-05")
	porTipo.Tipo = "pass"

	porSubEstado := opAlta("op-sub", "2025-03-05")
	porSubEstado.SubState = "AUDITORIA_PASS" // insensible a mayúsculas

	porOrigen := opAlta("op-origen", "2025-03-05")
	porOrigen.Origen = "  PASS " // insensible a mayúsculas y espacios

	for _, op := range []*entity.Operation{porTipo, porSubEstado, porOrigen} {
		events := sales.Normalize([]*entity.Operation{op}, marzo2025())
		require.Len(t, events, 1)
		ev := events[0]
		assert.Equal(t, sales.KindPass, ev.Kind, "señal PASS de %s", op.ID)
		assert.Equal(t, 1, ev.PassCount)
		assert.True(t, ev.AltasPoints.IsZero(), "una PASS nunca aporta capitas")
	}
}

func TestNormalize_AltaPonderaPorCapitas(t *testing.T) {
	op := opAlta("op-cap", "2025-03-05")
	op.Capitas = entity.Flex("4")

	events := sales.Normalize([]*entity.Operation{op}, marzo2025())
	require.Len(t, events, 1)
	assert.Equal(t, sales.KindAlta, events[0].Kind)
	assert.Equal(t, "4", events[0].AltasPoints.String())
	assert.Zero(t, events[0].PassCount)
}

func TestNormalize_CapitasInvalidasValenUno(t *testing.T) {
	for _, raw := range []string{"", "0", "-2", "abc"} {
		op := opAlta("op-"+raw, "2025-03-05")
		op.Capitas = entity.Flex(raw)
		events := sales.Normalize([]*entity.Operation{op}, marzo2025())
		require.Len(t, events, 1)
		assert.Equal(t, "1", events[0].AltasPoints.String(), "capitas %q valen 1", raw)
	}
}

func TestNormalize_AMPFSiempreVale1(t *testing.T) {
	op := opAlta("op-ampf", "2025-03-05")
	op.Prepaga = "AMPF Salud"
	op.Capitas = entity.Flex("50")

	events := sales.Normalize([]*entity.Operation{op}, marzo2025())
	require.Len(t, events, 1)
	assert.Equal(t, "1", events[0].AltasPoints.String(),
		"AMPF registra 1 punto por alta sin importar las capitas")
}

// ── Period ────────────────────────────────────────────────────────────────────

func TestParseMonth(t *testing.T) {
	p, err := sales.ParseMonth("2025-03")
	require.NoError(t, err)
	assert.Equal(t, marzo2025(), p)
	assert.Equal(t, "2025-03", p.MonthKey())

	_, err = sales.ParseMonth("marzo")
	assert.Error(t, err)
}
