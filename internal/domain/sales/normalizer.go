package sales

import (
	"regexp"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vitalsalud/ventas-crm-api/internal/domain/billing"
	"github.com/vitalsalud/ventas-crm-api/internal/domain/entity"
)

// Kind clasifica un evento de venta.
type Kind string

const (
	KindAlta Kind = "ALTA" // venta nueva, pondera por capitas
	KindPass Kind = "PASS" // traspaso de cartera, cuenta 1 registro
)

// SaleEvent es la forma canónica de una venta dentro de un período. Es un
// derivado efímero: se recalcula en cada invocación y nunca se persiste.
type SaleEvent struct {
	LeadID      string
	AgentName   string
	Origen      string
	SaleDate    time.Time // ya corrida por la regla de fin de semana
	WeekIndex   int       // 1..5 dentro del período
	Kind        Kind
	AltasPoints decimal.Decimal // capitas ponderadas; 0 para PASS
	PassCount   int             // 1 para PASS; 0 para ALTA
}

var (
	reISO = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	reDMY = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
)

// Layouts de último recurso para fechas cargadas con formatos atípicos.
var layoutsGenericos = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
}

// ResolveSaleDate interpreta fecha_ingreso, la única fuente de verdad de la
// fecha de venta. Acepta "YYYY-MM-DD" y "D/M/YYYY" a medianoche de
// ZonaVentas, con un intento genérico como último recurso. Si nada parsea,
// ok es false y la operación queda excluida de la atribución: una venta sin
// fecha no se puede bucketizar (es un filtro, no un error).
func ResolveSaleDate(raw string) (t time.Time, ok bool) {
	if raw == "" {
		return time.Time{}, false
	}
	if reISO.MatchString(raw) {
		if t, err := time.ParseInLocation("2006-01-02", raw, ZonaVentas); err == nil {
			return t, true
		}
	}
	if m := reDMY.FindStringSubmatch(raw); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if day >= 1 && day <= 31 && month >= 1 && month <= 12 {
			return time.Date(year, time.Month(month), day, 0, 0, 0, 0, ZonaVentas), true
		}
	}
	for _, layout := range layoutsGenericos {
		if t, err := time.ParseInLocation(layout, raw, ZonaVentas); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// WeekendShift corre las ventas de fin de semana al lunes siguiente:
// sábado +2 días, domingo +1 día; los días hábiles quedan como están.
// Sábado y domingo del mismo fin de semana caen en el mismo lunes.
func WeekendShift(t time.Time) time.Time {
	switch t.Weekday() {
	case time.Saturday:
		return t.AddDate(0, 0, 2)
	case time.Sunday:
		return t.AddDate(0, 0, 1)
	default:
		return t
	}
}

const maxWeeks = 5

// weekBoundaries construye hasta 5 inicios de semana dentro del período.
// La semana 1 arranca el primer día calendario del período aunque no sea
// lunes; las siguientes arrancan los lunes sucesivos. Si el período arranca
// en fin de semana, la semana 1 absorbe hasta el lunes corrido inclusive
// (coherente con WeekendShift: una venta del sábado inicial cae en semana 1).
func weekBoundaries(p Period) []time.Time {
	boundaries := []time.Time{p.Start}
	next := nextMonday(WeekendShift(p.Start))
	for len(boundaries) < maxWeeks && next.Before(p.End) {
		boundaries = append(boundaries, next)
		next = next.AddDate(0, 0, 7)
	}
	return boundaries
}

// nextMonday devuelve el lunes estrictamente posterior a t.
func nextMonday(t time.Time) time.Time {
	days := (8 - int(t.Weekday())) % 7
	if days == 0 {
		days = 7
	}
	return t.AddDate(0, 0, days)
}

// weekIndex devuelve la semana (1..5) de una fecha ya corrida: el mayor
// inicio de semana menor o igual a la fecha.
func weekIndex(boundaries []time.Time, t time.Time) int {
	idx := 1
	for i, b := range boundaries {
		if !t.Before(b) {
			idx = i + 1
		}
	}
	if idx > maxWeeks {
		idx = maxWeeks
	}
	return idx
}

// AltaPoints devuelve el puntaje de una operación ALTA: las capitas si son
// un número positivo, si no 1. AMPF registra siempre exactamente 1 punto
// por alta sin importar las capitas.
func AltaPoints(op *entity.Operation) decimal.Decimal {
	if billing.EsAMPF(op) {
		return decimal.NewFromInt(1)
	}
	if op.Capitas.Positive() {
		return op.Capitas.Decimal()
	}
	return decimal.NewFromInt(1)
}

// Normalize convierte los registros crudos en eventos de venta canónicos
// para el período dado:
//
//  1. resuelve fecha_ingreso (sin fecha válida → excluida),
//  2. corre fines de semana al lunes siguiente,
//  3. deduplica por id (gana la primera aparición) y filtra por estado
//     operativo y ventana [Start, End) sobre la fecha corrida,
//  4. clasifica ALTA/PASS y asigna puntaje,
//  5. asigna la semana 1..5 dentro del período.
func Normalize(records []*entity.Operation, p Period) []SaleEvent {
	boundaries := weekBoundaries(p)
	seen := make(map[string]bool, len(records))
	events := make([]SaleEvent, 0, len(records))

	for _, op := range records {
		if op == nil || seen[op.ID] {
			continue
		}
		seen[op.ID] = true

		if !op.Status.EsOperativo() {
			continue
		}
		resolved, ok := ResolveSaleDate(op.FechaIngreso)
		if !ok {
			continue
		}
		saleDate := WeekendShift(resolved)
		if !p.Contains(saleDate) {
			continue
		}

		ev := SaleEvent{
			LeadID:    op.ID,
			AgentName: op.AgentName,
			Origen:    op.Origen,
			SaleDate:  saleDate,
			WeekIndex: weekIndex(boundaries, saleDate),
		}
		if op.IsPass() {
			ev.Kind = KindPass
			ev.PassCount = 1
			ev.AltasPoints = decimal.Zero
		} else {
			ev.Kind = KindAlta
			ev.AltasPoints = AltaPoints(op)
		}
		events = append(events, ev)
	}
	return events
}
