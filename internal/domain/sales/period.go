// Package sales: normalización de ventas y estadísticas de performance.
//
// Convierte los registros crudos de operaciones en "eventos de venta"
// canónicos (uno por operación calificada) con clasificación ALTA/PASS,
// puntaje por capitas y semana del período, y deriva de ellos los rollups
// de conversión, cumplimiento, ticket promedio y velocidad de cierre.
// Todo es puro: sin I/O, sin reloj implícito, sin estado compartido.
package sales

import (
	"fmt"
	"time"

	"github.com/vitalsalud/ventas-crm-api/internal/domain"
)

// ZonaVentas es el huso horario comercial (Argentina, UTC−3 fijo, sin DST).
// Toda fecha de venta se interpreta a medianoche de esta zona.
var ZonaVentas = time.FixedZone("-03", -3*60*60)

// Period es una ventana semiabierta [Start, End) de atribución de ventas.
type Period struct {
	Start time.Time
	End   time.Time
}

// MonthPeriod devuelve el período del mes calendario indicado.
func MonthPeriod(year int, month time.Month) Period {
	start := time.Date(year, month, 1, 0, 0, 0, 0, ZonaVentas)
	return Period{Start: start, End: start.AddDate(0, 1, 0)}
}

// ParseMonth interpreta un período "YYYY-MM" (formato de billing_period).
func ParseMonth(s string) (Period, error) {
	t, err := time.ParseInLocation("2006-01", s, ZonaVentas)
	if err != nil {
		return Period{}, fmt.Errorf("período %q: %w", s, domain.ErrInvalidPeriod)
	}
	return MonthPeriod(t.Year(), t.Month()), nil
}

// Contains indica si t cae dentro de la ventana [Start, End).
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

// MonthKey devuelve la clave "YYYY-MM" del mes de inicio del período.
func (p Period) MonthKey() string {
	return p.Start.In(ZonaVentas).Format("2006-01")
}
