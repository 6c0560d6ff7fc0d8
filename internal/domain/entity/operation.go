package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vitalsalud/ventas-crm-api/pkg/normalize"
)

// Status es el estado de una operación dentro del pipeline comercial.
type Status string

// Estados del pipeline. El camino feliz es
// ingresado → precarga → medicas → legajo → cumplidas; demoras y rechazado
// son estados laterales alcanzables desde cualquier estado del camino y
// reingresables a ingresado.
const (
	StatusIngresado Status = "ingresado"
	StatusPrecarga  Status = "precarga"
	StatusMedicas   Status = "medicas"
	StatusLegajo    Status = "legajo"
	StatusDemoras   Status = "demoras"
	StatusCumplidas Status = "cumplidas"
	StatusRechazado Status = "rechazado"
)

// opsStatuses: estados que cuentan como operación de venta para atribución.
var opsStatuses = map[Status]bool{
	StatusIngresado: true,
	StatusPrecarga:  true,
	StatusMedicas:   true,
	StatusLegajo:    true,
	StatusDemoras:   true,
	StatusCumplidas: true,
	StatusRechazado: true,
}

// siguienteEstado: avance de un paso en el camino feliz.
var siguienteEstado = map[Status]Status{
	StatusIngresado: StatusPrecarga,
	StatusPrecarga:  StatusMedicas,
	StatusMedicas:   StatusLegajo,
	StatusLegajo:    StatusCumplidas,
}

// EsOperativo indica si el estado pertenece al conjunto de estados de venta.
func (s Status) EsOperativo() bool { return opsStatuses[s] }

// EsLateral indica si el estado es demoras o rechazado.
func (s Status) EsLateral() bool { return s == StatusDemoras || s == StatusRechazado }

// ValidTransition valida una transición del pipeline:
//   - avance de un paso en el camino feliz,
//   - salto a demoras/rechazado desde cualquier estado del camino,
//   - reingreso desde demoras/rechazado a ingresado.
//
// El núcleo de cálculo no impone transiciones (solo clasifica el estado
// vigente); esta validación vive en la capa de aplicación.
func ValidTransition(from, to Status) bool {
	if !from.EsOperativo() || !to.EsOperativo() {
		return false
	}
	if from.EsLateral() {
		return to == StatusIngresado
	}
	if to.EsLateral() {
		return true
	}
	return siguienteEstado[from] == to
}

// Tipos de operación.
const (
	TipoAlta = "alta"
	TipoPass = "pass"
)

// SubEstadoAuditoriaPass es el sub-estado centinela que marca una operación
// como PASS con independencia de su tipo.
const SubEstadoAuditoriaPass = "auditoria_pass"

// Operation es el registro de lead/operación tal como lo entrega el origen
// de datos externo. El núcleo de cálculo lo lee y deriva; nunca lo persiste.
//
// Los campos monetarios y capitas llegan como texto o número según cómo se
// cargó la fila (FlexNumber tolera ambos). fecha_ingreso se conserva cruda:
// su interpretación es responsabilidad del normalizador de ventas.
type Operation struct {
	ID      string
	Titular string // nombre del titular de la póliza

	Status   Status
	Tipo     string // alta | pass
	SubState string // etiqueta libre de etapa; incluye el centinela auditoria_pass
	Origen   string // origen libre del lead; el literal "pass" también señala PASS

	Prepaga          string
	QuotedPrepaga    string
	Plan             string
	QuotedPlan       string
	CondicionLaboral string
	Capitas          FlexNumber

	FullPrice       FlexNumber
	Price           FlexNumber
	Aportes         FlexNumber
	Descuento       FlexNumber
	BillingOverride decimal.NullDecimal // si está presente, manda sobre toda fórmula

	FechaIngreso    string // cruda: "YYYY-MM-DD" o "D/M/YYYY"
	CreatedAt       time.Time
	LastUpdate      *time.Time
	SoldAt          *time.Time
	BillingPeriod   string // "YYYY-MM"; autoritativo para atribución de facturación
	BillingApproved bool

	AgentName string
}

// IsPass clasifica la operación como PASS si cualquiera de las tres señales
// independientes está presente: tipo, sub-estado centinela u origen. ALTA es
// el complemento; la clasificación es total.
func (o *Operation) IsPass() bool {
	if normalize.Fold(o.Tipo) == TipoPass {
		return true
	}
	if normalize.Fold(o.SubState) == SubEstadoAuditoriaPass {
		return true
	}
	return normalize.Fold(o.Origen) == TipoPass
}

// ProveedorFold devuelve la prepaga efectiva (prepaga, o la cotizada como
// fallback) en forma canónica para matching por substring.
func (o *Operation) ProveedorFold() string {
	if o.Prepaga != "" {
		return normalize.Fold(o.Prepaga)
	}
	return normalize.Fold(o.QuotedPrepaga)
}

// PlanEfectivo devuelve el plan, o el cotizado como fallback.
func (o *Operation) PlanEfectivo() string {
	if o.Plan != "" {
		return o.Plan
	}
	return o.QuotedPlan
}
