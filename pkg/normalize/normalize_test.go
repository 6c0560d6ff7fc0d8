package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vitalsalud/ventas-crm-api/pkg/normalize"
)

func TestFold_QuitaTildesYMayusculas(t *testing.T) {
	assert.Equal(t, "prevencion salud", normalize.Fold("  Prevención Salud "))
	assert.Equal(t, "ampf", normalize.Fold("AMPF"))
	assert.Equal(t, "auditoria_pass", normalize.Fold("Auditoría_PASS"))
}

func TestKey_ColapsaEspaciosInternos(t *testing.T) {
	assert.Equal(t, "juan perez", normalize.Key("  Juan   Pérez "))
}

func TestSameName(t *testing.T) {
	assert.True(t, normalize.SameName("María  López", "maria lopez"))
	assert.False(t, normalize.SameName("María López", "Mario López"))
}
