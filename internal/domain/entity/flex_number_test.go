package entity_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalsalud/ventas-crm-api/internal/domain/entity"
)

func TestFlexNumber_ParseoEstricto(t *testing.T) {
	casos := []struct {
		nombre string
		raw    string
		want   decimal.Decimal
	}{
		{"entero", "150000", decimal.NewFromInt(150000)},
		{"con espacios", "  150000  ", decimal.NewFromInt(150000)},
		{"decimal con punto", "1500.50", decimal.RequireFromString("1500.50")},
		{"vacío vale cero", "", decimal.Zero},
		{"texto no numérico vale cero", "a convenir", decimal.Zero},
		// Sintaxis estricta: la coma no es separador válido.
		{"coma decimal vale cero", "1500,50", decimal.Zero},
		{"miles con puntos vale cero", "1.500.000", decimal.Zero},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			f := entity.Flex(c.raw)
			assert.True(t, c.want.Equal(f.Decimal()), "raw %q: esperaba %s, obtuve %s",
				c.raw, c.want, f.Decimal())
		})
	}
}

func TestFlexNumber_ConservaElCrudo(t *testing.T) {
	f := entity.Flex(" 1500,50 ")
	assert.Equal(t, "1500,50", f.Raw(), "el texto original se conserva para auditoría")
	assert.True(t, f.Defined(), "vino con valor aunque no parsee")
	assert.False(t, f.Positive())
}

func TestFlexNumber_UnmarshalJSON(t *testing.T) {
	var op struct {
		Capitas entity.FlexNumber `json:"capitas"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"capitas": 3}`), &op))
	assert.True(t, decimal.NewFromInt(3).Equal(op.Capitas.Decimal()), "número JSON")

	require.NoError(t, json.Unmarshal([]byte(`{"capitas": " 3 "}`), &op))
	assert.True(t, decimal.NewFromInt(3).Equal(op.Capitas.Decimal()), "string JSON")

	require.NoError(t, json.Unmarshal([]byte(`{"capitas": null}`), &op))
	assert.False(t, op.Capitas.Defined(), "null queda ausente")
}
