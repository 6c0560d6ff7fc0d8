package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	casos := map[string]zerolog.Level{
		"trace":     zerolog.TraceLevel,
		"debug":     zerolog.DebugLevel,
		"info":      zerolog.InfoLevel,
		"warn":      zerolog.WarnLevel,
		"error":     zerolog.ErrorLevel,
		"cualquier": zerolog.InfoLevel,
		"":          zerolog.InfoLevel,
	}
	for in, want := range casos {
		assert.Equal(t, want, parseLevel(in), "nivel para %q", in)
	}
}

func TestNew_EstampaServicio(t *testing.T) {
	var buf bytes.Buffer
	l := newWithWriter(Config{Env: "production", Level: "info", Service: "ventas-crm"}, &buf)

	l.Info().Str("env", "production").Msg("iniciando")

	linea := buf.String()
	assert.Contains(t, linea, `"service":"ventas-crm"`, "cada línea lleva el nombre del servicio")
	assert.Contains(t, linea, `"message":"iniciando"`)
}

func TestNew_SinServicioNoAgregaCampo(t *testing.T) {
	var buf bytes.Buffer
	l := newWithWriter(Config{Env: "production", Level: "info"}, &buf)

	l.Info().Msg("ok")

	assert.False(t, strings.Contains(buf.String(), `"service"`),
		"sin Service configurado no debe aparecer el campo")
}

func TestNew_FiltraPorNivel(t *testing.T) {
	var buf bytes.Buffer
	l := newWithWriter(Config{Env: "production", Level: "warn"}, &buf)

	l.Info().Msg("descartado")
	l.Warn().Msg("registrado")

	salida := buf.String()
	assert.NotContains(t, salida, "descartado")
	assert.Contains(t, salida, "registrado")
}
