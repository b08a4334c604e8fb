package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNew_EtiquetaService(t *testing.T) {
	var buf bytes.Buffer

	l := New(Config{Env: "production", Level: "info", Service: "caja-pos"})
	zl := l.Zerolog().Output(&buf)
	zl.Info().Msg("hola")

	assert.Contains(t, buf.String(), `"service":"caja-pos"`)
}

func TestNew_SinServiceOmiteEtiqueta(t *testing.T) {
	var buf bytes.Buffer

	l := New(Config{Env: "production", Level: "info"})
	zl := l.Zerolog().Output(&buf)
	zl.Info().Msg("hola")

	assert.NotContains(t, buf.String(), `"service"`)
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":       zerolog.TraceLevel,
		"debug":       zerolog.DebugLevel,
		"info":        zerolog.InfoLevel,
		"warn":        zerolog.WarnLevel,
		"error":       zerolog.ErrorLevel,
		"":            zerolog.InfoLevel,
		"desconocido": zerolog.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, parseLevel(in), "nivel %q", in)
	}
}
