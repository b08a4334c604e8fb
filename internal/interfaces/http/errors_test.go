package http

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/caja-pos/internal/domain"
)

func respondingApp(err error) *fiber.App {
	app := fiber.New()
	app.Get("/boom", func(c *fiber.Ctx) error {
		return respondError(c, err)
	})
	return app
}

func bodyOf(t *testing.T, app *fiber.App) (int, string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestRespondError_InternoNoFiltraDetalle(t *testing.T) {
	// Un error no mapeado (p.ej. del driver de base de datos) responde
	// genérico: el detalle interno queda en el log, nunca en el body.
	interno := errors.New("pq: password authentication failed for host 10.0.0.1")
	status, body := bodyOf(t, respondingApp(interno))

	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Contains(t, body, "INTERNAL")
	assert.Contains(t, body, "error interno del servidor")
	assert.NotContains(t, body, "10.0.0.1", "el body no expone detalle interno")
	assert.NotContains(t, body, "pq:")
}

func TestRespondError_TipadosConservanContexto(t *testing.T) {
	status, body := bodyOf(t, respondingApp(&domain.InsufficientStockError{
		ProductName: "Refresco 600ml",
		Available:   2,
	}))

	assert.Equal(t, fiber.StatusConflict, status)
	assert.Contains(t, body, "INSUFFICIENT_STOCK")
	assert.Contains(t, body, "Refresco 600ml")
}

func TestRespondError_SentinelasMapeados(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrProductNotFound, fiber.StatusNotFound, "PRODUCT_NOT_FOUND"},
		{domain.ErrDuplicate, fiber.StatusBadRequest, "DUPLICATE"},
		{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	}
	for _, tc := range cases {
		status, body := bodyOf(t, respondingApp(tc.err))
		assert.Equal(t, tc.status, status, "error %v", tc.err)
		assert.Contains(t, body, tc.code)
	}
}
