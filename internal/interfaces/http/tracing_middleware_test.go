package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	apphttp "github.com/papyros/backoffice/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// TracingMiddleware nombre del span por plantilla de ruta
// ──────────────────────────────────────────────────────────────────────────────

func TestTracingMiddleware_NombrePorPlantillaDeRuta(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	app := fiber.New()
	app.Use(apphttp.TracingMiddleware())
	app.Get("/api/sales/:id", func(c *fiber.Ctx) error { return c.SendString(c.Params("id")) })

	for _, id := range []string{"42", "43"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/sales/"+id, nil), -1)
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	for _, s := range spans {
		assert.Equal(t, "GET /api/sales/:id", s.Name())
		assert.Contains(t, s.Attributes(), attribute.String("http.route", "/api/sales/:id"))
	}
}
