package observability

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

func TestParseExporterKind(t *testing.T) {
	for in, expected := range map[string]ExporterKind{
		"":           NoneExporter,
		"none":       NoneExporter,
		"Stdout":     StdoutExporter,
		"prometheus": PrometheusExporter,
	} {
		kind, err := ParseExporterKind(in)
		require.NoError(t, err)
		require.Equal(t, expected, kind)
	}
	_, err := ParseExporterKind("otlp")
	require.ErrorIs(t, err, ErrUnknownExporter)

	_, err = NewMetricsExporter(MetricsExporterConfig{Kind: "otlp"})
	require.ErrorIs(t, err, ErrUnknownExporter)
}

func TestNoneExporter(t *testing.T) {
	e, err := NewMetricsExporter(MetricsExporterConfig{})
	require.NoError(t, err)
	require.Equal(t, NoneExporter, e.Kind())
	require.Nil(t, e.Handler())
	require.Empty(t, e.Addr())
	require.NoError(t, e.Shutdown(context.Background()))
}

func TestStdoutExporter(t *testing.T) {
	prev := otel.GetMeterProvider()
	defer otel.SetMeterProvider(prev)

	buf := &bytes.Buffer{}
	e, err := NewMetricsExporter(MetricsExporterConfig{
		Kind:     StdoutExporter,
		Writer:   buf,
		Interval: time.Hour,
	})
	require.NoError(t, err)
	require.NoError(t, InitAppStats("test"))
	require.NoError(t, InitAppStats("ignored"))

	// The final collection runs on shutdown.
	require.NoError(t, e.Shutdown(context.Background()))
	require.Contains(t, buf.String(), "bstviz.app.goroutines")
	require.Contains(t, buf.String(), "bstviz/app/test")
	require.NotContains(t, buf.String(), "bstviz/app/ignored")
}

func TestPrometheusExporter(t *testing.T) {
	prev := otel.GetMeterProvider()
	defer otel.SetMeterProvider(prev)

	e, err := NewMetricsExporter(MetricsExporterConfig{
		Kind: PrometheusExporter,
		Addr: "127.0.0.1:0",
	})
	require.NoError(t, err)
	defer func() {
		require.NoError(t, e.Shutdown(context.Background()))
	}()

	counter, err := otel.Meter("bstviz/test").Int64Counter("bstviz.test.hits")
	require.NoError(t, err)
	counter.Add(context.Background(), 3, metric.WithAttributes())

	rec := httptest.NewRecorder()
	e.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "bstviz_test_hits_total")

	require.NotEmpty(t, e.Addr())
	resp, err := http.Get("http://" + e.Addr() + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "bstviz_test_hits_total")
}
