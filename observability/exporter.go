package observability

// https://opentelemetry.io/docs/languages/go/exporters/

import (
	"context"
	"io"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/multierr"

	"github.com/benz9527/bstviz/xlog"
)

var ErrUnknownExporter = errors.New("[observability] unknown metrics exporter")

type ExporterKind string

const (
	NoneExporter       ExporterKind = ""
	StdoutExporter     ExporterKind = "stdout"
	PrometheusExporter ExporterKind = "prometheus"
)

func ParseExporterKind(kind string) (ExporterKind, error) {
	switch k := ExporterKind(strings.ToLower(strings.TrimSpace(kind))); k {
	case NoneExporter, StdoutExporter, PrometheusExporter:
		return k, nil
	case "none":
		return NoneExporter, nil
	default:
	}
	return NoneExporter, errors.Wrapf(ErrUnknownExporter, "%q", kind)
}

type MetricsExporterConfig struct {
	Kind ExporterKind
	// Writer of the stdout exporter, defaults to os.Stderr.
	Writer   io.Writer
	Interval time.Duration
	Timeout  time.Duration
	// Addr is the listen address of the prometheus scrape endpoint,
	// empty means no server, see MetricsExporter.Handler.
	Addr   string
	Logger xlog.XLogger
}

// MetricsExporter owns the global meter provider installed by NewMetricsExporter.
type MetricsExporter struct {
	kind     ExporterKind
	provider *metric.MeterProvider
	handler  http.Handler
	server   *http.Server
	listener net.Listener
}

func (e *MetricsExporter) Kind() ExporterKind {
	return e.kind
}

// Handler is the prometheus scrape handler, nil for the other kinds.
func (e *MetricsExporter) Handler() http.Handler {
	return e.handler
}

// Addr is the bound scrape address, empty without server.
func (e *MetricsExporter) Addr() string {
	if e.listener == nil {
		return ""
	}
	return e.listener.Addr().String()
}

func (e *MetricsExporter) Shutdown(ctx context.Context) error {
	var err error
	if e.server != nil {
		err = multierr.Append(err, e.server.Shutdown(ctx))
	}
	if e.provider != nil {
		err = multierr.Append(err, e.provider.Shutdown(ctx))
	}
	return err
}

// Serves for test/dev environment.
func newConsoleMetricsExporter(cfg MetricsExporterConfig) (*MetricsExporter, error) {
	w := cfg.Writer
	if w == nil {
		w = os.Stderr
	}
	exporter, err := stdoutmetric.New(stdoutmetric.WithWriter(w))
	if err != nil {
		return nil, err
	}
	readerOpts := make([]metric.PeriodicReaderOption, 0, 2)
	if cfg.Interval > 0 {
		readerOpts = append(readerOpts, metric.WithInterval(cfg.Interval))
	}
	if cfg.Timeout > 0 {
		readerOpts = append(readerOpts, metric.WithTimeout(cfg.Timeout))
	}
	mp := metric.NewMeterProvider(metric.WithReader(metric.NewPeriodicReader(exporter, readerOpts...)))
	otel.SetMeterProvider(mp)
	return &MetricsExporter{kind: StdoutExporter, provider: mp}, nil
}

// Serves for the product environment and fetch stats metrics by HTTP.
func newPrometheusMetricsExporter(cfg MetricsExporterConfig) (*MetricsExporter, error) {
	registry := promclient.NewRegistry()
	exporter, err := prometheus.New(prometheus.WithRegisterer(registry))
	if err != nil {
		return nil, err
	}
	mp := metric.NewMeterProvider(metric.WithReader(exporter))
	e := &MetricsExporter{
		kind:     PrometheusExporter,
		provider: mp,
		handler:  promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	}
	if len(cfg.Addr) > 0 {
		ln, err := net.Listen("tcp", cfg.Addr)
		if err != nil {
			_ = mp.Shutdown(context.Background())
			return nil, errors.Wrapf(err, "[observability] listen %s", cfg.Addr)
		}
		mux := http.NewServeMux()
		mux.Handle("/metrics", e.handler)
		e.listener = ln
		e.server = &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := e.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) && cfg.Logger != nil {
				cfg.Logger.Error(err, "metrics server stopped")
			}
		}()
	}
	otel.SetMeterProvider(mp)
	return e, nil
}

// NewMetricsExporter installs the global meter provider of the kind.
// The none kind leaves the noop provider in place.
func NewMetricsExporter(cfg MetricsExporterConfig) (*MetricsExporter, error) {
	switch cfg.Kind {
	case NoneExporter:
		return &MetricsExporter{kind: NoneExporter}, nil
	case StdoutExporter:
		return newConsoleMetricsExporter(cfg)
	case PrometheusExporter:
		return newPrometheusMetricsExporter(cfg)
	default:
	}
	return nil, errors.Wrapf(ErrUnknownExporter, "%q", cfg.Kind)
}
