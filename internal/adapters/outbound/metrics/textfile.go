package metrics

import (
	"fmt"

	"github.com/openkraft/hubguard/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// TextfileExporter writes per-hub compliance gauges in the Prometheus text
// exposition format, for node_exporter's textfile collector.
type TextfileExporter struct{}

func New() *TextfileExporter {
	return &TextfileExporter{}
}

// Export writes the gauges for one run to path. Each call uses a fresh
// registry so nothing leaks between runs.
func (e *TextfileExporter) Export(path string, rep domain.ComplianceReport) error {
	reg := prometheus.NewRegistry()

	violations := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "hubguard_violations",
			Help: "Infrastructure violations found in the last run, by hub and severity.",
		},
		[]string{"hub", "severity"},
	)
	compliant := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "hubguard_hub_compliant",
			Help: "1 if the hub met the compliance level of the last run.",
		},
		[]string{"hub"},
	)
	hubsTotal := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "hubguard_hubs_total",
		Help: "Hubs validated in the last run.",
	})

	for _, c := range []prometheus.Collector{violations, compliant, hubsTotal} {
		if err := reg.Register(c); err != nil {
			return fmt.Errorf("registering metrics: %w", err)
		}
	}

	for _, hr := range rep.HubResults {
		for _, sev := range domain.Severities {
			violations.WithLabelValues(hr.HubName, string(sev)).Set(float64(hr.Violations.Count(sev)))
		}
		v := 0.0
		if hr.Compliant {
			v = 1
		}
		compliant.WithLabelValues(hr.HubName).Set(v)
	}
	hubsTotal.Set(float64(len(rep.HubResults)))

	if err := prometheus.WriteToTextfile(path, reg); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}
