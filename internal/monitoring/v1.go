package monitoring

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

type Monitor struct {
	responseTime    *prometheus.HistogramVec
	directoryMetric *prometheus.GaugeVec

	logger *zerolog.Logger
}

func (m *Monitor) SetResponseTimeMetric(tags map[string]string, value float64) error {
	if m.responseTime == nil {
		return fmt.Errorf("metric not instantiated")
	}

	m.responseTime.With(tags).Observe(value)

	return nil
}

func (m *Monitor) SetDirectoryMetric(tags map[string]string, value float64) error {
	if m.directoryMetric == nil {
		return fmt.Errorf("metric not instantiated")
	}

	m.directoryMetric.With(tags).Set(value)

	return nil
}

func (m *Monitor) constLabels() map[string]string {
	return map[string]string{
		"library": "github.com/dirauth/dirauth",
	}

}

func (m *Monitor) registerHistograms() {
	histograms := make([]*prometheus.HistogramVec, 0)

	m.responseTime = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:        "auth_response_time_seconds",
			Help:        "auth_response_time_seconds",
			ConstLabels: m.constLabels(),
		},
		[]string{"operation", "status"},
	)

	histograms = append(histograms, m.responseTime)

	for _, histogram := range histograms {
		err := prometheus.Register(histogram)

		switch err.(type) {
		case nil:
			return
		case prometheus.AlreadyRegisteredError:
			m.logger.Debug().Interface("metric", histogram).Msg("metric already registered")
		default:
			m.logger.Error().Interface("metric", histogram).Msg("metric could not be registered")
		}
	}
}

func (m *Monitor) registerGauges() {
	gauges := make([]*prometheus.GaugeVec, 0)

	m.directoryMetric = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name:        "directory_metric",
			Help:        "directory_metric",
			ConstLabels: m.constLabels(),
		},
		[]string{"type"},
	)

	gauges = append(gauges, m.directoryMetric)

	for _, gauge := range gauges {
		err := prometheus.Register(gauge)

		switch err.(type) {
		case nil:
			return
		case prometheus.AlreadyRegisteredError:
			m.logger.Debug().Interface("metric", gauge).Msg("metric already registered")
		default:
			m.logger.Error().Interface("metric", gauge).Msg("metric could not be registered")
		}
	}
}

func NewMonitor(logger *zerolog.Logger) *Monitor {
	m := new(Monitor)

	m.logger = logger

	m.registerHistograms()
	m.registerGauges()

	return m
}
