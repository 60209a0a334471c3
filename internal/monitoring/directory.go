package monitoring

import (
	"time"

	"github.com/rs/zerolog"
)

type DirectoryMonitorWatcher struct {
	syncTicker *time.Ticker

	source ActivitySourceInterface

	monitor MonitorInterface
	logger  *zerolog.Logger
}

func (m *DirectoryMonitorWatcher) sync() {
	for {
		select {
		case tick := <-m.syncTicker.C:
			m.logger.Debug().Time("value", tick).Msg("Tick")
			m.storeMetrics()
		}
	}
}

func (m *DirectoryMonitorWatcher) storeMetrics() {
	activity := m.source.Activity()

	if err := m.monitor.SetDirectoryMetric(map[string]string{"type": "connects"}, activity.Connects); err != nil {
		m.logger.Error().Err(err).Msg("failed to set metric")
	}
	if err := m.monitor.SetDirectoryMetric(map[string]string{"type": "binds"}, activity.Binds); err != nil {
		m.logger.Error().Err(err).Msg("failed to set metric")
	}
	if err := m.monitor.SetDirectoryMetric(map[string]string{"type": "bind_errors"}, activity.BindErrors); err != nil {
		m.logger.Error().Err(err).Msg("failed to set metric")
	}
	if err := m.monitor.SetDirectoryMetric(map[string]string{"type": "searches"}, activity.Searches); err != nil {
		m.logger.Error().Err(err).Msg("failed to set metric")
	}
	if err := m.monitor.SetDirectoryMetric(map[string]string{"type": "disconnects"}, activity.Disconnects); err != nil {
		m.logger.Error().Err(err).Msg("failed to set metric")
	}
}

func NewDirectoryMonitorWatcher(source ActivitySourceInterface, monitor MonitorInterface, logger *zerolog.Logger) *DirectoryMonitorWatcher {
	m := new(DirectoryMonitorWatcher)

	m.syncTicker = time.NewTicker(15 * time.Second)
	m.source = source
	m.monitor = monitor
	m.logger = logger

	go m.sync()

	return m
}
