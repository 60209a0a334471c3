package monitoring

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/mock/gomock"
)

//go:generate mockgen -build_flags=--mod=mod -package monitoring -destination ./mock_interfaces.go -source=./interfaces.go

func TestNewDirectoryMonitorWatcherRunsOnASchedule(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockMonitor := NewMockMonitorInterface(ctrl)
	mockSource := NewMockActivitySourceInterface(ctrl)

	activity := DirectoryActivity{}

	mockSource.EXPECT().Activity().MinTimes(1).Return(activity)
	mockMonitor.EXPECT().SetDirectoryMetric(map[string]string{"type": "connects"}, float64(0)).MinTimes(1)
	mockMonitor.EXPECT().SetDirectoryMetric(map[string]string{"type": "binds"}, float64(0)).MinTimes(1)
	mockMonitor.EXPECT().SetDirectoryMetric(map[string]string{"type": "bind_errors"}, float64(0)).MinTimes(1)
	mockMonitor.EXPECT().SetDirectoryMetric(map[string]string{"type": "searches"}, float64(0)).MinTimes(1)
	mockMonitor.EXPECT().SetDirectoryMetric(map[string]string{"type": "disconnects"}, float64(0)).MinTimes(1)

	logger := zerolog.Nop()
	m := NewDirectoryMonitorWatcher(mockSource, mockMonitor, &logger)

	m.syncTicker = time.NewTicker(5 * time.Microsecond)

	// allow goroutine to start and ticker to tick
	time.Sleep(10 * time.Millisecond)
}
