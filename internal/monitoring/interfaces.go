package monitoring

type MonitorInterface interface {
	SetResponseTimeMetric(map[string]string, float64) error
	SetDirectoryMetric(map[string]string, float64) error
}

// DirectoryActivity is a point-in-time reading of the directory
// counters kept by the auth service.
type DirectoryActivity struct {
	Connects    float64
	Binds       float64
	BindErrors  float64
	Searches    float64
	Disconnects float64
}

type ActivitySourceInterface interface {
	Activity() DirectoryActivity
}
