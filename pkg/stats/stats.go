package stats

import (
	"expvar"
	"strconv"
)

// exposed expvar variables
var (
	Frontend  = expvar.NewMap("auth_frontend")
	Directory = expvar.NewMap("auth_directory")
	General   = expvar.NewMap("auth")
)

// Stringer exposes a plain string as an expvar value.
type Stringer string

func (s Stringer) String() string {
	return strconv.Quote(string(s))
}

// GetInt returns the current value of an integer counter in one of the
// exposed maps, zero when the counter has never been touched.
func GetInt(m *expvar.Map, key string) int64 {
	v := m.Get(key)
	if v == nil {
		return 0
	}
	i, ok := v.(*expvar.Int)
	if !ok {
		return 0
	}
	return i.Value()
}
