package benteng

import "time"

// Clock supplies the wall-clock time used for freshness checks. The core
// never reads the system clock directly, so verification is reproducible
// under test.
type Clock interface {
	// NowMS returns milliseconds since the Unix epoch.
	NowMS() uint64
}

// systemClock is the default Clock.
type systemClock struct{}

func (systemClock) NowMS() uint64 {
	return uint64(time.Now().UnixMilli())
}
