package utils

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Timer reports elapsed wall time of program phases when enabled
type Timer struct {
	Enabled bool
	Log     logrus.FieldLogger
	start   time.Time
}

func NewTimer(enabled bool, log logrus.FieldLogger) (t *Timer) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	t = &Timer{Enabled: enabled, Log: log}
	t.Start()
	return
}

func (t *Timer) Start() {
	t.start = time.Now()
}

// Report logs the time since the last Start and restarts the timer
func (t *Timer) Report(phase string) (elapsed time.Duration) {
	elapsed = time.Since(t.start)
	if t.Enabled {
		t.Log.WithFields(logrus.Fields{
			"phase":   phase,
			"elapsed": elapsed.Seconds(),
		}).Info("timing")
	}
	t.Start()
	return
}
