package progress

import (
	"sync"
	"time"

	"github.com/imertcoskun/geoint/internal/logger"
	"github.com/sirupsen/logrus"
)

// Reporter tracks the outcome of a batch of analyses
type Reporter struct {
	mu        sync.Mutex
	total     int
	completed int
	errors    int
	startTime time.Time
}

// New creates a new progress reporter
func New() *Reporter {
	return &Reporter{}
}

// Start initializes the reporter with the total number of files
func (r *Reporter) Start(total int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.total = total
	r.completed = 0
	r.errors = 0
	r.startTime = time.Now()

	logger.WithField("files", total).Debug("Starting analysis")
}

// Complete marks a file as successfully analyzed
func (r *Reporter) Complete(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.completed++
	logger.WithField("file", path).Debug("Analysis completed")
}

// Error marks a file as failed
func (r *Reporter) Error(path string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.errors++
	logger.WithError(err).WithField("file", path).Debug("Analysis failed")
}

// Finish reports the batch outcome. Single-file runs stay quiet unless debug
// logging is on.
func (r *Reporter) Finish() {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry := logger.WithFields(logrus.Fields{
		"completed": r.completed,
		"errors":    r.errors,
		"duration":  time.Since(r.startTime).Round(time.Millisecond).String(),
	})
	if r.total > 1 {
		entry.Info("Analysis complete")
		return
	}
	entry.Debug("Analysis complete")
}
