// Package controllers holds small scheduling and validation helpers. No
// other package in this repository imports it.
package controllers

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// ValidateRequiredFields checks that required configuration fields are set.
func ValidateRequiredFields(fields map[string]string) error {
	for fieldName, fieldValue := range fields {
		if fieldValue == "" {
			return fmt.Errorf("%s must be set", fieldName)
		}
	}
	return nil
}

// PeriodicTask represents a periodic task configuration.
type PeriodicTask struct {
	Name     string
	Interval time.Duration
	Task     func() error
}

// RunPeriodicTask runs a task periodically until context is cancelled.
func RunPeriodicTask(ctx context.Context, task PeriodicTask, logger *zap.SugaredLogger) {
	logger.Infof("starting periodic task: %s (interval: %v)", task.Name, task.Interval)

	ticker := time.NewTicker(task.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := task.Task(); err != nil {
				logger.Errorf("error in periodic task %s: %v", task.Name, err)
			}
		case <-ctx.Done():
			logger.Infof("stopping periodic task: %s", task.Name)
			return
		}
	}
}
