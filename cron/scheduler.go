package cron

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var ErrUnknownJob = errors.New("cron: unknown job")

// zapCronLogger routes robfig/cron's own logging into zap.
type zapCronLogger struct {
	s *zap.SugaredLogger
}

func (l zapCronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l zapCronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, append(keysAndValues, "error", err)...)
}

// Merge combines built-in jobs with registered ones. Registered jobs win on name clashes.
func Merge(builtins map[string]Job, registered map[string]Job) map[string]Job {
	out := make(map[string]Job, len(builtins)+len(registered))
	for k, v := range builtins {
		out[k] = v
	}
	for k, v := range registered {
		out[k] = v
	}
	return out
}

func disabled(schedule string) bool {
	s := strings.TrimSpace(strings.ToLower(schedule))
	return s == "" || s == "off"
}

// StartCron schedules builtins plus every registered job and starts the scheduler.
func StartCron(ctx context.Context, log *zap.Logger, builtins map[string]Job) (*cron.Cron, error) {
	if log == nil {
		log = zap.NewNop()
	}
	cl := zapCronLogger{s: log.Named("cron").Sugar()}
	c := cron.New(cron.WithLogger(cl), cron.WithChain(cron.Recover(cl)))
	for name, j := range Merge(builtins, Jobs()) {
		if disabled(j.Schedule) {
			log.Info("cron job disabled", zap.String("job", name))
			continue
		}
		name, run := name, j.Run
		if _, err := c.AddFunc(j.Schedule, func() { runLogged(ctx, log, name, run) }); err != nil {
			return nil, fmt.Errorf("register job %s: %w", name, err)
		}
		log.Info("cron job scheduled", zap.String("job", name), zap.String("schedule", j.Schedule))
	}
	c.Start()
	return c, nil
}

// RunOnce executes a single job by name.
func RunOnce(ctx context.Context, log *zap.Logger, builtins map[string]Job, name string, args ...string) error {
	if log == nil {
		log = zap.NewNop()
	}
	j, ok := Merge(builtins, Jobs())[strings.ToLower(name)]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownJob, name)
	}
	return runLogged(ctx, log, name, j.Run, args...)
}

func runLogged(ctx context.Context, log *zap.Logger, name string, run RunFunc, args ...string) error {
	start := time.Now()
	err := run(ctx, args...)
	fields := []zap.Field{zap.String("job", name), zap.Duration("took", time.Since(start))}
	if err != nil {
		log.Error("cron job failed", append(fields, zap.Error(err))...)
		return err
	}
	log.Info("cron job done", fields...)
	return nil
}
