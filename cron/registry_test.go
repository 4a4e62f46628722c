package cron

import (
	"context"
	"testing"
)

func TestRegistry_Register_Jobs(t *testing.T) {
	ran := false
	Register("testregistryjob", "@every 1h", func(ctx context.Context, args ...string) error {
		ran = true
		return nil
	})
	defer Unregister("testregistryjob")

	j, ok := Jobs()["testregistryjob"]
	if !ok {
		t.Fatal("testregistryjob not in Jobs()")
	}
	if j.Schedule != "@every 1h" {
		t.Errorf("Schedule = %q, want @every 1h", j.Schedule)
	}
	if err := j.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !ran {
		t.Error("Run did not execute")
	}
}

func TestRegistry_Register_DuplicatePanics(t *testing.T) {
	noop := func(context.Context, ...string) error { return nil }
	Register("dupjob", "@hourly", noop)
	defer Unregister("dupjob")
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic on duplicate")
		}
	}()
	Register("dupjob", "@daily", noop)
}

func TestRegistry_LockedAfterJobs(t *testing.T) {
	Register("lockjob", "@hourly", func(context.Context, ...string) error { return nil })
	defer Unregister("lockjob")
	_ = Jobs()
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic after Jobs() locked the registry")
		}
	}()
	Register("latejob", "@hourly", func(context.Context, ...string) error { return nil })
}

// registryUnlock re-opens the registry after a test that called Jobs().
func registryUnlock() {
	Unregister("")
}
