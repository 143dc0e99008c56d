package app

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

type stubService struct {
	name     string
	startErr error
	block    bool
	stopped  atomic.Bool
	stopLog  *[]string
}

func (s *stubService) Name() string { return s.name }

func (s *stubService) Start(ctx context.Context) error {
	if s.block {
		<-ctx.Done()
		return nil
	}
	return s.startErr
}

func (s *stubService) Stop(context.Context) error {
	s.stopped.Store(true)
	if s.stopLog != nil {
		*s.stopLog = append(*s.stopLog, s.name)
	}
	return nil
}

func TestRunnerStopsAllServicesOnFailure(t *testing.T) {
	bindErr := errors.New("bind failed")
	failing := &stubService{name: "failing", startErr: bindErr}
	blocking := &stubService{name: "blocking", block: true}

	err := NewRunner(failing, blocking).Run(context.Background(), time.Second, nil)
	if !errors.Is(err, bindErr) || !strings.Contains(err.Error(), "failing") {
		t.Fatalf("expected start error tagged with service name, got %v", err)
	}
	if !failing.stopped.Load() || !blocking.stopped.Load() {
		t.Fatalf("all services should be stopped")
	}
}

func TestRunnerCancelIsCleanExit(t *testing.T) {
	blocking := &stubService{name: "blocking", block: true}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := NewRunner(blocking).Run(ctx, time.Second, nil); err != nil {
		t.Fatalf("canceled run should return nil, got %v", err)
	}
	if !blocking.stopped.Load() {
		t.Fatalf("service should be stopped")
	}
}

func TestRunnerRequiresServices(t *testing.T) {
	if err := NewRunner().Run(context.Background(), time.Second, nil); err == nil {
		t.Fatalf("empty runner should fail")
	}
}

func TestNormalizeOptionsDefaults(t *testing.T) {
	opts := normalizeOptions(Options{})
	if opts.Mode != ModeAll {
		t.Fatalf("default mode want %s got %s", ModeAll, opts.Mode)
	}
	if opts.ShutdownTimeout != 10*time.Second {
		t.Fatalf("default shutdown timeout want 10s got %v", opts.ShutdownTimeout)
	}
	if opts.Logger == nil {
		t.Fatalf("logger should default to global sugared logger")
	}
}

func TestBuildRunnerRejectsUnknownMode(t *testing.T) {
	if _, err := BuildRunner(nil, ModeAll); err == nil {
		t.Fatalf("nil config should fail")
	}
	if ValidMode("cron") {
		t.Fatalf("cron is not a valid mode")
	}
	if !ValidMode(normalizeOptions(Options{Mode: " API "}).Mode) {
		t.Fatalf("mode should be normalized before validation")
	}
}

func TestRunnerStopsInReverseOrder(t *testing.T) {
	var stopped []string
	first := &stubService{name: "http", block: true, stopLog: &stopped}
	second := &stubService{name: "worker", block: true, stopLog: &stopped}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := NewRunner(first, second).Run(ctx, time.Second, nil); err != nil {
		t.Fatalf("canceled run should return nil, got %v", err)
	}
	if len(stopped) != 2 || stopped[0] != "worker" || stopped[1] != "http" {
		t.Fatalf("stop order want [worker http] got %v", stopped)
	}
}

func TestAssembleFiltersByMode(t *testing.T) {
	components := []component{
		{name: "http", modes: []string{ModeAll, ModeAPI}, build: func() (Service, error) {
			return &stubService{name: "http"}, nil
		}},
		{name: "worker", modes: []string{ModeAll, ModeWorker}, build: func() (Service, error) {
			return &stubService{name: "worker"}, nil
		}},
	}

	cases := map[string][]string{
		ModeAll:    {"http", "worker"},
		ModeAPI:    {"http"},
		ModeWorker: {"worker"},
	}
	for mode, want := range cases {
		runner, err := assemble(mode, components)
		if err != nil {
			t.Fatalf("assemble %s failed: %v", mode, err)
		}
		if got := runner.Names(); strings.Join(got, ",") != strings.Join(want, ",") {
			t.Fatalf("mode %s want %v got %v", mode, want, got)
		}
	}
}

func TestAssembleSkipsNilAndReportsBuildErrors(t *testing.T) {
	skipped := []component{
		{name: "worker", modes: []string{ModeWorker}, build: func() (Service, error) { return nil, nil }},
	}
	if _, err := assemble(ModeWorker, skipped); err == nil {
		t.Fatalf("mode with only skipped components should fail")
	}

	buildErr := errors.New("redis unreachable")
	broken := []component{
		{name: "worker", modes: []string{ModeWorker}, build: func() (Service, error) { return nil, buildErr }},
	}
	_, err := assemble(ModeWorker, broken)
	if !errors.Is(err, buildErr) || !strings.Contains(err.Error(), "build worker") {
		t.Fatalf("build error should be wrapped with component name, got %v", err)
	}
}
