package queue

import (
	"testing"

	"github.com/freshguard/internal/config"
	"github.com/freshguard/internal/constants"
	"github.com/freshguard/internal/label"
)

func TestLabelPrintTaskRoundTrip(t *testing.T) {
	payload := LabelPrintPayload{
		StoreID: 3,
		Label: label.Label{
			BatchID:   42,
			Template:  constants.LabelLanguageSingle,
			Languages: []string{"en"},
			Text:      "Product: Fresh Milk",
		},
	}
	task, err := NewLabelPrintTask(payload)
	if err != nil {
		t.Fatalf("new task failed: %v", err)
	}
	if task.Type() != constants.TaskLabelPrint {
		t.Fatalf("task type want %s got %s", constants.TaskLabelPrint, task.Type())
	}
	parsed, err := ParseLabelPrintPayload(task)
	if err != nil {
		t.Fatalf("parse payload failed: %v", err)
	}
	if parsed.StoreID != 3 || parsed.Label.BatchID != 42 || parsed.Label.Text != payload.Label.Text {
		t.Fatalf("unexpected payload: %+v", parsed)
	}
}

func TestDisabledClientSkipsEnqueue(t *testing.T) {
	client, err := NewClient(&config.QueueConfig{Enabled: false})
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	if client.Enabled() {
		t.Fatalf("client should be disabled")
	}
	if err := client.EnqueueLabelPrint(LabelPrintPayload{StoreID: 1}); err != nil {
		t.Fatalf("disabled enqueue should be noop: %v", err)
	}
	if err := client.Close(); err != nil {
		t.Fatalf("close disabled client failed: %v", err)
	}
}

func TestBuildServerConfigDefaults(t *testing.T) {
	opt, cfg := BuildServerConfig(nil)
	if opt.Addr != "127.0.0.1:6379" {
		t.Fatalf("unexpected redis addr: %s", opt.Addr)
	}
	if cfg.Concurrency != 10 {
		t.Fatalf("concurrency want 10 got %d", cfg.Concurrency)
	}
	if cfg.Queues[PrintQueue] == 0 {
		t.Fatalf("print queue should be registered: %v", cfg.Queues)
	}

	opt, cfg = BuildServerConfig(&config.QueueConfig{Host: "redis", Port: 6380, DB: 2, Concurrency: 3, Queues: map[string]int{"print": 1}})
	if opt.Addr != "redis:6380" || opt.DB != 2 || cfg.Concurrency != 3 || len(cfg.Queues) != 1 {
		t.Fatalf("unexpected server config: %+v %+v", opt, cfg)
	}
}
