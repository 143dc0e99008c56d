package service

import (
	"context"

	"github.com/freshguard/internal/label"
	"github.com/freshguard/internal/logger"
	"github.com/freshguard/internal/printer"
	"github.com/freshguard/internal/queue"
)

// PrintService 标签打印投递服务
// 打印失败不影响已提交的批次
type PrintService struct {
	queueClient *queue.Client
	sink        printer.Sink
}

// NewPrintService 创建打印服务
func NewPrintService(queueClient *queue.Client, sink printer.Sink) *PrintService {
	if sink == nil {
		sink = printer.LogSink{}
	}
	return &PrintService{queueClient: queueClient, sink: sink}
}

// PrintJobStatus 打印作业状态
type PrintJobStatus struct {
	Queued    bool   `json:"queued"`
	Delivered bool   `json:"delivered"`
	Sink      string `json:"sink"`
	Error     string `json:"error,omitempty"`
}

// Dispatch 队列可用时异步投递，否则同步投递
func (s *PrintService) Dispatch(ctx context.Context, storeID uint, rendered label.Label) PrintJobStatus {
	status := PrintJobStatus{Sink: s.sink.Name()}
	if s.queueClient.Enabled() {
		err := s.queueClient.EnqueueLabelPrint(queue.LabelPrintPayload{StoreID: storeID, Label: rendered})
		if err == nil {
			status.Queued = true
			return status
		}
		logger.Warnw("print_enqueue_failed_fallback_sync",
			"batch_id", rendered.BatchID,
			"store_id", storeID,
			"error", err,
		)
	}

	if err := s.Deliver(ctx, storeID, rendered); err != nil {
		status.Error = err.Error()
		return status
	}
	status.Delivered = true
	return status
}

// Deliver 交给打印投递目标
func (s *PrintService) Deliver(ctx context.Context, storeID uint, rendered label.Label) error {
	job := printer.Job{
		BatchID: rendered.BatchID,
		StoreID: storeID,
		Text:    rendered.Text,
	}
	if rendered.Printer.Address != nil {
		job.Address = *rendered.Printer.Address
	}
	if rendered.Printer.Port != nil {
		job.Port = *rendered.Printer.Port
	}
	if err := s.sink.Deliver(ctx, job); err != nil {
		logger.Warnw("print_deliver_failed",
			"batch_id", rendered.BatchID,
			"store_id", storeID,
			"sink", s.sink.Name(),
			"error", err,
		)
		return err
	}
	return nil
}
