package worker

import (
	"context"

	"github.com/freshguard/internal/logger"
	"github.com/freshguard/internal/queue"
	"github.com/freshguard/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	PrintService  *service.PrintService
	ReportService *service.ReportService
}

// NewConsumer 创建消费者
func NewConsumer(printService *service.PrintService, reportService *service.ReportService) *Consumer {
	return &Consumer{
		PrintService:  printService,
		ReportService: reportService,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskLabelPrint, c.handleLabelPrint)
}

func (c *Consumer) handleLabelPrint(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil || c.PrintService == nil {
		logger.Debugw("worker_label_print_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	payload, err := queue.ParseLabelPrintPayload(task)
	if err != nil {
		logger.Warnw("worker_label_print_unmarshal_failed", "error", err)
		// 载荷无法解析时重试无意义
		return asynq.SkipRetry
	}
	if payload.StoreID == 0 || payload.Label.BatchID == 0 {
		logger.Debugw("worker_label_print_skip_invalid_payload",
			"store_id", payload.StoreID,
			"batch_id", payload.Label.BatchID,
		)
		return nil
	}
	if err := c.PrintService.Deliver(ctx, payload.StoreID, payload.Label); err != nil {
		logger.Warnw("worker_label_print_failed",
			"store_id", payload.StoreID,
			"batch_id", payload.Label.BatchID,
			"error", err,
		)
		return err
	}
	return nil
}
