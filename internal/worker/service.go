package worker

import (
	"context"
	"errors"
	"time"

	"github.com/freshguard/internal/config"
	"github.com/freshguard/internal/logger"
	"github.com/freshguard/internal/queue"

	"github.com/hibiken/asynq"
)

// Service worker 服务封装
type Service struct {
	name         string
	server       *asynq.Server
	mux          *asynq.ServeMux
	consumer     *Consumer
	warmInterval time.Duration
	cancel       context.CancelFunc
}

// NewService 创建 worker 服务
func NewService(cfg *config.QueueConfig, consumer *Consumer, warmInterval time.Duration) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue is disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	redisOpt, serverCfg := queue.BuildServerConfig(cfg)
	server := asynq.NewServer(redisOpt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)
	return &Service{
		name:         "worker",
		server:       server,
		mux:          mux,
		consumer:     consumer,
		warmInterval: warmInterval,
	}, nil
}

// ReportWarmInterval 报表缓存预热间隔，取缓存有效期的一半
func ReportWarmInterval(cacheTTL time.Duration) time.Duration {
	if cacheTTL <= 0 {
		return 0
	}
	interval := cacheTTL / 2
	if interval < time.Second {
		interval = time.Second
	}
	return interval
}

// Name 服务名称
func (s *Service) Name() string {
	return s.name
}

// Start 启动 worker
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	loopCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	go s.runReportWarmLoop(loopCtx)
	return s.server.Run(s.mux)
}

// Stop 停止 worker
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	if s.cancel != nil {
		s.cancel()
	}
	s.server.Shutdown()
	return nil
}

// runReportWarmLoop 定时刷新报表缓存，未启用缓存时直接返回
func (s *Service) runReportWarmLoop(ctx context.Context) {
	if s == nil || s.consumer == nil || s.consumer.ReportService == nil {
		return
	}
	if !s.consumer.ReportService.CacheEnabled() || s.warmInterval <= 0 {
		return
	}
	runOnce := func() {
		if err := s.consumer.ReportService.Warm(ctx); err != nil {
			logger.Warnw("worker_report_warm_failed", "error", err)
		}
	}
	runOnce()

	ticker := time.NewTicker(s.warmInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runOnce()
		}
	}
}
