package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/freshguard/internal/config"
	"github.com/freshguard/internal/logger"
	"github.com/freshguard/internal/provider"
	"github.com/freshguard/internal/router"
	"github.com/freshguard/internal/worker"
)

// BuildRunner 构建服务运行器
func BuildRunner(cfg *config.Config, mode string) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if !ValidMode(mode) {
		return nil, fmt.Errorf("unknown mode %q (want all, api or worker)", mode)
	}

	container := provider.NewContainer(cfg)
	return assemble(mode, []component{
		{
			name:  "http",
			modes: []string{ModeAll, ModeAPI},
			build: func() (Service, error) {
				return NewHTTPService(cfg.Server.Addr(), router.SetupRouter(cfg, container)), nil
			},
		},
		{
			name:  "worker",
			modes: []string{ModeAll, ModeWorker},
			build: func() (Service, error) {
				if !cfg.Queue.Enabled {
					logger.Warnw("worker_skipped_queue_disabled", "mode", mode)
					return nil, nil
				}
				consumer := worker.NewConsumer(container.PrintService, container.ReportService)
				warmInterval := worker.ReportWarmInterval(time.Duration(cfg.Report.CacheTTLSeconds) * time.Second)
				workerService, err := worker.NewService(&cfg.Queue, consumer, warmInterval)
				if err != nil {
					return nil, err
				}
				return workerService, nil
			},
		},
	})
}

// Run 应用启动入口
func Run(opts Options) error {
	opts = normalizeOptions(opts)
	if opts.Config == nil {
		return errors.New("config is nil")
	}

	runner, err := BuildRunner(opts.Config, opts.Mode)
	if err != nil {
		return err
	}

	opts.Logger.Infow("app_start", "addr", opts.Config.Server.Addr(), "mode", opts.Mode, "services", runner.Names())
	return RunWithOptions(runner, opts)
}
