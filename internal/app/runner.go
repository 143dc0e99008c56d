package app

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"slices"
	"time"

	"go.uber.org/zap"
)

// Service 可被运行器托管的长驻服务
type Service interface {
	Name() string
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// component 按启动模式挂载的服务，build 返回 nil 表示按配置跳过
type component struct {
	name  string
	modes []string
	build func() (Service, error)
}

// Runner 托管一组服务：任一退出即整体收尾，停止顺序与启动相反
type Runner struct {
	services []Service
}

// NewRunner 创建服务运行器，忽略 nil 服务
func NewRunner(services ...Service) *Runner {
	kept := make([]Service, 0, len(services))
	for _, svc := range services {
		if svc != nil {
			kept = append(kept, svc)
		}
	}
	return &Runner{services: kept}
}

// assemble 挑出当前模式需要的组件并逐个构造
func assemble(mode string, components []component) (*Runner, error) {
	var services []Service
	for _, comp := range components {
		if !slices.Contains(comp.modes, mode) {
			continue
		}
		svc, err := comp.build()
		if err != nil {
			return nil, fmt.Errorf("build %s: %w", comp.name, err)
		}
		if svc != nil {
			services = append(services, svc)
		}
	}
	if len(services) == 0 {
		return nil, fmt.Errorf("mode %q started no services", mode)
	}
	return NewRunner(services...), nil
}

// Names 返回托管的服务名，按启动顺序
func (r *Runner) Names() []string {
	names := make([]string, 0, len(r.services))
	for _, svc := range r.services {
		names = append(names, svc.Name())
	}
	return names
}

// RunWithOptions 运行服务，收到系统信号时优雅退出
func RunWithOptions(runner *Runner, opts Options) error {
	if runner == nil {
		return errors.New("runner is nil")
	}
	opts = normalizeOptions(opts)
	ctx := context.Background()
	if len(opts.Signals) > 0 {
		var cancel context.CancelFunc
		ctx, cancel = signal.NotifyContext(ctx, opts.Signals...)
		defer cancel()
	}
	return runner.Run(ctx, opts.ShutdownTimeout, opts.Logger)
}

type serviceExit struct {
	name string
	err  error
}

// Run 启动全部服务，阻塞到 ctx 结束或首个服务退出
func (r *Runner) Run(ctx context.Context, stopTimeout time.Duration, logger *zap.SugaredLogger) error {
	if r == nil || len(r.services) == 0 {
		return errors.New("no services to run")
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	exits := make(chan serviceExit, len(r.services))
	for _, svc := range r.services {
		go func(svc Service) {
			logger.Infow("service_start", "service", svc.Name())
			err := svc.Start(ctx)
			logger.Infow("service_exit", "service", svc.Name(), "error", err)
			exits <- serviceExit{name: svc.Name(), err: err}
		}(svc)
	}

	var runErr error
	select {
	case <-ctx.Done():
		if !errors.Is(ctx.Err(), context.Canceled) {
			runErr = ctx.Err()
		}
	case exit := <-exits:
		if exit.err != nil {
			runErr = fmt.Errorf("%s: %w", exit.name, exit.err)
		}
	}
	cancel()

	return errors.Join(runErr, r.stopAll(stopTimeout, logger))
}

// stopAll 逆序停止服务，共享同一个超时
func (r *Runner) stopAll(timeout time.Duration, logger *zap.SugaredLogger) error {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	stopCtx, stopCancel := context.WithTimeout(context.Background(), timeout)
	defer stopCancel()

	var stopErrs []error
	for i := len(r.services) - 1; i >= 0; i-- {
		svc := r.services[i]
		if err := svc.Stop(stopCtx); err != nil {
			logger.Errorw("service_stop_failed", "service", svc.Name(), "error", err)
			stopErrs = append(stopErrs, fmt.Errorf("stop %s: %w", svc.Name(), err))
		}
	}
	return errors.Join(stopErrs...)
}
