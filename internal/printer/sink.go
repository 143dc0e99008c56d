// Package printer 将渲染好的标签文本投递给外部打印设备。
package printer

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/freshguard/internal/config"
	"github.com/freshguard/internal/constants"
	"github.com/freshguard/internal/logger"
)

const (
	defaultDialTimeout = 3 * time.Second
	defaultRawPort     = 9100
)

// Job 打印作业
type Job struct {
	BatchID uint
	StoreID uint
	Text    string
	Address string
	Port    int
}

// Sink 打印投递目标
type Sink interface {
	Name() string
	Deliver(ctx context.Context, job Job) error
}

// NewSink 按配置创建投递目标
func NewSink(cfg config.PrinterConfig) Sink {
	switch strings.ToLower(strings.TrimSpace(cfg.Sink)) {
	case constants.PrinterSinkTCP:
		timeout := time.Duration(cfg.DialTimeoutMS) * time.Millisecond
		return NewTCPSink(timeout, cfg.DefaultPort)
	default:
		return LogSink{}
	}
}

// LogSink 将标签写入结构化日志
type LogSink struct{}

// Name 名称
func (LogSink) Name() string {
	return constants.PrinterSinkLog
}

// Deliver 写日志
func (LogSink) Deliver(_ context.Context, job Job) error {
	logger.Infow("printer_label_delivered",
		"sink", constants.PrinterSinkLog,
		"batch_id", job.BatchID,
		"store_id", job.StoreID,
		"text", job.Text,
	)
	return nil
}

// TCPSink 以原始文本方式写入网络打印机端口
type TCPSink struct {
	timeout     time.Duration
	defaultPort int
}

// NewTCPSink 创建 TCP 投递目标
func NewTCPSink(timeout time.Duration, defaultPort int) *TCPSink {
	if timeout <= 0 {
		timeout = defaultDialTimeout
	}
	if defaultPort <= 0 {
		defaultPort = defaultRawPort
	}
	return &TCPSink{timeout: timeout, defaultPort: defaultPort}
}

// Name 名称
func (s *TCPSink) Name() string {
	return constants.PrinterSinkTCP
}

// Deliver 建立连接并写入标签文本
func (s *TCPSink) Deliver(ctx context.Context, job Job) error {
	address := strings.TrimSpace(job.Address)
	if address == "" {
		return ErrNoPrinterAddress
	}
	port := job.Port
	if port <= 0 {
		port = s.defaultPort
	}
	target := net.JoinHostPort(address, fmt.Sprintf("%d", port))

	dialer := net.Dialer{Timeout: s.timeout}
	conn, err := dialer.DialContext(ctx, "tcp", target)
	if err != nil {
		return fmt.Errorf("dial printer %s: %w", target, err)
	}
	defer conn.Close()

	_ = conn.SetWriteDeadline(time.Now().Add(s.timeout))
	payload := job.Text
	if !strings.HasSuffix(payload, "\n") {
		payload += "\n"
	}
	if _, err := conn.Write([]byte(payload)); err != nil {
		return fmt.Errorf("write printer %s: %w", target, err)
	}
	logger.Infow("printer_label_delivered",
		"sink", constants.PrinterSinkTCP,
		"batch_id", job.BatchID,
		"store_id", job.StoreID,
		"target", target,
	)
	return nil
}
