package main

import (
	"flag"
	"fmt"
	"os"
	"syscall"

	"github.com/freshguard/internal/app"
	"github.com/freshguard/internal/config"
	"github.com/freshguard/internal/logger"
	"github.com/freshguard/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	gormlogger "gorm.io/gorm/logger"
)

const (
	ansiReset = "\033[0m"
	ansiBold  = "\033[1m"
	ansiDim   = "\033[2m"
	ansiGreen = "\033[32m"
	ansiCyan  = "\033[36m"
)

func main() {
	// 解析命令行参数
	var mode string
	flag.StringVar(&mode, "mode", app.ModeAll, "启动模式: all (默认), api, worker")
	flag.Parse()

	printStartupBanner()

	// .env 可选
	_ = godotenv.Load()

	// 加载配置
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	defer logger.Sync()
	stdLog := logger.StdLogger()

	warnings, err := cfg.Validate()
	if err != nil {
		stdLog.Fatalf("JWT 密钥配置不安全，请在生产环境中配置两个不同的强随机密钥: %v", err)
	}
	for _, warning := range warnings {
		stdLog.Printf("警告: %s", warning)
	}

	// 初始化数据库
	logLevel := gormlogger.Warn
	if logger.IsDebugMode(cfg.Server.Mode) {
		logLevel = gormlogger.Info
	}
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}, logLevel); err != nil {
		stdLog.Fatalf("数据库初始化失败: %v", err)
	}

	// 自动迁移数据库表
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("数据库迁移失败: %v", err)
	}

	// 初始化默认管理员账号
	defaultAdminEmail := os.Getenv("FG_DEFAULT_ADMIN_EMAIL")
	defaultAdminPass := os.Getenv("FG_DEFAULT_ADMIN_PASSWORD")
	if cfg.IsRelease() && defaultAdminPass == "" {
		stdLog.Printf("警告: 未设置 FG_DEFAULT_ADMIN_PASSWORD，已跳过默认管理员初始化")
	} else if err := models.InitDefaultAdmin(defaultAdminEmail, defaultAdminPass); err != nil {
		stdLog.Printf("警告: 初始化默认管理员失败: %v", err)
	}

	// 设置 Gin 模式
	if cfg.IsRelease() {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := app.Run(app.Options{
		Config:  cfg,
		Logger:  logger.S(),
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		Mode:    mode,
	}); err != nil {
		stdLog.Fatalf("服务运行失败: %v", err)
	}
}

func printStartupBanner() {
	fmt.Println(ansiCyan + ansiBold + "FreshGuard 标签与效期服务启动中" + ansiReset)
	fmt.Println(ansiGreen + "• Admin:  /admin/*" + ansiReset)
	fmt.Println(ansiGreen + "• Store:  /store/*" + ansiReset)
	fmt.Println(ansiDim + "--------------------------------------------------------------" + ansiReset)
}
