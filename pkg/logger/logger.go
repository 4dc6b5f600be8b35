package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"go-file-share/pkg/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// 全局日志记录器实例。初始化之前是一个 no-op logger，测试中可以直接使用。
var L = zap.NewNop()

// 日志文件路径，为空表示没有写文件
var filePath string

const (
	maxLogSizeMB   = 1
	maxLogBackups  = 5
	rotateCompress = false
)

// `cfg.Level`可以是“debug”、“info”、“warn”、“error”、“fatal”、“panic”。
// `cfg.ProductionMode`确定日志记录器是否使用JSON格式(生产)或控制台格式(开发)。
// `cfg.File`非空时，日志同时写入一个按大小滚动的文件。
func InitLogger(cfg config.LogConfig) error {
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(cfg.Level)); err != nil {
		zapLevel = zapcore.InfoLevel // 如果解析失败，则默认为Info级别
		fmt.Fprintf(os.Stderr, "Warning: Invalid log level '%s', using default 'info'. Error: %v\n", cfg.Level, err)
	}

	var encCfg zapcore.EncoderConfig
	var consoleEnc zapcore.Encoder
	if cfg.ProductionMode {
		// 生产日志记录器：JSON格式
		encCfg = zap.NewProductionEncoderConfig()
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		consoleEnc = zapcore.NewJSONEncoder(encCfg)
	} else {
		// 开发日志记录器：人类可读的控制台格式，彩色级别输出
		encCfg = zap.NewDevelopmentEncoderConfig()
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		consoleEnc = zapcore.NewConsoleEncoder(encCfg)
	}

	level := zap.NewAtomicLevelAt(zapLevel)
	cores := []zapcore.Core{
		zapcore.NewCore(consoleEnc, zapcore.Lock(os.Stderr), level),
	}

	filePath = ""
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		rotator := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    maxLogSizeMB,
			MaxBackups: maxLogBackups,
			Compress:   rotateCompress,
		}
		// 文件中始终使用不带颜色的JSON
		fileEncCfg := zap.NewProductionEncoderConfig()
		fileEncCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(fileEncCfg), zapcore.AddSync(rotator), level))
		filePath = cfg.File
	}

	opts := []zap.Option{zap.AddCaller()}
	if !cfg.ProductionMode {
		opts = append(opts, zap.Development())
	}
	L = zap.New(zapcore.NewTee(cores...), opts...)

	L.Info("Zap logger initialized",
		zap.String("level", zapLevel.String()),
		zap.Bool("productionMode", cfg.ProductionMode),
		zap.String("file", cfg.File))
	return nil
}

// FilePath 返回日志文件路径，只输出到 stderr 时为空
func FilePath() string {
	return filePath
}

// Sync刷新任何缓冲的日志条目。
// 建议在应用程序退出之前调用它。
func Sync() {
	if L != nil {
		_ = L.Sync()
	}
}
