package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
	"github.com/kelseyhightower/envconfig"
)

// Config 聚合整个服务的配置项。
type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	AI      AIConfig
	Log     LogConfig
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	storage, err := loadStorageConfig()
	if err != nil {
		return nil, err
	}

	ai, err := loadAIConfig()
	if err != nil {
		return nil, err
	}

	logCfg, err := loadLogConfig()
	if err != nil {
		return nil, err
	}

	return &Config{Server: server, Storage: storage, AI: ai, Log: logCfg}, nil
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Port           string   `envconfig:"PORT" default:"8080"`
	AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS"`
	Addr           string   `ignored:"true"`
}

// loadServerConfig 解析服务器监听地址。
func loadServerConfig() (ServerConfig, error) {
	var cfg ServerConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return ServerConfig{}, fmt.Errorf("load server config: %w", err)
	}

	port := strings.TrimSpace(cfg.Port)
	if port == "" {
		port = "8080"
	}

	switch {
	case strings.Contains(port, " "):
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	case strings.Contains(port, ":"):
		// 允许直接传入 ":8080" 或 "127.0.0.1:8080"。
		cfg.Addr = port
	default:
		cfg.Addr = ":" + port
	}
	cfg.Port = port
	return cfg, nil
}

const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

// StorageConfig 选择心情记录的持久化方式。
type StorageConfig struct {
	Driver     string `envconfig:"STORAGE_DRIVER" default:"memory"`
	SQLitePath string `envconfig:"SQLITE_PATH" default:"data/serene.db"`
}

func loadStorageConfig() (StorageConfig, error) {
	var cfg StorageConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return StorageConfig{}, fmt.Errorf("load storage config: %w", err)
	}

	cfg.Driver = strings.ToLower(strings.TrimSpace(cfg.Driver))
	if cfg.Driver == "" {
		cfg.Driver = DriverMemory
	}
	switch cfg.Driver {
	case DriverMemory, DriverSQLite:
	default:
		return StorageConfig{}, fmt.Errorf("unsupported STORAGE_DRIVER: %q", cfg.Driver)
	}
	if cfg.Driver == DriverSQLite && strings.TrimSpace(cfg.SQLitePath) == "" {
		return StorageConfig{}, fmt.Errorf("SQLITE_PATH is required when STORAGE_DRIVER=sqlite")
	}
	return cfg, nil
}

// AIConfig 描述陪伴回复所用的大模型配置，未配置时聊天只返回固定话术。
type AIConfig struct {
	APIKey         string `envconfig:"ARK_API_KEY"`
	AccessKey      string `envconfig:"ARK_ACCESS_KEY"`
	SecretKey      string `envconfig:"ARK_SECRET_KEY"`
	Model          string `envconfig:"ARK_MODEL"`
	BaseURL        string `envconfig:"ARK_BASE_URL" default:"https://ark.cn-beijing.volces.com/api/v3"`
	Region         string `envconfig:"ARK_REGION" default:"cn-beijing"`
	StreamResponse bool   `envconfig:"ARK_STREAM" default:"true"`
	HistoryLimit   int    `envconfig:"AI_HISTORY_LIMIT" default:"6"`
}

// Enabled 表示是否提供了必需的密钥。
func (c AIConfig) Enabled() bool {
	return c.Model != "" && (c.APIKey != "" || (c.AccessKey != "" && c.SecretKey != ""))
}

// NewChatModel 使用配置创建一个模型实例。
func (c AIConfig) NewChatModel(ctx context.Context) (model.ChatModel, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("ark credentials or model missing: set ARK_MODEL and ARK_API_KEY or ARK_ACCESS_KEY/ARK_SECRET_KEY")
	}

	return ark.NewChatModel(ctx, &ark.ChatModelConfig{
		BaseURL:   c.BaseURL,
		Region:    c.Region,
		APIKey:    c.APIKey,
		AccessKey: c.AccessKey,
		SecretKey: c.SecretKey,
		Model:     c.Model,
	})
}

func loadAIConfig() (AIConfig, error) {
	var cfg AIConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return AIConfig{}, fmt.Errorf("load ai config: %w", err)
	}

	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.AccessKey = strings.TrimSpace(cfg.AccessKey)
	cfg.SecretKey = strings.TrimSpace(cfg.SecretKey)
	cfg.Model = strings.TrimSpace(cfg.Model)
	cfg.BaseURL = orDefault(cfg.BaseURL, "https://ark.cn-beijing.volces.com/api/v3")
	cfg.Region = orDefault(cfg.Region, "cn-beijing")
	if cfg.HistoryLimit < 1 {
		cfg.HistoryLimit = 1
	}
	return cfg, nil
}

// LogConfig 控制日志级别与输出格式。
type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"json"`
}

func loadLogConfig() (LogConfig, error) {
	var cfg LogConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return LogConfig{}, fmt.Errorf("load log config: %w", err)
	}
	cfg.Level = orDefault(cfg.Level, "info")
	cfg.Format = strings.ToLower(orDefault(cfg.Format, "json"))
	if cfg.Format != "json" && cfg.Format != "console" {
		return LogConfig{}, fmt.Errorf("invalid LOG_FORMAT value: %q", cfg.Format)
	}
	return cfg, nil
}

// orDefault 处理变量已设置但为空的情况，envconfig 只在变量缺失时使用 default。
func orDefault(value, defaultValue string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return defaultValue
}
