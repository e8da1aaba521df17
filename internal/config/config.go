package config

import (
	"github.com/blues/lps/internal/logger"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Chain     ChainConfig     `mapstructure:"chain"`
	Admin     AdminConfig     `mapstructure:"admin"`
	Notify    NotifyConfig    `mapstructure:"notify"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// ChainConfig 结算链配置，资产划转原语经由该链执行
type ChainConfig struct {
	Enabled    bool   `mapstructure:"enabled"`     // 是否启用链上划转
	ChainId    int64  `mapstructure:"chain_id"`    // 链ID
	RpcUrl     string `mapstructure:"rpc_url"`     // RPC节点URL
	PrivateKey string `mapstructure:"private_key"` // 托管账户私钥
	BaseAsset  string `mapstructure:"base_asset"`  // 基础资产合约地址
	TokenAsset string `mapstructure:"token_asset"` // 发售代币合约地址
	GasLimit   uint64 `mapstructure:"gas_limit"`   // 划转交易 gas 上限
}

// AdminConfig 管理员能力凭证配置。请求携带该令牌即视为管理员，不做身份校验。
type AdminConfig struct {
	CapabilityToken string `mapstructure:"capability_token"`
}

// NotifyConfig 事件通知配置
type NotifyConfig struct {
	WebhookURL string `mapstructure:"webhook_url"` // 事件推送地址，留空则只落库
	Workers    int    `mapstructure:"workers"`     // 推送协程池大小
}

type SchedulerConfig struct {
	FinishInterval int `mapstructure:"finish_interval"` // 自动结束募资的轮询间隔，秒
	NotifyInterval int `mapstructure:"notify_interval"` // 事件补推间隔，秒
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // 日志级别: debug, info, warn, error, fatal
	Output string `mapstructure:"output"` // 输出目标: stdout, file
	File   string `mapstructure:"file"`   // 日志文件路径（当output为file时使用）
}

func Load() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/lps")

	// 设置默认值
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "")
	viper.SetDefault("database.dbname", "launchpad")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("chain.enabled", false)
	viper.SetDefault("chain.gas_limit", 90000)
	viper.SetDefault("notify.workers", 4)
	viper.SetDefault("scheduler.finish_interval", 60)
	viper.SetDefault("scheduler.notify_interval", 120)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.output", "stdout")
	viper.SetDefault("log.file", "logs/app.log")

	// 自动读取环境变量
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logger.Warn("Warning: Could not read config file: %v", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		logger.Fatal("Unable to decode config into struct: %v", err)
	}

	return &config
}
