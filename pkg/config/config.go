package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type MetricsConfig struct {
	Enabled          bool `mapstructure:"enabled"`
	EnableLatency    bool `mapstructure:"enable_latency"`
	EnableQueueDepth bool `mapstructure:"enable_queue_depth"`
}

type Config struct {
	Server      ServerConfig                `mapstructure:"server"`
	Metrics     MetricsConfig               `mapstructure:"metrics"`
	Database    DatabaseConfig              `mapstructure:"database"`
	Redis       RedisConfig                 `mapstructure:"redis"`
	Storage     StorageConfig               `mapstructure:"storage"`
	Kafka       KafkaConfig                 `mapstructure:"kafka"`
	Moderation  ModerationConfig            `mapstructure:"moderation"`
	Classifiers map[string]ClassifierConfig `mapstructure:"classifiers"`
}

type ServerConfig struct {
	AdminPort int             `mapstructure:"admin_port"`
	Host      string          `mapstructure:"host"`
	SecretKey string          `mapstructure:"secret_key"`
	TLS       ServerTLSConfig `mapstructure:"tls"`
}

type DatabaseConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	DBName       string `mapstructure:"name"`
	SSLMode      string `mapstructure:"sslmode"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TLS      bool   `mapstructure:"tls"`
}

type StorageConfig struct {
	Endpoint      string `mapstructure:"endpoint"`
	Region        string `mapstructure:"region"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	Bucket        string `mapstructure:"bucket"`
	UsePathStyle  bool   `mapstructure:"use_path_style"`
	MaxObjectSize int64  `mapstructure:"max_object_size"`
}

type KafkaConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Host    string `mapstructure:"host"`
	Port    string `mapstructure:"port"`
	Topic   string `mapstructure:"topic"`
}

type ModerationConfig struct {
	Enabled              bool          `mapstructure:"enabled"`
	Workers              int           `mapstructure:"workers"`
	QueueSize            int           `mapstructure:"queue_size"`
	PolicyFile           string        `mapstructure:"policy_file"`
	RecordDeleteAttempts int           `mapstructure:"record_delete_attempts"`
	RecordDeleteBackoff  time.Duration `mapstructure:"record_delete_backoff"`
	StepTimeout          time.Duration `mapstructure:"step_timeout"`
	VerdictCacheTTL      time.Duration `mapstructure:"verdict_cache_ttl"`
	LockTimeout          time.Duration `mapstructure:"lock_timeout"`
	ShutdownTimeout      time.Duration `mapstructure:"shutdown_timeout"`
}

type ClassifierConfig struct {
	Enabled     bool                   `mapstructure:"enabled"`
	Name        string                 `mapstructure:"name"`
	Backend     string                 `mapstructure:"backend"`
	Endpoint    string                 `mapstructure:"endpoint"`
	Model       string                 `mapstructure:"model"`
	APIKey      string                 `mapstructure:"api_key"`
	Timeout     time.Duration          `mapstructure:"timeout"`
	MaxFailures uint32                 `mapstructure:"max_failures"`
	Settings    map[string]interface{} `mapstructure:"settings"`
}

// DisableAuditEnv switches moderation off regardless of the config file.
const DisableAuditEnv = "DISABLE_AI_AUDIT"

var globalConfig Config

func Load(configPath string) error {
	setDefaultValues()
	if err := loadConfigFile(configPath, "config", &globalConfig); err != nil {
		return fmt.Errorf("could not load main config file: %w", err)
	}
	applyOverrides(&globalConfig)
	return nil
}

func loadConfigFile(configPath, fileName string, out interface{}) error {
	viper.SetConfigName(fileName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configPath)
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("error reading config file %s.yaml: %w", fileName, err)
		}
		// defaults and environment variables only
	}

	if err := viper.Unmarshal(out); err != nil {
		return fmt.Errorf("failed to unmarshal %s config: %w", fileName, err)
	}

	return nil
}

func setDefaultValues() {
	viper.SetDefault("server.admin_port", 8080)
	viper.SetDefault("metrics.enabled", true)
	viper.SetDefault("metrics.enable_latency", true)
	viper.SetDefault("metrics.enable_queue_depth", true)
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("redis.enabled", true)
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("storage.region", "us-east-1")
	viper.SetDefault("storage.use_path_style", true)
	viper.SetDefault("moderation.enabled", true)
	viper.SetDefault("moderation.workers", 2)
	viper.SetDefault("moderation.queue_size", 256)
	viper.SetDefault("moderation.record_delete_attempts", 3)
	viper.SetDefault("moderation.record_delete_backoff", time.Second)
	viper.SetDefault("moderation.step_timeout", 10*time.Second)
	viper.SetDefault("moderation.verdict_cache_ttl", 24*time.Hour)
	viper.SetDefault("moderation.lock_timeout", 2*time.Second)
	viper.SetDefault("moderation.shutdown_timeout", 30*time.Second)
}

func applyOverrides(cfg *Config) {
	if v, err := strconv.ParseBool(os.Getenv(DisableAuditEnv)); err == nil && v {
		cfg.Moderation.Enabled = false
	}
}

func GetConfig() *Config {
	return &globalConfig
}
