package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type RefundConfig struct {
	Env            string `yaml:"env" env:"REFUND_ENV" env-default:"local"`
	HTTPServer     `yaml:"http_server"`
	GRPCServer     `yaml:"grpc_server"`
	RefundDB       `yaml:"refund_db"`
	LogConfig      `yaml:"log_config"`
	KafkaService   `yaml:"kafka-service"`
	Redis          `yaml:"redis"`
	Minio          `yaml:"minio"`
	WalletService  `yaml:"wallet-service"`
	Workflow       `yaml:"workflow"`
}

type HTTPServer struct {
	Host         string        `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port         string        `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	AllowOrigins []string      `yaml:"allow_origins" env:"HTTP_ALLOW_ORIGINS" env-separator:","`
	ReadTimeout  time.Duration `yaml:"read_timeout" env-default:"15s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env-default:"30s"`
}

type GRPCServer struct {
	Host string `yaml:"host" env:"GRPC_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"GRPC_PORT" env-default:"9090"`
}

type RefundDB struct {
	Dsn            string `yaml:"dsn" env:"REFUND_DB_DSN"`
	MigrationsPath string `yaml:"migrations_path" env:"REFUND_MIGRATIONS_PATH" env-default:"migrations"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	LogFormat string `yaml:"log_format" env:"LOG_FORMAT" env-default:"json"`
	LogOutput string `yaml:"log_output" env:"LOG_OUTPUT" env-default:"stdout"`
}

type KafkaService struct {
	Host  string `yaml:"host" env:"KAFKA_HOST"`
	Port  string `yaml:"port" env:"KAFKA_PORT"`
	Topic string `yaml:"topic" env:"KAFKA_TOPIC" env-default:"refund-events"`
}

type Redis struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

type Minio struct {
	Endpoint  string `yaml:"endpoint" env:"MINIO_ENDPOINT"`
	AccessKey string `yaml:"access_key" env:"MINIO_ACCESS_KEY"`
	SecretKey string `yaml:"secret_key" env:"MINIO_SECRET_KEY"`
	Bucket    string `yaml:"bucket" env:"MINIO_BUCKET" env-default:"refund-attachments"`
	UseSSL    bool   `yaml:"use_ssl" env:"MINIO_USE_SSL"`
}

type WalletService struct {
	Host string `yaml:"host" env:"WALLET_HOST"`
	Port string `yaml:"port" env:"WALLET_PORT"`
}

type Workflow struct {
	MaxProofs      int           `yaml:"max_proofs" env-default:"4"`
	MaxReturnMedia int           `yaml:"max_return_media" env-default:"9"`
	ReturnWindow   time.Duration `yaml:"return_window" env-default:"168h"`
	LockTTL        time.Duration `yaml:"lock_ttl" env-default:"30s"`
}

func MustLoad() *RefundConfig {

	// Processing env config variable and file
	configPath := os.Getenv("REFUND_CONFIG_PATH")

	if configPath == "" {
		log.Fatalf("REFUND_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	// YAML to struct object, env overrides on top
	var cfg RefundConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}
