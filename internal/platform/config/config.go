package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// 設定ファイルや環境変数が無い場合に利用する接続先の既定値です。
const (
	DefaultDriver   = "pgx"
	DefaultHost     = "localhost"
	DefaultPort     = 5432
	DefaultUser     = "employees"
	DefaultPassword = "employees"
	DefaultName     = "employees"
	DefaultSSLMode  = "disable"

	DefaultLogLevel  = "warn"
	DefaultLogFormat = "console"
	DefaultLogOutput = "stderr"

	// DefaultEnvFile は godotenv で読み込む .env ファイルのパスです。
	DefaultEnvFile = ".env"
)

// Config はアプリケーション全体の設定を表現します。
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// DatabaseConfig は PostgreSQL 接続に関する設定です。
type DatabaseConfig struct {
	Driver            string        `yaml:"driver"`
	Host              string        `yaml:"host"`
	Port              int           `yaml:"port"`
	User              string        `yaml:"user"`
	Password          string        `yaml:"password"`
	Name              string        `yaml:"name"`
	SSLMode           string        `yaml:"ssl_mode"`
	ConnectTimeout    time.Duration `yaml:"-"`
	ConnectTimeoutRaw string        `yaml:"connect_timeout"`
}

// LoggingConfig は zap ロガーの設定です。
type LoggingConfig struct {
	Level      string `yaml:"level"`       // debug, info, warn, error
	Format     string `yaml:"format"`      // json, console
	OutputPath string `yaml:"output_path"` // stdout, stderr or file path
}

// Default は既定値のみで構成された設定を返します。
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Driver:   DefaultDriver,
			Host:     DefaultHost,
			Port:     DefaultPort,
			User:     DefaultUser,
			Password: DefaultPassword,
			Name:     DefaultName,
			SSLMode:  DefaultSSLMode,
		},
		Logging: LoggingConfig{
			Level:      DefaultLogLevel,
			Format:     DefaultLogFormat,
			OutputPath: DefaultLogOutput,
		},
	}
}

// Load は既定値に設定ファイル、.env、環境変数の順で値を重ねて設定を構築します。
// path が空の場合は設定ファイルを読み込みません。
func Load(path string) (*Config, error) {
	return load(path, DefaultEnvFile, os.LookupEnv)
}

func load(path, envFile string, lookup func(string) (string, bool)) (*Config, error) {
	cfg := Default()

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("config: parse yaml: %w", err)
		}
	}

	dotenv, err := readEnvFile(envFile)
	if err != nil {
		return nil, err
	}

	if err := cfg.applyEnv(chainLookup(lookup, dotenv)); err != nil {
		return nil, err
	}

	if err := cfg.validateAndNormalize(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func readEnvFile(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: read env file %s: %w", path, err)
	}
	return values, nil
}

// chainLookup はプロセスの環境変数を優先し、無ければ .env の値を返します。
func chainLookup(primary func(string) (string, bool), fallback map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		if primary != nil {
			if v, ok := primary(key); ok {
				return v, true
			}
		}
		v, ok := fallback[key]
		return v, ok
	}
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	db := &c.Database
	setString(lookup, "DB_DRIVER", &db.Driver)
	setString(lookup, "DB_HOST", &db.Host)
	setString(lookup, "DB_USER", &db.User)
	setString(lookup, "DB_PASSWORD", &db.Password)
	setString(lookup, "DB_NAME", &db.Name)
	setString(lookup, "DB_SSLMODE", &db.SSLMode)
	setString(lookup, "DB_CONNECT_TIMEOUT", &db.ConnectTimeoutRaw)

	if v, ok := lookup("DB_PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: DB_PORT: %w", err)
		}
		db.Port = port
	}

	setString(lookup, "LOG_LEVEL", &c.Logging.Level)
	setString(lookup, "LOG_FORMAT", &c.Logging.Format)
	setString(lookup, "LOG_OUTPUT", &c.Logging.OutputPath)
	return nil
}

func setString(lookup func(string) (string, bool), key string, dst *string) {
	if v, ok := lookup(key); ok && v != "" {
		*dst = v
	}
}

func (c *Config) validateAndNormalize() error {
	if err := c.Database.validateAndNormalize(); err != nil {
		return err
	}

	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
	if c.Logging.Format == "" {
		c.Logging.Format = DefaultLogFormat
	}
	if c.Logging.OutputPath == "" {
		c.Logging.OutputPath = DefaultLogOutput
	}

	return nil
}

// driver 名はここでは検証しません。未知のドライバーは接続時に判定されます。
func (d *DatabaseConfig) validateAndNormalize() error {
	if d.Driver == "" {
		d.Driver = DefaultDriver
	}
	if d.Host == "" {
		return fmt.Errorf("config: database.host must be set")
	}
	if d.Port <= 0 || d.Port > 65535 {
		return fmt.Errorf("config: database.port must be between 1 and 65535, got %d", d.Port)
	}
	if d.User == "" {
		return fmt.Errorf("config: database.user must be set")
	}
	if d.Name == "" {
		return fmt.Errorf("config: database.name must be set")
	}
	if d.SSLMode == "" {
		d.SSLMode = DefaultSSLMode
	}

	timeout, err := parseDurationAllowEmpty(d.ConnectTimeoutRaw)
	if err != nil {
		return fmt.Errorf("config: database.connect_timeout: %w", err)
	}
	d.ConnectTimeout = timeout

	return nil
}

func parseDurationAllowEmpty(raw string) (time.Duration, error) {
	if raw == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	return d, nil
}

// DSN は postgres:// 形式の接続文字列を返します。pgx, lib/pq, golang-migrate で共通です。
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		Path:   "/" + d.Name,
	}

	q := url.Values{}
	q.Set("sslmode", d.SSLMode)
	if d.ConnectTimeout > 0 {
		seconds := int(d.ConnectTimeout.Round(time.Second) / time.Second)
		if seconds < 1 {
			seconds = 1
		}
		q.Set("connect_timeout", strconv.Itoa(seconds))
	}
	u.RawQuery = q.Encode()

	return u.String()
}

// Endpoint はログや診断メッセージ用に資格情報を含まない接続先を返します。
func (d DatabaseConfig) Endpoint() string {
	return fmt.Sprintf("%s/%s", net.JoinHostPort(d.Host, strconv.Itoa(d.Port)), d.Name)
}
