package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Logger    LoggerConfig
	Database  DatabaseConfig
	Assets    AssetsConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	AppEnv        string
	HTTPPort      string
	GRPCPort      string
	PublicBaseURL string
}

type LoggerConfig struct {
	Level             string
	Encoding          string
	DisableCaller     bool
	DisableStacktrace bool
}

// DatabaseConfig locates the catalog tables. IDCandidates are lower-cased
// column names tried in order when guessing the products identifier column.
type DatabaseConfig struct {
	Driver        string
	DSN           string
	ProductsTable string
	ImagesTable   string
	IDCandidates  []string
}

type AssetsConfig struct {
	ProductsDir string
}

type RateLimitConfig struct {
	RPS   float64
	Burst int
}

var DefaultIDCandidates = []string{"id", "product_id", "sku", "codigo", "code", "id_producto"}

// LoadEnv reads configuration from the environment and, when path is not
// empty, from a config file. Environment variables win over the file.
func LoadEnv(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			AppEnv:        v.GetString("app_env"),
			HTTPPort:      v.GetString("http_port"),
			GRPCPort:      v.GetString("grpc_port"),
			PublicBaseURL: v.GetString("public_base_url"),
		},
		Logger: LoggerConfig{
			Level:             v.GetString("logger_level"),
			Encoding:          v.GetString("logger_encoding"),
			DisableCaller:     v.GetBool("logger_disable_caller"),
			DisableStacktrace: v.GetBool("logger_disable_stacktrace"),
		},
		Database: DatabaseConfig{
			Driver:        v.GetString("db_driver"),
			DSN:           v.GetString("db_dsn"),
			ProductsTable: v.GetString("db_products_table"),
			ImagesTable:   v.GetString("db_images_table"),
			IDCandidates:  splitList(v.GetStringSlice("db_id_candidates")),
		},
		Assets: AssetsConfig{
			ProductsDir: v.GetString("products_dir"),
		},
		RateLimit: RateLimitConfig{
			RPS:   v.GetFloat64("rate_limit_rps"),
			Burst: v.GetInt("rate_limit_burst"),
		},
	}

	if len(cfg.Database.IDCandidates) == 0 {
		cfg.Database.IDCandidates = DefaultIDCandidates
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_env", "dev")
	v.SetDefault("http_port", ":5057")
	v.SetDefault("grpc_port", ":5058")
	v.SetDefault("public_base_url", "")

	v.SetDefault("logger_level", "debug")
	v.SetDefault("logger_encoding", "console")
	v.SetDefault("logger_disable_caller", false)
	v.SetDefault("logger_disable_stacktrace", true)

	v.SetDefault("db_driver", "sqlite3")
	v.SetDefault("db_dsn", "data.sqlite")
	v.SetDefault("db_products_table", "products")
	v.SetDefault("db_images_table", "product_images")
	v.SetDefault("db_id_candidates", strings.Join(DefaultIDCandidates, ","))

	v.SetDefault("products_dir", "resources/products")

	v.SetDefault("rate_limit_rps", 0)
	v.SetDefault("rate_limit_burst", 20)
}

// splitList accepts both a YAML list and a comma separated env value.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			part = strings.ToLower(strings.TrimSpace(part))
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
