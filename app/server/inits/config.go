package inits

import (
	"fmt"
	"library-catalog/app/server/config"
	"strings"

	"github.com/spf13/viper"
)

// 配置键与环境变量的对应关系，第一个为主名称
var envBindings = map[string][]string{
	"system.mode":              {"MODE"},
	"system.listen":            {"LISTEN"},
	"system.db_conn":           {"DB_CONN"},
	"system.redis_conn":        {"REDIS_CONN"},
	"apisettings.secret":       {"APISETTINGS_SECRET", "SIGNATURE_SECRET_KEY"},
	"storage.endpoint":         {"S3_ENDPOINT"},
	"storage.region":           {"S3_REGION"},
	"storage.access_key":       {"S3_ACCESS_KEY"},
	"storage.secret_key":       {"S3_SECRET_KEY"},
	"storage.container":        {"S3_BUCKET"},
	"storage.public_base_url":  {"S3_PUBLIC_BASE_URL"},
	"storage.use_path_style":   {"S3_USE_PATH_STYLE"},
	"bootstrap.admin_email":    {"BOOTSTRAP_ADMIN_EMAIL"},
	"bootstrap.admin_password": {"BOOTSTRAP_ADMIN_PASSWORD"},
	"bootstrap.admin_name":     {"BOOTSTRAP_ADMIN_NAME"},
}

func Config() (*config.Config, error) {
	v := viper.New()

	// 可选的配置文件，环境变量优先
	if err := v.BindEnv("config_file", "CONFIG_FILE"); err != nil {
		return nil, fmt.Errorf("bind env for config_file: %w", err)
	}
	if file := v.GetString("config_file"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", file, err)
		}
	}

	return configFrom(v)
}

func configFrom(v *viper.Viper) (*config.Config, error) {
	// 默认值
	v.SetDefault("system.mode", "dev")
	v.SetDefault("system.listen", ":1323")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.container", "library")
	v.SetDefault("bootstrap.admin_name", "Library Admin")

	// 绑定环境变量
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, envs := range envBindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, fmt.Errorf("bind env for %s: %w", key, err)
		}
	}

	cfg := &config.Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.System.IsProd = strings.HasPrefix(strings.ToLower(cfg.System.Mode), "p")

	// 必需的配置项
	if cfg.System.DBConnectionString == "" {
		return nil, fmt.Errorf("DB_CONN environment variable not set")
	}
	if cfg.System.RedisConnectionString == "" {
		return nil, fmt.Errorf("REDIS_CONN environment variable not set")
	}
	if cfg.ApiSettings.Secret == "" {
		return nil, fmt.Errorf("apisettings.secret (APISETTINGS_SECRET) not set")
	}

	return cfg, nil
}
