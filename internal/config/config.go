package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
)

const envDevelopment = "development"

type HTTPCfg struct {
	Port            int           `env:"HTTP_PORT" envDefault:"3000"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

type RemoteCfg struct {
	URL        string `env:"REMOTE_API_URL" envDefault:"https://paginas-web-cr.com/Api/apis/mongodb.php"`
	Collection string `env:"REMOTE_API_COLLECTION" envDefault:"clientes"`
	// zero keeps transport default, i.e. no client side timeout
	Timeout time.Duration `env:"REMOTE_API_TIMEOUT" envDefault:"0s"`
}

type LogCfg struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type Config struct {
	Env       string `env:"APP_ENV" envDefault:"production"`
	HTTPCfg   HTTPCfg
	RemoteCfg RemoteCfg
	LogCfg    LogCfg
}

// IsDevelopment reports whether error details may be shown to the browser
func (c Config) IsDevelopment() bool {
	return c.Env == envDevelopment
}

func Build() (Config, error) {
	var cfg Config
	opts := env.Options{RequiredIfNoDef: true}

	if err := env.Parse(&cfg, opts); err != nil {
		return cfg, fmt.Errorf("failed to parse environment variables - %w", err)
	}

	if cfg.RemoteCfg.Timeout < 0 {
		return cfg, fmt.Errorf("remote API timeout can't be negative, got %s", cfg.RemoteCfg.Timeout)
	}
	return cfg, nil
}
