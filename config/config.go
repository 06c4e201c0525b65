package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/prebid/prebid-gpp/errortypes"
	"github.com/spf13/viper"
)

// Configuration specifies the static application config.
type Configuration struct {
	Host             string  `mapstructure:"host"`
	Port             int     `mapstructure:"port"`
	AdminPort        int     `mapstructure:"admin_port"`
	MaxConsentLength int     `mapstructure:"max_consent_length"`
	EnableGzip       bool    `mapstructure:"enable_gzip"`
	StatusResponse   string  `mapstructure:"status_response"`
	CORS             CORS    `mapstructure:"cors"`
	Metrics          Metrics `mapstructure:"metrics"`
}

type CORS struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type Metrics struct {
	Prometheus PrometheusMetrics `mapstructure:"prometheus"`
}

// PrometheusMetrics defines the Prometheus exporter. A zero Port disables it.
type PrometheusMetrics struct {
	Port      int    `mapstructure:"port"`
	Namespace string `mapstructure:"namespace"`
	Subsystem string `mapstructure:"subsystem"`
}

func (cfg *Configuration) validate() []error {
	var errs []error
	if cfg.Port <= 0 || cfg.Port > 65535 {
		errs = append(errs, fmt.Errorf("port must be between 1 and 65535. Got %d", cfg.Port))
	}
	if cfg.AdminPort < 0 || cfg.AdminPort > 65535 {
		errs = append(errs, fmt.Errorf("admin_port must be between 0 and 65535. Got %d", cfg.AdminPort))
	}
	if cfg.AdminPort != 0 && cfg.AdminPort == cfg.Port {
		errs = append(errs, errors.New("admin_port must differ from port"))
	}
	if cfg.MaxConsentLength <= 0 {
		errs = append(errs, fmt.Errorf("max_consent_length must be positive. Got %d", cfg.MaxConsentLength))
	}
	return cfg.Metrics.Prometheus.validate(cfg.Port, cfg.AdminPort, errs)
}

func (cfg *PrometheusMetrics) validate(mainPort, adminPort int, errs []error) []error {
	if cfg.Port < 0 || cfg.Port > 65535 {
		errs = append(errs, fmt.Errorf("metrics.prometheus.port must be between 0 and 65535. Got %d", cfg.Port))
	}
	if cfg.Port != 0 && cfg.Port == mainPort {
		errs = append(errs, errors.New("metrics.prometheus.port must differ from port"))
	}
	if cfg.Port != 0 && cfg.Port == adminPort {
		errs = append(errs, errors.New("metrics.prometheus.port must differ from admin_port"))
	}
	return errs
}

// New uses viper to get our server configurations.
func New(v *viper.Viper) (*Configuration, error) {
	var c Configuration
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("viper failed to unmarshal app config: %v", err)
	}

	if errs := c.validate(); len(errs) > 0 {
		return &c, errortypes.NewAggregateErrors("validation errors", errs)
	}
	return &c, nil
}

// SetupViper sets the defaults and the environment binding used by New. Settings can also be
// read from filename (without extension) in the working directory or /etc/config.
func SetupViper(v *viper.Viper, filename string) {
	if filename != "" {
		v.SetConfigName(filename)
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/config")
	}

	v.SetDefault("host", "")
	v.SetDefault("port", 8000)
	v.SetDefault("admin_port", 6060)
	v.SetDefault("max_consent_length", 4096)
	v.SetDefault("enable_gzip", false)
	v.SetDefault("status_response", "")
	v.SetDefault("cors.allowed_origins", []string{})
	v.SetDefault("metrics.prometheus.port", 0)
	v.SetDefault("metrics.prometheus.namespace", "")
	v.SetDefault("metrics.prometheus.subsystem", "")

	v.SetEnvPrefix("GPP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.ReadInConfig()
}
