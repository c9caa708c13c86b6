package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"discord-mcp/internal/domain"
)

// Config is the resolved process configuration.
type Config struct {
	APIBaseURL            string              `mapstructure:"apiBaseURL"`
	CDNBaseURL            string              `mapstructure:"cdnBaseURL"`
	UserAgent             string              `mapstructure:"userAgent"`
	RequestTimeoutSeconds int                 `mapstructure:"requestTimeoutSeconds"`
	LogLevel              string              `mapstructure:"logLevel"`
	Observability         ObservabilityConfig `mapstructure:"observability"`

	// token reads the credential at call time rather than at load time.
	token func() string
}

type ObservabilityConfig struct {
	ListenAddress string `mapstructure:"listenAddress"`
	Metrics       bool   `mapstructure:"metrics"`
	Healthz       bool   `mapstructure:"healthz"`
}

// LoadOptions selects the sources LoadConfig reads.
type LoadOptions struct {
	// Path is an optional YAML config file.
	Path string
	// Flags, when set, override file and environment values for the flags
	// the user actually passed.
	Flags *pflag.FlagSet
}

// flagKeys maps command-line flags onto config keys.
var flagKeys = map[string]string{
	"log-level":    "logLevel",
	"metrics-addr": "observability.listenAddress",
}

func newConfigViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(domain.DefaultEnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setConfigDefaults(v)
	return v
}

func setConfigDefaults(v *viper.Viper) {
	v.SetDefault("apiBaseURL", domain.DefaultAPIBaseURL)
	v.SetDefault("cdnBaseURL", domain.DefaultCDNBaseURL)
	v.SetDefault("userAgent", domain.DefaultUserAgent)
	v.SetDefault("requestTimeoutSeconds", domain.DefaultRequestTimeoutSeconds)
	v.SetDefault("logLevel", domain.DefaultLogLevel)
	v.SetDefault("observability.listenAddress", domain.DefaultObservabilityListenAddress)
	v.SetDefault("observability.metrics", false)
	v.SetDefault("observability.healthz", false)
}

// LoadConfig resolves defaults, the optional config file, DISCORD_MCP_*
// environment variables and flags, in increasing precedence.
func LoadConfig(opts LoadOptions) (Config, error) {
	v := newConfigViper()
	// The credential keeps its conventional unprefixed name.
	if err := v.BindEnv("token", domain.DefaultTokenEnv); err != nil {
		return Config{}, fmt.Errorf("bind token env: %w", err)
	}

	path := strings.TrimSpace(opts.Path)
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if opts.Flags != nil {
		if err := bindFlags(v, opts.Flags); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if opts.Flags != nil {
		if flag := opts.Flags.Lookup("metrics-addr"); flag != nil && flag.Changed {
			cfg.Observability.Metrics = true
		}
	}
	cfg.token = func() string { return v.GetString("token") }

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if c.RequestTimeoutSeconds <= 0 {
		errs = append(errs, fmt.Errorf("requestTimeoutSeconds must be > 0, got %d", c.RequestTimeoutSeconds))
	}
	if strings.TrimSpace(c.APIBaseURL) == "" {
		errs = append(errs, errors.New("apiBaseURL must not be empty"))
	}
	if c.Observability.Metrics || c.Observability.Healthz {
		if strings.TrimSpace(c.Observability.ListenAddress) == "" {
			errs = append(errs, errors.New("observability.listenAddress must not be empty"))
		}
	}
	return errors.Join(errs...)
}

// Token returns the upstream credential as currently set in the environment.
func (c Config) Token() string {
	if c.token == nil {
		return ""
	}
	return strings.TrimSpace(c.token())
}

func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}
