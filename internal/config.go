package internal

import (
	"fmt"
	"time"

	"sync-lab/domain/session"

	"github.com/Netflix/go-env"
)

type Config struct {
	CoordinatorAddr     string        `env:"COORDINATOR_ADDR,required=true"`
	CoordinatorInsecure bool          `env:"COORDINATOR_INSECURE,default=false"`
	CallTimeout         time.Duration `env:"CALL_TIMEOUT,default=10s"`
	ClientVersion       string        `env:"CLIENT_VERSION,required=true"`
	VersionPolicy       string        `env:"VERSION_POLICY,default=major"`

	AccountUID         string        `env:"ACCOUNT_UID"`
	AccountAlias       string        `env:"ACCOUNT_ALIAS"`
	AuthToken          string        `env:"AUTH_TOKEN"`
	TokenRefreshMargin time.Duration `env:"TOKEN_REFRESH_MARGIN,default=2m"`
	HostProcessName    string        `env:"HOST_PROCESS_NAME"`
	ConnectionPaused   bool          `env:"CONNECTION_PAUSED,default=false"`

	HealthInterval  time.Duration `env:"HEALTH_INTERVAL,default=30s"`
	RetryMinDelay   time.Duration `env:"RETRY_MIN_DELAY,default=5s"`
	RetryMaxDelay   time.Duration `env:"RETRY_MAX_DELAY,default=20s"`
	RestartInterval time.Duration `env:"RESTART_INTERVAL,default=1s"`

	BufferSize       int           `env:"BUFFER_SIZE,default=256"`
	SinkTimeout      time.Duration `env:"SINK_TIMEOUT,default=500ms"`
	ChatLogSize      int           `env:"CHAT_LOG_SIZE,default=200"`
	MaxMessageLength int           `env:"MAX_MESSAGE_LENGTH,default=500"`
	LogLevel         string        `env:"LOG_LEVEL,default=INFO"`
	Colours          bool          `env:"COLOURS,default=true"`

	MetricInterval       time.Duration `env:"METRIC_INTERVAL,default=5s"`
	LowCapacityThreshold int           `env:"LOW_CAPACITY_THRESHOLD,default=80"`
}

// LoadConfig reads the process environment.
func LoadConfig() (Config, error) {
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return Config{}, fmt.Errorf("config error: %w", err)
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

func (c Config) Validate() error {
	if c.CoordinatorAddr == "" {
		return fmt.Errorf("COORDINATOR_ADDR must not be empty")
	}
	if c.RetryMinDelay <= 0 || c.RetryMaxDelay < c.RetryMinDelay {
		return fmt.Errorf("RETRY_MIN_DELAY (%s) must be positive and not above RETRY_MAX_DELAY (%s)",
			c.RetryMinDelay, c.RetryMaxDelay)
	}
	if _, err := session.ParseVersionPolicy(c.VersionPolicy); err != nil {
		return fmt.Errorf("VERSION_POLICY: %w", err)
	}
	if c.HealthInterval <= 0 {
		return fmt.Errorf("HEALTH_INTERVAL must be positive, got %s", c.HealthInterval)
	}
	if c.MetricInterval <= 0 {
		return fmt.Errorf("METRIC_INTERVAL must be positive, got %s", c.MetricInterval)
	}
	if c.BufferSize <= 0 {
		return fmt.Errorf("BUFFER_SIZE must be positive, got %d", c.BufferSize)
	}
	if c.MaxMessageLength <= 0 {
		return fmt.Errorf("MAX_MESSAGE_LENGTH must be positive, got %d", c.MaxMessageLength)
	}
	return nil
}
