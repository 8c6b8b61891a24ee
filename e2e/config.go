package e2e

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// E2E_COORDINATOR_ADDR points at a running coordination service; empty skips the suite
	CoordinatorAddr string `envconfig:"E2E_COORDINATOR_ADDR"`
	Insecure        bool   `envconfig:"E2E_INSECURE" default:"true"`
	AuthToken       string `envconfig:"E2E_AUTH_TOKEN"`
	AccountUID      string `envconfig:"E2E_ACCOUNT_UID"`
	AccountAlias    string `envconfig:"E2E_ACCOUNT_ALIAS" default:"e2e"`
	ClientVersion   string `envconfig:"E2E_CLIENT_VERSION" default:"v1.0.0"`
	// E2E_DEBUG_JSON dumps every request/response body as JSON
	DebugJSON bool `envconfig:"E2E_DEBUG_JSON" default:"false"`
	// E2E_COLOURS enables colorized output for better log readability
	Colours bool `envconfig:"E2E_COLOURS" default:"true"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
