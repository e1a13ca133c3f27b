package client

import (
	"fmt"
	"strconv"

	"github.com/kbukum/restkit/version"
)

const (
	defaultProtocol   = "https"
	defaultPort       = 443
	defaultPathPrefix = "/"
)

// Config configures the endpoint and default request behavior.
type Config struct {
	// Protocol is the URL scheme. Defaults to "https".
	Protocol string `yaml:"protocol" mapstructure:"protocol"`

	// Hostname is the server host. Required.
	Hostname string `yaml:"hostname" mapstructure:"hostname" validate:"required"`

	// Port is the server port. Defaults to 443.
	Port int `yaml:"port" mapstructure:"port"`

	// PathPrefix is prepended verbatim to every resource path, with no
	// slash normalization: a prefix without a trailing slash and a
	// resource without a leading one produce exactly the malformed path
	// they spell. Defaults to "/".
	PathPrefix string `yaml:"path_prefix" mapstructure:"path_prefix"`

	// Secret is sent as the X-Secret header on requests that carry no
	// per-request token. Empty disables it.
	Secret string `yaml:"secret" mapstructure:"secret"`

	// UserAgent overrides the default User-Agent header.
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`

	// Headers are default headers applied to all requests. Computed
	// headers (User-Agent, Content-Type, auth) take precedence.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Protocol == "" {
		c.Protocol = defaultProtocol
	}
	if c.Port == 0 {
		c.Port = defaultPort
	}
	if c.PathPrefix == "" {
		c.PathPrefix = defaultPathPrefix
	}
	if c.UserAgent == "" {
		c.UserAgent = version.UserAgent()
	}
}

// Validate checks that the configuration is valid.
func (c Config) Validate() error {
	if c.Hostname == "" {
		return fmt.Errorf("client: hostname is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("client: port must be in 1..65535 (got %d)", c.Port)
	}
	return nil
}

// BaseURL renders the endpoint prefix shared by all requests. The port is
// always explicit.
func (c Config) BaseURL() string {
	return c.Protocol + "://" + c.Hostname + ":" + strconv.Itoa(c.Port) + c.PathPrefix
}
