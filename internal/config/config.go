package config

import (
	"fmt"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	koanf "github.com/knadh/koanf/v2"

	"github.com/snapp-incubator/sftpgo-operator/internal/sftpgoclient"
	"github.com/snapp-incubator/sftpgo-operator/pkg/consts"
)

type Server struct {
	Endpoint      string `koanf:"endpoint"`
	AdminUsername string `koanf:"adminUsername"`
	AdminPassword string `koanf:"adminPassword"`
}

// Rgw is optional; an empty endpoint disables RGW credential provisioning.
type Rgw struct {
	Endpoint  string `koanf:"endpoint"`
	AccessKey string `koanf:"accessKey"`
	SecretKey string `koanf:"secretKey"`
}

type Config struct {
	ClusterName                     string            `koanf:"clusterName"`
	Servers                         map[string]Server `koanf:"servers"`
	Rgw                             *Rgw              `koanf:"rgw"`
	RetryDelaySeconds               int               `koanf:"retryDelaySeconds"`
	TokenSafetyMarginSeconds        int               `koanf:"tokenSafetyMarginSeconds"`
	RequestTimeoutSeconds           int               `koanf:"requestTimeoutSeconds"`
	MaxConcurrentReconciles         int               `koanf:"maxConcurrentReconciles"`
	ValidationWebhookTimeoutSeconds int               `koanf:"validationWebhookTimeoutSeconds"`

	// OnlyConfiguredServers makes the controllers ignore objects referencing other servers.
	OnlyConfiguredServers bool `koanf:"onlyConfiguredServers"`
}

var (
	DefaultConfig = Config{
		ClusterName:                     "okd4-main",
		Rgw:                             &Rgw{},
		RetryDelaySeconds:               15,
		TokenSafetyMarginSeconds:        30,
		RequestTimeoutSeconds:           15,
		MaxConcurrentReconciles:         1,
		ValidationWebhookTimeoutSeconds: 10,
	}

	defaultServer = Server{
		Endpoint:      "http://localhost:8080",
		AdminUsername: "admin",
		AdminPassword: "password",
	}
)

// GetConfig layers the file at configPath over DefaultConfig. An empty path yields the defaults.
func GetConfig(configPath string) (*Config, error) {
	k := koanf.New(".")
	parser := yaml.Parser()
	cfg := &Config{}

	if err := k.Load(structs.Provider(DefaultConfig, "koanf"), nil); err != nil {
		return nil, err
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), parser); err != nil {
			return nil, err
		}
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if len(cfg.Servers) == 0 {
		cfg.Servers = map[string]Server{consts.DefaultServerName: defaultServer}
	}
	if cfg.Rgw == nil {
		cfg.Rgw = &Rgw{}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	for name, server := range c.Servers {
		if server.Endpoint == "" {
			return fmt.Errorf("servers.%s.endpoint must be set", name)
		}
	}
	if c.MaxConcurrentReconciles < 1 {
		return fmt.Errorf("maxConcurrentReconciles must be at least 1, got %d", c.MaxConcurrentReconciles)
	}
	return nil
}

func (c *Config) RgwEnabled() bool {
	return c.Rgw != nil && c.Rgw.Endpoint != ""
}

// RetryDelay returns the configured delay; zero means the caller's default applies.
func (c *Config) RetryDelay() time.Duration {
	return seconds(c.RetryDelaySeconds)
}

func (c *Config) TokenSafetyMargin() time.Duration {
	return seconds(c.TokenSafetyMarginSeconds)
}

func (c *Config) RequestTimeout() time.Duration {
	return seconds(c.RequestTimeoutSeconds)
}

func (c *Config) ValidationWebhookTimeout() time.Duration {
	return seconds(c.ValidationWebhookTimeoutSeconds)
}

// SftpgoServers converts the server section into client configuration.
func (c *Config) SftpgoServers() map[string]sftpgoclient.ServerConfig {
	servers := make(map[string]sftpgoclient.ServerConfig, len(c.Servers))
	for name, s := range c.Servers {
		servers[name] = sftpgoclient.ServerConfig{
			Endpoint:      s.Endpoint,
			AdminUsername: s.AdminUsername,
			AdminPassword: s.AdminPassword,
		}
	}
	return servers
}

func seconds(n int) time.Duration {
	if n <= 0 {
		return 0
	}
	return time.Duration(n) * time.Second
}
