package main

import (
	"net"
	"strings"
	"sync"

	"vidfetch/internal/api"
	"vidfetch/internal/config"
)

type commandContext struct {
	serverFlag *string
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(serverFlag, configFlag *string) *commandContext {
	return &commandContext{
		serverFlag: serverFlag,
		configFlag: configFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) configValue() *config.Config {
	cfg, _ := c.ensureConfig()
	return cfg
}

// apiClient builds a daemon client from --server, falling back to the
// configured bind address with wildcard hosts rewritten to loopback.
func (c *commandContext) apiClient() *api.Client {
	if c.serverFlag != nil && strings.TrimSpace(*c.serverFlag) != "" {
		return api.NewClient(normalizeServerURL(*c.serverFlag))
	}

	bind := "127.0.0.1:3001"
	if cfg := c.configValue(); cfg != nil && strings.TrimSpace(cfg.Paths.Bind) != "" {
		bind = cfg.Paths.Bind
	}
	host, port, err := net.SplitHostPort(bind)
	if err != nil {
		return api.NewClient("http://" + bind)
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "127.0.0.1"
	}
	return api.NewClient("http://" + net.JoinHostPort(host, port))
}

func normalizeServerURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return trimmed
	}
	return "http://" + trimmed
}
