// Package config loads bearer interceptor configuration from YAML or JSON.
package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/viant/afs"
	"github.com/viant/bearer/client/auth/resource"
	"github.com/viant/bearer/client/auth/transport"
	"gopkg.in/yaml.v3"
)

// Config is the interceptor file configuration.
type Config struct {
	transport.Config `yaml:",inline"`
	// AllowList overrides resource.DefaultPatterns.
	AllowList []string `yaml:"allowList,omitempty"`
	// DisableAllowList attaches tokens to every protected request.
	DisableAllowList bool `yaml:"disableAllowList,omitempty"`
	// RedirectURI is where the identity provider returns after a redirect flow.
	RedirectURI string `yaml:"redirectURI,omitempty"`
}

// Load reads configuration from any afs supported URL.
func Load(ctx context.Context, URL string) (*Config, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %v: %w", URL, err)
	}
	ret, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid config %v: %w", URL, err)
	}
	return ret, nil
}

// Parse decodes YAML or JSON configuration.
func Parse(data []byte) (*Config, error) {
	ret := &Config{}
	if err := yaml.Unmarshal(data, ret); err != nil {
		return nil, err
	}
	if ret.ProtectedResourceMap == nil {
		ret.ProtectedResourceMap = &resource.Map{}
	}
	if err := ret.Validate(); err != nil {
		return nil, err
	}
	return ret, nil
}

// Validate checks config.
func (c *Config) Validate() error {
	if !c.InteractionType.Valid() {
		return errors.New("interactionType is required: popup or redirect")
	}
	for _, entry := range c.ProtectedResourceMap.Entries() {
		if entry.Pattern == "" {
			return errors.New("protected resource pattern was empty")
		}
		if len(entry.Scopes) == 0 {
			return fmt.Errorf("protected resource %q has no scopes", entry.Pattern)
		}
	}
	_, err := c.Allow()
	return err
}

// Allow returns the configured allow list; nil when disabled.
func (c *Config) Allow() (*resource.AllowList, error) {
	if c.DisableAllowList {
		return nil, nil
	}
	if len(c.AllowList) == 0 {
		return resource.DefaultAllowList(), nil
	}
	return resource.NewAllowList(c.AllowList...)
}

// Options returns transport options implied by the config.
func (c *Config) Options() ([]transport.Option, error) {
	allowList, err := c.Allow()
	if err != nil {
		return nil, err
	}
	return []transport.Option{transport.WithAllowList(allowList)}, nil
}
