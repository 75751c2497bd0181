package session

import (
	"context"
	"errors"
	"io/fs"
	"strings"

	"github.com/oshokin/admin-client/internal/config"
)

// ConfigBackend persists the session token in the configuration file.
type ConfigBackend struct {
	cfg *config.Config
}

// NewConfigBackend creates and returns a new ConfigBackend writing through cfg.
func NewConfigBackend(cfg *config.Config) *ConfigBackend {
	return &ConfigBackend{cfg: cfg}
}

// PersistToken stores token as auth_token in the configuration file.
func (b *ConfigBackend) PersistToken(_ context.Context, token string) error {
	b.cfg.AuthToken = token

	return config.SaveConfig(b.cfg)
}

// LoadToken re-reads auth_token from the configuration file.
// A missing file means there is no session.
func (b *ConfigBackend) LoadToken(_ context.Context) (string, error) {
	loaded, err := config.LoadConfig(b.cfg.Filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}

		return "", err
	}

	b.cfg.AuthToken = strings.TrimSpace(loaded.AuthToken)

	return b.cfg.AuthToken, nil
}
