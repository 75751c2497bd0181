package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator"
	"github.com/oshokin/admin-client/internal/api/user"
	"github.com/oshokin/admin-client/internal/config"
	"github.com/oshokin/admin-client/internal/logger"
)

// Static error definitions for better error handling.
var (
	// ErrNotLoggedIn indicates that a command needs a session token and none is stored.
	ErrNotLoggedIn = errors.New("not logged in, run 'admin-client user login' first")
	// ErrInvalidCredentials indicates that the credentials typed in are incomplete.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ExecuteUserLoginCommand logs in with credentials and saves the returned token
// to the configuration file.
func ExecuteUserLoginCommand(
	ctx context.Context,
	cfg *config.Config,
	streams Streams,
	credentials user.Credentials,
) error {
	if err := validator.New().Struct(credentials); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
	}

	c, err := newClient(cfg, streams)
	if err != nil {
		return fmt.Errorf("failed to initialize client: %w", err)
	}

	defer c.close()

	logger.Infof(ctx, "Logging in as %s", credentials.Username)

	env, err := c.users.Login(ctx, credentials)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	result, err := user.DecodeLoginResult(env)
	if err != nil {
		return err
	}

	c.store.SetToken(result.Token)
	cfg.AuthToken = result.Token

	if err = config.SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	logger.Infof(ctx, "Logged in, token saved to %s", cfg.Filename)

	return nil
}

// ExecuteUserInfoCommand prints the profile of the logged-in user.
func ExecuteUserInfoCommand(ctx context.Context, cfg *config.Config, streams Streams) error {
	c, err := newClient(cfg, streams)
	if err != nil {
		return fmt.Errorf("failed to initialize client: %w", err)
	}

	defer c.close()

	token := c.store.Token()
	if token == "" {
		return ErrNotLoggedIn
	}

	env, err := c.users.GetInfo(ctx, token)
	if err != nil {
		return fmt.Errorf("failed to get user info: %w", err)
	}

	info, err := user.DecodeInfo(env)
	if err != nil {
		return err
	}

	printInfo(c, info)

	return nil
}

// ExecuteUserLogoutCommand ends the session on the backend and forgets the local token.
func ExecuteUserLogoutCommand(ctx context.Context, cfg *config.Config, streams Streams) error {
	c, err := newClient(cfg, streams)
	if err != nil {
		return fmt.Errorf("failed to initialize client: %w", err)
	}

	defer c.close()

	if _, err = c.users.Logout(ctx); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}

	if err = c.store.ResetToken(ctx); err != nil {
		return err
	}

	logger.Info(ctx, "Logged out")

	return nil
}

//nolint:errcheck // Best effort output.
func printInfo(c *client, info *user.Info) {
	fmt.Fprintf(c.out, "Name:         %s\n", info.Name)
	fmt.Fprintf(c.out, "Roles:        %s\n", strings.Join(info.Roles, ", "))

	if info.Introduction != "" {
		fmt.Fprintf(c.out, "Introduction: %s\n", info.Introduction)
	}

	if info.Avatar != "" {
		fmt.Fprintf(c.out, "Avatar:       %s\n", info.Avatar)
	}
}
