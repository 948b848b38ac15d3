/*
Copyright 2026 Gravitational, Inc.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	"github.com/gravitational/trace"

	"github.com/gravitational/admin-panel/lib"
	"github.com/gravitational/admin-panel/lib/logger"
)

// APIFlags locate the admin API and the auth service.
type APIFlags struct {
	// URL is the admin API root
	URL string `help:"Admin API URL" name:"api-url" env:"ADMINCTL_API_URL"`

	// AuthURL is the auth service root
	AuthURL string `help:"Auth service URL, defaults to the API URL" name:"api-auth-url" env:"ADMINCTL_API_AUTH_URL"`

	// Timeout bounds a single request
	Timeout time.Duration `help:"Request timeout" name:"api-timeout" default:"10s" env:"ADMINCTL_API_TIMEOUT"`
}

// AppFlags identify the client to the API.
type AppFlags struct {
	AppVersion string `help:"Value of the X-App-Version header" name:"app-version" default:"1.0.0" env:"ADMINCTL_APP_VERSION"`
	AppType    string `help:"Value of the X-App-Type header" name:"app-type" default:"admin" env:"ADMINCTL_APP_TYPE"`
}

// StorageFlags locate the session storage.
type StorageFlags struct {
	// StorageDir is the diskv directory holding the session record
	StorageDir string `help:"Session storage directory, defaults to the user config dir" name:"storage-dir" env:"ADMINCTL_STORAGE_DIR"`
}

// LogFlags configure logging.
type LogFlags struct {
	LogSeverity string `help:"Log severity: debug, info, warn or error" name:"log-severity" default:"warn" env:"ADMINCTL_LOG_SEVERITY"`
	LogOutput   string `help:"Log output: stderr, stdout or a file path" name:"log-output" default:"stderr" env:"ADMINCTL_LOG_OUTPUT"`
}

// CLI represents command structure
type CLI struct {
	// Config is the path to configuration file
	Config kong.ConfigFlag `help:"Path to TOML configuration file" optional:"true" type:"existingfile" env:"ADMINCTL_CONFIG"`

	// Debug prints debug reports of failures
	Debug bool `help:"Debug mode" short:"d"`

	APIFlags
	AppFlags
	StorageFlags
	LogFlags

	Version       VersionCmd       `cmd:"true" help:"Print version"`
	Login         LoginCmd         `cmd:"true" help:"Log in to the admin API"`
	Logout        LogoutCmd        `cmd:"true" help:"Forget the stored session"`
	Status        StatusCmd        `cmd:"true" help:"Show the stored session"`
	Refresh       RefreshCmd       `cmd:"true" help:"Exchange the refresh token for a new token pair"`
	Users         UsersCmd         `cmd:"true" help:"Browse bot users"`
	Notifications NotificationsCmd `cmd:"true" help:"Manage notifications"`
	Templates     TemplatesCmd     `cmd:"true" help:"Manage reminder templates"`
	Analytics     AnalyticsCmd     `cmd:"true" help:"Show analytics"`
	Dashboard     DashboardCmd     `cmd:"true" help:"Show the dashboard summary"`

	ctx context.Context
}

// Context returns the command context.
func (c *CLI) Context() context.Context {
	if c.ctx == nil {
		return context.Background()
	}
	return c.ctx
}

// APIConfig validates the API flags.
func (c *CLI) APIConfig() (lib.APIConfig, error) {
	conf := lib.APIConfig{
		BaseURL:    c.URL,
		AuthURL:    c.AuthURL,
		AppVersion: c.AppVersion,
		AppType:    c.AppType,
		Timeout:    c.Timeout,
	}
	if err := conf.CheckAndSetDefaults(); err != nil {
		return lib.APIConfig{}, trace.Wrap(err)
	}
	return conf, nil
}

// LoggerConfig returns the logger configuration.
func (c *CLI) LoggerConfig() logger.Config {
	return logger.Config{Severity: c.LogSeverity, Output: c.LogOutput}
}

// SessionDir returns the session storage directory.
func (c *CLI) SessionDir() (string, error) {
	if c.StorageDir != "" {
		return c.StorageDir, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", trace.Wrap(err, "failed to locate the user config dir, set --storage-dir")
	}
	return filepath.Join(dir, "adminctl"), nil
}

// newApp sets up logging and builds the app from the flags.
func (c *CLI) newApp() (*App, error) {
	if err := logger.Setup(c.LoggerConfig()); err != nil {
		return nil, trace.Wrap(err)
	}
	apiConf, err := c.APIConfig()
	if err != nil {
		return nil, trace.Wrap(err)
	}
	dir, err := c.SessionDir()
	if err != nil {
		return nil, trace.Wrap(err)
	}
	return NewApp(AppConfig{API: apiConf, StorageDir: dir, Out: os.Stdout})
}
