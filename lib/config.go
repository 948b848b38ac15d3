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

package lib

import (
	"strings"
	"time"

	"github.com/gravitational/trace"
	log "github.com/sirupsen/logrus"
)

const (
	// DefaultAppType is sent in X-App-Type when nothing else is configured.
	DefaultAppType = "admin"
	// DefaultTimeout bounds a single API call.
	DefaultTimeout = 10 * time.Second
)

// APIConfig stores where the admin API and the auth service are listening
// and how the client identifies itself to them.
type APIConfig struct {
	// BaseURL is the admin API root.
	BaseURL string `toml:"url"`
	// AuthURL is the root of the dedicated auth service. Defaults to BaseURL.
	AuthURL string `toml:"auth_url"`
	// AppVersion is sent in X-App-Version.
	AppVersion string `toml:"app_version"`
	// AppType is sent in X-App-Type.
	AppType string `toml:"app_type"`
	// Timeout bounds every request.
	Timeout time.Duration `toml:"timeout"`
}

// CheckAndSetDefaults validates the config and normalises the URLs.
func (cfg *APIConfig) CheckAndSetDefaults() error {
	var missing []string
	if cfg.BaseURL == "" {
		missing = append(missing, "`url`")
	}
	if cfg.AppVersion == "" {
		missing = append(missing, "`app_version`")
	}
	if len(missing) > 0 {
		return trace.BadParameter("missing required configuration setting(s) %s", strings.Join(missing, ", "))
	}

	appVersion, err := NormalizeAppVersion(cfg.AppVersion)
	if err != nil {
		return trace.Wrap(err, "invalid `app_version`")
	}
	cfg.AppVersion = appVersion

	baseURL, err := AddrToURL(cfg.BaseURL)
	if err != nil {
		return trace.Wrap(err, "invalid `url`")
	}
	cfg.BaseURL = baseURL.String()

	if cfg.AuthURL == "" {
		log.Debug("Configuration setting `auth_url` is not set, using `url` for the auth service")
		cfg.AuthURL = cfg.BaseURL
	} else {
		authURL, err := AddrToURL(cfg.AuthURL)
		if err != nil {
			return trace.Wrap(err, "invalid `auth_url`")
		}
		cfg.AuthURL = authURL.String()
	}

	if cfg.AppType == "" {
		cfg.AppType = DefaultAppType
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Timeout < 0 {
		return trace.BadParameter("`timeout` must be positive, got %v", cfg.Timeout)
	}
	return nil
}
