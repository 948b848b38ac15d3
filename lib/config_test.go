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
	"testing"
	"time"

	"github.com/gravitational/trace"
	"github.com/stretchr/testify/require"
)

func TestAPIConfigDefaults(t *testing.T) {
	cfg := APIConfig{BaseURL: "api.example.com/", AppVersion: "1.2.0"}
	require.NoError(t, cfg.CheckAndSetDefaults())
	require.Equal(t, "https://api.example.com", cfg.BaseURL)
	require.Equal(t, cfg.BaseURL, cfg.AuthURL)
	require.Equal(t, DefaultAppType, cfg.AppType)
	require.Equal(t, DefaultTimeout, cfg.Timeout)
}

func TestAPIConfigSeparateAuthService(t *testing.T) {
	cfg := APIConfig{
		BaseURL:    "http://localhost:8001/api",
		AuthURL:    "http://localhost:8002",
		AppVersion: "1.2.0",
		AppType:    "web",
		Timeout:    time.Second,
	}
	require.NoError(t, cfg.CheckAndSetDefaults())
	require.Equal(t, "http://localhost:8002", cfg.AuthURL)
	require.Equal(t, "web", cfg.AppType)
	require.Equal(t, time.Second, cfg.Timeout)
}

func TestAPIConfigMissing(t *testing.T) {
	cfg := APIConfig{}
	err := cfg.CheckAndSetDefaults()
	require.True(t, trace.IsBadParameter(err))
	require.Contains(t, err.Error(), "`url`")
	require.Contains(t, err.Error(), "`app_version`")
}

func TestAPIConfigAppVersion(t *testing.T) {
	cfg := APIConfig{BaseURL: "api.example.com", AppVersion: "v1.4"}
	require.NoError(t, cfg.CheckAndSetDefaults())
	require.Equal(t, "1.4.0", cfg.AppVersion)

	cfg = APIConfig{BaseURL: "api.example.com", AppVersion: "latest"}
	require.True(t, trace.IsBadParameter(cfg.CheckAndSetDefaults()))
}
