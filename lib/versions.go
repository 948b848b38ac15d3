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
	"github.com/gravitational/trace"
	"github.com/hashicorp/go-version"
)

// NormalizeAppVersion parses an app version and returns it in canonical
// form, so that "v1.4" is sent as "1.4.0".
func NormalizeAppVersion(raw string) (string, error) {
	v, err := version.NewVersion(raw)
	if err != nil {
		return "", trace.BadParameter("invalid app version %q: %v", raw, err)
	}
	return v.String(), nil
}
