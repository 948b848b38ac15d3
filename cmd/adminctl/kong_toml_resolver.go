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
	"io"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/gravitational/trace"
	"github.com/pelletier/go-toml"
)

// configSections are the TOML sections flags are looked up in. A flag named
// "api-auth-url" is read from the "auth-url" key of the [api] section.
var configSections = []string{"api", "app", "storage", "log"}

// KongTOMLResolver is the kong resolver function for toml configuration file
func KongTOMLResolver(r io.Reader) (kong.Resolver, error) {
	config, err := toml.LoadReader(r)
	if err != nil {
		return nil, trace.Wrap(err)
	}

	var f kong.ResolverFunc = func(context *kong.Context, parent *kong.Path, flag *kong.Flag) (interface{}, error) {
		name := flag.Name
		for _, section := range configSections {
			prefix := section + "-"
			if !strings.HasPrefix(name, prefix) {
				continue
			}
			if value := config.GetPath([]string{section, name[len(prefix):]}); value != nil {
				return value, nil
			}
		}
		return config.Get(name), nil
	}

	return f, nil
}
