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
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/gravitational/admin-panel/lib"
	"github.com/gravitational/admin-panel/lib/logger"
)

const (
	appName        = "adminctl"
	appDescription = "Command line client for the admin panel API"
)

var (
	// Version is set at build time
	Version = "0.0.0-dev"
	// Gitref is set at build time
	Gitref = "unknown"
)

// VersionCmd prints the version.
type VersionCmd struct{}

func (c *VersionCmd) Run(cli *CLI) error {
	fmt.Printf("%s v%s git:%s\n", appName, Version, Gitref)
	return nil
}

func main() {
	logger.Init()

	var cli CLI
	kctx := kong.Parse(
		&cli,
		kong.UsageOnError(),
		kong.Configuration(KongTOMLResolver),
		kong.Name(appName),
		kong.Description(appDescription),
	)

	ctx, cancel := lib.WithSignals(context.Background(), func() { os.Exit(130) })
	defer cancel()
	cli.ctx = ctx

	// See respective commands Run() methods
	if err := kctx.Run(&cli); err != nil {
		if lib.IsCanceled(err) {
			os.Exit(130)
		}
		lib.Bail(err, cli.Debug)
	}
}
