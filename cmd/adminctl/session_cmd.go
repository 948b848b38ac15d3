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
	"errors"
	"fmt"
	"time"

	"github.com/gravitational/trace"
	"github.com/manifoldco/promptui"

	"github.com/gravitational/admin-panel/api"
	"github.com/gravitational/admin-panel/auth/session"
)

// LoginCmd logs in with a username and password.
type LoginCmd struct {
	Username string `arg:"true" help:"Admin username"`
	Password string `help:"Admin password, prompted for when empty" env:"ADMINCTL_PASSWORD"`
}

func (c *LoginCmd) Run(cli *CLI) error {
	app, err := cli.newApp()
	if err != nil {
		return trace.Wrap(err)
	}
	password := c.Password
	if password == "" {
		if password, err = askPassword(); err != nil {
			return trace.Wrap(err)
		}
	}

	cred, err := app.store.Login(cli.Context(), c.Username, password)
	if err != nil {
		var failure *api.AuthFailure
		if errors.As(err, &failure) {
			fmt.Fprintf(app.conf.Out, "Login failed: %s\n", failure.Message())
		}
		return trace.Wrap(err)
	}
	fmt.Fprintf(app.conf.Out, "Logged in as %s.\n", c.Username)
	printExpiry(app, cred)
	return nil
}

func askPassword() (string, error) {
	prompt := promptui.Prompt{
		Label: "Password",
		Mask:  '*',
		Validate: func(input string) error {
			if input == "" {
				return trace.BadParameter("password is empty")
			}
			return nil
		},
	}
	password, err := prompt.Run()
	return password, trace.Wrap(err)
}

// LogoutCmd forgets the stored session.
type LogoutCmd struct{}

func (c *LogoutCmd) Run(cli *CLI) error {
	app, err := cli.newApp()
	if err != nil {
		return trace.Wrap(err)
	}
	if err := app.store.Logout(cli.Context()); err != nil {
		return trace.Wrap(err)
	}
	fmt.Fprintln(app.conf.Out, "Logged out.")
	return nil
}

// StatusCmd shows the stored session.
type StatusCmd struct{}

func (c *StatusCmd) Run(cli *CLI) error {
	app, err := cli.newApp()
	if err != nil {
		return trace.Wrap(err)
	}
	record, err := app.store.Snapshot(cli.Context())
	if err != nil {
		return trace.Wrap(err)
	}
	if record.Credential == nil {
		fmt.Fprintln(app.conf.Out, "No stored session.")
		return nil
	}

	cred := record.Credential
	table := newTable(app.conf.Out, "Field", "Value")
	table.Append([]string{"API", app.conf.API.BaseURL})
	table.Append([]string{"Auth service", app.conf.API.AuthURL})
	table.Append([]string{"Token type", cred.Type})
	table.Append([]string{"Issued", formatTime(cred.IssuedAt)})
	table.Append([]string{"Expires", expiryString(app, cred)})
	table.Render()
	return nil
}

// RefreshCmd exchanges the stored refresh token.
type RefreshCmd struct{}

func (c *RefreshCmd) Run(cli *CLI) error {
	app, err := cli.newApp()
	if err != nil {
		return trace.Wrap(err)
	}
	ctx := cli.Context()
	token, err := app.store.RefreshToken(ctx)
	if err != nil {
		return trace.Wrap(err)
	}
	if token == "" {
		return trace.NotFound("no stored session, run `adminctl login` first")
	}
	cred, err := app.store.Refresh(ctx, token)
	if err != nil {
		return trace.Wrap(err)
	}
	fmt.Fprintln(app.conf.Out, "Session refreshed.")
	printExpiry(app, cred)
	return nil
}

func printExpiry(app *App, cred *session.Credential) {
	fmt.Fprintf(app.conf.Out, "Access token expires: %s\n", expiryString(app, cred))
}

func expiryString(app *App, cred *session.Credential) string {
	expires := cred.ExpiresAt()
	if expires.IsZero() {
		return "unknown"
	}
	left := expires.Sub(app.conf.Clock.Now())
	if left <= 0 {
		return fmt.Sprintf("%s (expired)", formatTime(expires))
	}
	return fmt.Sprintf("%s (in %s)", formatTime(expires), left.Round(time.Second))
}
