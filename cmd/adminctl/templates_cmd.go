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
	"strconv"

	"github.com/gravitational/trace"
)

// TemplatesCmd groups the reminder template commands.
type TemplatesCmd struct {
	List   TemplatesListCmd   `cmd:"true" help:"List reminder templates"`
	Delete TemplatesDeleteCmd `cmd:"true" help:"Delete a reminder template"`
}

// TemplatesListCmd lists templates.
type TemplatesListCmd struct{}

func (c *TemplatesListCmd) Run(cli *CLI) error {
	app, err := cli.newApp()
	if err != nil {
		return trace.Wrap(err)
	}
	return app.Protected(cli.Context(), func(ctx context.Context) error {
		list, err := app.resources.Templates.List(ctx)
		if err != nil {
			return trace.Wrap(err)
		}
		table := newTable(app.conf.Out, "ID", "Name", "Active", "Updated", "Template")
		for _, t := range list.Items {
			table.Append([]string{
				formatID(t.ID),
				t.Name,
				strconv.FormatBool(t.IsActive),
				formatTime(t.UpdatedAt),
				cell(t.MessageTemplate),
			})
		}
		table.Render()
		fmt.Fprintf(app.conf.Out, "%d templates.\n", list.Total)
		return nil
	})
}

// TemplatesDeleteCmd deletes a template.
type TemplatesDeleteCmd struct {
	ID int64 `arg:"true" help:"Template ID"`
}

func (c *TemplatesDeleteCmd) Run(cli *CLI) error {
	app, err := cli.newApp()
	if err != nil {
		return trace.Wrap(err)
	}
	return app.Protected(cli.Context(), func(ctx context.Context) error {
		if err := app.resources.Templates.Delete(ctx, c.ID); err != nil {
			return trace.Wrap(err)
		}
		fmt.Fprintf(app.conf.Out, "Template %d deleted.\n", c.ID)
		return nil
	})
}
