// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// status.go - "parley status" command handler.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/jeranaias/parley-tui/internal/config"
)

// statusReport is the JSON shape of the status output.
type statusReport struct {
	Version       string `json:"version"`
	BackendURL    string `json:"backend_url"`
	BackendUp     bool   `json:"backend_up"`
	Authenticated bool   `json:"authenticated"`
	Email         string `json:"email,omitempty"`
	Name          string `json:"name,omitempty"`
	Sessions      int    `json:"sessions"`
	ActiveSession string `json:"active_session,omitempty"`
}

// HandleStatusCommand shows connection and account status.
func HandleStatusCommand(d *deps, args Args) error {
	cfg := config.Global()

	report := statusReport{
		Version:    Version,
		BackendURL: cfg.API.BaseURL,
	}

	if user := d.manager.User(); user != nil {
		report.Authenticated = true
		report.Email = user.Email
		report.Name = user.Name

		// The session list doubles as a reachability probe.
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := d.chats.Load(ctx); err == nil {
			report.BackendUp = true
			report.Sessions = len(d.chats.Sessions())
			report.ActiveSession = activeTitle(d)
		}
	}

	if args.JSON {
		return json.NewEncoder(os.Stdout).Encode(report)
	}

	fmt.Println(summaryHeaderStyle.Render("parley status"))
	fmt.Printf("  %s %s\n", infoStyle.Render("Version:"), report.Version)
	fmt.Printf("  %s %s\n", infoStyle.Render("Backend:"), report.BackendURL)

	if !report.Authenticated {
		fmt.Printf("  %s %s\n", infoStyle.Render("Account:"),
			warningStyle.Render("not logged in"))
		return nil
	}

	fmt.Printf("  %s %s (%s)\n", infoStyle.Render("Account:"), report.Name, report.Email)
	if report.BackendUp {
		fmt.Printf("  %s %s\n", infoStyle.Render("Backend up:"), commandStyle.Render("yes"))
		fmt.Printf("  %s %d\n", infoStyle.Render("Sessions:"), report.Sessions)
		if report.ActiveSession != "" {
			fmt.Printf("  %s %s\n", infoStyle.Render("Active:"), report.ActiveSession)
		}
	} else {
		fmt.Printf("  %s %s\n", infoStyle.Render("Backend up:"), errorStyle.Render("no"))
	}
	return nil
}
