// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// auth_cmd.go - login, signup, logout, and passwd command handlers.
package cli

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jeranaias/parley-tui/internal/api"
)

// HandleLoginCommand prompts for credentials and logs in.
func HandleLoginCommand(d *deps, args Args) error {
	if err := RequiresTTY("log in"); err != nil {
		return err
	}
	if d.manager.IsAuthenticated() {
		user := d.manager.User()
		fmt.Printf("%s already logged in as %s (run 'parley logout' first)\n",
			warningStyle.Render("[!]"), user.Email)
		return nil
	}

	email, err := promptLine("email")
	if err != nil {
		return err
	}
	password, err := promptPassword("password")
	if err != nil {
		return err
	}

	if err := d.manager.Login(context.Background(), email, password); err != nil {
		if api.IsStatus(err, http.StatusUnauthorized) {
			return fmt.Errorf("invalid email or password")
		}
		return err
	}

	user := d.manager.User()
	if !args.Quiet {
		fmt.Printf("%s logged in as %s\n", commandStyle.Render("[OK]"), user.Email)
	}
	return nil
}

// HandleSignupCommand prompts for account details and registers.
func HandleSignupCommand(d *deps, args Args) error {
	if err := RequiresTTY("sign up"); err != nil {
		return err
	}

	name, err := promptLine("display name")
	if err != nil {
		return err
	}
	email, err := promptLine("email")
	if err != nil {
		return err
	}
	password, err := promptPassword("password")
	if err != nil {
		return err
	}
	confirm, err := promptPassword("confirm password")
	if err != nil {
		return err
	}
	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}

	if err := d.manager.Signup(context.Background(), name, email, password); err != nil {
		return err
	}

	if !args.Quiet {
		fmt.Printf("%s account created; logged in as %s\n",
			commandStyle.Render("[OK]"), email)
	}
	return nil
}

// HandleLogoutCommand clears the stored account and session pointer.
func HandleLogoutCommand(d *deps, args Args) error {
	if !d.manager.IsAuthenticated() {
		fmt.Println(infoStyle.Render("not logged in"))
		return nil
	}

	if err := d.manager.Logout(); err != nil {
		return err
	}
	if !args.Quiet {
		fmt.Printf("%s logged out\n", commandStyle.Render("[OK]"))
	}
	return nil
}

// HandlePasswdCommand changes the account password on the backend.
// The stored local account is untouched.
func HandlePasswdCommand(d *deps, args Args) error {
	if err := RequiresTTY("change password"); err != nil {
		return err
	}
	if !d.manager.IsAuthenticated() {
		return fmt.Errorf("not logged in (run 'parley login' first)")
	}

	oldPassword, err := promptPassword("current password")
	if err != nil {
		return err
	}
	newPassword, err := promptPassword("new password")
	if err != nil {
		return err
	}
	confirm, err := promptPassword("confirm new password")
	if err != nil {
		return err
	}
	if newPassword != confirm {
		return fmt.Errorf("passwords do not match")
	}

	if err := d.manager.UpdatePassword(context.Background(), oldPassword, newPassword); err != nil {
		return friendlyPasswdError(err)
	}

	if !args.Quiet {
		fmt.Printf("%s password updated\n", commandStyle.Render("[OK]"))
	}
	return nil
}

// friendlyPasswdError maps the password endpoint's status codes to
// readable messages: 400 means the current password was wrong, 404
// means the account no longer exists on the backend.
func friendlyPasswdError(err error) error {
	switch {
	case api.IsStatus(err, http.StatusBadRequest):
		return fmt.Errorf("current password is incorrect")
	case api.IsStatus(err, http.StatusNotFound):
		return fmt.Errorf("account not found on the backend")
	}
	return err
}
