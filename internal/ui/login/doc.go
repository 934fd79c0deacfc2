// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package login provides the Bubble Tea login/signup form shown while
// the client is anonymous. Submitting hands the credentials to the
// auth manager; a rejected login keeps the form open with the error
// shown, and success is reported to the parent model.
package login
