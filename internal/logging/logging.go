// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging builds the zap loggers used by the CLI.
package logging

import "go.uber.org/zap"

// New returns a zap logger writing to stderr. When debug is true it uses the
// development config (console encoding, debug level); otherwise the
// production config (JSON, info level).
func New(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
