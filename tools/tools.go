//go:build tools
// +build tools

// Package tools documents development tool dependencies.
// These tools are installed globally via `go install` and are not tracked in go.mod
// since they are development tools, not runtime dependencies.
package tools

// Development tools (install via `go install`):
//
// Air - Live reload for the portal binary. Templates and static files already
// reload without a restart when DEV=true; Air covers Go source changes.
//   Install: go install github.com/air-verse/air@v1.63.0
//   Version: v1.63.0 (pinned 2025-01-01)
//   Run:     air --build.cmd "go build -o ./tmp/portal ./cmd/portal" --build.bin ./tmp/portal
//
// mockgen - Regenerates the gomock doubles in internal/mocks.
//   Invoked through `go generate ./internal/mocks`, which pins go.uber.org/mock/mockgen@v0.6.0.
