// Package mocks provides gomock-generated doubles for the portal's ports.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for the port interfaces.
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	lookup := mocks.NewMockCredentialLookup(ctrl)
//	lookup.EXPECT().Authenticate(gomock.Any(), "admin@itec.com", "admin123").Return(rec, true, nil)
package mocks

// Generate mock for CredentialLookup interface from internal/ports package.
// This creates MockCredentialLookup with methods for all CredentialLookup interface methods:
// Authenticate
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=credential_lookup_mock.go github.com/itec-institute/portal/internal/ports CredentialLookup

// Generate mock for SessionStore interface from internal/ports package.
// This creates MockSessionStore with methods for all SessionStore interface methods:
// Save, Get, Delete
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=session_store_mock.go github.com/itec-institute/portal/internal/ports SessionStore
