// Package mocks provides mock implementations for testing the portfolio UI.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for our port interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	api := upstreammocks.NewMockBackendAPI(ctrl)
//	api.EXPECT().ListExperience(gomock.Any(), gomock.Any()).Return(entries, nil)
package mocks

// Generate mock for the BackendAPI interface from internal/ports.
// This creates MockBackendAPI with methods for the full backend surface:
// FetchCSRF, Login, Me, Logout, ListExperience, CreateExperience, UpdateExperience,
// DeleteExperience, ListMessages, SubmitMessage, UpdateMessageStatus, DeleteMessage, ListProjects
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=upstream -destination=upstream/backend_api_mock.go github.com/nmoreno/portfolio-ui/internal/ports BackendAPI

// Generate mock for the SessionStore interface from internal/ports.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=auth -destination=auth/session_store_mock.go github.com/nmoreno/portfolio-ui/internal/ports SessionStore
