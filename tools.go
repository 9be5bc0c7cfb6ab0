//go:build tools

package tools

// This file tracks versions of CLI tool dependencies.
// It is not compiled into the binary.
//
// - github.com/matryer/moq (service mocks, see go:generate lines in service_test.go files)
// - github.com/pressly/goose/v3/cmd/goose (ad-hoc migration authoring; cmd/migrate applies them)
