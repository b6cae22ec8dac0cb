// Package domain defines core data models and interfaces shared across the app.
// It contains plain types (credentials, tokens, failures, flow state) and
// contracts (interfaces) only.
package domain
