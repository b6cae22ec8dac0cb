// Package commands defines the signin CLI and wires dependencies for subcommands.
//
// Commands
//
//   - login    Sign in non-interactively and store the access token
//   - form     Sign in through an interactive terminal form
//   - status   Describe the stored access token
//   - logout   Remove the stored access token
//
// # Implementation
//
// The root command loads the YAML config from the home directory, applies
// flag overrides and builds the dependency graph (store, gateway, services)
// before any subcommand runs. login and form each drive their own
// flow.Controller, so the CLI exercises the same state machine a graphical
// front end would.
package commands
