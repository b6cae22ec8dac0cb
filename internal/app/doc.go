// Package app wires application dependencies for the CLI.
//
// It loads Config from the YAML file in the home directory, builds the
// concrete credential store, gateway and services from it, and exposes them
// via App. Flow controllers are created per sign-in session with NewFlow.
package app
