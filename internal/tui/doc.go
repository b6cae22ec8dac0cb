// Package tui renders a terminal sign-in form on top of a flow.Controller.
//
// Key presses become flow signals; the controller's published states are fed
// back into the bubbletea program as messages. The model never changes the
// sign-in state itself.
package tui
