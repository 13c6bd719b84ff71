// Package types defines the persisted entities of the game (Puzzle and
// Attempt), the Store interface that storage backends implement, the backend
// Config, and the standard error values shared across packages.
package types
