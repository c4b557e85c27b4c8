// Package utils hosts configuration loading, logger construction, and command
// context helpers shared across the subsync CLI.
package utils
