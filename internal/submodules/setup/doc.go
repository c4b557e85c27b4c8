// Package setup brings a parent repository current and initializes its
// registered submodules.
package setup
