// Package update switches every registered submodule to a target branch and
// pulls the latest changes, after bringing the parent repository current.
package update
