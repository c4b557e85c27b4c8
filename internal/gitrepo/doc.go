// Package gitrepo contains helpers for interrogating Git repositories.
//
// It exposes RepositoryManager for inspecting the current branch, the
// worktree state, and the registered submodules, built on top of the
// execshell executor.
package gitrepo
