// Package shared defines the collaborator interfaces used by the submodule
// synchronization services.
package shared
