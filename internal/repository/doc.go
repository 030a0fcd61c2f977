// Package repository abstracts where the skill corpus comes from.
//
// A Source resolves to a local filesystem directory the file manager can
// scan. LocalSource validates an existing directory; GitSource clones or
// updates a git repository of skill files, authenticating with a Personal
// Access Token from the OS credential store when the repository is private.
package repository
