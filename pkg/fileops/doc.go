// Package fileops provides generic, security-conscious filesystem helpers
// used by the higher-level skill corpus packages.
//
// The directory scanner operates inside an os.Root boundary so that a scan
// can never escape the configured corpus directory, even through symlinks.
// Domain-specific concerns (which files count as skills, how paths map to
// resource URIs) live in internal/filemanager; this package only discovers
// files.
package fileops
