// Package security decides whether filesystem paths may be modified or
// deleted.
//
// The validator is default-deny. A path is safe to modify only when it lies
// inside the home directory, the working directory or a fixed allowlist, and
// never when it lies inside a protected system directory. Deletion is
// additionally refused for critical binaries, libraries and configuration
// files. Paths are canonicalized, resolving symlinks, before every check,
// and any resolution failure is a denial.
package security
