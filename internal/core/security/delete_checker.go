package security

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DeletionChecker rejects deletion of files the system cannot run without.
type DeletionChecker struct {
	files    []string
	prefixes []string
	dirs     []string
}

// NewDeletionChecker creates a checker from the built-in tables extended by policy.
func NewDeletionChecker(policy *SecurityPolicy) *DeletionChecker {
	p := policy.clone()
	return &DeletionChecker{
		files:    append(append([]string(nil), criticalFiles...), p.ProtectedFiles...),
		prefixes: criticalFilePrefixes,
		dirs:     criticalDirs,
	}
}

// Check decides whether path may be deleted. A path that cannot be resolved
// is never safe.
func (dc *DeletionChecker) Check(path string) Decision {
	absPath, canonicalPath, err := resolve(path, "")
	if err != nil {
		return deny(fmt.Sprintf("cannot resolve %q: %v", path, err))
	}

	home, homeErr := os.UserHomeDir()

	for _, p := range uniq(absPath, canonicalPath) {
		if isRoot(p) {
			return deny("refusing to delete the filesystem root")
		}

		if homeErr == nil {
			h, err := canonicalizePath(home, "")
			if err != nil {
				return deny(fmt.Sprintf("cannot resolve home directory: %v", err))
			}
			if sameFile(p, h) || sameFile(p, home) {
				return deny("refusing to delete the home directory")
			}
			if within(p, filepath.Join(h, ".ssh")) {
				return deny(fmt.Sprintf("%s holds SSH credentials", p))
			}
		}

		for _, root := range userRoots {
			if sameFile(p, root) {
				return deny(fmt.Sprintf("refusing to delete user directory root %s", root))
			}
		}

		for _, f := range dc.files {
			if sameFile(p, f) {
				return deny(fmt.Sprintf("%s is a critical system file", p))
			}
		}

		for _, prefix := range dc.prefixes {
			if strings.HasPrefix(foldCase(p), foldCase(prefix)) {
				return deny(fmt.Sprintf("%s matches critical system file %s*", p, prefix))
			}
		}

		for _, dir := range dc.dirs {
			if within(p, dir) {
				return deny(fmt.Sprintf("%s is under system directory %s", p, dir))
			}
		}
	}

	return allow("no critical file matched")
}

func sameFile(a, b string) bool {
	return foldCase(filepath.Clean(a)) == foldCase(filepath.Clean(b))
}

func uniq(paths ...string) []string {
	out := paths[:0:0]
	seen := make(map[string]bool, len(paths))
	for _, p := range paths {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}
