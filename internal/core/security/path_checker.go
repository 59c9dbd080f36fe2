package security

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// PathAccessChecker decides whether a path may be touched by a mutating
// command. Anything not explicitly allowed is denied.
type PathAccessChecker struct {
	restricted []string
	allowed    []string
}

// NewPathAccessChecker creates a checker from the built-in tables extended by policy.
func NewPathAccessChecker(policy *SecurityPolicy) *PathAccessChecker {
	p := policy.clone()
	return &PathAccessChecker{
		restricted: append(append([]string(nil), systemDirs()...), p.RestrictedPaths...),
		allowed:    append(allowRoots(), p.AllowedPaths...),
	}
}

// Check decides whether candidate, resolved against cwd, is safe to modify.
func (pc *PathAccessChecker) Check(candidate, cwd string) Decision {
	return pc.check(candidate, cwd, false)
}

// CheckRead is Check with the filesystem root permitted, for listing and
// navigation.
func (pc *PathAccessChecker) CheckRead(candidate, cwd string) Decision {
	return pc.check(candidate, cwd, true)
}

func (pc *PathAccessChecker) check(candidate, cwd string, rootOK bool) Decision {
	absPath, canonicalPath, err := resolve(candidate, cwd)
	if err != nil {
		return deny(fmt.Sprintf("cannot resolve %q: %v", candidate, err))
	}

	if isRoot(canonicalPath) {
		if rootOK {
			return allow("filesystem root is readable")
		}
		return deny("the filesystem root is protected")
	}

	if dir, ok := pc.RestrictedBy(absPath, canonicalPath); ok {
		return deny(fmt.Sprintf("%s is inside protected system directory %s", canonicalPath, dir))
	}

	if home, err := os.UserHomeDir(); err == nil {
		if h, err := canonicalizePath(home, ""); err == nil && within(canonicalPath, h) {
			return allow("inside the home directory")
		}
	}

	if cwd != "" {
		absCwd, c, err := resolve(cwd, "")
		if err == nil && !isRoot(c) && within(canonicalPath, c) {
			if _, restricted := pc.RestrictedBy(absCwd, c); !restricted {
				return allow("inside the working directory")
			}
		}
	}

	for _, root := range pc.allowed {
		r, err := canonicalizePath(root, "")
		if err != nil {
			continue
		}
		if within(canonicalPath, r) {
			return allow(fmt.Sprintf("inside allowed location %s", r))
		}
	}

	return deny(fmt.Sprintf("%s is outside the allowed directories", canonicalPath))
}

// RestrictedBy returns the protected directory containing either form of a
// path. Both the literal and the symlink-resolved forms are checked.
func (pc *PathAccessChecker) RestrictedBy(paths ...string) (string, bool) {
	for _, restricted := range pc.restricted {
		forms := []string{filepath.Clean(restricted)}
		if c, err := canonicalizePath(restricted, ""); err == nil && c != forms[0] {
			forms = append(forms, c)
		}
		for _, p := range paths {
			for _, r := range forms {
				if within(p, r) {
					return restricted, true
				}
			}
		}
	}
	return "", false
}

// maxSymlinkHops bounds link following, matching the usual kernel limit.
const maxSymlinkHops = 40

var errSymlinkLoop = errors.New("too many levels of symbolic links")

// resolve returns the absolute and the symlink-resolved forms of path. Any
// failure to resolve is returned so callers can deny.
func resolve(path, base string) (string, string, error) {
	absPath, err := absolutePath(path, base)
	if err != nil {
		return "", "", err
	}
	canonical, err := resolveSymlinks(absPath)
	if err != nil {
		return absPath, "", err
	}
	return absPath, canonical, nil
}

// canonicalizePath expands the home directory, makes path absolute against
// base and resolves symlinks to prevent bypass via symlink attacks.
func canonicalizePath(path, base string) (string, error) {
	_, canonical, err := resolve(path, base)
	return canonical, err
}

func absolutePath(path, base string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	expanded := path
	if expanded == "~" || strings.HasPrefix(expanded, "~/") || strings.HasPrefix(expanded, `~\`) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		expanded = filepath.Join(home, expanded[1:])
	}

	if !filepath.IsAbs(expanded) && base != "" {
		expanded = filepath.Join(base, expanded)
	}

	return filepath.Abs(expanded)
}

// resolveSymlinks resolves path one component at a time. Links are followed
// through their targets even when the target does not exist, so a dangling
// link reports where a create would land. Components past the first missing
// one are kept as written.
func resolveSymlinks(path string) (string, error) {
	vol := filepath.VolumeName(path)
	resolved := vol + string(filepath.Separator)
	pending := splitPath(path[len(vol):])
	missing := false
	hops := 0

	for len(pending) > 0 {
		name := pending[0]
		pending = pending[1:]

		switch name {
		case ".":
			continue
		case "..":
			resolved = filepath.Dir(resolved)
			continue
		}

		next := filepath.Join(resolved, name)
		if missing {
			resolved = next
			continue
		}

		info, err := os.Lstat(next)
		if errors.Is(err, fs.ErrNotExist) {
			missing = true
			resolved = next
			continue
		}
		if err != nil {
			return "", err
		}
		if info.Mode()&fs.ModeSymlink == 0 {
			resolved = next
			continue
		}

		hops++
		if hops > maxSymlinkHops {
			return "", fmt.Errorf("%s: %w", path, errSymlinkLoop)
		}
		target, err := os.Readlink(next)
		if err != nil {
			return "", err
		}
		if filepath.IsAbs(target) {
			v := filepath.VolumeName(target)
			resolved = v + string(filepath.Separator)
			target = target[len(v):]
		}
		pending = append(splitPath(target), pending...)
	}

	return resolved, nil
}

func splitPath(path string) []string {
	return strings.FieldsFunc(path, func(r rune) bool { return r == '/' || r == filepath.Separator })
}

func isRoot(path string) bool {
	return filepath.Dir(path) == path
}

// within reports whether path equals dir or lies below it.
func within(path, dir string) bool {
	path, dir = foldCase(filepath.Clean(path)), foldCase(filepath.Clean(dir))
	if path == dir {
		return true
	}
	if !strings.HasSuffix(dir, string(filepath.Separator)) {
		dir += string(filepath.Separator)
	}
	return strings.HasPrefix(path, dir)
}

func foldCase(path string) string {
	if runtime.GOOS == "windows" {
		return strings.ToLower(path)
	}
	return path
}
