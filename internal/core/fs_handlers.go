package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
)

// resolvePath makes name absolute against cwd, expanding a leading ~.
func resolvePath(cwd, name string) (string, error) {
	if name == "~" || strings.HasPrefix(name, "~/") || strings.HasPrefix(name, `~\`) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		name = filepath.Join(home, name[1:])
	}
	if !filepath.IsAbs(name) {
		name = filepath.Join(cwd, name)
	}
	return filepath.Clean(name), nil
}

// splitFlags separates leading dash options from operands.
func splitFlags(args []string) (flags map[rune]bool, operands []string) {
	flags = make(map[rune]bool)
	for _, a := range args {
		if len(a) > 1 && strings.HasPrefix(a, "-") && a != "--" {
			for _, c := range strings.TrimLeft(a, "-") {
				flags[c] = true
			}
			continue
		}
		operands = append(operands, a)
	}
	return flags, operands
}

// guardWrite resolves name and checks it against the safety validator.
func (r *Router) guardWrite(verb, cwd, name string) (string, error) {
	path, err := resolvePath(cwd, name)
	if err != nil {
		return "", err
	}
	if d := r.validator.CheckPath(path, cwd); !d.Allowed {
		return "", accessDenied(verb, name, d.Reason)
	}
	return path, nil
}

// guardDelete is guardWrite plus the critical-file deletion check.
func (r *Router) guardDelete(verb, cwd, name string) (string, error) {
	path, err := r.guardWrite(verb, cwd, name)
	if err != nil {
		return "", err
	}
	if ok, reason := r.validator.IsSafeToDelete(path); !ok {
		return "", accessDenied(verb, name, reason)
	}
	return path, nil
}

func (r *Router) guardRead(verb, cwd, name string) (string, error) {
	path, err := resolvePath(cwd, name)
	if err != nil {
		return "", err
	}
	if d := r.validator.CheckRead(path, cwd); !d.Allowed {
		return "", accessDenied(verb, name, d.Reason)
	}
	return path, nil
}

func (r *Router) list(ctx context.Context, req Request) (Result, error) {
	flags, operands := splitFlags(req.Args)
	for f := range flags {
		if f != 'l' && f != 'a' {
			return Result{}, usageError("ls", "ls [-l] [-a] [dir]")
		}
	}

	name := "."
	if len(operands) > 0 {
		name = operands[0]
	}
	dir, err := r.guardRead("ls", req.Cwd, name)
	if err != nil {
		return Result{}, err
	}

	info, err := os.Stat(dir)
	if err != nil {
		return Result{}, fsError("ls", name, err)
	}
	if !info.IsDir() {
		if flags['l'] {
			return Result{Output: longEntry(filepath.Base(dir), dir, info)}, nil
		}
		return Result{Output: filepath.Base(dir)}, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return Result{}, fsError("ls", name, err)
	}

	visible := entries[:0:0]
	for _, e := range entries {
		if !flags['a'] && strings.HasPrefix(e.Name(), ".") {
			continue
		}
		visible = append(visible, e)
	}
	if len(visible) == 0 {
		return Result{Output: fmt.Sprintf("Directory '%s' is empty", name)}, nil
	}

	sort.SliceStable(visible, func(i, j int) bool {
		if visible[i].IsDir() != visible[j].IsDir() {
			return visible[i].IsDir()
		}
		return strings.ToLower(visible[i].Name()) < strings.ToLower(visible[j].Name())
	})

	lines := make([]string, 0, len(visible))
	for _, e := range visible {
		if !flags['l'] {
			n := e.Name()
			if e.IsDir() {
				n += "/"
			}
			lines = append(lines, n)
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		lines = append(lines, longEntry(e.Name(), filepath.Join(dir, e.Name()), info))
	}
	return Result{Output: strings.Join(lines, "\n")}, nil
}

func longEntry(name, path string, info fs.FileInfo) string {
	kind, size := "[FILE]", humanize.Bytes(uint64(info.Size()))
	switch {
	case info.Mode()&fs.ModeSymlink != 0:
		kind = "[LINK]"
		if target, err := os.Readlink(path); err == nil {
			name += " -> " + target
		}
	case info.IsDir():
		kind, size = "[DIR]", "-"
	}
	return fmt.Sprintf("%-6s %10s  %s  %s", kind, size, info.ModTime().Format("2006-01-02 15:04"), name)
}

func (r *Router) changeDir(ctx context.Context, req Request) (Result, error) {
	target := ""
	if len(req.Args) > 0 {
		target = req.Args[0]
	}

	var dest string
	switch target {
	case "", "~":
		home, err := os.UserHomeDir()
		if err != nil {
			return Result{}, fmt.Errorf("resolving home directory: %w", err)
		}
		dest = home
	case "/", `\`:
		dest = filesystemRoot(req.Cwd)
	default:
		p, err := resolvePath(req.Cwd, target)
		if err != nil {
			return Result{}, err
		}
		dest = p
	}

	return r.enter("cd", target, dest, req.Cwd)
}

func (r *Router) root(ctx context.Context, req Request) (Result, error) {
	return r.enter("root", "/", filesystemRoot(req.Cwd), req.Cwd)
}

// enter validates dest as the next working directory.
func (r *Router) enter(verb, name, dest, cwd string) (Result, error) {
	dest, err := filepath.Abs(dest)
	if err != nil {
		return Result{}, fmt.Errorf("resolving %s: %w", name, err)
	}
	if d := r.validator.CheckRead(dest, cwd); !d.Allowed {
		return Result{}, accessDenied(verb, name, d.Reason)
	}

	info, err := os.Stat(dest)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Result{}, &CommandError{Kind: ErrNotFound, Verb: verb, Path: name, Err: err,
				Msg: fmt.Sprintf("Directory '%s' not found", name)}
		}
		return Result{}, fsError(verb, name, err)
	}
	if !info.IsDir() {
		return Result{}, &CommandError{Kind: ErrUsage, Verb: verb, Path: name,
			Msg: fmt.Sprintf("'%s' is not a directory", name)}
	}

	return Result{Output: "Changed directory to " + dest, NewDir: dest}, nil
}

func filesystemRoot(cwd string) string {
	return filepath.VolumeName(cwd) + string(filepath.Separator)
}

func (r *Router) pwd(ctx context.Context, req Request) (Result, error) {
	return Result{Output: req.Cwd}, nil
}

func (r *Router) makeDir(ctx context.Context, req Request) (Result, error) {
	_, names := splitFlags(req.Args)
	if len(names) == 0 {
		return Result{}, usageError("mkdir", "mkdir <dir>...")
	}

	for _, name := range names {
		path, err := r.guardWrite("mkdir", req.Cwd, name)
		if err != nil {
			return Result{}, err
		}
		if _, err := os.Lstat(path); err == nil {
			return Result{}, conflict("mkdir", name, fmt.Sprintf("Directory '%s' already exists", name))
		}
		if err := os.MkdirAll(path, 0755); err != nil {
			return Result{}, fsError("mkdir", name, err)
		}
	}

	return Result{Output: "Created directory(ies): " + strings.Join(names, ", ")}, nil
}

func (r *Router) removeDir(ctx context.Context, req Request) (Result, error) {
	_, names := splitFlags(req.Args)
	if len(names) == 0 {
		return Result{}, usageError("rmdir", "rmdir <dir>...")
	}

	for _, name := range names {
		path, err := r.guardDelete("rmdir", req.Cwd, name)
		if err != nil {
			return Result{}, err
		}
		info, err := os.Lstat(path)
		if err != nil {
			return Result{}, fsError("rmdir", name, err)
		}
		if !info.IsDir() {
			return Result{}, &CommandError{Kind: ErrUsage, Verb: "rmdir", Path: name,
				Msg: fmt.Sprintf("'%s' is not a directory", name)}
		}
		entries, err := os.ReadDir(path)
		if err != nil {
			return Result{}, fsError("rmdir", name, err)
		}
		if len(entries) > 0 {
			return Result{}, conflict("rmdir", name, fmt.Sprintf("Directory '%s' is not empty", name))
		}
		if err := os.Remove(path); err != nil {
			return Result{}, fsError("rmdir", name, err)
		}
	}

	return Result{Output: "Removed directory(ies): " + strings.Join(names, ", ")}, nil
}

func (r *Router) remove(ctx context.Context, req Request) (Result, error) {
	flags, names := splitFlags(req.Args)
	if len(names) == 0 {
		return Result{}, usageError("rm", "rm [-r] <path>...")
	}
	recursive := flags['r'] || flags['R']

	var removed []string
	for _, name := range names {
		path, err := r.guardDelete("rm", req.Cwd, name)
		if err != nil {
			return Result{}, err
		}
		info, err := os.Lstat(path)
		if err != nil {
			if flags['f'] && errors.Is(err, os.ErrNotExist) {
				continue
			}
			return Result{}, fsError("rm", name, err)
		}

		kind := "file"
		if info.IsDir() {
			if !recursive {
				return Result{}, &CommandError{Kind: ErrUsage, Verb: "rm", Path: name,
					Msg: fmt.Sprintf("'%s' is a directory (use -r for recursive removal)", name)}
			}
			kind = "directory"
			err = os.RemoveAll(path)
		} else {
			err = os.Remove(path)
		}
		if err != nil {
			return Result{}, fsError("rm", name, err)
		}
		removed = append(removed, fmt.Sprintf("%s '%s'", kind, name))
	}

	if len(removed) == 0 {
		return Result{}, nil
	}
	return Result{Output: "Removed: " + strings.Join(removed, ", ")}, nil
}

func (r *Router) deleteFile(ctx context.Context, req Request) (Result, error) {
	_, names := splitFlags(req.Args)
	if len(names) == 0 {
		return Result{}, usageError("del", "del <file>...")
	}

	for _, name := range names {
		path, err := r.guardDelete("del", req.Cwd, name)
		if err != nil {
			return Result{}, err
		}
		info, err := os.Lstat(path)
		if err != nil {
			return Result{}, fsError("del", name, err)
		}
		if info.IsDir() {
			return Result{}, &CommandError{Kind: ErrUsage, Verb: "del", Path: name,
				Msg: fmt.Sprintf("'%s' is a directory (use rmdir or rm -r)", name)}
		}
		if err := os.Remove(path); err != nil {
			return Result{}, fsError("del", name, err)
		}
	}

	return Result{Output: "Deleted: " + strings.Join(names, ", ")}, nil
}

func (r *Router) touch(ctx context.Context, req Request) (Result, error) {
	_, names := splitFlags(req.Args)
	if len(names) == 0 {
		return Result{}, usageError("touch", "touch <file>...")
	}

	var lines []string
	for _, name := range names {
		path, err := r.guardWrite("touch", req.Cwd, name)
		if err != nil {
			return Result{}, err
		}

		if _, err := os.Stat(path); err == nil {
			now := time.Now()
			if err := os.Chtimes(path, now, now); err != nil {
				return Result{}, fsError("touch", name, err)
			}
			lines = append(lines, fmt.Sprintf("Updated: file '%s'", name))
			continue
		}

		if info, err := os.Lstat(path); err == nil && info.Mode()&fs.ModeSymlink != 0 {
			return Result{}, &CommandError{Kind: ErrAccessDenied, Verb: "touch", Path: name,
				Msg: fmt.Sprintf("'%s' is a symbolic link to a missing target", name)}
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
		if err != nil {
			return Result{}, fsError("touch", name, err)
		}
		if err := f.Close(); err != nil {
			return Result{}, fsError("touch", name, err)
		}
		lines = append(lines, fmt.Sprintf("Created: file '%s'", name))
	}

	return Result{Output: strings.Join(lines, "\n")}, nil
}

// transferPaths validates the operands shared by copy and move. When dst is
// an existing directory the source is placed inside it.
func (r *Router) transferPaths(verb string, req Request, deleteSource bool) (src, dst string, err error) {
	_, operands := splitFlags(req.Args)
	if len(operands) != 2 {
		return "", "", usageError(verb, verb+" <source> <destination>")
	}

	if deleteSource {
		src, err = r.guardDelete(verb, req.Cwd, operands[0])
	} else {
		src, err = r.guardRead(verb, req.Cwd, operands[0])
	}
	if err != nil {
		return "", "", err
	}
	dst, err = r.guardWrite(verb, req.Cwd, operands[1])
	if err != nil {
		return "", "", err
	}

	if _, err := os.Lstat(src); err != nil {
		return "", "", fsError(verb, operands[0], err)
	}
	if info, err := os.Stat(dst); err == nil && info.IsDir() {
		dst = filepath.Join(dst, filepath.Base(src))
		if d := r.validator.CheckPath(dst, req.Cwd); !d.Allowed {
			return "", "", accessDenied(verb, operands[1], d.Reason)
		}
	}
	if src == dst {
		return "", "", &CommandError{Kind: ErrUsage, Verb: verb,
			Msg: fmt.Sprintf("'%s' and '%s' are the same path", operands[0], operands[1])}
	}
	if _, err := os.Lstat(dst); err == nil {
		return "", "", conflict(verb, operands[1], fmt.Sprintf("'%s' already exists", dst))
	}
	return src, dst, nil
}

func (r *Router) copy(ctx context.Context, req Request) (Result, error) {
	src, dst, err := r.transferPaths("copy", req, false)
	if err != nil {
		return Result{}, err
	}

	info, err := os.Stat(src)
	if err != nil {
		return Result{}, fsError("copy", filepath.Base(src), err)
	}
	if info.IsDir() {
		if within(dst, src) {
			return Result{}, &CommandError{Kind: ErrUsage, Verb: "copy",
				Msg: "cannot copy a directory into itself"}
		}
		if err := copyTree(src, dst); err != nil {
			return Result{}, fsError("copy", filepath.Base(src), err)
		}
		return Result{Output: fmt.Sprintf("Copied directory '%s' to '%s'", src, dst)}, nil
	}

	if err := copyFile(src, dst, info); err != nil {
		return Result{}, fsError("copy", filepath.Base(src), err)
	}
	return Result{Output: fmt.Sprintf("Copied file '%s' to '%s'", src, dst)}, nil
}

func (r *Router) move(ctx context.Context, req Request) (Result, error) {
	src, dst, err := r.transferPaths("move", req, true)
	if err != nil {
		return Result{}, err
	}

	if err := os.Rename(src, dst); err != nil {
		if !errors.Is(err, syscall.EXDEV) {
			return Result{}, fsError("move", filepath.Base(src), err)
		}
		// Cross-device rename: copy then remove.
		info, statErr := os.Stat(src)
		if statErr != nil {
			return Result{}, fsError("move", filepath.Base(src), statErr)
		}
		if info.IsDir() {
			err = copyTree(src, dst)
		} else {
			err = copyFile(src, dst, info)
		}
		if err == nil {
			err = os.RemoveAll(src)
		}
		if err != nil {
			return Result{}, fsError("move", filepath.Base(src), err)
		}
	}

	return Result{Output: fmt.Sprintf("Moved '%s' to '%s'", src, dst)}, nil
}

// copyFile copies contents, permissions and modification time. A failed copy
// leaves no destination file behind.
func copyFile(src, dst string, info fs.FileInfo) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return err
	}
	return os.Chtimes(dst, time.Now(), info.ModTime())
}

func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		info, err := d.Info()
		if err != nil {
			return err
		}
		switch {
		case d.IsDir():
			return os.MkdirAll(target, info.Mode().Perm()|0700)
		case info.Mode()&fs.ModeSymlink != 0:
			link, err := os.Readlink(path)
			if err != nil {
				return err
			}
			return os.Symlink(link, target)
		default:
			return copyFile(path, target, info)
		}
	})
}

func within(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
