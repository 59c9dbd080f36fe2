package core

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/Lin-Jiong-HDU/nlterm/internal/core/security"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skipUnlessUnix(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("unix paths only")
	}
}

type fakeReporter struct {
	limit int
	err   error
}

func (f *fakeReporter) CPU(ctx context.Context) (string, error) {
	return "=== CPU Information ===", f.err
}

func (f *fakeReporter) Memory(ctx context.Context) (string, error) {
	return "=== Memory Information ===", f.err
}

func (f *fakeReporter) Processes(ctx context.Context, limit int) (string, error) {
	f.limit = limit
	return "=== Top Processes ===", f.err
}

func (f *fakeReporter) Disk(ctx context.Context) (string, error) {
	return "=== Disk Information ===", f.err
}

func newTestRouter(t *testing.T) (*Router, string) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	return NewRouter(RouterOptions{Logger: zerolog.Nop()}), t.TempDir()
}

func dispatch(r *Router, line, cwd string) Result {
	return r.Dispatch(context.Background(), line, cwd)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestRouter_UnknownVerb(t *testing.T) {
	r, cwd := newTestRouter(t)

	res := dispatch(r, "lss", cwd)

	assert.Contains(t, res.Output, "Command not found: lss")
	assert.Contains(t, res.Output, "Type 'help' for available commands")
	assert.Contains(t, res.Output, "Did you mean:")
	assert.Contains(t, res.Output, "ls")
	assert.False(t, res.Exit)
}

func TestRouter_EmptyLine(t *testing.T) {
	r, cwd := newTestRouter(t)
	assert.Equal(t, Result{}, dispatch(r, "   ", cwd))
}

func TestRouter_RecoversPanics(t *testing.T) {
	r, cwd := newTestRouter(t)
	r.register(CategorySession, func(ctx context.Context, req Request) (Result, error) {
		panic("boom")
	}, "test", "boom", "boom")

	res := dispatch(r, "boom", cwd)

	assert.Contains(t, res.Output, "internal failure")
	assert.False(t, res.Exit)
}

func TestRouter_KnowsAndVerbs(t *testing.T) {
	r, _ := newTestRouter(t)

	assert.True(t, r.Knows("ls"))
	assert.True(t, r.Knows("MV"))
	assert.False(t, r.Knows("sudo"))
	assert.True(t, r.IsLiteral("  cd /tmp"))
	assert.False(t, r.IsLiteral("show files"))
	assert.Contains(t, r.Verbs(), "quit")
}

func TestRouter_List(t *testing.T) {
	r, cwd := newTestRouter(t)

	assert.Equal(t, "Directory '.' is empty", dispatch(r, "ls", cwd).Output)

	writeFile(t, filepath.Join(cwd, "b.txt"), "hello")
	writeFile(t, filepath.Join(cwd, "A.txt"), "")
	writeFile(t, filepath.Join(cwd, ".hidden"), "")
	require.NoError(t, os.Mkdir(filepath.Join(cwd, "zdir"), 0755))

	assert.Equal(t, "zdir/\nA.txt\nb.txt", dispatch(r, "ls", cwd).Output)
	assert.Contains(t, dispatch(r, "ls -a", cwd).Output, ".hidden")

	long := dispatch(r, "ls -la", cwd).Output
	lines := strings.Split(long, "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "[DIR]"))
	assert.Contains(t, long, "5 B")

	assert.Equal(t, "Error: Usage: ls [-l] [-a] [dir]", dispatch(r, "ls -z", cwd).Output)
	assert.Equal(t, "Error: 'nope' not found", dispatch(r, "ls nope", cwd).Output)
}

func TestRouter_ChangeDir(t *testing.T) {
	r, cwd := newTestRouter(t)
	require.NoError(t, os.Mkdir(filepath.Join(cwd, "sub"), 0755))
	writeFile(t, filepath.Join(cwd, "f.txt"), "")

	res := dispatch(r, "cd sub", cwd)
	assert.Equal(t, filepath.Join(cwd, "sub"), res.NewDir)
	assert.Equal(t, "Changed directory to "+filepath.Join(cwd, "sub"), res.Output)

	res = dispatch(r, "cd ..", filepath.Join(cwd, "sub"))
	assert.Equal(t, cwd, res.NewDir)

	res = dispatch(r, "cd", cwd)
	assert.Equal(t, os.Getenv("HOME"), res.NewDir)

	res = dispatch(r, "cd nope", cwd)
	assert.Empty(t, res.NewDir)
	assert.Equal(t, "Error: Directory 'nope' not found", res.Output)

	res = dispatch(r, "cd f.txt", cwd)
	assert.Empty(t, res.NewDir)
	assert.Equal(t, "Error: 'f.txt' is not a directory", res.Output)
}

func TestRouter_RootIsReadableNotWritable(t *testing.T) {
	skipUnlessUnix(t)
	r, cwd := newTestRouter(t)

	res := dispatch(r, "cd /", cwd)
	assert.Equal(t, "/", res.NewDir)

	res = dispatch(r, "root", cwd)
	assert.Equal(t, "/", res.NewDir)

	res = dispatch(r, "mkdir x", "/")
	assert.Contains(t, res.Output, "Access denied")
}

func TestRouter_Pwd(t *testing.T) {
	r, cwd := newTestRouter(t)
	assert.Equal(t, cwd, dispatch(r, "pwd", cwd).Output)
}

func TestRouter_MakeAndRemoveDir(t *testing.T) {
	r, cwd := newTestRouter(t)

	assert.Equal(t, "Created directory(ies): a, b", dispatch(r, "mkdir a b", cwd).Output)
	assert.DirExists(t, filepath.Join(cwd, "a"))
	assert.Equal(t, "Error: Directory 'a' already exists", dispatch(r, "mkdir a", cwd).Output)
	assert.Equal(t, "Error: Usage: mkdir <dir>...", dispatch(r, "mkdir", cwd).Output)

	writeFile(t, filepath.Join(cwd, "b", "keep.txt"), "")
	assert.Equal(t, "Error: Directory 'b' is not empty", dispatch(r, "rmdir b", cwd).Output)
	assert.Equal(t, "Removed directory(ies): a", dispatch(r, "rmdir a", cwd).Output)
	assert.NoDirExists(t, filepath.Join(cwd, "a"))
}

func TestRouter_Remove(t *testing.T) {
	r, cwd := newTestRouter(t)
	writeFile(t, filepath.Join(cwd, "notes.txt"), "x")
	writeFile(t, filepath.Join(cwd, "dir", "inner.txt"), "x")

	assert.Equal(t, "Removed: file 'notes.txt'", dispatch(r, "rm notes.txt", cwd).Output)
	assert.NoFileExists(t, filepath.Join(cwd, "notes.txt"))

	assert.Equal(t, "Error: 'dir' is a directory (use -r for recursive removal)", dispatch(r, "rm dir", cwd).Output)
	assert.Equal(t, "Removed: directory 'dir'", dispatch(r, "rm -r dir", cwd).Output)
	assert.NoDirExists(t, filepath.Join(cwd, "dir"))

	assert.Equal(t, "Error: 'missing.txt' not found", dispatch(r, "rm missing.txt", cwd).Output)
	assert.Empty(t, dispatch(r, "rm -f missing.txt", cwd).Output)
}

func TestRouter_RemoveProtected(t *testing.T) {
	skipUnlessUnix(t)
	r, cwd := newTestRouter(t)

	for _, line := range []string{"rm /etc/passwd", "del /etc/hosts", "rm -r /usr/bin", "rmdir /boot", "rm -r ~"} {
		t.Run(line, func(t *testing.T) {
			assert.Contains(t, dispatch(r, line, cwd).Output, "Error: Access denied - ")
		})
	}
	assert.DirExists(t, os.Getenv("HOME"))
}

func TestRouter_Delete(t *testing.T) {
	r, cwd := newTestRouter(t)
	writeFile(t, filepath.Join(cwd, "a.txt"), "")
	require.NoError(t, os.Mkdir(filepath.Join(cwd, "d"), 0755))

	assert.Equal(t, "Deleted: a.txt", dispatch(r, "del a.txt", cwd).Output)
	assert.Contains(t, dispatch(r, "del d", cwd).Output, "is a directory")
}

func TestRouter_Touch(t *testing.T) {
	r, cwd := newTestRouter(t)

	assert.Equal(t, "Created: file 'a.txt'", dispatch(r, "touch a.txt", cwd).Output)
	assert.Equal(t, "Updated: file 'a.txt'", dispatch(r, "touch a.txt", cwd).Output)
	assert.Equal(t, "Created: file 'my file.txt'", dispatch(r, `touch "my file.txt"`, cwd).Output)
	assert.FileExists(t, filepath.Join(cwd, "my file.txt"))
}

func TestRouter_TouchThroughDanglingLink(t *testing.T) {
	skipUnlessUnix(t)
	home := t.TempDir()
	t.Setenv("HOME", home)
	protected := t.TempDir()

	r := NewRouter(RouterOptions{
		Validator: security.NewValidator(&security.SecurityPolicy{RestrictedPaths: []string{protected}}),
		Logger:    zerolog.Nop(),
	})

	planted := filepath.Join(protected, "planted")
	if err := os.Symlink(planted, filepath.Join(home, "link")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	require.NoError(t, os.Symlink(filepath.Join(home, "nowhere.txt"), filepath.Join(home, "local")))
	require.NoError(t, os.Symlink(filepath.Join(home, "loop"), filepath.Join(home, "loop")))

	assert.Contains(t, dispatch(r, "touch link", home).Output, "Error: Access denied - ")
	assert.NoFileExists(t, planted)

	assert.Equal(t, "Error: 'local' is a symbolic link to a missing target", dispatch(r, "touch local", home).Output)
	assert.NoFileExists(t, filepath.Join(home, "nowhere.txt"))

	assert.Contains(t, dispatch(r, "touch loop", home).Output, "Error: Access denied - ")
	assert.Contains(t, dispatch(r, "rm loop", home).Output, "Error: Access denied - ")
}

func TestRouter_ApostropheInName(t *testing.T) {
	r, cwd := newTestRouter(t)
	writeFile(t, filepath.Join(cwd, "don't.txt"), "keep?")
	writeFile(t, filepath.Join(cwd, "dont.txt"), "keep")

	assert.Equal(t, "Removed: file 'don't.txt'", dispatch(r, "rm don't.txt", cwd).Output)
	assert.NoFileExists(t, filepath.Join(cwd, "don't.txt"))
	assert.FileExists(t, filepath.Join(cwd, "dont.txt"))

	res := dispatch(r, "rm 'dont.txt", cwd)
	assert.Contains(t, res.Output, "unterminated")
	assert.FileExists(t, filepath.Join(cwd, "dont.txt"))
}

func TestCopyFile_FailureLeavesNoDestination(t *testing.T) {
	skipUnlessUnix(t)
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	require.NoError(t, os.Mkdir(src, 0755))
	info, err := os.Stat(src)
	require.NoError(t, err)

	dst := filepath.Join(dir, "dst")
	assert.Error(t, copyFile(src, dst, info))
	assert.NoFileExists(t, dst)
	_, err = os.Lstat(dst)
	assert.True(t, os.IsNotExist(err))
}

func TestRouter_Copy(t *testing.T) {
	r, cwd := newTestRouter(t)
	writeFile(t, filepath.Join(cwd, "a.txt"), "data")
	require.NoError(t, os.Mkdir(filepath.Join(cwd, "archive"), 0755))

	res := dispatch(r, "copy a.txt b.txt", cwd)
	assert.True(t, strings.HasPrefix(res.Output, "Copied file"), res.Output)
	content, err := os.ReadFile(filepath.Join(cwd, "b.txt"))
	require.NoError(t, err)
	assert.Equal(t, "data", string(content))

	dispatch(r, "cp a.txt archive", cwd)
	assert.FileExists(t, filepath.Join(cwd, "archive", "a.txt"))
	assert.FileExists(t, filepath.Join(cwd, "a.txt"))

	assert.Contains(t, dispatch(r, "copy a.txt b.txt", cwd).Output, "already exists")
	assert.Equal(t, "Error: Usage: copy <source> <destination>", dispatch(r, "copy a.txt", cwd).Output)

	writeFile(t, filepath.Join(cwd, "tree", "x", "y.txt"), "y")
	res = dispatch(r, "copy tree tree2", cwd)
	assert.True(t, strings.HasPrefix(res.Output, "Copied directory"), res.Output)
	assert.FileExists(t, filepath.Join(cwd, "tree2", "x", "y.txt"))

	assert.Contains(t, dispatch(r, "copy tree tree/x", cwd).Output, "into itself")
}

func TestRouter_Move(t *testing.T) {
	r, cwd := newTestRouter(t)
	writeFile(t, filepath.Join(cwd, "draft.md"), "d")
	require.NoError(t, os.Mkdir(filepath.Join(cwd, "backup"), 0755))

	res := dispatch(r, "move draft.md final.md", cwd)
	assert.True(t, strings.HasPrefix(res.Output, "Moved"), res.Output)
	assert.FileExists(t, filepath.Join(cwd, "final.md"))

	dispatch(r, "mv final.md backup", cwd)
	assert.FileExists(t, filepath.Join(cwd, "backup", "final.md"))
	assert.NoFileExists(t, filepath.Join(cwd, "final.md"))

	assert.Equal(t, "Error: 'ghost.md' not found", dispatch(r, "move ghost.md x.md", cwd).Output)
}

func TestRouter_SystemReports(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	rep := &fakeReporter{}
	r := NewRouter(RouterOptions{System: rep, Logger: zerolog.Nop()})
	cwd := t.TempDir()

	assert.Equal(t, "=== CPU Information ===", dispatch(r, "cpu", cwd).Output)
	assert.Equal(t, "=== Memory Information ===", dispatch(r, "mem", cwd).Output)
	assert.Equal(t, "=== Disk Information ===", dispatch(r, "disk", cwd).Output)

	dispatch(r, "ps", cwd)
	assert.Equal(t, DefaultProcessLimit, rep.limit)
	dispatch(r, "ps 5", cwd)
	assert.Equal(t, 5, rep.limit)
	dispatch(r, "ps -a", cwd)
	assert.Equal(t, 0, rep.limit)

	assert.Equal(t, "Error: Usage: ps [-a] [N]", dispatch(r, "ps lots", cwd).Output)

	rep.err = errors.New("sensor offline")
	assert.Equal(t, "Error: could not read cpu information: sensor offline", dispatch(r, "cpu", cwd).Output)
}

func TestRouter_SystemUnavailable(t *testing.T) {
	r, cwd := newTestRouter(t)
	assert.Equal(t, "Error: system information is unavailable on this host", dispatch(r, "cpu", cwd).Output)
	assert.Equal(t, "Error: package management is not configured", dispatch(r, "pip list", cwd).Output)
}

func TestRouter_SessionVerbs(t *testing.T) {
	r, cwd := newTestRouter(t)

	assert.Equal(t, "hello world", dispatch(r, `echo "hello world"`, cwd).Output)
	assert.Equal(t, "", dispatch(r, "echo", cwd).Output)

	help := dispatch(r, "help", cwd).Output
	assert.Contains(t, help, "Available commands:")
	assert.Contains(t, help, "mkdir <dir>...")
	assert.Contains(t, help, "create a folder called backup")

	assert.Equal(t, Result{Clear: true}, dispatch(r, "clear", cwd))

	for _, v := range []string{"exit", "quit", "EXIT"} {
		res := dispatch(r, v, cwd)
		assert.True(t, res.Exit, v)
		assert.Equal(t, "Goodbye!", res.Output)
	}
}
