package security

import (
	"os"
	"path/filepath"
	"runtime"
)

var unixSystemDirs = []string{
	"/boot",
	"/etc",
	"/bin",
	"/sbin",
	"/usr/bin",
	"/usr/sbin",
	"/usr/lib",
	"/usr/lib32",
	"/usr/lib64",
	"/usr/libexec",
	"/usr/local/bin",
	"/usr/local/sbin",
	"/usr/local/lib",
	"/lib",
	"/lib32",
	"/lib64",
	"/var/log",
	"/var/lib",
	"/var/cache/apt",
	"/lib/systemd",
	"/usr/lib/systemd",
	"/proc",
	"/sys",
	"/dev",
	"/System",
	"/Library",
	"/private/etc",
	"/private/var/db",
}

var windowsSystemDirs = []string{
	`C:\Windows`,
	`C:\Program Files`,
	`C:\Program Files (x86)`,
	`C:\ProgramData`,
	`C:\Boot`,
	`C:\Recovery`,
}

var unixAllowRoots = []string{"/Users", "/home", "/tmp", "/temp"}

var windowsAllowRoots = []string{`C:\Users`, `C:\tmp`, `C:\temp`}

// criticalFiles can never be deleted, whatever directory they live in.
var criticalFiles = []string{
	"/bin/sh",
	"/bin/bash",
	"/bin/zsh",
	"/usr/bin/bash",
	"/usr/bin/sh",
	"/usr/bin/zsh",
	"/usr/bin/sudo",
	"/usr/bin/apt",
	"/usr/bin/apt-get",
	"/usr/bin/dpkg",
	"/usr/bin/yum",
	"/usr/bin/dnf",
	"/usr/bin/rpm",
	"/usr/bin/ssh",
	"/usr/sbin/sshd",
	"/etc/passwd",
	"/etc/shadow",
	"/etc/group",
	"/etc/gshadow",
	"/etc/sudoers",
	"/etc/fstab",
	"/etc/hosts",
	"/etc/ssh/sshd_config",
	`C:\Windows\System32\cmd.exe`,
	`C:\Windows\explorer.exe`,
}

// criticalFilePrefixes match versioned files such as kernel images.
var criticalFilePrefixes = []string{
	"/boot/vmlinuz",
	"/boot/initrd",
	"/boot/initramfs",
	"/etc/sudoers.d",
}

// criticalDirs hold binaries and libraries; nothing below them may be deleted.
var criticalDirs = []string{
	"/bin",
	"/sbin",
	"/usr/bin",
	"/usr/sbin",
	"/usr/lib",
	"/usr/lib64",
	"/usr/libexec",
	"/usr/local/lib",
	"/lib",
	"/lib64",
	"/boot",
	"/var/lib/dpkg",
	"/var/lib/apt",
	"/var/lib/rpm",
	`C:\Windows\System32`,
	`C:\Windows\SysWOW64`,
}

// userRoots are the parents of every home directory.
var userRoots = []string{"/home", "/Users", "/root", `C:\Users`}

func systemDirs() []string {
	if runtime.GOOS == "windows" {
		return windowsSystemDirs
	}
	return unixSystemDirs
}

func allowRoots() []string {
	roots := unixAllowRoots
	if runtime.GOOS == "windows" {
		roots = windowsAllowRoots
	}
	return append(append([]string(nil), roots...), filepath.Clean(os.TempDir()))
}
