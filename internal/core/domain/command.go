package domain

import (
	"io"
	"strconv"
)

// Command is a single external process invocation.
type Command struct {
	// Name is the executable, resolved against PATH when not absolute.
	Name string
	// Args are the arguments after Name.
	Args []string
	// Dir is the working directory; empty means the current one.
	Dir string
	// Env holds "KEY=VALUE" overrides applied on top of the inherited environment.
	Env []string
	// Stdout, when set, receives the process output live in addition to the captured copy.
	Stdout io.Writer
}

// CommandResult is the outcome of a command that ran to completion.
type CommandResult struct {
	// CommandLine is the shell-quoted rendering of the invocation.
	CommandLine string
	// ExitCode is the process exit status.
	ExitCode int
	// Output is the combined stdout and stderr text.
	Output string
	// Stdout is the standard output text alone.
	Stdout string
}

// Failed reports whether the command exited non-zero.
func (r CommandResult) Failed() bool {
	return r.ExitCode != 0
}

// ToolEnv parameterizes package-manager invocations that must not share the
// caller's home directory. It is applied to the child process only.
type ToolEnv struct {
	Home            string
	CacheDir        string
	HtaccessProtect bool
}

// Environ renders the overrides as "KEY=VALUE" entries.
// A zero ToolEnv renders nothing; otherwise empty directories are skipped
// and the htaccess flag is always set explicitly.
func (e ToolEnv) Environ() []string {
	if e == (ToolEnv{}) {
		return nil
	}
	var env []string
	if e.Home != "" {
		env = append(env, "COMPOSER_HOME="+e.Home)
	}
	if e.CacheDir != "" {
		env = append(env, "COMPOSER_CACHE_DIR="+e.CacheDir)
	}
	return append(env, "COMPOSER_HTACCESS_PROTECT="+strconv.Itoa(boolToInt(e.HtaccessProtect)))
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// LockOptions configures a resolve-and-lock run that does not install anything.
type LockOptions struct {
	Packages            []string
	DryRun              bool
	NoDev               bool
	WithDependencies    bool
	WithAllDependencies bool
	IgnorePlatformReqs  bool
	PreferStable        bool
	PreferLowest        bool
	Env                 ToolEnv
}
