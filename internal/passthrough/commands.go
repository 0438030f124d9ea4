// Package passthrough lists the package manager commands pn forwards
// verbatim instead of treating them as scripts or shell commands.
package passthrough

// commands holds pnpm's own commands and those it hands to npm.
var commands = toSet([]string{
	// commands that pnpm passes to npm
	"access",
	"adduser",
	"bugs",
	"deprecate",
	"dist-tag",
	"docs",
	"edit",
	"info",
	"login",
	"logout",
	"owner",
	"ping",
	"prefix",
	"profile",
	"pkg",
	"repo",
	"s",
	"se",
	"search",
	"set-script",
	"show",
	"star",
	"stars",
	"team",
	"token",
	"unpublish",
	"unstar",
	"v",
	"version",
	"view",
	"whoami",
	"xmas",

	// completion
	"install-completion",
	"uninstall-completion",

	// manage deps
	"add",
	"i",
	"install",
	"up",
	"update",
	"remove",
	"link",
	"unlink",
	"import",
	"rebuild",
	"prune",
	"fetch",
	"install-test",
	"dedupe",

	// patch deps
	"patch",
	"patch-commit",
	"patch-remove",

	// review deps
	"audit",
	"list",
	"outdated",
	"why",
	"licenses",

	// run scripts
	"dlx",
	"create",

	// manage environments
	"env",

	// misc
	"publish",
	"pack",
	"server",
	"store",
	"root",
	"bin",
	"setup",
	"init",
	"deploy",
	"doctor",
	"config",
})

// Set is the static command list extended with extra names.
type Set struct {
	extra map[string]bool
}

// New returns the static set plus extra.
func New(extra ...string) Set {
	return Set{extra: toSet(extra)}
}

// Contains reports whether name is forwarded to the package manager.
func (s Set) Contains(name string) bool {
	return commands[name] || s.extra[name]
}

// Contains reports whether name is in the static set.
func Contains(name string) bool {
	return commands[name]
}

func toSet(ss []string) map[string]bool {
	m := make(map[string]bool, len(ss))
	for _, s := range ss {
		m[s] = true
	}
	return m
}
