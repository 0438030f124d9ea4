package shell

import "strings"

// doubleUnsafe lists the characters that keep their special meaning inside
// double quotes.
const doubleUnsafe = "\"`$\\"

// Quoted is a command line that is safe to hand to `sh -c`.
// The leading command is kept verbatim; arguments are quoted as they are pushed.
type Quoted struct {
	s string
}

// FromCommand starts a command line from a raw command. The command is not
// quoted, so it may contain pipes, redirections and other shell syntax.
func FromCommand(command string) Quoted {
	return Quoted{s: command}
}

// FromCommandAndArgs builds a command line from a raw command followed by
// quoted args.
func FromCommandAndArgs(command string, args []string) Quoted {
	q := FromCommand(command)
	for _, arg := range args {
		q.PushArg(arg)
	}
	return q
}

// FromArgs builds a command line made only of quoted args.
func FromArgs(args []string) Quoted {
	return FromCommandAndArgs("", args)
}

// PushArg appends arg as a single quoted word, separated by one space.
func (q *Quoted) PushArg(arg string) {
	if q.s != "" {
		q.s += " "
	}
	q.s += Quote(arg)
}

// String returns the command line.
func (q Quoted) String() string {
	return q.s
}

// Quote returns s quoted for a POSIX shell. Unix rules apply on every
// platform since commands always run through `sh -c`.
//
// Strings without a single quote are wrapped in single quotes. Strings with a
// single quote but nothing special to double quotes are wrapped in double
// quotes. Anything else is split on single quotes, each chunk single-quoted
// and joined by \'.
func Quote(s string) string {
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	if !strings.ContainsAny(s, doubleUnsafe) {
		return `"` + s + `"`
	}
	var b strings.Builder
	for i, chunk := range strings.Split(s, "'") {
		if i > 0 {
			b.WriteString(`\'`)
		}
		if chunk != "" {
			b.WriteString("'" + chunk + "'")
		}
	}
	return b.String()
}
