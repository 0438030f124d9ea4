// Package dispatch decides what a pn invocation runs.
//
// `pn run <script>` runs a package.json script. Any other command is checked
// in order against the passthrough set (forwarded to the package manager),
// the manifest's scripts, and finally run as a raw shell command. Scripts and
// shell commands run in the effective directory: the workspace root under
// --workspace-root, the current directory otherwise.
package dispatch
