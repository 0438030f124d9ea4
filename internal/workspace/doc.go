// Package workspace resolves the directory pn works in. It finds the
// workspace root by searching upward for pnpm-workspace.yaml, and provides
// the Context type holding the effective directory and its loaded manifest.
package workspace
