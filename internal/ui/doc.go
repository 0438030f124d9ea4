// Package ui renders pn's own terminal output: the colored error line and
// the script listing.
package ui
