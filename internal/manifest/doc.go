// Package manifest reads package.json. Only name, version and scripts are
// decoded; scripts keep the order in which they appear in the file.
package manifest
