// Package file provides filesystem adapters: a YAML world loader and a JSON
// layout cache that writes atomically.
package file
