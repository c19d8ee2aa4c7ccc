// Package app wires the pieces together: logger, runtime settings, the
// capability registry with its compiled-in module table, the grid loader,
// and the robots built from the loaded model. The cli command is a thin
// shell around this package.
package app
