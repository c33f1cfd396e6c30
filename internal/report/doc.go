// Package report emits match decisions and performs the resulting file
// copies.
//
// The CSV form is the stable machine-readable output; the table form exists
// for interactive terminals. Copying is separated into a Mover so dry runs
// and report-only invocations share the same code path.
package report
