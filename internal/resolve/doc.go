// Package resolve turns configured source and target arguments into concrete
// file lists.
//
// A single uniform resolver handles literal files, recursive directory scans,
// and `**` glob patterns, so the fingerprinting core never sees anything but
// flat, deduplicated paths.
package resolve
