// Package corpus builds and holds the per-pool fingerprint stores.
//
// A corpus maps each input file to its sentence fingerprint set. Two corpora
// exist per run, one for the unlabeled source pool and one for the labeled
// target pool; both are built fully before matching begins and are read-only
// afterwards.
package corpus
