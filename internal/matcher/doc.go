// Package matcher scores fingerprint overlap between the source and target
// corpora and selects the best source per target.
//
// Scoring is a full cross product with Jaccard similarity. Corpora are
// expected to be small (tens to low hundreds of files), so no indexing or
// pruning is attempted; the quadratic scan is an accepted scaling limit.
package matcher
