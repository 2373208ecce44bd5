// Package recovery decides how to repair a user-supplied phrase and drives
// the search or correction pass.
//
// Input containing placeholder tokens ("____", "?") is searched: every
// checksum-valid completion of the missing slots is returned. Input without
// placeholders is corrected: out-of-vocabulary tokens are mapped to their
// closest word and the result is validated once.
//
// A Recoverer holds no per-call state. Reporting is done through the
// callbacks on Options, never through package-level settings.
package recovery
