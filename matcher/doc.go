// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package matcher draws secret Santa assignments.

# Drawing

GenerateAssignment maps every participant to another participant so that
nobody gives to themselves and no giver lands on a receiver they excluded:

	m := matcher.New(nil)
	res, err := m.GenerateAssignment(
		[]string{"Alice", "Bob", "Carl"},
		matcher.Exclusions{"Alice": {"Bob"}},
		matcher.DefaultMaxAttempts,
	)

The search is a randomized greedy pass with restarts. It is bounded by the
attempt budget and can fail even when a valid assignment exists, so the same
input may succeed on one call and return ErrExhaustedRetries on the next.

# Errors

  - ErrValidation: fewer than 2 names, duplicates, blank names, a roster
    that does not fit the code space, or a non-positive budget
  - ErrExhaustedRetries: every attempt dead-ended

Both are wrapped with detail; test with errors.Is.

# Secret Codes

Every pair gets a distinct two-digit code ("00" to "99"):

	pair, ok := matcher.Lookup(res.Codes, "07")

Lookup accepts "7" for "07". Codes are not secrets in any cryptographic
sense; they only keep the full mapping away from casual eyes.

# Randomness

New(nil) seeds itself. NewSeeded makes a draw reproducible, which the tests
rely on.
*/
package matcher
