// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package matcher

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
)

// DefaultMaxAttempts is the retry budget used when the caller has no opinion.
const DefaultMaxAttempts = 10

var (
	ErrValidation       = errors.New("invalid participants")
	ErrExhaustedRetries = errors.New("no valid assignment found")
)

// Exclusions maps a giver to the receivers they must not be assigned.
// Self-exclusion is implicit. Names that are not participants are ignored.
type Exclusions map[string][]string

// Pair is one giver -> receiver assignment.
type Pair struct {
	Giver    string `json:"giver"`
	Receiver string `json:"receiver"`
}

// CodeTable maps a two-digit secret code to the pair it reveals.
type CodeTable map[string]Pair

// Result is a successful draw.
type Result struct {
	Assignment map[string]string
	Codes      CodeTable
	Attempts   int
}

// Matcher draws assignments. It is not safe for concurrent use because the
// underlying generator is not; create one per draw.
type Matcher struct {
	rng *rand.Rand
}

// New returns a Matcher reading from src. A nil src gets a randomly seeded PCG.
func New(src rand.Source) *Matcher {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &Matcher{rng: rand.New(src)}
}

// NewSeeded returns a Matcher whose output is fully determined by seed.
func NewSeeded(seed uint64) *Matcher {
	return New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// ValidateParticipants checks the roster without drawing anything.
func ValidateParticipants(participants []string) error {
	if len(participants) < 2 {
		return fmt.Errorf("%w: need at least 2 participants, got %d", ErrValidation, len(participants))
	}
	if len(participants) >= CodeSpace {
		return fmt.Errorf("%w: at most %d participants fit the code space, got %d",
			ErrValidation, CodeSpace-1, len(participants))
	}

	seen := make(map[string]struct{}, len(participants))
	for _, name := range participants {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w: empty participant name", ErrValidation)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("%w: duplicate participant %q", ErrValidation, name)
		}
		seen[name] = struct{}{}
	}
	return nil
}

// GenerateAssignment draws a random assignment with no self-gifts and no
// excluded pairs, then hands every pair a distinct secret code.
//
// Each attempt shuffles the givers and lets them pick greedily from the
// receivers still available. A giver left without candidates abandons the
// attempt. After maxAttempts failures ErrExhaustedRetries is returned, which
// can happen even when a valid assignment exists.
func (m *Matcher) GenerateAssignment(participants []string, exclusions Exclusions, maxAttempts int) (Result, error) {
	if err := ValidateParticipants(participants); err != nil {
		return Result{}, err
	}
	if maxAttempts < 1 {
		return Result{}, fmt.Errorf("%w: max attempts must be positive, got %d", ErrValidation, maxAttempts)
	}

	excluded := exclusionSet(exclusions)

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		assignment, ok := m.attempt(participants, excluded)
		if !ok {
			continue
		}

		result := Result{
			Assignment: assignment,
			Codes:      m.assignCodes(participants, assignment),
			Attempts:   attempt,
		}
		if err := Verify(participants, exclusions, result); err != nil {
			return Result{}, fmt.Errorf("draw produced an invalid result: %w", err)
		}
		return result, nil
	}

	return Result{}, fmt.Errorf("%w after %d attempts for %d participants",
		ErrExhaustedRetries, maxAttempts, len(participants))
}

// attempt runs one greedy pass. Candidates are scanned in roster order so a
// seeded generator reproduces the same draw.
func (m *Matcher) attempt(participants []string, excluded map[string]map[string]bool) (map[string]string, bool) {
	givers := slices.Clone(participants)
	m.rng.Shuffle(len(givers), func(i, j int) {
		givers[i], givers[j] = givers[j], givers[i]
	})

	available := slices.Clone(participants)
	assignment := make(map[string]string, len(participants))
	candidates := make([]int, 0, len(participants))

	for _, giver := range givers {
		candidates = candidates[:0]
		for i, receiver := range available {
			if receiver == giver || excluded[giver][receiver] {
				continue
			}
			candidates = append(candidates, i)
		}
		if len(candidates) == 0 {
			return nil, false
		}

		pick := candidates[m.rng.IntN(len(candidates))]
		assignment[giver] = available[pick]
		available = slices.Delete(available, pick, pick+1)
	}

	return assignment, len(available) == 0
}

func exclusionSet(exclusions Exclusions) map[string]map[string]bool {
	set := make(map[string]map[string]bool, len(exclusions))
	for giver, receivers := range exclusions {
		if len(receivers) == 0 {
			continue
		}
		forbidden := make(map[string]bool, len(receivers))
		for _, receiver := range receivers {
			forbidden[receiver] = true
		}
		set[giver] = forbidden
	}
	return set
}

// Verify reports the first invariant a result breaks, or nil.
func Verify(participants []string, exclusions Exclusions, result Result) error {
	if len(result.Assignment) != len(participants) {
		return fmt.Errorf("assignment covers %d givers, want %d", len(result.Assignment), len(participants))
	}

	excluded := exclusionSet(exclusions)
	received := make(map[string]bool, len(participants))
	for _, giver := range participants {
		receiver, ok := result.Assignment[giver]
		if !ok {
			return fmt.Errorf("giver %q has no receiver", giver)
		}
		if receiver == giver {
			return fmt.Errorf("giver %q is assigned to themselves", giver)
		}
		if excluded[giver][receiver] {
			return fmt.Errorf("giver %q is assigned excluded receiver %q", giver, receiver)
		}
		if !slices.Contains(participants, receiver) {
			return fmt.Errorf("receiver %q is not a participant", receiver)
		}
		if received[receiver] {
			return fmt.Errorf("receiver %q is assigned twice", receiver)
		}
		received[receiver] = true
	}

	if len(result.Codes) != len(participants) {
		return fmt.Errorf("code table has %d entries, want %d", len(result.Codes), len(participants))
	}
	coded := make(map[string]bool, len(result.Codes))
	for code, pair := range result.Codes {
		if !isCode(code) {
			return fmt.Errorf("code %q is not two digits", code)
		}
		if result.Assignment[pair.Giver] != pair.Receiver {
			return fmt.Errorf("code %s maps %s -> %s, not in assignment", code, pair.Giver, pair.Receiver)
		}
		if coded[pair.Giver] {
			return fmt.Errorf("giver %q has more than one code", pair.Giver)
		}
		coded[pair.Giver] = true
	}

	return nil
}
