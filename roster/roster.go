// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package roster parses the plain-text participant and exclusion lists that
// admins paste into the draw form.
//
//	Alice, Bob, Carl, David, Eva
//
//	Alice: [Bob], Bob: [Alice]
//	Carl: [David]
//
// Names in an exclusion entry may not contain ':'. A second colon in an
// entry is read as a missing "]," separator and rejected.
package roster

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/danielhkuo/quickly-gift/matcher"
)

var ErrMalformedExclusion = errors.New("malformed exclusion")

// ParseParticipants splits on commas and newlines, trimming and dropping blanks.
func ParseParticipants(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r'
	})

	names := make([]string, 0, len(fields))
	for _, f := range fields {
		if name := strings.TrimSpace(f); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// ParseExclusions reads "Giver: [A, B]" entries. Entries are separated by
// newlines or by "]," on the same line; brackets are optional. Repeated
// givers accumulate.
func ParseExclusions(text string) (matcher.Exclusions, error) {
	exclusions := matcher.Exclusions{}

	for _, line := range strings.Split(text, "\n") {
		for _, entry := range splitEntries(line) {
			giver, receivers, err := parseEntry(entry)
			if err != nil {
				return nil, err
			}
			exclusions[giver] = append(exclusions[giver], receivers...)
		}
	}
	return exclusions, nil
}

func splitEntries(line string) []string {
	var entries []string
	for _, part := range strings.Split(line, "],") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if strings.Contains(part, "[") && !strings.HasSuffix(part, "]") {
			part += "]"
		}
		entries = append(entries, part)
	}
	return entries
}

func parseEntry(entry string) (string, []string, error) {
	giver, rest, ok := strings.Cut(entry, ":")
	giver = strings.TrimSpace(giver)
	if !ok || giver == "" {
		return "", nil, fmt.Errorf("%w: %q, expected \"name: [name1, name2]\"", ErrMalformedExclusion, entry)
	}
	if strings.Contains(rest, ":") {
		return "", nil, fmt.Errorf("%w: %q, names cannot contain ':' and entries on one line need brackets",
			ErrMalformedExclusion, entry)
	}

	rest = strings.TrimSpace(rest)
	opened, closed := strings.HasPrefix(rest, "["), strings.HasSuffix(rest, "]")
	if opened != closed {
		return "", nil, fmt.Errorf("%w: %q has unbalanced brackets", ErrMalformedExclusion, entry)
	}
	rest = strings.TrimSuffix(strings.TrimPrefix(rest, "["), "]")

	var receivers []string
	for _, name := range strings.Split(rest, ",") {
		if name = strings.TrimSpace(name); name != "" {
			receivers = append(receivers, name)
		}
	}
	return giver, receivers, nil
}

// FormatExclusions renders exclusions one giver per line, sorted by giver.
func FormatExclusions(exclusions matcher.Exclusions) string {
	givers := make([]string, 0, len(exclusions))
	for giver, receivers := range exclusions {
		if len(receivers) > 0 {
			givers = append(givers, giver)
		}
	}
	sort.Strings(givers)

	var b strings.Builder
	for i, giver := range givers {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s: [%s]", giver, strings.Join(exclusions[giver], ", "))
	}
	return b.String()
}
