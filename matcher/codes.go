// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package matcher

import (
	"fmt"
	"strings"
)

// CodeSpace is the number of distinct secret codes ("00" through "99").
const CodeSpace = 100

// assignCodes gives every pair a distinct code by rejection sampling.
// ValidateParticipants keeps the roster below CodeSpace, so a free code
// always exists.
func (m *Matcher) assignCodes(participants []string, assignment map[string]string) CodeTable {
	codes := make(CodeTable, len(participants))
	for _, giver := range participants {
		for {
			code := fmt.Sprintf("%02d", m.rng.IntN(CodeSpace))
			if _, taken := codes[code]; taken {
				continue
			}
			codes[code] = Pair{Giver: giver, Receiver: assignment[giver]}
			break
		}
	}
	return codes
}

// NormalizeCode trims input and pads a single digit to two ("7" -> "07").
// Anything else is returned trimmed but otherwise untouched.
func NormalizeCode(code string) string {
	code = strings.TrimSpace(code)
	if len(code) == 1 && code[0] >= '0' && code[0] <= '9' {
		return "0" + code
	}
	return code
}

// Lookup returns the pair behind code. A miss is a normal outcome, not an error.
func Lookup(codes CodeTable, code string) (Pair, bool) {
	pair, ok := codes[NormalizeCode(code)]
	return pair, ok
}

func isCode(code string) bool {
	return len(code) == 2 &&
		code[0] >= '0' && code[0] <= '9' &&
		code[1] >= '0' && code[1] <= '9'
}
