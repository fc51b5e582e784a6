package rule

import (
	"strconv"
	"strings"
)

// Parse builds a Table from a rule string in one of the forms described by
// spec §6: life-like B/S ("B3/S23"), bare digit form ("3/23"), Hensel
// non-totalistic ("B2-a3/S12-a3"), MAP ("MAP" + base64 512-bit truth
// table), each optionally followed by "/C<k>" (Generations, k states). The
// B/S, bare digit and Hensel forms may also end in an "H" or "V" suffix
// selecting the hexagonal or von Neumann neighbourhood emulation in place of
// the default Moore neighbourhood; MAP rules always use the Moore
// neighbourhood.
func Parse(s string) (Table, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return nil, &ParseError{Rule: s, Reason: "empty rule string"}
	}

	nb := Moore
	body := raw
	if strings.HasPrefix(body, "MAP") {
		return parseMAP(raw, body)
	}

	switch body[len(body)-1] {
	case 'H':
		nb = Hex
		body = body[:len(body)-1]
	case 'V':
		nb = VonNeumann
		body = body[:len(body)-1]
	}

	parts := strings.Split(body, "/")
	var bornStr, survStr, statesStr string
	switch {
	case len(parts) >= 2 && hasPrefixFold(parts[0], "B") && hasPrefixFold(parts[1], "S"):
		bornStr = parts[0][1:]
		survStr = parts[1][1:]
		if len(parts) == 3 {
			statesStr = strings.TrimPrefix(strings.TrimPrefix(parts[2], "C"), "c")
		}
	case len(parts) >= 2:
		bornStr = parts[0]
		survStr = parts[1]
		if len(parts) == 3 {
			statesStr = strings.TrimPrefix(strings.TrimPrefix(parts[2], "C"), "c")
		}
	default:
		return nil, &ParseError{Rule: raw, Reason: "expected <born>/<survive>[/<states>]"}
	}

	states := 2
	if statesStr != "" {
		n, err := strconv.Atoi(statesStr)
		if err != nil || n < 2 || n > MaxStates {
			return nil, &ParseError{Rule: raw, Reason: "invalid Generations state count"}
		}
		states = n
	}

	bornClauses, bornLetters, err := parseClauses(bornStr)
	if err != nil {
		return nil, &ParseError{Rule: raw, Reason: err.Error()}
	}
	survClauses, survLetters, err := parseClauses(survStr)
	if err != nil {
		return nil, &ParseError{Rule: raw, Reason: err.Error()}
	}

	for _, c := range bornClauses {
		if c.N == 0 {
			return nil, &ErrB0{Rule: raw}
		}
	}

	if bornLetters || survLetters {
		return NewIsotropic(bornClauses, survClauses, states, nb), nil
	}

	var born, survive [9]bool
	for _, c := range bornClauses {
		born[c.N] = true
	}
	for _, c := range survClauses {
		survive[c.N] = true
	}
	return NewOuterTotalistic(born, survive, states, nb), nil
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

// parseClauses parses a digit/letter clause sequence like "23-a4i" into
// HenselCount values, reporting whether any clause carried letters (which
// makes the overall rule isotropic non-totalistic rather than totalistic).
func parseClauses(s string) ([]HenselCount, bool, error) {
	var out []HenselCount
	hasLetters := false

	i := 0
	for i < len(s) {
		ch := s[i]
		if ch < '0' || ch > '8' {
			return nil, false, &ParseError{Rule: s, Reason: "expected a neighbour count digit 0-8"}
		}
		n := int(ch - '0')
		i++

		exclude := false
		if i < len(s) && s[i] == '-' {
			exclude = true
			i++
		}

		letters := map[int]bool{}
		for i < len(s) && s[i] >= 'a' && s[i] <= 'z' {
			idx := int(s[i] - 'a')
			if idx >= LetterCount(n) {
				return nil, false, &ParseError{Rule: s, Reason: "letter out of range for neighbour count " + strconv.Itoa(n)}
			}
			letters[idx] = true
			i++
		}

		if exclude && len(letters) == 0 {
			return nil, false, &ParseError{Rule: s, Reason: "'-' must be followed by at least one letter"}
		}

		clause := HenselCount{N: n}
		if len(letters) == 0 {
			clause.All = true
		} else {
			hasLetters = true
			clause.Exclude = exclude
			clause.Letters = letters
		}
		out = append(out, clause)
	}

	return out, hasLetters, nil
}

func parseMAP(raw, body string) (Table, error) {
	nb := Moore
	payload := strings.TrimPrefix(body, "MAP")
	states := 2

	// A 512-bit table is 86 base64 characters, which may themselves include
	// '/', so the Generations suffix is only looked for after them.
	const mapPayloadLen = 86
	if len(payload) > mapPayloadLen && payload[mapPayloadLen] == '/' {
		statesStr := strings.TrimPrefix(strings.TrimPrefix(payload[mapPayloadLen+1:], "C"), "c")
		payload = payload[:mapPayloadLen]
		n, err := strconv.Atoi(statesStr)
		if err != nil || n < 2 || n > MaxStates {
			return nil, &ParseError{Rule: raw, Reason: "invalid Generations state count"}
		}
		states = n
	}

	bits, err := DecodeMAPBits(payload)
	if err != nil {
		return nil, err
	}
	// Truth-table index 0 is current=dead with all 8 neighbours dead: a
	// true bit there is a B0 rule, rejected per spec §4.1.
	if bits[0] {
		return nil, &ErrB0{Rule: raw}
	}

	return NewMAP(bits, states, nb), nil
}
