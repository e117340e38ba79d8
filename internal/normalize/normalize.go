// Package normalize maps raw provider name, team, and position strings to
// canonical tokens. All functions are pure, stateless, and idempotent.
package normalize

import (
	"regexp"
	"strings"
)

var (
	suffixRe       = regexp.MustCompile(`\s+(jr|sr|iii|ii|iv|v)$`)
	nonAlnumRe     = regexp.MustCompile(`[^a-z0-9 ]`)
	whitespaceRe   = regexp.MustCompile(`\s+`)
	dstSuffixRe    = regexp.MustCompile(`(?i)\s+(dst|defense|def)$`)
	positionsByRaw = map[string]string{
		"QB": "QB", "RB": "RB", "WR": "WR", "TE": "TE",
		"DST": "DST", "D/ST": "DST", "DEF": "DST", "D": "DST",
		"K": "K", "PK": "K",
	}
)

// Name lowercases, strips punctuation, collapses whitespace, and removes
// trailing generational suffixes (jr, sr, ii, iii, iv, v). Punctuation goes
// before the suffix strip so "II." and "II" reduce to the same name.
func Name(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}
	s = nonAlnumRe.ReplaceAllString(s, "")
	s = whitespaceRe.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	s = suffixRe.ReplaceAllString(s, "")
	return s
}

// Team maps a team name, alias, or nonstandard code to one of the 32
// standard codes. Unrecognized input returns ("", false) — never a guess.
func Team(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}

	upper := strings.ToUpper(s)
	if alias, ok := codeAliases[upper]; ok {
		return alias, true
	}
	if standardCodes[upper] {
		return upper, true
	}

	lower := strings.ToLower(s)
	lower = whitespaceRe.ReplaceAllString(lower, " ")
	if code, ok := fullNameToCode[lower]; ok {
		return code, true
	}

	return "", false
}

// DSTName canonicalizes a defense/special-teams name to "<CODE> DST".
// Unrecognized teams fall back to the trimmed input so the record is not lost.
func DSTName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	cleaned := dstSuffixRe.ReplaceAllString(s, "")
	if code, ok := Team(cleaned); ok {
		return code + " DST"
	}
	if strings.HasSuffix(strings.ToUpper(s), "DST") {
		return s
	}
	return s + " DST"
}

// Position canonicalizes a raw position label to the QB/RB/WR/TE/DST/K enum
// spelling. Unknown labels return ("", false).
func Position(s string) (string, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	pos, ok := positionsByRaw[s]
	return pos, ok
}

// PlayerKey builds the canonical identity key "name|team|position".
// Team may be empty, producing the relaxed "name||position" form used by
// the resolver's fallback index.
func PlayerKey(name, team, position string) string {
	pos, _ := Position(position)
	n := Name(name)
	if pos == "DST" {
		n = Name(DSTName(name))
	}
	code := ""
	if team != "" {
		if c, ok := Team(team); ok {
			code = c
		}
	}
	return n + "|" + code + "|" + pos
}

// NameKey builds the relaxed "name||position" key with the team omitted.
func NameKey(name, position string) string {
	return PlayerKey(name, "", position)
}
