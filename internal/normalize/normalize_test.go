package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNameStripsSuffixesAndPunctuation(t *testing.T) {
	assert.Equal(t, "patrick mahomes", Name("Patrick Mahomes II"))
	assert.Equal(t, "odell beckham", Name("Odell Beckham Jr."))
	assert.Equal(t, "dj moore", Name("D.J. Moore"))
	assert.Equal(t, "amonra st brown", Name("Amon-Ra St. Brown"))
	assert.Equal(t, "ken griffey", Name("Ken Griffey Sr"))
	assert.Equal(t, "will fuller", Name("  Will   Fuller V "))
	// A trailing period after a roman numeral must not hide the suffix.
	assert.Equal(t, "gardner minshew", Name("Gardner Minshew II."))
	assert.Equal(t, "gardner minshew", Name("Gardner Minshew II"))
}

func TestNameIsIdempotent(t *testing.T) {
	inputs := []string{"Patrick Mahomes II", "Gardner Minshew II.", "D.J. Moore Jr.", "Amon-Ra St. Brown", "CHI DST"}
	for _, in := range inputs {
		once := Name(in)
		assert.Equal(t, once, Name(once), "Name should be idempotent for %q", in)
	}
}

func TestTeamCodesAndAliases(t *testing.T) {
	cases := map[string]string{
		"KC":                   "KC",
		"ARZ":                  "ARI",
		"BLT":                  "BAL",
		"JAC":                  "JAX",
		"SD":                   "LAC",
		"STL":                  "LAR",
		"WSH":                  "WAS",
		"Kansas City Chiefs":   "KC",
		"chiefs":               "KC",
		"oakland":              "LV",
		"los angeles":          "LAR",
		"new york":             "NYG",
		"San Francisco 49ers":  "SF",
		"washington":           "WAS",
	}
	for in, want := range cases {
		got, ok := Team(in)
		assert.True(t, ok, "Team(%q) should resolve", in)
		assert.Equal(t, want, got, "Team(%q)", in)
	}
}

func TestTeamNeverGuesses(t *testing.T) {
	for _, in := range []string{"", "XX", "gotham knights", "FA"} {
		_, ok := Team(in)
		assert.False(t, ok, "Team(%q) should not resolve", in)
	}
}

func TestPosition(t *testing.T) {
	for in, want := range map[string]string{
		"qb": "QB", "RB": "RB", "D/ST": "DST", "DEF": "DST", "D": "DST", "PK": "K",
	} {
		got, ok := Position(in)
		assert.True(t, ok)
		assert.Equal(t, want, got)
	}

	_, ok := Position("LB")
	assert.False(t, ok)
}

func TestDSTName(t *testing.T) {
	assert.Equal(t, "CHI DST", DSTName("Chicago Bears"))
	assert.Equal(t, "CHI DST", DSTName("Bears DST"))
	assert.Equal(t, "CHI DST", DSTName("CHI"))
	// Unrecognized teams keep the input rather than losing the record.
	assert.Equal(t, "Mystery DST", DSTName("Mystery"))
}

func TestPlayerKey(t *testing.T) {
	// Same player, different team spellings, same key.
	assert.Equal(t,
		PlayerKey("Patrick Mahomes II", "KC", "QB"),
		PlayerKey("Patrick Mahomes", "Kansas City Chiefs", "qb"))

	// DST identity keys off the canonical "<CODE> DST" name.
	assert.Equal(t,
		PlayerKey("Chicago Bears", "CHI", "DST"),
		PlayerKey("Bears DST", "Bears", "D/ST"))

	// Relaxed form drops the team segment.
	assert.Equal(t, "justin jefferson||WR", NameKey("Justin Jefferson", "WR"))
}
