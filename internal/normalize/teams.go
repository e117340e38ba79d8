package normalize

// fullNameToCode maps lower-cased team names, city names, and nicknames
// to the 32 standard codes.
var fullNameToCode = map[string]string{
	"arizona cardinals":    "ARI",
	"atlanta falcons":      "ATL",
	"baltimore ravens":     "BAL",
	"buffalo bills":        "BUF",
	"carolina panthers":    "CAR",
	"chicago bears":        "CHI",
	"cincinnati bengals":   "CIN",
	"cleveland browns":     "CLE",
	"dallas cowboys":       "DAL",
	"denver broncos":       "DEN",
	"detroit lions":        "DET",
	"green bay packers":    "GB",
	"houston texans":       "HOU",
	"indianapolis colts":   "IND",
	"jacksonville jaguars": "JAX",
	"kansas city chiefs":   "KC",
	"las vegas raiders":    "LV",
	"los angeles chargers": "LAC",
	"los angeles rams":     "LAR",
	"miami dolphins":       "MIA",
	"minnesota vikings":    "MIN",
	"new england patriots": "NE",
	"new orleans saints":   "NO",
	"new york giants":      "NYG",
	"new york jets":        "NYJ",
	"philadelphia eagles":  "PHI",
	"pittsburgh steelers":  "PIT",
	"san francisco 49ers":  "SF",
	"seattle seahawks":     "SEA",
	"tampa bay buccaneers": "TB",
	"tennessee titans":     "TEN",
	"washington commanders": "WAS",

	"cardinals":  "ARI",
	"falcons":    "ATL",
	"ravens":     "BAL",
	"bills":      "BUF",
	"panthers":   "CAR",
	"bears":      "CHI",
	"bengals":    "CIN",
	"browns":     "CLE",
	"cowboys":    "DAL",
	"broncos":    "DEN",
	"lions":      "DET",
	"packers":    "GB",
	"texans":     "HOU",
	"colts":      "IND",
	"jaguars":    "JAX",
	"chiefs":     "KC",
	"raiders":    "LV",
	"chargers":   "LAC",
	"rams":       "LAR",
	"dolphins":   "MIA",
	"vikings":    "MIN",
	"patriots":   "NE",
	"saints":     "NO",
	"giants":     "NYG",
	"jets":       "NYJ",
	"eagles":     "PHI",
	"steelers":   "PIT",
	"49ers":      "SF",
	"niners":     "SF",
	"seahawks":   "SEA",
	"buccaneers": "TB",
	"bucs":       "TB",
	"titans":     "TEN",
	"commanders": "WAS",

	"arizona":      "ARI",
	"atlanta":      "ATL",
	"baltimore":    "BAL",
	"buffalo":      "BUF",
	"carolina":     "CAR",
	"chicago":      "CHI",
	"cincinnati":   "CIN",
	"cleveland":    "CLE",
	"dallas":       "DAL",
	"denver":       "DEN",
	"detroit":      "DET",
	"green bay":    "GB",
	"houston":      "HOU",
	"indianapolis": "IND",
	"jacksonville": "JAX",
	"kansas city":  "KC",
	"las vegas":    "LV",
	"oakland":      "LV", // historical
	"los angeles":  "LAR", // ambiguous, default to Rams
	"la chargers":  "LAC",
	"la rams":      "LAR",
	"miami":        "MIA",
	"minnesota":    "MIN",
	"new england":  "NE",
	"new orleans":  "NO",
	"new york":     "NYG", // ambiguous, default to Giants
	"ny giants":    "NYG",
	"ny jets":      "NYJ",
	"philadelphia": "PHI",
	"philly":       "PHI",
	"pittsburgh":   "PIT",
	"san francisco": "SF",
	"san fran":     "SF",
	"seattle":      "SEA",
	"tampa bay":    "TB",
	"tampa":        "TB",
	"tennessee":    "TEN",
	"washington":   "WAS",
	"dc":           "WAS",
}

// codeAliases fixes up nonstandard or historical team codes seen in feeds.
var codeAliases = map[string]string{
	"ARZ": "ARI",
	"BLT": "BAL", // typo in some feeds
	"CLV": "CLE",
	"HST": "HOU", // typo in some feeds
	"JAC": "JAX",
	"LA":  "LAR", // ambiguous, default to Rams
	"NY":  "NYG", // ambiguous, default to Giants
	"SD":  "LAC", // San Diego, historical
	"STL": "LAR", // St. Louis, historical
	"WSH": "WAS",
}

// standardCodes is the fixed set of 32 valid team codes.
var standardCodes = map[string]bool{
	"ARI": true, "ATL": true, "BAL": true, "BUF": true,
	"CAR": true, "CHI": true, "CIN": true, "CLE": true,
	"DAL": true, "DEN": true, "DET": true, "GB": true,
	"HOU": true, "IND": true, "JAX": true, "KC": true,
	"LV": true, "LAC": true, "LAR": true, "MIA": true,
	"MIN": true, "NE": true, "NO": true, "NYG": true,
	"NYJ": true, "PHI": true, "PIT": true, "SF": true,
	"SEA": true, "TB": true, "TEN": true, "WAS": true,
}

// TeamCodes returns the 32 standard team codes.
func TeamCodes() []string {
	codes := make([]string, 0, len(standardCodes))
	for code := range standardCodes {
		codes = append(codes, code)
	}
	return codes
}
