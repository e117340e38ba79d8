package providers

// Diagnostics accumulates the per-source audit counters surfaced on the
// pipeline quality report.
type Diagnostics struct {
	Source          string   `json:"source"`
	RowsParsed      int      `json:"rows_parsed"`
	RowsFiltered    int      `json:"rows_filtered"`    // missing required fields
	RowsQuarantined int      `json:"rows_quarantined"` // failed strict validation
	Coercions       int      `json:"coercions"`        // values normalized in place
	Duplicates      int      `json:"duplicates"`
	Warnings        []string `json:"warnings,omitempty"`
}

// LoadResult is the uniform return of every source loader. A source that is
// unavailable reports OK=false with a diagnostic rather than panicking or
// silently returning an empty set, so the reconciler can tell "unavailable"
// apart from "returned nothing".
type LoadResult[T any] struct {
	OK          bool        `json:"ok"`
	Records     []T         `json:"records"`
	Diagnostics Diagnostics `json:"diagnostics"`
}

// Unavailable builds the failed-fetch result for a source.
func Unavailable[T any](source, reason string) LoadResult[T] {
	return LoadResult[T]{
		OK: false,
		Diagnostics: Diagnostics{
			Source:   source,
			Warnings: []string{reason},
		},
	}
}

// ValidationMode controls how rows failing range checks are handled.
type ValidationMode string

const (
	// ValidationStrict quarantines and excludes failing rows.
	ValidationStrict ValidationMode = "strict"
	// ValidationWarn keeps failing rows and logs a suggested fix that is
	// not applied.
	ValidationWarn ValidationMode = "warning"
)
