package pointers

import "strings"

func Float64(v float64) *float64 { return &v }
func String(v string) *string    { return &v }

// NonEmpty returns nil for blank strings and a pointer to the trimmed value otherwise.
func NonEmpty(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}
