package normalization

import (
	"strings"

	"github.com/yungbote/nutrilog-backend/internal/pkg/pointers"
)

// Query trims a free-text search term; casing is preserved for the upstream catalog.
func Query(input string) string {
	return strings.TrimSpace(input)
}

// FoldQuery lowercases a query for case-insensitive local matching.
func FoldQuery(input string) string {
	return strings.ToLower(Query(input))
}

// OptionalText trims an optional field and maps blank values to nil.
func OptionalText(input *string) *string {
	if input == nil {
		return nil
	}
	return pointers.NonEmpty(*input)
}

// LikePattern builds a contains-pattern for LIKE ... ESCAPE '\'.
func LikePattern(input string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(FoldQuery(input)) + "%"
}
