package venues

import "strings"

// FilterSuggestions returns the entries of all that contain typed,
// case-insensitively, in input order, keeping at most limit of
// them. An empty typed value yields no suggestions.
func FilterSuggestions(all []string, typed string, limit int) []string {
	if typed == "" || limit <= 0 {
		return nil
	}
	needle := strings.ToLower(typed)

	var out []string
	for _, name := range all {
		if strings.Contains(strings.ToLower(name), needle) {
			out = append(out, name)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}
