package classify

import (
	"fmt"
	"io"

	"github.com/ppiankov/creditlens/internal/model"
)

// WriteTable writes one aligned row per role (category, scope, matched
// keyword), followed by per-category totals when there is more than one role
func (c *Classifier) WriteTable(w io.Writer, roles []string) {
	width := 0
	for _, role := range roles {
		if len(role) > width {
			width = len(role)
		}
	}

	counts := make(map[model.RoleCategory]int)
	for _, role := range roles {
		res := c.Classify(role)
		counts[res.Category]++

		scope := "out"
		if res.InScope {
			scope = "in"
		}
		keyword := res.Keyword
		if keyword == "" {
			keyword = "-"
		}
		fmt.Fprintf(w, "%-*s  %-22s %-3s  %s\n", width, role, res.Category, scope, keyword)
	}

	if len(roles) < 2 {
		return
	}
	fmt.Fprintln(w)
	for _, category := range model.AllRoleCategories() {
		if counts[category] > 0 {
			fmt.Fprintf(w, "%-22s %d\n", category, counts[category])
		}
	}
}
