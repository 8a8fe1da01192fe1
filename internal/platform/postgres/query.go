package postgres

import (
	"fmt"
	"strings"

	"github.com/phrazzld/pagamentos-api/internal/domain"
)

// whereBuilder accumulates AND-combined conditions with positional
// arguments. Conditions use "?" as the placeholder for their argument.
type whereBuilder struct {
	conds []string
	args  []any
}

func (w *whereBuilder) add(cond string, arg any) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, strings.Replace(cond, "?", fmt.Sprintf("$%d", len(w.args)), 1))
}

// sql returns the WHERE clause, or "" when there are no conditions.
func (w *whereBuilder) sql() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// limitOffset appends LIMIT/OFFSET placeholders after the existing args.
func (w *whereBuilder) limitOffset(page domain.PageRequest) (string, []any) {
	n := len(w.args)
	args := append(append([]any{}, w.args...), page.Size, page.Offset())
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", n+1, n+2), args
}

// orderBy renders an ORDER BY clause from sort orders using columns to map
// JSON property names to SQL expressions. Unknown properties are an error.
// tieBreaker is always appended so paging is deterministic.
func orderBy(sort []domain.SortOrder, columns map[string]string, tieBreaker string) (string, error) {
	parts := make([]string, 0, len(sort)+1)
	for _, o := range sort {
		col, ok := columns[o.Property]
		if !ok {
			return "", fmt.Errorf("%w: cannot sort by %q", domain.ErrInvalidFormat, o.Property)
		}
		dir := "ASC"
		if o.IsDesc() {
			dir = "DESC"
		}
		parts = append(parts, col+" "+dir)
	}
	parts = append(parts, tieBreaker)
	return " ORDER BY " + strings.Join(parts, ", "), nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching s anywhere, with LIKE
// wildcards in s taken literally.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
