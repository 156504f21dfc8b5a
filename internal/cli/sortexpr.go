package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rshade/tilegrid/internal/listctrl"
)

// ErrInvalidSort is returned for a malformed "column:order" expression or
// one naming an unknown column.
var ErrInvalidSort = errors.New("invalid sort expression")

const (
	sortPartsMax  = 2
	sortOrderAsc  = "asc"
	sortOrderDesc = "desc"
)

// ParseSortExpression parses a sort expression in "column:order" format.
// Supports:
//   - "column" - defaults to asc order
//   - "column:asc" - explicit ascending order
//   - "column:desc" - explicit descending order
//
//nolint:nonamedreturns // Named returns improve readability for this multi-value function.
func ParseSortExpression(expr string) (column string, ascending bool, err error) {
	if strings.TrimSpace(expr) == "" {
		return "", false, fmt.Errorf("%w: empty expression", ErrInvalidSort)
	}

	parts := strings.Split(expr, ":")
	if len(parts) > sortPartsMax {
		return "", false, fmt.Errorf("%w: too many colons in %q", ErrInvalidSort, expr)
	}

	column = strings.TrimSpace(parts[0])
	if column == "" {
		return "", false, fmt.Errorf("%w: empty column in %q", ErrInvalidSort, expr)
	}

	order := sortOrderAsc
	if len(parts) == sortPartsMax {
		order = strings.ToLower(strings.TrimSpace(parts[1]))
	}

	switch order {
	case sortOrderAsc:
		return column, true, nil
	case sortOrderDesc:
		return column, false, nil
	default:
		return "", false, fmt.Errorf("%w: order %q (must be asc or desc)", ErrInvalidSort, order)
	}
}

// applySort sorts ctrl by the column whose title matches expr's column,
// ignoring case. An empty expression is a no-op.
func applySort(ctrl *listctrl.Control, expr string) error {
	if expr == "" {
		return nil
	}
	title, ascending, err := ParseSortExpression(expr)
	if err != nil {
		return err
	}
	for i, col := range ctrl.Header().Columns() {
		if !strings.EqualFold(col.Title, title) {
			continue
		}
		if !ctrl.Sort(i, ascending) {
			return fmt.Errorf("%w: column %q is not sortable", ErrInvalidSort, col.Title)
		}
		return nil
	}
	return fmt.Errorf("%w: unknown column %q", ErrInvalidSort, title)
}
