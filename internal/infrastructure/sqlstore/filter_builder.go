package sqlstore

import (
	"fmt"

	"github.com/martijn/clientreg/internal/core/domain"
)

// buildClientFilter returns the predicates shared by the list and count
// queries. Every value is bound; nothing from the filter is spliced in.
func buildClientFilter(f domain.ClientFilter) (string, []interface{}) {
	clause := ""
	args := []interface{}{}

	if f.State != nil {
		clause += " AND c_state = ?"
		args = append(args, *f.State)
	}

	if f.ID != nil {
		clause += " AND id_client = ?"
		args = append(args, *f.ID)
	}

	if f.Before != nil {
		clause += " AND register < ?"
		args = append(args, *f.Before)
	}

	if f.After != nil {
		clause += " AND register > ?"
		args = append(args, *f.After)
	}

	return clause, args
}

// applyOrdering appends ORDER BY for the cursor. Column and direction come
// from closed enums, which is what makes interpolating them safe.
func applyOrdering(query string, cursor *domain.Cursor) (string, error) {
	column, err := cursor.Sort.Column()
	if err != nil {
		return "", err
	}
	direction, err := cursor.Order.Keyword()
	if err != nil {
		return "", err
	}

	query += fmt.Sprintf(" ORDER BY %s %s", column, direction)
	if cursor.Sort != domain.SortByID {
		query += ", id_client ASC"
	}
	return query, nil
}

func applyPagination(query string, args []interface{}, cursor *domain.Cursor) (string, []interface{}) {
	if cursor.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, cursor.Limit)

		if cursor.Page > 1 {
			query += " OFFSET ?"
			args = append(args, cursor.Offset())
		}
	}
	return query, args
}
