package postgres

import "fmt"

// where arma filtros dinámicos con placeholders numerados ($1, $2...).
type where struct {
	query *string
	args  []any
}

func newWhere(query *string) *where {
	return &where{query: query}
}

// add agrega " AND <cond>" donde cond lleva un único %d para el placeholder.
func (w *where) add(cond string, arg any) {
	w.args = append(w.args, arg)
	*w.query += " AND " + fmt.Sprintf(cond, len(w.args))
}

// page agrega LIMIT/OFFSET; limit <= 0 no limita.
func (w *where) page(limit, offset int) {
	if limit > 0 {
		w.args = append(w.args, limit)
		*w.query += fmt.Sprintf(" LIMIT $%d", len(w.args))
	}
	if offset > 0 {
		w.args = append(w.args, offset)
		*w.query += fmt.Sprintf(" OFFSET $%d", len(w.args))
	}
}
