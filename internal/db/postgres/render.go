package postgres

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/intransparency/talentsearch/internal/domain/search/predicate"
)

// ErrUnknownField is returned when a predicate names a field the table does not map.
var ErrUnknownField = errors.New("postgres: unknown field")

// column is a logical field resolved to SQL.
type column struct {
	expr string
	// enum columns are compared as text so parameters never depend on the enum type.
	enum bool
}

// relation links a child table to its parent row.
type relation struct {
	table *table
	join  string
}

// table maps logical fields of one record shape to a quoted table and columns.
type table struct {
	name      string
	alias     string
	columns   map[predicate.Field]column
	relations map[string]relation
}

func (t *table) column(f predicate.Field) (column, error) {
	c, ok := t.columns[f]
	if !ok {
		return column{}, fmt.Errorf("%w: %s on %s", ErrUnknownField, f, t.name)
	}
	return c, nil
}

// renderer accumulates positional arguments while rendering.
type renderer struct {
	args []any
}

func (r *renderer) bind(v any) string {
	r.args = append(r.args, v)
	return "$" + strconv.Itoa(len(r.args))
}

// where renders n against t. The empty predicate renders as TRUE.
func (r *renderer) where(t *table, n predicate.Node) (string, error) {
	switch n.Kind() {
	case predicate.KindNone:
		return "TRUE", nil

	case predicate.KindAnd, predicate.KindOr:
		op := " AND "
		if n.Kind() == predicate.KindOr {
			op = " OR "
		}
		parts := make([]string, 0, len(n.Children()))
		for _, c := range n.Children() {
			s, err := r.where(t, c)
			if err != nil {
				return "", err
			}
			parts = append(parts, s)
		}
		return "(" + strings.Join(parts, op) + ")", nil

	case predicate.KindEq:
		c, err := t.column(n.Field())
		if err != nil {
			return "", err
		}
		if c.enum {
			return c.expr + "::text = " + r.bind(n.Value()), nil
		}
		return c.expr + " = " + r.bind(n.Value()), nil

	case predicate.KindIn:
		c, err := t.column(n.Field())
		if err != nil {
			return "", err
		}
		return c.expr + "::text = ANY(" + r.bind(n.Values()) + ")", nil

	case predicate.KindContains:
		c, err := t.column(n.Field())
		if err != nil {
			return "", err
		}
		needle, _ := n.Value().(string)
		return c.expr + " ILIKE " + r.bind("%"+escapeLike(needle)+"%"), nil

	case predicate.KindOverlaps:
		c, err := t.column(n.Field())
		if err != nil {
			return "", err
		}
		lowered := make([]string, len(n.Values()))
		for i, v := range n.Values() {
			lowered[i] = strings.ToLower(v)
		}
		return "EXISTS (SELECT 1 FROM unnest(" + c.expr + ") AS e(v) WHERE lower(e.v) = ANY(" +
			r.bind(lowered) + "))", nil

	case predicate.KindExists:
		rel, ok := t.relations[n.Relation()]
		if !ok {
			return "", fmt.Errorf("%w: relation %s on %s", ErrUnknownField, n.Relation(), t.name)
		}
		inner, err := r.where(rel.table, n.Children()[0])
		if err != nil {
			return "", err
		}
		return "EXISTS (SELECT 1 FROM " + rel.table.name + " " + rel.table.alias +
			" WHERE " + rel.join + " AND " + inner + ")", nil
	}
	return "", fmt.Errorf("postgres: unsupported predicate kind %d", n.Kind())
}

// selectQuery renders a full SELECT of cols from t filtered, ordered and limited by q.
func selectQuery(t *table, cols []string, q predicate.Query) (string, []any, error) {
	r := &renderer{}
	where, err := r.where(t, q.Where)
	if err != nil {
		return "", nil, err
	}

	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(strings.Join(cols, ", "))
	b.WriteString(" FROM ")
	b.WriteString(t.name)
	b.WriteString(" ")
	b.WriteString(t.alias)
	b.WriteString(" WHERE ")
	b.WriteString(where)

	if len(q.OrderBy) > 0 {
		keys := make([]string, 0, len(q.OrderBy))
		for _, o := range q.OrderBy {
			c, err := t.column(o.Field)
			if err != nil {
				return "", nil, err
			}
			dir := "ASC"
			if o.Desc {
				dir = "DESC"
			}
			keys = append(keys, c.expr+" "+dir)
		}
		b.WriteString(" ORDER BY ")
		b.WriteString(strings.Join(keys, ", "))
	}

	if q.Limit > 0 {
		b.WriteString(" LIMIT ")
		b.WriteString(r.bind(q.Limit))
	}

	return b.String(), r.args, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
