package restq

import (
	"net/url"
	"strconv"
	"strings"
)

// Query accumulates row filters. Filters preserve insertion order so requests
// are reproducible in tests and logs.
type Query struct {
	params []param
	order  string
	limit  int
}

type param struct {
	column string
	value  string
}

// NewQuery starts an empty filter set selecting all columns.
func NewQuery() *Query {
	return &Query{}
}

// Eq matches rows whose column equals value.
func (q *Query) Eq(column, value string) *Query {
	return q.add(column, "eq."+value)
}

// Gte matches rows whose column is >= value.
func (q *Query) Gte(column, value string) *Query {
	return q.add(column, "gte."+value)
}

// Lte matches rows whose column is <= value.
func (q *Query) Lte(column, value string) *Query {
	return q.add(column, "lte."+value)
}

// Lt matches rows whose column is < value.
func (q *Query) Lt(column, value string) *Query {
	return q.add(column, "lt."+value)
}

// In matches rows whose column is one of values. Elements are quoted so
// embedded commas cannot split the list.
func (q *Query) In(column string, values []string) *Query {
	quoted := make([]string, 0, len(values))
	for _, v := range values {
		quoted = append(quoted, `"`+strings.ReplaceAll(v, `"`, `\"`)+`"`)
	}
	return q.add(column, "in.("+strings.Join(quoted, ",")+")")
}

// OrderAsc sorts ascending by column.
func (q *Query) OrderAsc(column string) *Query {
	q.order = column + ".asc"
	return q
}

// OrderDesc sorts descending by column.
func (q *Query) OrderDesc(column string) *Query {
	q.order = column + ".desc"
	return q
}

// Limit caps the number of returned rows.
func (q *Query) Limit(n int) *Query {
	q.limit = n
	return q
}

// Encode renders the query string.
func (q *Query) Encode() string {
	values := url.Values{}
	values.Set("select", "*")
	for _, p := range q.params {
		values.Add(p.column, p.value)
	}
	if q.order != "" {
		values.Set("order", q.order)
	}
	if q.limit > 0 {
		values.Set("limit", strconv.Itoa(q.limit))
	}
	return values.Encode()
}

func (q *Query) add(column, value string) *Query {
	q.params = append(q.params, param{column: column, value: value})
	return q
}
