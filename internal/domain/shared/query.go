package shared

import "strings"

// Query is the generic entity query: equality criteria joined with AND,
// an optional order column ("-" prefix for descending) and an optional limit.
type Query struct {
	Criteria map[string]any
	OrderBy  string
	Limit    int
}

// NewQuery creates a query with the given criteria
func NewQuery(criteria map[string]any) Query {
	if criteria == nil {
		criteria = make(map[string]any)
	}
	return Query{Criteria: criteria}
}

// Where adds an equality criterion
func (q Query) Where(column string, value any) Query {
	criteria := make(map[string]any, len(q.Criteria)+1)
	for k, v := range q.Criteria {
		criteria[k] = v
	}
	criteria[column] = value
	q.Criteria = criteria
	return q
}

// Order sets the order expression, e.g. "-created_date"
func (q Query) Order(orderBy string) Query {
	q.OrderBy = orderBy
	return q
}

// Take sets the row limit; zero or negative means unlimited
func (q Query) Take(limit int) Query {
	q.Limit = limit
	return q
}

// ParseOrderBy splits an order expression into column and direction.
// An empty expression yields an empty column.
func ParseOrderBy(orderBy string) (column string, desc bool) {
	orderBy = strings.TrimSpace(orderBy)
	if strings.HasPrefix(orderBy, "-") {
		return strings.TrimPrefix(orderBy, "-"), true
	}
	return orderBy, false
}
