package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseOrderBy(t *testing.T) {
	tests := []struct {
		in     string
		column string
		desc   bool
	}{
		{"-created_date", "created_date", true},
		{"price", "price", false},
		{" -rating ", "rating", true},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			col, desc := ParseOrderBy(tt.in)
			assert.Equal(t, tt.column, col)
			assert.Equal(t, tt.desc, desc)
		})
	}
}

func TestQueryBuilders(t *testing.T) {
	base := NewQuery(nil)
	q := base.Where("user_email", "a@b.c").Where("saved_for_later", false).Order("-created_date").Take(50)

	assert.Empty(t, base.Criteria, "Where must not mutate the receiver")
	assert.Equal(t, map[string]any{"user_email": "a@b.c", "saved_for_later": false}, q.Criteria)
	assert.Equal(t, "-created_date", q.OrderBy)
	assert.Equal(t, 50, q.Limit)
}

func TestDomainErrorIs(t *testing.T) {
	err := NewDomainError("NOT_FOUND", "product not found")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrForbidden)
}
