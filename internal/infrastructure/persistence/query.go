package persistence

import (
	"errors"
	"fmt"
	"sort"

	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
)

// columnAliases maps public names onto stored columns
var columnAliases = map[string]string{
	"created_date": "created_at",
	"updated_date": "updated_at",
}

// hiddenColumns can never be filtered, sorted, read or written through a query
var hiddenColumns = map[string]bool{
	"password_hash": true,
}

// ResolveColumn maps an alias onto its column name. Names are matched
// exactly; padded or differently cased names are not columns.
func ResolveColumn(name string) string {
	if col, ok := columnAliases[name]; ok {
		return col
	}
	return name
}

// modelSchema parses the GORM schema of model, using the DB's cache
func modelSchema(db *gorm.DB, model any) (*schema.Schema, error) {
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(model); err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}
	return stmt.Schema, nil
}

// lookupField returns the schema field for a public column name
func lookupField(s *schema.Schema, name string) (*schema.Field, error) {
	col := ResolveColumn(name)
	field, ok := s.FieldsByDBName[col]
	if !ok || hiddenColumns[col] {
		return nil, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("unknown column %q", name))
	}
	return field, nil
}

// resolveFields maps every key of values onto its schema field. Two keys
// naming the same column, such as an alias and its column, are rejected.
func resolveFields(s *schema.Schema, values map[string]any) (map[string]*schema.Field, error) {
	fields := make(map[string]*schema.Field, len(values))
	seen := make(map[string]string, len(values))
	for k := range values {
		field, err := lookupField(s, k)
		if err != nil {
			return nil, err
		}
		if other, dup := seen[field.DBName]; dup {
			a, b := other, k
			if b < a {
				a, b = b, a
			}
			return nil, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("columns %q and %q name the same field", a, b))
		}
		seen[field.DBName] = k
		fields[k] = field
	}
	return fields, nil
}

// applyQuery adds the query's criteria, order and limit to tx.
// Criteria are applied in column order so the generated SQL is stable.
func applyQuery(tx *gorm.DB, model any, q shared.Query) (*gorm.DB, error) {
	s, err := modelSchema(tx, model)
	if err != nil {
		return nil, err
	}

	fields, err := resolveFields(s, q.Criteria)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(q.Criteria))
	for k := range q.Criteria {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		field := fields[k]
		tx = tx.Where(clause.Eq{Column: clause.Column{Table: s.Table, Name: field.DBName}, Value: q.Criteria[k]})
	}

	if col, desc := shared.ParseOrderBy(q.OrderBy); col != "" {
		field, err := lookupField(s, col)
		if err != nil {
			return nil, err
		}
		tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Table: s.Table, Name: field.DBName}, Desc: desc})
	}

	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	return tx, nil
}

// translateError maps GORM errors onto domain errors
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.ErrAlreadyExists
	}
	return err
}
