package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/shared"
	"github.com/Bhargav2112/Flipcart-Clone/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Entity names exposed through the entity adapter
const (
	EntityProduct      = "Product"
	EntityCartItem     = "CartItem"
	EntityWishlistItem = "WishlistItem"
	EntityOrder        = "Order"
	EntityOrderItem    = "OrderItem"
	EntityCoupon       = "Coupon"
	EntityCategory     = "Category"
	EntityAddress      = "Address"
	EntityUser         = "User"
	EntityReview       = "Review"
	EntitySeller       = "Seller"
)

// Row is one entity record keyed by column name
type Row map[string]any

// entityModels binds each entity to the model that owns its table and columns
var entityModels = map[string]any{
	EntityProduct:      &models.ProductModel{},
	EntityCartItem:     &models.CartItemModel{},
	EntityWishlistItem: &models.WishlistItemModel{},
	EntityOrder:        &models.OrderModel{},
	EntityOrderItem:    &models.OrderItemModel{},
	EntityCoupon:       &models.CouponModel{},
	EntityCategory:     &models.CategoryModel{},
	EntityAddress:      &models.AddressModel{},
	EntityUser:         &models.UserModel{},
	EntityReview:       &models.ReviewModel{},
	EntitySeller:       &models.SellerModel{},
}

// readonlyColumns are maintained by the store
var readonlyColumns = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"version":    true,
}

var (
	decimalType = reflect.TypeOf(decimal.Decimal{})
	uuidType    = reflect.TypeOf(uuid.UUID{})
	timeType    = reflect.TypeOf(time.Time{})
)

// ErrUnknownEntity is returned for entity names outside the whitelist
var ErrUnknownEntity = shared.NewDomainError("INVALID_ENTITY", "Unknown entity")

// EntityStore runs generic filter/create/update/delete operations against
// the whitelisted entity tables.
type EntityStore struct {
	db *gorm.DB
}

// NewEntityStore creates a new EntityStore
func NewEntityStore(db *gorm.DB) *EntityStore {
	return &EntityStore{db: db}
}

// Entities lists the entity names in alphabetical order
func Entities() []string {
	names := make([]string, 0, len(entityModels))
	for name := range entityModels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasColumn reports whether the entity exposes the column
func (s *EntityStore) HasColumn(entity, column string) bool {
	sch, _, err := s.binding(entity)
	if err != nil {
		return false
	}
	_, err = lookupField(sch, column)
	return err == nil
}

func (s *EntityStore) binding(entity string) (*schema.Schema, any, error) {
	model, ok := entityModels[entity]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownEntity, entity)
	}
	sch, err := modelSchema(s.db, model)
	if err != nil {
		return nil, nil, err
	}
	// GORM may write back into the model during updates; never share it
	return sch, reflect.New(reflect.TypeOf(model).Elem()).Interface(), nil
}

// Filter returns the rows matching the query
func (s *EntityStore) Filter(ctx context.Context, entity string, q shared.Query) ([]Row, error) {
	sch, model, err := s.binding(entity)
	if err != nil {
		return nil, err
	}

	fields, err := resolveFields(sch, q.Criteria)
	if err != nil {
		return nil, err
	}
	criteria := make(map[string]any, len(q.Criteria))
	for k, v := range q.Criteria {
		field := fields[k]
		value, err := coerceValue(field, v)
		if err != nil {
			return nil, err
		}
		criteria[field.DBName] = value
	}
	q.Criteria = criteria

	tx, err := applyQuery(conn(ctx, s.db).Model(model), model, q)
	if err != nil {
		return nil, err
	}
	var raw []map[string]any
	if err := tx.Find(&raw).Error; err != nil {
		return nil, err
	}

	rows := make([]Row, len(raw))
	for i, r := range raw {
		rows[i] = normalizeRow(sch, r)
	}
	return rows, nil
}

// Get returns a single row by id
func (s *EntityStore) Get(ctx context.Context, entity string, id uuid.UUID) (Row, error) {
	rows, err := s.Filter(ctx, entity, shared.NewQuery(map[string]any{"id": id}).Take(1))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, shared.ErrNotFound
	}
	return rows[0], nil
}

// Create inserts a row with a generated id and timestamps, and returns it
func (s *EntityStore) Create(ctx context.Context, entity string, fields map[string]any) (Row, error) {
	sch, model, err := s.binding(entity)
	if err != nil {
		return nil, err
	}
	values, err := writableValues(sch, fields)
	if err != nil {
		return nil, err
	}

	// Required columns without a database default get their zero value
	for _, field := range sch.Fields {
		if field.DBName == "" || readonlyColumns[field.DBName] {
			continue
		}
		if _, ok := values[field.DBName]; ok {
			continue
		}
		if field.NotNull && !field.HasDefaultValue {
			values[field.DBName] = zeroValue(field)
		}
	}

	id := uuid.New()
	now := time.Now()
	values["id"] = id
	if _, ok := sch.FieldsByDBName["created_at"]; ok {
		values["created_at"] = now
	}
	if _, ok := sch.FieldsByDBName["updated_at"]; ok {
		values["updated_at"] = now
	}
	if _, ok := sch.FieldsByDBName["version"]; ok {
		values["version"] = 1
	}

	if err := conn(ctx, s.db).Model(model).Create(values).Error; err != nil {
		return nil, translateError(err)
	}
	return s.Get(ctx, entity, id)
}

// Update applies a patch to the row and returns the updated row
func (s *EntityStore) Update(ctx context.Context, entity string, id uuid.UUID, patch map[string]any) (Row, error) {
	sch, model, err := s.binding(entity)
	if err != nil {
		return nil, err
	}
	values, err := writableValues(sch, patch)
	if err != nil {
		return nil, err
	}
	if _, ok := sch.FieldsByDBName["updated_at"]; ok {
		values["updated_at"] = time.Now()
	}
	if _, ok := sch.FieldsByDBName["version"]; ok {
		values["version"] = gorm.Expr("version + 1")
	}

	result := conn(ctx, s.db).Model(model).Where("id = ?", id).Updates(values)
	if result.Error != nil {
		return nil, translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, shared.ErrNotFound
	}
	return s.Get(ctx, entity, id)
}

// Delete removes the row. Deleting an order also removes its item rows.
func (s *EntityStore) Delete(ctx context.Context, entity string, id uuid.UUID) error {
	_, model, err := s.binding(entity)
	if err != nil {
		return err
	}
	return conn(ctx, s.db).Transaction(func(tx *gorm.DB) error {
		if entity == EntityOrder {
			if err := tx.Where("order_id = ?", id).Delete(&models.OrderItemModel{}).Error; err != nil {
				return err
			}
		}
		result := tx.Where("id = ?", id).Delete(model)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// writableValues validates and coerces the caller's fields
func writableValues(sch *schema.Schema, fields map[string]any) (map[string]any, error) {
	resolved, err := resolveFields(sch, fields)
	if err != nil {
		return nil, err
	}
	values := make(map[string]any, len(fields)+3)
	for k, v := range fields {
		field := resolved[k]
		if readonlyColumns[field.DBName] {
			return nil, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("column %q is read-only", k))
		}
		value, err := coerceValue(field, v)
		if err != nil {
			return nil, err
		}
		values[field.DBName] = value
	}
	return values, nil
}

func isJSONField(field *schema.Field) bool {
	return strings.EqualFold(field.TagSettings["TYPE"], "jsonb")
}

func baseType(field *schema.Field) reflect.Type {
	t := field.FieldType
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

// coerceValue converts a JSON or query-string value to the column's Go type
func coerceValue(field *schema.Field, v any) (any, error) {
	invalid := func() error {
		return shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("invalid value for %q", field.DBName))
	}
	if v == nil {
		if field.FieldType.Kind() == reflect.Ptr || isJSONField(field) {
			return nil, nil
		}
		return nil, invalid()
	}

	t := baseType(field)
	switch {
	case isJSONField(field):
		if s, ok := v.(string); ok {
			if !json.Valid([]byte(s)) {
				return nil, invalid()
			}
			return s, nil
		}
		b, err := json.Marshal(v)
		if err != nil {
			return nil, invalid()
		}
		return string(b), nil

	case t == decimalType:
		switch x := v.(type) {
		case decimal.Decimal:
			return x, nil
		case float64:
			return decimal.NewFromFloat(x), nil
		case int:
			return decimal.NewFromInt(int64(x)), nil
		case int64:
			return decimal.NewFromInt(x), nil
		case json.Number:
			return decimal.NewFromString(x.String())
		case string:
			d, err := decimal.NewFromString(strings.TrimSpace(x))
			if err != nil {
				return nil, invalid()
			}
			return d, nil
		}
		return nil, invalid()

	case t == uuidType:
		switch x := v.(type) {
		case uuid.UUID:
			return x, nil
		case string:
			id, err := uuid.Parse(x)
			if err != nil {
				return nil, invalid()
			}
			return id, nil
		}
		return nil, invalid()

	case t == timeType:
		switch x := v.(type) {
		case time.Time:
			return x, nil
		case string:
			ts, err := time.Parse(time.RFC3339, x)
			if err != nil {
				return nil, invalid()
			}
			return ts, nil
		}
		return nil, invalid()

	case t.Kind() == reflect.Bool:
		switch x := v.(type) {
		case bool:
			return x, nil
		case string:
			b, err := strconv.ParseBool(x)
			if err != nil {
				return nil, invalid()
			}
			return b, nil
		}
		return nil, invalid()

	case t.Kind() >= reflect.Int && t.Kind() <= reflect.Int64:
		switch x := v.(type) {
		case int:
			return int64(x), nil
		case int64:
			return x, nil
		case float64:
			if x != float64(int64(x)) {
				return nil, invalid()
			}
			return int64(x), nil
		case json.Number:
			n, err := x.Int64()
			if err != nil {
				return nil, invalid()
			}
			return n, nil
		case string:
			n, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
			if err != nil {
				return nil, invalid()
			}
			return n, nil
		}
		return nil, invalid()

	case t.Kind() == reflect.Float32 || t.Kind() == reflect.Float64:
		switch x := v.(type) {
		case float64:
			return x, nil
		case int:
			return float64(x), nil
		case int64:
			return float64(x), nil
		case json.Number:
			f, err := x.Float64()
			if err != nil {
				return nil, invalid()
			}
			return f, nil
		case string:
			f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
			if err != nil {
				return nil, invalid()
			}
			return f, nil
		}
		return nil, invalid()

	case t.Kind() == reflect.String:
		if s, ok := v.(string); ok {
			return s, nil
		}
		return nil, invalid()
	}
	return nil, invalid()
}

func zeroValue(field *schema.Field) any {
	t := baseType(field)
	switch {
	case isJSONField(field):
		return "[]"
	case t == decimalType:
		return decimal.Zero
	case t == timeType:
		return time.Time{}
	case t.Kind() == reflect.Bool:
		return false
	case t.Kind() >= reflect.Int && t.Kind() <= reflect.Float64:
		return 0
	}
	return ""
}

// normalizeRow converts scanned driver values into JSON-friendly ones
func normalizeRow(sch *schema.Schema, raw map[string]any) Row {
	row := make(Row, len(raw)+1)
	for col, v := range raw {
		if hiddenColumns[col] {
			continue
		}
		field := sch.FieldsByDBName[col]
		row[col] = normalizeValue(field, v)
	}
	if created, ok := row["created_at"]; ok {
		row["created_date"] = created
	}
	return row
}

func normalizeValue(field *schema.Field, v any) any {
	if b, ok := v.([]byte); ok {
		v = string(b)
	}
	if v == nil || field == nil {
		return v
	}

	t := baseType(field)
	switch {
	case isJSONField(field):
		s, ok := v.(string)
		if !ok || s == "" {
			return []any{}
		}
		var out any
		if err := json.Unmarshal([]byte(s), &out); err != nil {
			return s
		}
		return out

	case t == decimalType:
		d, err := decimal.NewFromString(fmt.Sprint(v))
		if err != nil {
			return v
		}
		f, _ := d.Float64()
		return f

	case t.Kind() == reflect.Bool:
		switch x := v.(type) {
		case int64:
			return x != 0
		case string:
			b, _ := strconv.ParseBool(x)
			return b
		}

	case t.Kind() == reflect.String:
		if rv := reflect.ValueOf(v); rv.Kind() == reflect.String {
			return rv.String()
		}
	}
	return v
}
