package entity

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	appcatalog "github.com/Bhargav2112/Flipcart-Clone/internal/application/catalog"
	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/catalog"
	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/identity"
	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/shared"
	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/shopping"
	"github.com/Bhargav2112/Flipcart-Clone/internal/infrastructure/persistence"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// addressColumns are the address fields a shopper fills in
var addressColumns = []string{
	"name", "phone", "address_line1", "address_line2",
	"city", "state", "pincode", "type", "is_default",
}

// shopperCreates lists the columns a non-admin may send when creating a row.
// Orders are placed through checkout and never written through the adapter.
var shopperCreates = map[string][]string{
	persistence.EntityAddress:      addressColumns,
	persistence.EntityCartItem:     {"product_id", "quantity", "saved_for_later"},
	persistence.EntityWishlistItem: {"product_id"},
	persistence.EntityReview:       {"product_id", "rating", "title", "comment"},
}

// shopperUpdates lists the columns a non-admin may patch on their own rows.
// Snapshots, reviews and orders are immutable for shoppers.
var shopperUpdates = map[string][]string{
	persistence.EntityAddress:  addressColumns,
	persistence.EntityCartItem: {"quantity", "saved_for_later"},
}

// shopperDeletes are the entities a non-admin may delete their own rows of
var shopperDeletes = map[string]bool{
	persistence.EntityAddress:      true,
	persistence.EntityCartItem:     true,
	persistence.EntityWishlistItem: true,
}

func (s *Service) shopperCreate(ctx context.Context, caller identity.Principal, entity string, fields map[string]any) (persistence.Row, error) {
	allowed, ok := shopperCreates[entity]
	if !ok || caller.IsAnonymous() {
		return nil, denied(caller)
	}
	if err := checkColumns(fields, allowed); err != nil {
		return nil, err
	}

	switch entity {
	case persistence.EntityAddress:
		return s.createAddress(ctx, caller, fields)
	case persistence.EntityCartItem:
		return s.createCartItem(ctx, caller, fields)
	case persistence.EntityWishlistItem:
		product, err := s.approvedProduct(ctx, fields)
		if err != nil {
			return nil, err
		}
		item, err := shopping.NewWishlistItem(caller.Email, shopping.SnapshotOf(product))
		if err != nil {
			return nil, err
		}
		values := snapshotFields(item.Product)
		values[ownerColumn] = item.UserEmail
		return s.store.Create(ctx, entity, values)
	case persistence.EntityReview:
		return s.createReview(ctx, caller, fields)
	}
	return nil, denied(caller)
}

func (s *Service) shopperUpdate(ctx context.Context, caller identity.Principal, entity string, id uuid.UUID, patch map[string]any) (persistence.Row, error) {
	allowed, ok := shopperUpdates[entity]
	if !ok || caller.IsAnonymous() {
		return nil, denied(caller)
	}
	existing, err := s.ownedRow(ctx, caller, entity, id)
	if err != nil {
		return nil, err
	}
	if err := checkColumns(patch, allowed); err != nil {
		return nil, err
	}

	switch entity {
	case persistence.EntityAddress:
		merged := make(map[string]any, len(addressColumns))
		for _, col := range addressColumns {
			merged[col] = existing[col]
		}
		for k, v := range patch {
			if k != ownerColumn {
				merged[k] = v
			}
		}
		addr, err := addressFrom(caller, merged)
		if err != nil {
			return nil, err
		}
		row, err := s.store.Update(ctx, entity, id, addressFields(addr))
		if err != nil {
			return nil, err
		}
		if addr.IsDefault {
			s.clearOtherDefaults(ctx, caller, id)
		}
		return row, nil

	case persistence.EntityCartItem:
		values := make(map[string]any, 2)
		qty, set, err := intOf(patch, "quantity")
		if err != nil {
			return nil, err
		}
		if set {
			if qty < 1 {
				return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
			}
			values["quantity"] = qty
		}
		saved, set, err := boolOf(patch, "saved_for_later")
		if err != nil {
			return nil, err
		}
		if set {
			values["saved_for_later"] = saved
		}
		if len(values) == 0 {
			return existing, nil
		}
		return s.store.Update(ctx, entity, id, values)
	}
	return nil, denied(caller)
}

func (s *Service) createAddress(ctx context.Context, caller identity.Principal, fields map[string]any) (persistence.Row, error) {
	addr, err := addressFrom(caller, fields)
	if err != nil {
		return nil, err
	}
	if !addr.IsDefault {
		mine, err := s.store.Filter(ctx, persistence.EntityAddress, shared.NewQuery(map[string]any{ownerColumn: caller.Email}).Take(1))
		if err != nil {
			return nil, err
		}
		addr.IsDefault = len(mine) == 0
	}

	row, err := s.store.Create(ctx, persistence.EntityAddress, addressFields(addr))
	if err != nil {
		return nil, err
	}
	if addr.IsDefault {
		if id, err := uuid.Parse(fmt.Sprint(row["id"])); err == nil {
			s.clearOtherDefaults(ctx, caller, id)
		}
	}
	return row, nil
}

func (s *Service) createCartItem(ctx context.Context, caller identity.Principal, fields map[string]any) (persistence.Row, error) {
	product, err := s.approvedProduct(ctx, fields)
	if err != nil {
		return nil, err
	}
	item, err := shopping.NewCartItem(caller.Email, shopping.SnapshotOf(product))
	if err != nil {
		return nil, err
	}
	qty, set, err := intOf(fields, "quantity")
	if err != nil {
		return nil, err
	}
	if set && !item.ChangeQuantity(qty-item.Qty()) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	saved, _, err := boolOf(fields, "saved_for_later")
	if err != nil {
		return nil, err
	}
	if saved {
		item.SaveForLater()
	}

	values := snapshotFields(item.Product)
	values[ownerColumn] = item.UserEmail
	values["quantity"] = item.Qty()
	values["saved_for_later"] = item.SavedForLater
	return s.store.Create(ctx, persistence.EntityCartItem, values)
}

// createReview goes through the catalog so the rating rules apply and the
// product's average moves with the new review
func (s *Service) createReview(ctx context.Context, caller identity.Principal, fields map[string]any) (persistence.Row, error) {
	if s.reviews == nil {
		return nil, denied(caller)
	}
	productID, err := uuidOf(fields, "product_id")
	if err != nil {
		return nil, err
	}
	rating, _, err := intOf(fields, "rating")
	if err != nil {
		return nil, err
	}
	title, err := stringOf(fields, "title")
	if err != nil {
		return nil, err
	}
	comment, err := stringOf(fields, "comment")
	if err != nil {
		return nil, err
	}

	review, err := s.reviews.AddReview(ctx, caller, productID, appcatalog.CreateReviewRequest{
		Rating:  rating,
		Title:   title,
		Comment: comment,
	})
	if err != nil {
		return nil, err
	}
	return s.store.Get(ctx, persistence.EntityReview, review.ID)
}

func (s *Service) approvedProduct(ctx context.Context, fields map[string]any) (*catalog.Product, error) {
	id, err := uuidOf(fields, "product_id")
	if err != nil {
		return nil, err
	}
	if s.products == nil {
		return nil, shared.ErrForbidden
	}
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !product.IsApproved() {
		return nil, shared.ErrNotFound
	}
	return product, nil
}

// clearOtherDefaults keeps a single default address per user
func (s *Service) clearOtherDefaults(ctx context.Context, caller identity.Principal, keep uuid.UUID) {
	rows, err := s.store.Filter(ctx, persistence.EntityAddress, shared.NewQuery(map[string]any{
		ownerColumn:  caller.Email,
		"is_default": true,
	}))
	if err != nil {
		s.logger.Warn("Failed to load default addresses", zap.Error(err))
		return
	}
	for _, row := range rows {
		id, err := uuid.Parse(fmt.Sprint(row["id"]))
		if err != nil || id == keep {
			continue
		}
		if _, err := s.store.Update(ctx, persistence.EntityAddress, id, map[string]any{"is_default": false}); err != nil {
			s.logger.Warn("Failed to clear default address", zap.String("address_id", id.String()), zap.Error(err))
		}
	}
}

// checkColumns rejects any key outside allowed. The owner column is
// accepted and ignored since rows always belong to the caller.
func checkColumns(fields map[string]any, allowed []string) error {
	for k := range fields {
		if k == ownerColumn {
			continue
		}
		ok := false
		for _, col := range allowed {
			if k == col {
				ok = true
				break
			}
		}
		if !ok {
			return shared.NewDomainError("FORBIDDEN", fmt.Sprintf("column %q cannot be set", k))
		}
	}
	return nil
}

func addressFrom(caller identity.Principal, fields map[string]any) (*identity.Address, error) {
	var in identity.AddressInput
	for col, dst := range map[string]*string{
		"name":          &in.Name,
		"phone":         &in.Phone,
		"address_line1": &in.AddressLine1,
		"address_line2": &in.AddressLine2,
		"city":          &in.City,
		"state":         &in.State,
		"pincode":       &in.Pincode,
	} {
		v, err := stringOf(fields, col)
		if err != nil {
			return nil, err
		}
		*dst = v
	}
	kind, err := stringOf(fields, "type")
	if err != nil {
		return nil, err
	}
	in.Type = identity.AddressType(kind)
	if in.IsDefault, _, err = boolOf(fields, "is_default"); err != nil {
		return nil, err
	}
	return identity.NewAddress(caller.Email, in)
}

func addressFields(a *identity.Address) map[string]any {
	return map[string]any{
		ownerColumn:     a.UserEmail,
		"name":          a.Name,
		"phone":         a.Phone,
		"address_line1": a.AddressLine1,
		"address_line2": a.AddressLine2,
		"city":          a.City,
		"state":         a.State,
		"pincode":       a.Pincode,
		"type":          string(a.Type),
		"is_default":    a.IsDefault,
	}
}

func snapshotFields(p shopping.ProductSnapshot) map[string]any {
	return map[string]any{
		"product_id":             p.ProductID,
		"product_name":           p.Name,
		"product_thumbnail":      p.Thumbnail,
		"product_price":          p.Price,
		"product_original_price": p.OriginalPrice,
		"seller_name":            p.SellerName,
		"seller_email":           p.SellerEmail,
	}
}

func invalidValue(key string) error {
	return shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("invalid value for %q", key))
}

func stringOf(fields map[string]any, key string) (string, error) {
	switch v := fields[key].(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	}
	return "", invalidValue(key)
}

func intOf(fields map[string]any, key string) (int, bool, error) {
	switch v := fields[key].(type) {
	case nil:
		return 0, false, nil
	case int:
		return v, true, nil
	case int64:
		return int(v), true, nil
	case float64:
		if v != math.Trunc(v) {
			return 0, true, invalidValue(key)
		}
		return int(v), true, nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, true, invalidValue(key)
		}
		return int(n), true, nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, true, invalidValue(key)
		}
		return n, true, nil
	}
	return 0, true, invalidValue(key)
}

func boolOf(fields map[string]any, key string) (bool, bool, error) {
	switch v := fields[key].(type) {
	case nil:
		return false, false, nil
	case bool:
		return v, true, nil
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return false, true, invalidValue(key)
		}
		return b, true, nil
	}
	return false, true, invalidValue(key)
}

func uuidOf(fields map[string]any, key string) (uuid.UUID, error) {
	switch v := fields[key].(type) {
	case uuid.UUID:
		return v, nil
	case string:
		if id, err := uuid.Parse(strings.TrimSpace(v)); err == nil {
			return id, nil
		}
	case nil:
		return uuid.Nil, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("%s is required", key))
	}
	return uuid.Nil, invalidValue(key)
}
