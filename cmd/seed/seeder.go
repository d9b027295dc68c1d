package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/catalog"
	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/identity"
	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/shared"
	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/shopping"
	"go.uber.org/zap"
)

// Repositories are the stores the seeder writes to
type Repositories struct {
	Products   catalog.ProductRepository
	Categories catalog.CategoryRepository
	Sellers    catalog.SellerRepository
	Coupons    shopping.CouponRepository
	Users      identity.UserRepository
	Addresses  identity.AddressRepository
}

// Options controls how much data is generated
type Options struct {
	Products      int
	BatchSize     int
	Customers     int
	Seed          uint64
	AdminEmail    string
	AdminPassword string
	SellerEmail   string
	UserPassword  string
}

// Summary counts what a run created
type Summary struct {
	Categories int
	Coupons    int
	Products   int
	Customers  int
	Admin      bool
}

// Seeder fills an empty store with a browsable catalog. Categories, coupons
// and the fixed accounts are only created when missing, so reruns just add
// products and customers.
type Seeder struct {
	repos  Repositories
	logger *zap.Logger
}

// NewSeeder creates a seeder
func NewSeeder(repos Repositories, logger *zap.Logger) *Seeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{repos: repos, logger: logger}
}

// Run seeds everything selected by opts
func (s *Seeder) Run(ctx context.Context, opts Options) (Summary, error) {
	var sum Summary
	var err error

	if sum.Categories, err = s.seedCategories(ctx); err != nil {
		return sum, fmt.Errorf("categories: %w", err)
	}
	if sum.Coupons, err = s.seedCoupons(ctx); err != nil {
		return sum, fmt.Errorf("coupons: %w", err)
	}
	if opts.AdminEmail != "" {
		if _, sum.Admin, err = s.ensureUser(ctx, opts.AdminEmail, "Store Admin", opts.AdminPassword, identity.RoleAdmin); err != nil {
			return sum, fmt.Errorf("admin: %w", err)
		}
	}

	seller, _, err := s.ensureUser(ctx, opts.SellerEmail, "Flipcart Retail", opts.UserPassword, identity.RoleSeller)
	if err != nil {
		return sum, fmt.Errorf("seller: %w", err)
	}
	if err := s.ensureSeller(ctx, seller); err != nil {
		return sum, fmt.Errorf("seller profile: %w", err)
	}

	gen := NewGenerator(opts.Seed, seller)
	if sum.Products, err = s.seedProducts(ctx, gen, opts.Products, opts.BatchSize); err != nil {
		return sum, fmt.Errorf("products: %w", err)
	}
	if sum.Customers, err = s.seedCustomers(ctx, gen, opts.Customers, opts.UserPassword); err != nil {
		return sum, fmt.Errorf("customers: %w", err)
	}
	return sum, nil
}

func (s *Seeder) seedCategories(ctx context.Context) (int, error) {
	created := 0
	for i, c := range catalog.DefaultCategories {
		_, err := s.repos.Categories.FindBySlug(ctx, c.Slug)
		if err == nil {
			continue
		}
		if !errors.Is(err, shared.ErrNotFound) {
			return created, err
		}
		category, err := catalog.NewCategory(c.Name, c.Slug, c.Image, i)
		if err != nil {
			return created, err
		}
		if err := s.repos.Categories.Save(ctx, category); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

func (s *Seeder) seedCoupons(ctx context.Context) (int, error) {
	coupons, err := Coupons()
	if err != nil {
		return 0, err
	}
	created := 0
	for _, c := range coupons {
		_, err := s.repos.Coupons.FindActiveByCode(ctx, c.Code)
		if err == nil {
			continue
		}
		if !errors.Is(err, shared.ErrNotFound) {
			return created, err
		}
		if err := s.repos.Coupons.Save(ctx, c); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

// ensureUser returns the account for email, creating it with role when missing
func (s *Seeder) ensureUser(ctx context.Context, email, name, password string, role identity.Role) (*identity.User, bool, error) {
	existing, err := s.repos.Users.FindByEmail(ctx, email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, false, err
	}

	user, err := identity.NewUser(email, name, password)
	if err != nil {
		return nil, false, err
	}
	if err := user.AssignRole(role); err != nil {
		return nil, false, err
	}
	if err := s.repos.Users.Save(ctx, user); err != nil {
		return nil, false, err
	}
	s.logger.Info("Account created", zap.String("email", user.Email), zap.String("role", string(role)))
	return user, true, nil
}

func (s *Seeder) ensureSeller(ctx context.Context, user *identity.User) error {
	_, err := s.repos.Sellers.FindByEmail(ctx, user.Email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return err
	}
	seller, err := catalog.NewSeller(user.Email, user.FullName, "", "")
	if err != nil {
		return err
	}
	return s.repos.Sellers.Save(ctx, seller)
}

func (s *Seeder) seedProducts(ctx context.Context, gen *Generator, n, batchSize int) (int, error) {
	if n <= 0 {
		return 0, nil
	}
	batches, err := gen.Products(n, batchSize)
	if err != nil {
		return 0, err
	}
	inserted := 0
	for i, batch := range batches {
		if err := s.repos.Products.SaveBatch(ctx, batch); err != nil {
			return inserted, fmt.Errorf("batch %d: %w", i+1, err)
		}
		inserted += len(batch)
		s.logger.Info("Inserted product batch",
			zap.Int("batch", i+1),
			zap.Int("size", len(batch)),
			zap.Int("total", inserted),
		)
	}
	return inserted, nil
}

func (s *Seeder) seedCustomers(ctx context.Context, gen *Generator, n int, password string) (int, error) {
	created := 0
	for i := 0; i < n; i++ {
		user, addr, err := gen.Customer(password)
		if err != nil {
			return created, err
		}
		exists, err := s.repos.Users.ExistsByEmail(ctx, user.Email)
		if err != nil {
			return created, err
		}
		if exists {
			continue
		}
		if err := s.repos.Users.Save(ctx, user); err != nil {
			return created, err
		}
		if err := s.repos.Addresses.Save(ctx, addr); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}
