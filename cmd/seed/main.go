package main

import (
	"fmt"
	"os"

	"github.com/Bhargav2112/Flipcart-Clone/internal/infrastructure/config"
	"github.com/Bhargav2112/Flipcart-Clone/internal/infrastructure/logger"
	"github.com/Bhargav2112/Flipcart-Clone/internal/infrastructure/persistence"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := Options{}
	var logLevel string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill the storefront database with demo data",
		Long: `Create the default categories, sample coupons, an admin account, a seller
and a generated catalog of approved products with customers.

Example:
  seed --products 1000 --batch 100
  seed --products 0 --customers 25 --seed 42`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := logger.New(&logger.Config{
				Level:      logLevel,
				Format:     "console",
				Output:     "stdout",
				TimeFormat: "2006-01-02 15:04:05",
			})
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer func() {
				_ = logger.Sync(log)
			}()

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			db, err := persistence.NewDatabase(&cfg.Database, nil)
			if err != nil {
				return err
			}
			defer db.Close()
			if cfg.Database.Driver == "sqlite" {
				if err := db.AutoMigrate(); err != nil {
					return err
				}
			}

			seeder := NewSeeder(Repositories{
				Products:   persistence.NewGormProductRepository(db.DB),
				Categories: persistence.NewGormCategoryRepository(db.DB),
				Sellers:    persistence.NewGormSellerRepository(db.DB),
				Coupons:    persistence.NewGormCouponRepository(db.DB),
				Users:      persistence.NewGormUserRepository(db.DB),
				Addresses:  persistence.NewGormAddressRepository(db.DB),
			}, log)

			sum, err := seeder.Run(cmd.Context(), opts)
			if err != nil {
				return err
			}
			log.Info("Seeding complete",
				zap.Int("categories", sum.Categories),
				zap.Int("coupons", sum.Coupons),
				zap.Int("products", sum.Products),
				zap.Int("customers", sum.Customers),
				zap.Bool("admin_created", sum.Admin),
			)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&opts.Products, "products", 1000, "number of products to generate")
	flags.IntVar(&opts.BatchSize, "batch", 100, "products inserted per batch")
	flags.IntVar(&opts.Customers, "customers", 10, "number of customers with an address")
	flags.Uint64Var(&opts.Seed, "seed", 0, "faker seed; 0 is random")
	flags.StringVar(&opts.AdminEmail, "admin-email", "admin@flipcart.local", "admin account to create; empty skips it")
	flags.StringVar(&opts.AdminPassword, "admin-password", "admin123", "admin account password")
	flags.StringVar(&opts.SellerEmail, "seller-email", "seller@flipcart.local", "owner of the generated products")
	flags.StringVar(&opts.UserPassword, "password", "password123", "password for the seller and generated customers")
	flags.StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	return cmd
}
