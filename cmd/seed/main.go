package main

import (
	"context"
	"os"
	"time"

	"milk-platform-be/internal/config"
	"milk-platform-be/internal/entity"
	"milk-platform-be/internal/repository/specification"
	"milk-platform-be/internal/repository/unitofwork"
	"milk-platform-be/internal/service"
	"milk-platform-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
)

func main() {
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		color.Red("Error: DB_CONNECTION_STRING is not set")
		os.Exit(1)
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, false)
	if err != nil {
		color.Red("Error: Failed to connect to database: %v", err)
		os.Exit(1)
	}

	ctx := context.Background()
	factory := unitofwork.NewRepositoryFactory(db)

	color.Cyan("Seeding users...")
	admin, err := ensureUser(ctx, factory, &entity.User{
		Name:  "Platform Admin",
		Email: envOr("SEED_ADMIN_EMAIL", "admin@milkplatform.local"),
		Role:  entity.UserRoleAdmin,
	}, envOr("SEED_ADMIN_PASSWORD", "admin123"))
	if err != nil {
		color.Red("Failed to seed admin: %v", err)
		os.Exit(1)
	}

	if os.Getenv("SEED_DEMO") != "true" {
		color.Green("Done. Set SEED_DEMO=true to add a demo seller and listings.")
		return
	}

	seller, err := ensureUser(ctx, factory, &entity.User{
		Name:         "Demo Dairy",
		Email:        "seller@milkplatform.local",
		Phone:        "9800000000",
		Role:         entity.UserRoleSeller,
		BusinessName: "Demo Dairy Farm",
		Address:      entity.Address{City: "Pune", State: "Maharashtra", Pincode: "411001"},
		CreatedBy:    &admin.Id,
	}, "seller123")
	if err != nil {
		color.Red("Failed to seed seller: %v", err)
		os.Exit(1)
	}

	color.Cyan("Seeding listings...")
	if err := seedListings(ctx, factory, seller); err != nil {
		color.Red("Failed to seed listings: %v", err)
		os.Exit(1)
	}
	color.Green("Done.")
}

func ensureUser(ctx context.Context, factory unitofwork.RepositoryFactory, user *entity.User, password string) (*entity.User, error) {
	uow := factory.NewUnitOfWork(ctx)
	existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: user.Email})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		color.Yellow("  skip %s (%s): already exists", user.Email, user.Role)
		return existing, nil
	}

	hash, err := service.HashPassword(password)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user.Id = uuid.New()
	user.PasswordHash = hash
	user.IsActive = true
	user.CreatedAt = now
	user.UpdatedAt = now
	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, err
	}
	color.Green("  created %s (%s)", user.Email, user.Role)
	return user, nil
}

func seedListings(ctx context.Context, factory unitofwork.RepositoryFactory, seller *entity.User) error {
	uow := factory.NewUnitOfWork(ctx)
	mine, err := uow.MilkRepository().FindAll(ctx, specification.OwnedBySeller{SellerID: seller.Id})
	if err != nil {
		return err
	}
	if len(mine) > 0 {
		color.Yellow("  skip listings: seller already has %d", len(mine))
		return nil
	}

	everyDay := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	listings := []*entity.Milk{
		{MilkType: entity.MilkTypeCow, PricePerLiter: 56, FatPercentage: 3.5, AvailabilityDays: everyDay},
		{MilkType: entity.MilkTypeBuffalo, PricePerLiter: 70, FatPercentage: 6.5, AvailabilityDays: everyDay},
		{MilkType: entity.MilkTypeOther, CustomMilkType: "A2 Gir", PricePerLiter: 90, FatPercentage: 4.2,
			AvailabilityDays: []string{"Monday", "Wednesday", "Friday"}},
	}

	now := time.Now()
	for _, m := range listings {
		m.Id = uuid.New()
		m.SellerId = seller.Id
		m.IsAvailable = true
		m.CreatedAt = now
		m.UpdatedAt = now
		if err := m.Validate(); err != nil {
			return err
		}
		if err := uow.MilkRepository().Create(ctx, m); err != nil {
			return err
		}
		color.Green("  created %s listing", m.EffectiveType())
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
