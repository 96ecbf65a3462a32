package model

import (
	"fmt"
	"log"

	"gorm.io/gorm"
)

// All lists every persisted model in dependency order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Milk{},
		&Subscription{},
		&SubscriptionPausedDate{},
		&Order{},
		&Payment{},
		&Rating{},
	}
}

var postMigrationSQL = []string{
	// One live delivery per subscription day
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_orders_subscription_day
	 ON orders (subscription_id, delivery_date)
	 WHERE subscription_id IS NOT NULL AND status <> 'cancelled';`,

	`CREATE INDEX IF NOT EXISTS idx_orders_seller_delivery ON orders (seller_id, delivery_date);`,
	`CREATE INDEX IF NOT EXISTS idx_subscriptions_status_end ON subscriptions (status, end_date);`,
	`CREATE INDEX IF NOT EXISTS idx_payments_seller_paid ON payments (seller_id, paid_at) WHERE payment_status = 'completed';`,

	`DO $$ BEGIN
	   ALTER TABLE payments ADD CONSTRAINT chk_payments_reference
	   CHECK (order_id IS NOT NULL OR subscription_id IS NOT NULL);
	 EXCEPTION WHEN duplicate_object THEN NULL; END $$;`,
}

// Migrate creates the schema. It is idempotent.
func Migrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		log.Printf("Warn: Failed to create pgcrypto extension: %v. Continuing...", err)
	}

	if err := db.AutoMigrate(All()...); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}

	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("post-migration: %w", err)
		}
	}
	return nil
}
