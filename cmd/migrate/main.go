package main

import (
	"log"
	"os"

	"adorder-be/internal/model"
	"adorder-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Step 1: Setting up extensions...")
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		log.Printf("Warn: Failed to create pgcrypto extension: %v. Continuing...", err)
	}

	models := model.All()
	log.Printf("Step 2: Running AutoMigrate for %d tables...", len(models))
	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	log.Println("Step 3: Creating constraints and views...")
	postMigrationSQL := []string{
		`DO $$ BEGIN
		   IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_point_ledger_type') THEN
		     ALTER TABLE point_ledger ADD CONSTRAINT chk_point_ledger_type
		       CHECK (transaction_type IN ('charge', 'deduct', 'refund', 'admin_adjust'));
		   END IF;
		 END $$;`,

		// View: wallet_reconciliation
		`CREATE OR REPLACE VIEW wallet_reconciliation AS
		 SELECT w.user_id, w.balance AS maintained, COALESCE(SUM(l.amount), 0) AS ledger_sum
		 FROM wallets w LEFT JOIN point_ledger l ON l.user_id = w.user_id
		 GROUP BY w.user_id, w.balance;`,
	}
	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute post-migration SQL: %v", err)
		}
	}

	log.Println("Success: Database migration completed.")
}
