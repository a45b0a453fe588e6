package main

import (
	"os"

	"adorder-be/internal/model"
	"adorder-be/pkg/admin/user"
	"adorder-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func main() {
	if err := godotenv.Load(); err != nil {
		color.Yellow("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		color.Red("Error: DB_CONNECTION_STRING is not set")
		os.Exit(1)
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		color.Red("Error: Failed to connect to database: %v", err)
		os.Exit(1)
	}

	color.Cyan("Seeding admin account...")
	if err := seedAdmin(db); err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}

	color.Cyan("Seeding pricing rules...")
	seedPricingRules(db)

	color.Cyan("Seeding catalog...")
	templates := seedTemplates(db)
	seedProducts(db, templates)

	color.Green("Seeding completed!")
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func seedAdmin(db *gorm.DB) error {
	email := getEnv("SEED_ADMIN_EMAIL", "admin@adorder.local")

	var existing model.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		color.Yellow("Admin '%s' already exists, skipping...", email)
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(getEnv("SEED_ADMIN_PASSWORD", "changeme123")), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	hashStr := string(hash)
	code, err := user.GenerateAccountCode()
	if err != nil {
		return err
	}

	admin := model.User{
		Id:           uuid.New(),
		Email:        email,
		PasswordHash: &hashStr,
		DisplayName:  "Administrator",
		AccountCode:  code,
		Tier:         "admin",
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	if err := db.Create(&model.Wallet{UserId: admin.Id}).Error; err != nil {
		return err
	}
	color.Green("Created admin: %s (%s)", admin.Email, admin.AccountCode)
	return nil
}

func seedPricingRules(db *gorm.DB) {
	rules := []model.TierPricingRule{
		{Tier: "T1", Multiplier: decimal.RequireFromString("1.10"), Active: true},
		{Tier: "T2", Multiplier: decimal.RequireFromString("1.30"), Active: true},
		{Tier: "T3", Multiplier: decimal.RequireFromString("1.50"), Active: true},
		{Tier: "T4", Multiplier: decimal.RequireFromString("1.70"), Active: true},
		{Tier: "admin", Multiplier: decimal.NewFromInt(1), Active: true},
	}
	for _, r := range rules {
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&r).Error; err != nil {
			color.Red("Error creating pricing rule '%s': %v", r.Tier, err)
			continue
		}
		color.Green("Pricing rule: %s x%s", r.Tier, r.Multiplier.String())
	}
}

func seedTemplates(db *gorm.DB) map[string]uuid.UUID {
	templates := []model.InputFieldTemplate{
		{FieldKey: "place_url", Label: "Place URL", FieldType: "URL", HelpText: "Link to the business listing"},
		{FieldKey: "keyword", Label: "Keyword", FieldType: "TEXT", HelpText: "Search keyword to target"},
		{FieldKey: "start_date", Label: "Start Date", FieldType: "DATE"},
		{FieldKey: "memo", Label: "Memo", FieldType: "TEXTAREA"},
	}

	ids := make(map[string]uuid.UUID, len(templates))
	for _, t := range templates {
		var existing model.InputFieldTemplate
		if err := db.Where("field_key = ?", t.FieldKey).First(&existing).Error; err == nil {
			ids[t.FieldKey] = existing.Id
			continue
		}
		t.Id = uuid.New()
		if err := db.Create(&t).Error; err != nil {
			color.Red("Error creating template '%s': %v", t.FieldKey, err)
			continue
		}
		ids[t.FieldKey] = t.Id
		color.Green("Created template: %s", t.FieldKey)
	}
	return ids
}

func seedProducts(db *gorm.DB, templates map[string]uuid.UUID) {
	products := []model.Product{
		{Name: "Place Traffic", Description: "Daily visits to a business listing", BasePrice: 1000, Unit: "건", Category: "traffic", Tags: datatypes.JSONSlice[string]{"place", "traffic"}, IsActive: true},
		{Name: "Place Save", Description: "Daily saves of a business listing", BasePrice: 1500, Unit: "건", Category: "save", Tags: datatypes.JSONSlice[string]{"place"}, IsActive: true},
		{Name: "Blog Review", Description: "Review posts on partner blogs", BasePrice: 30000, Unit: "건", Category: "review", Tags: datatypes.JSONSlice[string]{"blog"}, IsActive: true},
	}

	for _, p := range products {
		var existing model.Product
		if err := db.Where("name = ?", p.Name).First(&existing).Error; err == nil {
			color.Yellow("Product '%s' already exists, skipping...", p.Name)
			continue
		}
		p.Id = uuid.New()
		if err := db.Create(&p).Error; err != nil {
			color.Red("Error creating product '%s': %v", p.Name, err)
			continue
		}

		order := 0
		for _, key := range []string{"place_url", "keyword", "start_date"} {
			templateId, ok := templates[key]
			if !ok {
				continue
			}
			def := model.ProductInputDef{
				Id:         uuid.New(),
				ProductId:  p.Id,
				TemplateId: templateId,
				Required:   key != "keyword",
				SortOrder:  order,
			}
			order++
			if err := db.Create(&def).Error; err != nil {
				color.Red("Error linking '%s' to '%s': %v", key, p.Name, err)
			}
		}
		color.Green("Created product: %s (%d)", p.Name, p.BasePrice)
	}
}
