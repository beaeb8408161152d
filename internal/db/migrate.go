package db

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	migrate "github.com/golang-migrate/migrate/v4"
	// Blank imports register the postgres driver and file source for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/groupebh/gbh-backend/internal/models"
)

// AllModels lists every persisted type, in FK dependency order.
func AllModels() []any {
	return []any{
		&models.AdminUser{},
		&models.BusinessEntity{},
		&models.Category{},
		&models.Product{},
		&models.Service{},
		&models.Project{},
		&models.Article{},
		&models.PressRelease{},
		&models.JobOffer{},
		&models.Testimonial{},
		&models.FaqItem{},
		&models.Partner{},
		&models.Statistic{},
		&models.Milestone{},
		&models.Value{},
		&models.SocialLink{},
		&models.TeamMember{},
		&models.ContactMessage{},
	}
}

func ConnectAndMigrate() (*gorm.DB, error) {
	dsn := GetNormalizedDSN()
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_DSN est vide, vérifiez la configuration de l'environnement")
	}
	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "1" {
		logLevel = logger.Info
	}
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}

	var db *gorm.DB
	var err error
	for i := 0; i < 10; i++ {
		if IsSQLite(dsn) {
			db, err = gorm.Open(sqlite.Open(dsn), cfg)
		} else {
			db, err = gorm.Open(postgres.Open(dsn), cfg)
		}
		if err == nil {
			break
		}
		fmt.Println("Retrying DB connection...", err)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect database after retries: %w", err)
	}

	if pingErr := db.Exec("SELECT 1").Error; pingErr != nil {
		return nil, fmt.Errorf("db ping failed: %w", pingErr)
	}

	// Print masked DSN once for diagnostics.
	masked := dsn
	if strings.Contains(masked, "password=") {
		re := regexp.MustCompile(`(password=)([^\s]+)`)
		masked = re.ReplaceAllString(masked, `${1}***`)
	}
	fmt.Println("[DB] Using DSN:", masked)

	// MIGRATIONS=1 runs sql migrations via golang-migrate; otherwise AutoMigrate (dev convenience).
	if v := strings.ToLower(os.Getenv("MIGRATIONS")); v == "1" || v == "true" || v == "yes" {
		if err := runSQLMigrations(dsn); err != nil {
			return nil, fmt.Errorf("sql migrations failed: %w", err)
		}
	} else {
		for _, m := range AllModels() {
			if migErr := db.AutoMigrate(m); migErr != nil {
				return nil, fmt.Errorf("automigrate %T: %w", m, migErr)
			}
		}
	}

	for _, table := range []string{"admin_users", "business_entities", "contact_messages"} {
		if !db.Migrator().HasTable(table) {
			return nil, errors.New("missing table after migration: " + table)
		}
	}
	if v := strings.ToLower(os.Getenv("DB_SEED")); v == "1" || v == "true" || v == "yes" {
		Seed(db)
	}
	return db, nil
}

// Seed inserts the holding's five business entities and a bootstrap admin
// account when they are absent. Idempotent.
func Seed(db *gorm.DB) {
	entities := []models.BusinessEntity{
		{Code: "GROUPE", FullName: "Groupe BH", ShortName: "Groupe", PageSlug: "groupe", ColorPrimary: "#1A1A2E", DisplayOrder: 0, IsActive: true},
		{Code: "RBF", FullName: "BH Bâtiment & Fondations", ShortName: "RBF", PageSlug: "rbf", ColorPrimary: "#C74634", DisplayOrder: 1, IsActive: true},
		{Code: "RIC", FullName: "BH Ingénierie & Construction", ShortName: "RIC", PageSlug: "ric", ColorPrimary: "#1F6FB2", DisplayOrder: 2, IsActive: true},
		{Code: "REVI", FullName: "REV'I Environnement", ShortName: "REV'I", PageSlug: "revi", ColorPrimary: "#2E8B57", DisplayOrder: 3, IsActive: true},
		{Code: "RBA", FullName: "BH Académie", ShortName: "RBA", PageSlug: "rba", ColorPrimary: "#D4A017", DisplayOrder: 4, IsActive: true},
	}
	for _, e := range entities {
		var existing models.BusinessEntity
		if err := db.Where("code = ?", e.Code).First(&existing).Error; errors.Is(err, gorm.ErrRecordNotFound) {
			db.Create(&e)
		}
	}

	var count int64
	if err := db.Model(&models.AdminUser{}).Count(&count).Error; err == nil && count == 0 {
		password := os.Getenv("ADMIN_PASSWORD")
		if password == "" {
			password = "changeme"
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err == nil {
			db.Create(&models.AdminUser{Username: "admin", Password: string(hash), Role: models.RoleAdmin})
		}
	}
}

// runSQLMigrations executes migrations in ./migrations using the file source.
func runSQLMigrations(dsn string) error {
	m, err := migrate.New("file://migrations", dsn)
	if err != nil {
		return err
	}
	if err = m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}
