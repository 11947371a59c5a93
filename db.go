package main

import (
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/AravindhAjit/my-wealth-atlas/models"
)

func initDB(dsn string) *gorm.DB {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatal("open db", "err", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("get sql db", "err", err)
	}
	if err := sqlDB.Ping(); err != nil {
		log.Fatal("ping db", "err", err)
	}

	if err := migrate(db); err != nil {
		log.Fatal("migrate", "err", err)
	}
	if os.Getenv("SEED_DEV") == "1" {
		if err := seedDevData(db); err != nil {
			log.Fatal("seed", "err", err)
		}
	}
	return db
}

func migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Profile{},
		&models.Account{},
		&models.Category{},
		&models.Transaction{},
	)
	if err != nil {
		return err
	}

	// Referential actions the balance invariant relies on: deleting an
	// account removes its transactions, deleting a category only clears
	// the reference.
	constraintStmts := []string{
		`ALTER TABLE transactions ADD CONSTRAINT fk_transactions_account FOREIGN KEY (account_id) REFERENCES accounts (id) ON DELETE CASCADE`,
		`ALTER TABLE transactions ADD CONSTRAINT fk_transactions_category FOREIGN KEY (category_id) REFERENCES categories (id) ON DELETE SET NULL`,
	}
	for _, s := range constraintStmts {
		if err := db.Exec(s).Error; err != nil {
			// likely exists already (error 1826/1061); harmless on re-run
		}
	}

	viewStmts := []string{
		`CREATE OR REPLACE VIEW v_account_summary AS
			SELECT a.id AS account_id, a.owner_id, a.name, a.currency, a.current_balance,
			       COALESCE(SUM(CASE WHEN t.type = 'income' THEN t.amount ELSE 0 END), 0) AS total_income,
			       COALESCE(SUM(CASE WHEN t.type = 'expense' THEN t.amount ELSE 0 END), 0) AS total_expense,
			       COALESCE(SUM(CASE WHEN t.type = 'income' THEN t.amount ELSE -t.amount END), 0) AS net
			FROM accounts a
			LEFT JOIN transactions t ON t.account_id = a.id
			GROUP BY a.id, a.owner_id, a.name, a.currency, a.current_balance`,
	}
	for _, s := range viewStmts {
		if err := db.Exec(s).Error; err != nil {
			log.Warn("migration view", "err", err)
		}
	}

	indexStmts := []string{
		`CREATE INDEX idx_transactions_owner_date ON transactions (owner_id, date)`,
		`CREATE INDEX idx_transactions_account_date ON transactions (account_id, date)`,
	}
	for _, s := range indexStmts {
		if err := db.Exec(s).Error; err != nil {
			// duplicate key name on re-run, ignore
		}
	}

	return nil
}

func seedDevData(db *gorm.DB) error {
	const devOwner = "dev-user"

	var cnt int64
	if err := db.Model(&models.Account{}).Where("owner_id = ?", devOwner).Count(&cnt).Error; err != nil {
		return err
	}
	if cnt > 0 {
		return nil
	}

	now := time.Now().UTC()
	if err := db.Create(&models.Profile{ID: devOwner, DisplayName: "Dev User", CreatedAt: now, UpdatedAt: now}).Error; err != nil {
		return err
	}

	salary := models.Category{ID: "CAT-SALARY", OwnerID: devOwner, Name: "Salary", Color: "#2ecc71", Type: models.TransactionTypeIncome, CreatedAt: now, UpdatedAt: now}
	groceries := models.Category{ID: "CAT-GROCERIES", OwnerID: devOwner, Name: "Groceries", Color: "#e67e22", Type: models.TransactionTypeExpense, CreatedAt: now, UpdatedAt: now}
	if err := db.Create(&[]models.Category{salary, groceries}).Error; err != nil {
		return err
	}

	day := func(d int) time.Time { return time.Date(2025, time.August, d, 0, 0, 0, 0, time.UTC) }
	txs := []models.Transaction{
		{ID: "TX-SEED-1", OwnerID: devOwner, AccountID: "ACC-CHECKING", CategoryID: &salary.ID, Type: models.TransactionTypeIncome, Amount: decimal.RequireFromString("2500.00"), Description: "August salary", Date: day(1), CreatedAt: now, UpdatedAt: now},
		{ID: "TX-SEED-2", OwnerID: devOwner, AccountID: "ACC-CHECKING", CategoryID: &groceries.ID, Type: models.TransactionTypeExpense, Amount: decimal.RequireFromString("84.37"), Description: "Weekly groceries", Date: day(4), CreatedAt: now, UpdatedAt: now},
		{ID: "TX-SEED-3", OwnerID: devOwner, AccountID: "ACC-SAVINGS", Type: models.TransactionTypeIncome, Amount: decimal.RequireFromString("300.00"), Description: "Monthly savings top-up", Date: day(5), CreatedAt: now, UpdatedAt: now},
	}

	// Seed balances must satisfy current = initial + signed sum, same rule
	// the ledger maintains from here on.
	accounts := []models.Account{
		{
			ID: "ACC-CHECKING", OwnerID: devOwner, Name: "Checking", Currency: "USD",
			InitialBalance: decimal.RequireFromString("150.00"),
			CurrentBalance: decimal.RequireFromString("150.00").Add(decimal.RequireFromString("2500.00")).Sub(decimal.RequireFromString("84.37")),
			CreatedAt:      now, UpdatedAt: now,
		},
		{
			ID: "ACC-SAVINGS", OwnerID: devOwner, Name: "Savings", Currency: "USD",
			InitialBalance: decimal.RequireFromString("1000.00"),
			CurrentBalance: decimal.RequireFromString("1000.00").Add(decimal.RequireFromString("300.00")),
			CreatedAt:      now, UpdatedAt: now,
		},
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&accounts).Error; err != nil {
			return err
		}
		return tx.Create(&txs).Error
	})
}
