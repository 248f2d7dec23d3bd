package assistant

import (
	"database/sql"
	"fmt"
)

func initDatabase(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := exec(tx, `
		CREATE TABLE IF NOT EXISTS portfolio_summary (
			id INTEGER PRIMARY KEY CHECK(id = 1),
			total_value REAL NOT NULL,
			total_pnl REAL NOT NULL,
			total_pnl_percent REAL NOT NULL,
			day_change REAL NOT NULL,
			day_change_percent REAL NOT NULL,
			week_change REAL NOT NULL,
			week_change_percent REAL NOT NULL,
			month_change REAL NOT NULL,
			month_change_percent REAL NOT NULL,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return err
	}

	if err := exec(tx, `
		CREATE TABLE IF NOT EXISTS assets (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			symbol TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			quantity REAL NOT NULL,
			avg_cost REAL NOT NULL,
			current_price REAL NOT NULL,
			sector TEXT NOT NULL DEFAULT '',
			asset_type TEXT NOT NULL DEFAULT 'stock',
			position INTEGER NOT NULL
		)
	`); err != nil {
		return err
	}

	if err := exec(tx, `
		CREATE TABLE IF NOT EXISTS assistant_settings (
			id INTEGER PRIMARY KEY CHECK(id = 1),
			provider TEXT NOT NULL DEFAULT 'gemini',
			gemini_model TEXT NOT NULL DEFAULT '',
			openai_model TEXT NOT NULL DEFAULT '',
			anthropic_model TEXT NOT NULL DEFAULT '',
			rest_model TEXT NOT NULL DEFAULT '',
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return err
	}

	if err := seedPortfolio(tx); err != nil {
		return err
	}

	return tx.Commit()
}

func exec(tx *sql.Tx, query string, args ...any) error {
	if _, err := tx.Exec(query, args...); err != nil {
		return fmt.Errorf("exec schema statement: %w", err)
	}
	return nil
}

type seedAsset struct {
	symbol    string
	name      string
	quantity  float64
	avgCost   float64
	price     float64
	sector    string
	assetType string
}

// Demo portfolio used until a real brokerage feed replaces the store.
var seedAssets = []seedAsset{
	{"AAPL", "Apple Inc.", 150, 145.32, 173.50, "Technology", "stock"},
	{"GOOGL", "Alphabet Inc.", 75, 132.45, 142.20, "Technology", "stock"},
	{"MSFT", "Microsoft Corporation", 85, 289.75, 415.26, "Technology", "stock"},
	{"NVDA", "NVIDIA Corporation", 25, 420.15, 496.74, "Technology", "stock"},
	{"META", "Meta Platforms Inc.", 45, 198.75, 324.50, "Technology", "stock"},
	{"AMD", "Advanced Micro Devices", 60, 98.32, 124.67, "Technology", "stock"},
	{"TSLA", "Tesla, Inc.", 40, 187.60, 242.84, "Electric Vehicles", "stock"},
	{"JPM", "JPMorgan Chase & Co.", 50, 142.30, 168.45, "Finance", "stock"},
	{"SPY", "SPDR S&P 500 ETF", 30, 412.80, 445.60, "Index Fund", "etf"},
	{"VTI", "Vanguard Total Stock Market ETF", 40, 218.45, 238.90, "Index Fund", "etf"},
	{"BTC", "Bitcoin", 0.75, 38500.00, 43250.00, "Cryptocurrency", "crypto"},
	{"ETH", "Ethereum", 8.5, 2180.00, 2420.00, "Cryptocurrency", "crypto"},
}

func seedPortfolio(tx *sql.Tx) error {
	var count int
	if err := tx.QueryRow("SELECT COUNT(*) FROM assets").Scan(&count); err != nil {
		return err
	}
	if count == 0 {
		for i, a := range seedAssets {
			if _, err := tx.Exec(`
				INSERT INTO assets (symbol, name, quantity, avg_cost, current_price, sector, asset_type, position)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				a.symbol, a.name, a.quantity, a.avgCost, a.price, a.sector, a.assetType, i,
			); err != nil {
				return fmt.Errorf("seed asset %s: %w", a.symbol, err)
			}
		}
	}

	if err := tx.QueryRow("SELECT COUNT(*) FROM portfolio_summary").Scan(&count); err != nil {
		return err
	}
	if count == 0 {
		if _, err := tx.Exec(`
			INSERT INTO portfolio_summary
				(id, total_value, total_pnl, total_pnl_percent,
				 day_change, day_change_percent, week_change, week_change_percent,
				 month_change, month_change_percent)
			VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			487650.42, 72850.67, 17.5,
			-2134.56, -0.43, 5456.78, 1.12, 12765.43, 2.69,
		); err != nil {
			return fmt.Errorf("seed summary: %w", err)
		}
	}

	return nil
}
