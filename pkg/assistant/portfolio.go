package assistant

import (
	"sort"
)

// GetPortfolioSummary returns the stored aggregate portfolio figures.
func (c *Core) GetPortfolioSummary() (PortfolioSummary, error) {
	var s PortfolioSummary
	err := c.db.QueryRow(`
		SELECT total_value, total_pnl, total_pnl_percent,
		       day_change, day_change_percent,
		       week_change, week_change_percent,
		       month_change, month_change_percent
		FROM portfolio_summary WHERE id = 1
	`).Scan(
		&s.TotalValue, &s.TotalUnrealizedPnL, &s.TotalUnrealizedPnLPercent,
		&s.DayChange, &s.DayChangePercent,
		&s.WeekChange, &s.WeekChangePercent,
		&s.MonthChange, &s.MonthChangePercent,
	)
	if err != nil {
		return PortfolioSummary{}, WrapError(ErrCodeDatabase, "load portfolio summary", err)
	}
	return s, nil
}

// GetAssets returns all holdings in their stored order, with market value
// and unrealized P&L derived from quantity, cost basis and current price.
func (c *Core) GetAssets() ([]Asset, error) {
	rows, err := c.db.Query(`
		SELECT symbol, name, quantity, avg_cost, current_price, sector, asset_type
		FROM assets ORDER BY position
	`)
	if err != nil {
		return nil, WrapError(ErrCodeDatabase, "query assets", err)
	}
	defer rows.Close()

	var assets []Asset
	for rows.Next() {
		var a Asset
		if err := rows.Scan(&a.Symbol, &a.Name, &a.Quantity, &a.AvgCost, &a.CurrentPrice, &a.Sector, &a.AssetType); err != nil {
			return nil, WrapError(ErrCodeDatabase, "scan asset row", err)
		}
		deriveAssetFigures(&a)
		assets = append(assets, a)
	}
	if err := rows.Err(); err != nil {
		return nil, WrapError(ErrCodeDatabase, "iterate assets", err)
	}
	if assets == nil {
		assets = []Asset{}
	}
	return assets, nil
}

func deriveAssetFigures(a *Asset) {
	qty := NewAmount(a.Quantity)
	a.MarketValue = Amount{qty.Mul(a.CurrentPrice.Decimal)}
	costBasis := qty.Mul(a.AvgCost.Decimal)
	a.UnrealizedPnL = Amount{a.MarketValue.Sub(costBasis)}
	if !costBasis.IsZero() {
		pct, _ := a.UnrealizedPnL.Div(costBasis).Mul(NewAmount(100).Decimal).Round(2).Float64()
		a.UnrealizedPnLPercent = pct
	}
}

// GetAllocation aggregates holdings by asset type as a share of total
// market value, largest share first.
func (c *Core) GetAllocation() ([]AllocationEntry, error) {
	assets, err := c.GetAssets()
	if err != nil {
		return nil, err
	}

	totals := make(map[string]Amount)
	total := NewAmount(0)
	for _, a := range assets {
		entry := totals[a.AssetType]
		totals[a.AssetType] = Amount{entry.Add(a.MarketValue.Decimal)}
		total = Amount{total.Add(a.MarketValue.Decimal)}
	}

	entries := make([]AllocationEntry, 0, len(totals))
	for assetType, value := range totals {
		label := AssetTypeLabels[assetType]
		if label == "" {
			label = assetType
		}
		entry := AllocationEntry{AssetType: assetType, Label: label, Value: value}
		if !total.IsZero() {
			pct, _ := value.Div(total.Decimal).Mul(NewAmount(100).Decimal).Round(1).Float64()
			entry.Percent = pct
		}
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Percent != entries[j].Percent {
			return entries[i].Percent > entries[j].Percent
		}
		return entries[i].AssetType < entries[j].AssetType
	})
	return entries, nil
}

// snapshot loads the full portfolio state consumed by a single turn.
func (c *Core) snapshot() (PortfolioSummary, []Asset, error) {
	summary, err := c.GetPortfolioSummary()
	if err != nil {
		return PortfolioSummary{}, nil, err
	}
	assets, err := c.GetAssets()
	if err != nil {
		return PortfolioSummary{}, nil, err
	}
	return summary, assets, nil
}
