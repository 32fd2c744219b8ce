package domain

import (
	"sort"
	"time"
)

// StockLowCandidate is a transient record for one material currently below
// its effective replenishment threshold. Produced fresh on every scan, never
// persisted.
type StockLowCandidate struct {
	MaterialID   string  `json:"material_id"`
	MaterialName string  `json:"material_name"`
	Quantity     float64 `json:"quantity"`
	Threshold    float64 `json:"threshold"`
}

// ExpireSoonCandidate is a transient record for one lot whose shelf life
// ends inside the alert window.
type ExpireSoonCandidate struct {
	MaterialID     string    `json:"material_id"`
	MaterialName   string    `json:"material_name"`
	LotCode        string    `json:"lot_code"`
	ExpirationDate time.Time `json:"expiration_date"`
	DaysLeft       int       `json:"days_left"`
}

// StockLowRow is the raw read-model row the scanner query returns for the
// stock-low rule: current HQ quantity plus both threshold sources.
type StockLowRow struct {
	MaterialID       string   `gorm:"column:material_id"`
	MaterialName     string   `gorm:"column:material_name"`
	Quantity         float64  `gorm:"column:quantity"`
	InventoryOptimal *float64 `gorm:"column:inventory_optimal"`
	MaterialOptimal  *float64 `gorm:"column:material_optimal"`
}

// EffectiveThreshold resolves the replenishment threshold with the fallback
// chain: inventory-specific override first, then the material default. The
// second return is false when neither is set (or the value is non-positive),
// which excludes the row from scanning.
func (r StockLowRow) EffectiveThreshold() (float64, bool) {
	var threshold *float64
	if r.InventoryOptimal != nil {
		threshold = r.InventoryOptimal
	} else if r.MaterialOptimal != nil {
		threshold = r.MaterialOptimal
	}
	if threshold == nil || *threshold <= 0 {
		return 0, false
	}
	return *threshold, true
}

// ExpireSoonRow is the raw read-model row for the expire-soon rule
type ExpireSoonRow struct {
	MaterialID     string    `gorm:"column:material_id"`
	MaterialName   string    `gorm:"column:material_name"`
	LotCode        string    `gorm:"column:lot_code"`
	ExpirationDate time.Time `gorm:"column:expiration_date"`
	Quantity       float64   `gorm:"column:quantity"`
}

// RankStockLow selects and orders stock-low candidates. An item qualifies
// iff its quantity is strictly below a derivable effective threshold.
// Ordering is by quantity/threshold ascending (most deficient first), ties
// broken by absolute quantity ascending. maxRows caps the result after
// ordering and is never treated as less than 1.
func RankStockLow(rows []StockLowRow, maxRows int) []StockLowCandidate {
	candidates := make([]StockLowCandidate, 0, len(rows))
	for _, row := range rows {
		threshold, ok := row.EffectiveThreshold()
		if !ok || row.Quantity >= threshold {
			continue
		}
		candidates = append(candidates, StockLowCandidate{
			MaterialID:   row.MaterialID,
			MaterialName: row.MaterialName,
			Quantity:     row.Quantity,
			Threshold:    threshold,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		ri := candidates[i].Quantity / candidates[i].Threshold
		rj := candidates[j].Quantity / candidates[j].Threshold
		if ri != rj {
			return ri < rj
		}
		return candidates[i].Quantity < candidates[j].Quantity
	})

	return capRows(candidates, maxRows)
}

// RankExpireSoon selects and orders expire-soon candidates. A lot qualifies
// iff it still holds quantity and its expiration date falls inside the
// half-open window [today, today+daysThreshold+1): a lot expiring exactly
// daysThreshold days out is included, one day further is not. Ordering is by
// days left ascending (most urgent first), then expiration date ascending.
func RankExpireSoon(rows []ExpireSoonRow, today time.Time, daysThreshold, maxRows int) []ExpireSoonCandidate {
	day := truncateToDay(today)
	endExclusive := day.AddDate(0, 0, daysThreshold+1)

	candidates := make([]ExpireSoonCandidate, 0, len(rows))
	for _, row := range rows {
		if row.Quantity <= 0 {
			continue
		}
		expires := truncateToDay(row.ExpirationDate)
		if expires.Before(day) || !expires.Before(endExclusive) {
			continue
		}
		candidates = append(candidates, ExpireSoonCandidate{
			MaterialID:     row.MaterialID,
			MaterialName:   row.MaterialName,
			LotCode:        row.LotCode,
			ExpirationDate: expires,
			DaysLeft:       daysBetween(day, expires),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].DaysLeft != candidates[j].DaysLeft {
			return candidates[i].DaysLeft < candidates[j].DaysLeft
		}
		return candidates[i].ExpirationDate.Before(candidates[j].ExpirationDate)
	})

	return capRows(candidates, maxRows)
}

func capRows[T any](rows []T, maxRows int) []T {
	if maxRows < 1 {
		maxRows = 1
	}
	if len(rows) > maxRows {
		return rows[:maxRows]
	}
	return rows
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// daysBetween counts calendar days between two dates. Both are re-anchored to
// UTC midnight first so a 23-hour DST spring-forward day still counts as one
// full day.
func daysBetween(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}
