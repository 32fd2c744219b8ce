package repository

import (
	"log"
	"time"

	invdomain "hqadmin-backend/internal/inventory/domain"

	"gorm.io/gorm"
)

// ScannerRepository reads headquarters inventory state and produces ranked
// candidate lists for the two alert rules. Both queries are read-only and
// side-effect free.
type ScannerRepository interface {
	FindStockLow(maxRows int) ([]invdomain.StockLowCandidate, error)
	FindExpireSoon(today time.Time, daysThreshold, maxRows int) ([]invdomain.ExpireSoonCandidate, error)
}

type scannerRepository struct {
	db *gorm.DB
}

// NewScannerRepository creates a new instance of scannerRepository
func NewScannerRepository(db *gorm.DB) ScannerRepository {
	return &scannerRepository{db: db}
}

// FindStockLow fetches the HQ inventory read-model for in-use materials and
// ranks it in memory (threshold fallback, deficiency ratio ordering, cap).
func (r *scannerRepository) FindStockLow(maxRows int) ([]invdomain.StockLowCandidate, error) {
	var rows []invdomain.StockLowRow
	err := r.db.
		Table("hq_inventories AS inv").
		Select("m.id AS material_id, m.name AS material_name, inv.quantity AS quantity, " +
			"inv.optimal_quantity AS inventory_optimal, m.optimal_quantity AS material_optimal").
		Joins("JOIN materials m ON m.id = inv.material_id").
		Where("m.status = ?", invdomain.MaterialUse).
		// Pre-filter to deficient rows; RankStockLow stays the authority on
		// threshold derivability, ordering and cap
		Where("inv.quantity < COALESCE(inv.optimal_quantity, m.optimal_quantity)").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return invdomain.RankStockLow(rows, maxRows), nil
}

// FindExpireSoon fetches HQ-held lots with remaining quantity inside the
// alert window and ranks them by urgency. The SQL window bounds mirror the
// half-open [today, today+days+1) rule re-applied in RankExpireSoon.
func (r *scannerRepository) FindExpireSoon(today time.Time, daysThreshold, maxRows int) ([]invdomain.ExpireSoonCandidate, error) {
	start, endExclusive := expiryWindow(today, daysThreshold)

	var rows []invdomain.ExpireSoonRow
	err := r.db.
		Table("inventory_lots AS b").
		Select("m.id AS material_id, m.name AS material_name, b.lot_code AS lot_code, "+
			"b.expiration_date AS expiration_date, b.quantity AS quantity").
		Joins("JOIN materials m ON m.id = b.material_id").
		Where("m.status = ?", invdomain.MaterialUse).
		Where("b.store_id IS NULL"). // HQ-held lots only
		Where("b.quantity > 0").
		Where("b.expiration_date >= ? AND b.expiration_date < ?", start, endExclusive).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return invdomain.RankExpireSoon(rows, today, daysThreshold, maxRows), nil
}

// expiryWindow builds the half-open [today 00:00, today+days+1 00:00) bounds.
// Expiration dates are stored at midnight, so the lower bound must be the
// start of today: comparing against a mid-day timestamp would drop lots that
// expire today.
func expiryWindow(today time.Time, daysThreshold int) (time.Time, time.Time) {
	start := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	return start, start.AddDate(0, 0, daysThreshold+1)
}

// noopScannerRepository is the fallback used when the inventory store is not
// configured: every scan safely returns empty results.
type noopScannerRepository struct{}

// NewNoopScannerRepository creates a scanner with no backing store
func NewNoopScannerRepository() ScannerRepository {
	return &noopScannerRepository{}
}

func (n *noopScannerRepository) FindStockLow(maxRows int) ([]invdomain.StockLowCandidate, error) {
	log.Printf("[HQ-Scanner][NoOp] findStockLow(maxRows=%d)", maxRows)
	return []invdomain.StockLowCandidate{}, nil
}

func (n *noopScannerRepository) FindExpireSoon(today time.Time, daysThreshold, maxRows int) ([]invdomain.ExpireSoonCandidate, error) {
	log.Printf("[HQ-Scanner][NoOp] findExpireSoon(today=%s, days=%d, max=%d)",
		today.Format("2006-01-02"), daysThreshold, maxRows)
	return []invdomain.ExpireSoonCandidate{}, nil
}
