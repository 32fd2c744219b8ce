package domain

import "time"

// MaterialStatus marks whether a material is in active use
type MaterialStatus string

const (
	MaterialUse  MaterialStatus = "USE"
	MaterialStop MaterialStatus = "STOP"
)

// Material is the master row for one raw material. OptimalQuantity is the
// chain-wide default replenishment threshold; headquarters inventory rows can
// override it.
type Material struct {
	ID              string         `json:"id" gorm:"primaryKey"`
	Name            string         `json:"name" gorm:"size:128;not null"`
	Status          MaterialStatus `json:"status" gorm:"size:16;not null;index"`
	OptimalQuantity *float64       `json:"optimal_quantity"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// HqInventory is the headquarters stock row for one material
type HqInventory struct {
	ID              string    `json:"id" gorm:"primaryKey"`
	MaterialID      string    `json:"material_id" gorm:"index;not null"`
	Quantity        float64   `json:"quantity" gorm:"not null"`
	OptimalQuantity *float64  `json:"optimal_quantity"` // overrides the material default when set
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// InventoryLot is one received batch of a material. A nil StoreID means the
// lot is held at headquarters.
type InventoryLot struct {
	ID             string    `json:"id" gorm:"primaryKey"`
	MaterialID     string    `json:"material_id" gorm:"index;not null"`
	StoreID        *string   `json:"store_id" gorm:"index"`
	LotCode        string    `json:"lot_code" gorm:"size:64"`
	Quantity       float64   `json:"quantity" gorm:"not null"`
	ExpirationDate time.Time `json:"expiration_date" gorm:"index;not null"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
