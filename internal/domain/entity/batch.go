package entity

import "time"

// StockBatch is a tracked lot of a stock item.
type StockBatch struct {
	UUID          string
	BatchNo       string
	StockItemUUID string
	BrandName     string
	Expiration    *time.Time
	Voided        bool
}

// BatchInventory is the quantity/location view of a batch as reported by the
// inventory transactions source. Quantity arrives as free text and is parsed
// at filter time.
type BatchInventory struct {
	BatchNo            string
	Quantity           string
	LocationName       string
	PackagingUoMName   string
	PackagingUoMFactor string
}
