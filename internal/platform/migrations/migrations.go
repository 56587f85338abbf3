package migrations

import (
	"time"

	"gorm.io/gorm"
)

// Run applies the schema for the durable session store and the order registry.
// Adapters never automigrate on their own.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&sessionRecord{},
		&orderRecord{},
	)
}

// Session schema mirrors the session Postgres adapter.
type sessionRecord struct {
	ClientID  string    `gorm:"primaryKey;column:client_id;size:64"`
	Key       string    `gorm:"primaryKey;column:key;size:64"`
	Value     string    `gorm:"column:value"`
	ExpiresAt time.Time `gorm:"column:expires_at;index"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (sessionRecord) TableName() string { return "client_sessions" }

// Order schema mirrors the orders Postgres adapter.
type orderRecord struct {
	ID              int64     `gorm:"primaryKey;column:id"`
	Reference       string    `gorm:"column:reference;size:32;uniqueIndex"`
	Status          string    `gorm:"column:status;type:varchar(32);index"`
	CustomerName    string    `gorm:"column:customer_name"`
	CustomerAddress string    `gorm:"column:customer_address"`
	CustomerPhone   string    `gorm:"column:customer_phone;size:32"`
	Note            string    `gorm:"column:note"`
	Position        int       `gorm:"column:position;index"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }
