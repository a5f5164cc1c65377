package models

import (
	"log"

	"gorm.io/gorm"
)

func MigrateTable(db *gorm.DB) {
	err := db.AutoMigrate(
		&Invoice{}, &InvoiceItem{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
