package models

import "time"

// PaiementCaution - dépôt de garantie encaissé sur un bail
type PaiementCaution struct {
	ID            uint     `gorm:"primaryKey"`
	LocationID    uint     `gorm:"index;not null"`
	Location      Location `gorm:"foreignKey:LocationID"`
	Montant       float64  `gorm:"not null"`
	MoisConcerne  string   `gorm:"size:20"`
	AnneeConcerne int
	DatePaiement  time.Time `gorm:"index;not null"`
	Reference     string    `gorm:"size:50"`
	Rembourse     bool      `gorm:"default:false"` // true après remboursement_caution
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
