package models

import "time"

// Vente - vente définitive d'une propriété (revenu entreprise)
type Vente struct {
	ID          uint      `gorm:"primaryKey"`
	ClientID    uint      `gorm:"index;not null"`
	Client      Client    `gorm:"foreignKey:ClientID"`
	ProprieteID uint      `gorm:"index;not null"`
	Propriete   Propriete `gorm:"foreignKey:ProprieteID"`
	Montant     float64   `gorm:"not null"`
	DateVente   time.Time `gorm:"index;not null"`
	Reference   string    `gorm:"size:50"`
	Description string    `gorm:"size:500"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
