package models

import "time"

type StatutFacture string

const (
	FactureImpayee       StatutFacture = "impayee"
	FacturePartiellement StatutFacture = "partiellement_payee"
	FacturePayee         StatutFacture = "payee"
)

// Facture - facture fournisseur ; le cumul montant_paye entre dans les dépenses entreprise
type Facture struct {
	ID          uint    `gorm:"primaryKey"`
	Fournisseur string  `gorm:"size:150;not null"`
	Numero      string  `gorm:"size:50;uniqueIndex;not null"`
	Montant     float64 `gorm:"not null"` // montant total facturé
	MontantPaye float64 `gorm:"column:montant_paye;default:0"`
	DateEmission time.Time `gorm:"index;not null"`
	DateEcheance *time.Time
	Statut      StatutFacture `gorm:"size:30;not null;default:'impayee'"`
	Description string        `gorm:"size:500"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
