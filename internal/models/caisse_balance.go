package models

import "time"

// CaisseBalance - solde courant de la caisse physique.
// La ligne "courante" est celle avec le derniere_maj le plus récent ;
// aucune ligne = solde 0. SoldeCourant et Balance portent la même valeur
// (double colonne héritée du schéma d'origine), toujours écrites ensemble.
type CaisseBalance struct {
	ID           uint    `gorm:"primaryKey"`
	SoldeCourant float64 `gorm:"column:solde_courant;not null"`
	Balance      float64 `gorm:"column:balance;not null"`
	DerniereMaj  time.Time `gorm:"column:derniere_maj;index;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
