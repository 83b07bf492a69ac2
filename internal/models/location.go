package models

import "time"

type StatutLocation string

const (
	LocationActive   StatutLocation = "active"
	LocationResiliee StatutLocation = "resiliee"
)

// Location - bail liant un client à une propriété
type Location struct {
	ID           uint      `gorm:"primaryKey"`
	ClientID     uint      `gorm:"index;not null"`
	Client       Client    `gorm:"foreignKey:ClientID"`
	ProprieteID  uint      `gorm:"index;not null"`
	Propriete    Propriete `gorm:"foreignKey:ProprieteID"`
	LoyerMensuel float64   `gorm:"not null"`
	Caution      float64   // montant de la caution exigée à la signature
	DateDebut    time.Time `gorm:"not null"`
	DateFin      *time.Time
	Statut       StatutLocation `gorm:"size:20;not null;default:'active'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PaiementLoyer - paiement de loyer encaissé sur un bail (source de revenus entreprise)
type PaiementLoyer struct {
	ID            uint     `gorm:"primaryKey"`
	LocationID    uint     `gorm:"index;not null"`
	Location      Location `gorm:"foreignKey:LocationID"`
	Montant       float64  `gorm:"not null"`
	MoisConcerne  string   `gorm:"size:20"` // "Janvier".."Décembre"
	AnneeConcerne int
	DatePaiement  time.Time `gorm:"index;not null"`
	Reference     string    `gorm:"size:50"` // référence du reçu
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
