package models

import "time"

type StatutSouscription string

const (
	SouscriptionEnCours  StatutSouscription = "en_cours"
	SouscriptionSoldee   StatutSouscription = "soldee"
	SouscriptionResiliee StatutSouscription = "resiliee"
)

// Souscription - achat de terrain payé par tranches, avec droit de terre récurrent
type Souscription struct {
	ID             uint      `gorm:"primaryKey"`
	ClientID       uint      `gorm:"index;not null"`
	Client         Client    `gorm:"foreignKey:ClientID"`
	ProprieteID    uint      `gorm:"index;not null"`
	Propriete      Propriete `gorm:"foreignKey:ProprieteID"`
	MontantTotal   float64   `gorm:"not null"`
	MontantVerse   float64   `gorm:"default:0"` // cumul des tranches encaissées (dénormalisé)
	DroitTerre     float64   // montant de l'échéance de droit de terre
	DateDebut      time.Time `gorm:"not null"`
	Statut         StatutSouscription `gorm:"size:20;not null;default:'en_cours'"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// PaiementSouscription - tranche encaissée sur une souscription
type PaiementSouscription struct {
	ID             uint         `gorm:"primaryKey"`
	SouscriptionID uint         `gorm:"index;not null"`
	Souscription   Souscription `gorm:"foreignKey:SouscriptionID"`
	Montant        float64      `gorm:"not null"`
	MoisConcerne   string       `gorm:"size:20"`
	AnneeConcerne  int
	DatePaiement   time.Time `gorm:"index;not null"`
	Reference      string    `gorm:"size:50"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type StatutEcheance string

const (
	EcheanceAPayer   StatutEcheance = "a_payer"
	EcheancePayee    StatutEcheance = "payee"
	EcheanceEnRetard StatutEcheance = "en_retard"
)

// EcheanceDroitTerre - échéance de droit de terre planifiée sur une souscription
type EcheanceDroitTerre struct {
	ID             uint         `gorm:"primaryKey"`
	SouscriptionID uint         `gorm:"index;not null"`
	Souscription   Souscription `gorm:"foreignKey:SouscriptionID"`
	Montant        float64      `gorm:"not null"`
	MoisConcerne   string       `gorm:"size:20;not null"`
	AnneeConcerne  int          `gorm:"not null"`
	DateEcheance   time.Time    `gorm:"index;not null"`
	Statut         StatutEcheance `gorm:"size:20;not null;default:'a_payer'"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// PaiementDroitTerre - règlement d'une échéance de droit de terre
type PaiementDroitTerre struct {
	ID             uint                `gorm:"primaryKey"`
	EcheanceID     uint                `gorm:"index;not null"`
	Echeance       EcheanceDroitTerre  `gorm:"foreignKey:EcheanceID"`
	Montant        float64             `gorm:"not null"`
	MoisConcerne   string              `gorm:"size:20"`
	AnneeConcerne  int
	DatePaiement   time.Time `gorm:"index;not null"`
	Reference      string    `gorm:"size:50"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
