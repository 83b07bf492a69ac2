package models

import "time"

// TypeTransaction - sens du mouvement par rapport à la caisse physique (versement)
type TypeTransaction string

const (
	TransactionEntree TypeTransaction = "entree"
	TransactionSortie TypeTransaction = "sortie"
)

// TypeOperation - opération métier à l'origine de l'écriture
type TypeOperation string

const (
	OperationVersementAgent       TypeOperation = "versement_agent"
	OperationPaiementLoyer        TypeOperation = "paiement_loyer"
	OperationPaiementSouscription TypeOperation = "paiement_souscription"
	OperationPaiementDroitTerre   TypeOperation = "paiement_droit_terre"
	OperationPaiementCaution      TypeOperation = "paiement_caution"
	OperationVente                TypeOperation = "vente"
	OperationDepenseEntreprise    TypeOperation = "depense_entreprise"
	OperationPaiementFacture      TypeOperation = "paiement_facture"
	OperationRemboursementCaution TypeOperation = "remboursement_caution"
	OperationAutre                TypeOperation = "autre"
)

// CashTransaction - écriture du journal de caisse.
// Ligne immuable une fois créée ; seuls solde_avant/solde_apres sont
// réécrits par le recalcul des soldes.
type CashTransaction struct {
	ID uint `gorm:"primaryKey"`

	// Nil quand l'opération ne touche pas la caisse physique.
	TypeTransaction *TypeTransaction `gorm:"size:10;index"`
	TypeOperation   TypeOperation    `gorm:"size:30;index;not null"`

	// Type générique hérité du schéma d'origine ("facture" pour les
	// règlements de factures fournisseur) ; sert au filtre anti
	// double-comptage du solde entreprise.
	Type string `gorm:"size:20;index"`

	Montant         float64   `gorm:"not null"`
	DateTransaction time.Time `gorm:"index;not null"`

	// Période concernée pour les contrôles par période (versements agents)
	MoisConcerne  *string `gorm:"size:20;index"`
	AnneeConcerne *int    `gorm:"index"`

	// Instantanés du solde caisse avant/après application (audit, recalculables)
	SoldeAvant *float64
	SoldeApres *float64

	AgentID            *uint  `gorm:"index"`
	Agent              *Agent `gorm:"foreignKey:AgentID"`
	Beneficiaire       string `gorm:"size:150"`
	ReferenceOperation string `gorm:"size:50;index"`
	Description        string `gorm:"size:500"`
	PieceJustificative string `gorm:"size:255"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}
