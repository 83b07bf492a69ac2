package caisse

import (
	"immogest-backend/internal/models"

	"gorm.io/gorm"
)

// SoldeEntreprise - vue comptable de l'entreprise, indépendante de
// l'emplacement physique de l'argent. Agrégation en lecture seule sur
// tout l'historique, ne touche jamais caisse_balances.
type SoldeEntreprise struct {
	TotalRevenus  float64 `json:"total_revenus"`
	TotalDepenses float64 `json:"total_depenses"`
	Solde         float64 `json:"solde"`

	// Détail par source (affichage tableau de bord)
	RevenusLoyers        float64 `json:"revenus_loyers"`
	RevenusSouscriptions float64 `json:"revenus_souscriptions"`
	RevenusDroitsTerre   float64 `json:"revenus_droits_terre"`
	RevenusCautions      float64 `json:"revenus_cautions"`
	RevenusVentes        float64 `json:"revenus_ventes"`
	DepensesFactures     float64 `json:"depenses_factures"`
	DepensesCaisse       float64 `json:"depenses_caisse"`
}

func sommeMontant(q *gorm.DB) (float64, error) {
	var total float64
	err := q.Select("COALESCE(SUM(montant), 0)").Scan(&total).Error
	return total, err
}

// CalculerSoldeEntreprise agrège les cinq sources de revenus et les deux
// sources de dépenses. Les sorties de caisse de type générique "facture"
// sont exclues : elles sont déjà comptées via factures.montant_paye.
func CalculerSoldeEntreprise(tx *gorm.DB) (*SoldeEntreprise, error) {
	s := &SoldeEntreprise{}
	var err error

	if s.RevenusLoyers, err = sommeMontant(tx.Model(&models.PaiementLoyer{})); err != nil {
		return nil, err
	}
	if s.RevenusSouscriptions, err = sommeMontant(tx.Model(&models.PaiementSouscription{})); err != nil {
		return nil, err
	}
	if s.RevenusDroitsTerre, err = sommeMontant(tx.Model(&models.PaiementDroitTerre{})); err != nil {
		return nil, err
	}
	if s.RevenusCautions, err = sommeMontant(tx.Model(&models.PaiementCaution{})); err != nil {
		return nil, err
	}
	if s.RevenusVentes, err = sommeMontant(tx.Model(&models.Vente{})); err != nil {
		return nil, err
	}

	if err = tx.Model(&models.Facture{}).
		Select("COALESCE(SUM(montant_paye), 0)").
		Scan(&s.DepensesFactures).Error; err != nil {
		return nil, err
	}

	s.DepensesCaisse, err = sommeMontant(tx.Model(&models.CashTransaction{}).
		Where("type_operation IN ? AND type_transaction = ? AND type <> ?",
			[]models.TypeOperation{models.OperationDepenseEntreprise, models.OperationAutre},
			models.TransactionSortie, "facture"))
	if err != nil {
		return nil, err
	}

	s.TotalRevenus = s.RevenusLoyers + s.RevenusSouscriptions + s.RevenusDroitsTerre +
		s.RevenusCautions + s.RevenusVentes
	s.TotalDepenses = s.DepensesFactures + s.DepensesCaisse
	s.Solde = s.TotalRevenus - s.TotalDepenses
	return s, nil
}

// SoldeParPeriode - part des versements agents du mois (mois_concerne,
// annee_concerne) non encore consommée par les paiements de la même
// période. Répond à "combien reste-t-il des versements de ce mois".
func SoldeParPeriode(tx *gorm.DB, mois string, annee int) (float64, error) {
	entrees, err := sommeMontant(tx.Model(&models.CashTransaction{}).
		Where("type_operation = ? AND type_transaction = ? AND mois_concerne = ? AND annee_concerne = ?",
			models.OperationVersementAgent, models.TransactionEntree, mois, annee))
	if err != nil {
		return 0, err
	}

	sorties, err := sommeMontant(tx.Model(&models.CashTransaction{}).
		Where("type_operation IN ? AND type_transaction = ? AND mois_concerne = ? AND annee_concerne = ?",
			[]models.TypeOperation{
				models.OperationPaiementLoyer,
				models.OperationPaiementDroitTerre,
				models.OperationPaiementSouscription,
				models.OperationPaiementCaution,
			},
			models.TransactionSortie, mois, annee))
	if err != nil {
		return 0, err
	}

	return entrees - sorties, nil
}

// ResultatPeriode - admission par période : un paiement rattaché à un mois
// doit être couvert par les versements de ce mois, en plus du contrôle
// global de découvert appliqué dans UpdateCaisseVersement.
type ResultatPeriode struct {
	CanPay          bool    `json:"can_pay"`
	SoldeDisponible float64 `json:"solde_disponible"`
	SoldeNecessaire float64 `json:"solde_necessaire"`
}

func PeutPayerPourPeriode(tx *gorm.DB, montant float64, mois string, annee int) (*ResultatPeriode, error) {
	disponible, err := SoldeParPeriode(tx, mois, annee)
	if err != nil {
		return nil, err
	}
	return &ResultatPeriode{
		CanPay:          disponible >= montant,
		SoldeDisponible: disponible,
		SoldeNecessaire: montant,
	}, nil
}
