package caisse

import (
	"immogest-backend/internal/models"

	"gorm.io/gorm"
)

// ResultatRecalcul - bilan d'un recalcul complet des soldes
type ResultatRecalcul struct {
	AncienSolde          float64 `json:"ancien_solde"`
	NouveauSolde         float64 `json:"nouveau_solde"`
	TransactionsTraitees int     `json:"transactions_traitees"`
}

// RecalculerSoldesCaisse rejoue tout l'historique dans l'ordre
// chronologique (date_transaction, created_at) pour reconstruire les
// instantanés solde_avant/solde_apres de chaque écriture et le solde
// final. Opération administrative de correction de dérive (éditions
// manuelles, suppressions hors application).
//
// Le rejeu complet tourne dans UNE transaction : un échec en cours de
// route laisse la caisse dans son état d'avant recalcul.
func RecalculerSoldesCaisse(db *gorm.DB) (*ResultatRecalcul, error) {
	var res *ResultatRecalcul

	err := db.Transaction(func(tx *gorm.DB) error {
		ancien, err := SoldeCourant(tx)
		if err != nil {
			return err
		}

		var transactions []models.CashTransaction
		if err := tx.Order("date_transaction ASC, created_at ASC").Find(&transactions).Error; err != nil {
			return err
		}

		solde := 0.0
		traitees := 0
		for i := range transactions {
			t := &transactions[i]
			sens, ok := ClassifierVersement(t.TypeOperation)
			if !ok {
				// Hors caisse physique : instantanés laissés tels quels
				continue
			}

			avant := solde
			if sens == models.TransactionEntree {
				solde += t.Montant
			} else {
				solde -= t.Montant
			}
			apres := solde

			if err := tx.Model(&models.CashTransaction{}).
				Where("id = ?", t.ID).
				Updates(map[string]interface{}{
					"solde_avant": avant,
					"solde_apres": apres,
				}).Error; err != nil {
				return err
			}
			traitees++
		}

		row, err := derniereBalance(tx, true)
		if err != nil {
			return err
		}
		if err := ecrireSolde(tx, row, solde); err != nil {
			return err
		}

		res = &ResultatRecalcul{
			AncienSolde:          ancien,
			NouveauSolde:         solde,
			TransactionsTraitees: traitees,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
