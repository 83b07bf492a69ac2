package caisse

import (
	"errors"
	"time"

	"immogest-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ResultatVersement - instantanés avant/après d'une écriture appliquée à
// la caisse physique. ImpactsCaisse=false quand l'opération ne touche pas
// la caisse (aucune ligne de solde écrite).
type ResultatVersement struct {
	SoldeAvant    float64 `json:"solde_avant"`
	SoldeApres    float64 `json:"solde_apres"`
	ImpactsCaisse bool    `json:"impacts_caisse"`
}

// verrouiller applique un verrou pessimiste (SELECT ... FOR UPDATE) sur la
// lecture du solde : deux sorties concurrentes ne doivent pas passer le
// contrôle de découvert sur un solde périmé. SQLite (tests) est
// mono-écrivain et ne supporte pas la clause.
func verrouiller(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "mysql" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// derniereBalance retourne la ligne de solde courante (derniere_maj la
// plus récente), nil si la caisse n'a jamais été initialisée.
func derniereBalance(tx *gorm.DB, lock bool) (*models.CaisseBalance, error) {
	q := tx
	if lock {
		q = verrouiller(tx)
	}
	var b models.CaisseBalance
	err := q.Order("derniere_maj DESC").First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// SoldeCourant lit le solde physique courant, 0 si aucune ligne n'existe.
func SoldeCourant(tx *gorm.DB) (float64, error) {
	b, err := derniereBalance(tx, false)
	if err != nil {
		return 0, err
	}
	if b == nil {
		return 0, nil
	}
	return b.SoldeCourant, nil
}

// ecrireSolde persiste le nouveau solde : mise à jour en place de la ligne
// courante si elle existe, insertion sinon. solde_courant et balance sont
// toujours écrits depuis la même valeur.
func ecrireSolde(tx *gorm.DB, row *models.CaisseBalance, solde float64) error {
	now := time.Now()
	if row != nil {
		return tx.Model(row).Updates(map[string]interface{}{
			"solde_courant": solde,
			"balance":       solde,
			"derniere_maj":  now,
		}).Error
	}
	return tx.Create(&models.CaisseBalance{
		SoldeCourant: solde,
		Balance:      solde,
		DerniereMaj:  now,
	}).Error
}

// UpdateCaisseVersement applique une opération au solde de la caisse
// physique, dans la même transaction que l'insertion du CashTransaction
// qui l'accompagne : un rejet pour solde insuffisant annule tout.
func UpdateCaisseVersement(tx *gorm.DB, montant float64, typeOp models.TypeOperation) (*ResultatVersement, error) {
	if montant <= 0 {
		return nil, ErrMontantInvalide
	}

	sens, ok := ClassifierVersement(typeOp)
	if !ok {
		// Opération hors caisse physique : aucune écriture de solde
		solde, err := SoldeCourant(tx)
		if err != nil {
			return nil, err
		}
		return &ResultatVersement{SoldeAvant: solde, SoldeApres: solde, ImpactsCaisse: false}, nil
	}

	row, err := derniereBalance(tx, true)
	if err != nil {
		return nil, err
	}
	avant := 0.0
	if row != nil {
		avant = row.SoldeCourant
	}

	// Seule défense contre une caisse physique négative
	if sens == models.TransactionSortie && avant < montant {
		return nil, &ErrSoldeInsuffisant{SoldeActuel: avant, MontantRequis: montant}
	}

	apres := avant + montant
	if sens == models.TransactionSortie {
		apres = avant - montant
	}

	if err := ecrireSolde(tx, row, apres); err != nil {
		return nil, err
	}

	return &ResultatVersement{SoldeAvant: avant, SoldeApres: apres, ImpactsCaisse: true}, nil
}

// CanMakePayment - pré-contrôle optimiste côté UI. Le contrôle faisant foi
// reste celui de UpdateCaisseVersement : le solde peut changer entre les
// deux sous accès concurrent.
func CanMakePayment(tx *gorm.DB, montant float64) (bool, error) {
	solde, err := SoldeCourant(tx)
	if err != nil {
		return false, err
	}
	return solde >= montant, nil
}
