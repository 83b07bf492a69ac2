package caisse

import (
	"testing"
	"time"

	"immogest-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestVersementPuisPaiements(t *testing.T) {
	db := newTestDB(t)

	// Versement agent de 100 000
	res, err := UpdateCaisseVersement(db, 100000, models.OperationVersementAgent)
	require.NoError(t, err)
	assert.True(t, res.ImpactsCaisse)
	assert.Equal(t, 0.0, res.SoldeAvant)
	assert.Equal(t, 100000.0, res.SoldeApres)

	// Paiement de loyer de 30 000
	res, err = UpdateCaisseVersement(db, 30000, models.OperationPaiementLoyer)
	require.NoError(t, err)
	assert.True(t, res.ImpactsCaisse)
	assert.Equal(t, 100000.0, res.SoldeAvant)
	assert.Equal(t, 70000.0, res.SoldeApres)

	// Caution de 80 000 : refusée, solde inchangé
	_, err = UpdateCaisseVersement(db, 80000, models.OperationPaiementCaution)
	var insuffisant *ErrSoldeInsuffisant
	require.ErrorAs(t, err, &insuffisant)
	assert.Equal(t, 70000.0, insuffisant.SoldeActuel)
	assert.Equal(t, 80000.0, insuffisant.MontantRequis)
	assert.Contains(t, insuffisant.Error(), FormatMontant(70000))
	assert.Contains(t, insuffisant.Error(), FormatMontant(80000))

	solde, err := SoldeCourant(db)
	require.NoError(t, err)
	assert.Equal(t, 70000.0, solde)
}

func TestDoubleColonneSolde(t *testing.T) {
	db := newTestDB(t)

	_, err := UpdateCaisseVersement(db, 50000, models.OperationVersementAgent)
	require.NoError(t, err)
	_, err = UpdateCaisseVersement(db, 20000, models.OperationPaiementLoyer)
	require.NoError(t, err)

	// solde_courant et balance ne divergent jamais, et la ligne courante
	// est mise à jour en place (une seule ligne)
	var rows []models.CaisseBalance
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, 30000.0, rows[0].SoldeCourant)
	assert.Equal(t, rows[0].SoldeCourant, rows[0].Balance)
}

func TestOperationHorsCaisse(t *testing.T) {
	db := newTestDB(t)

	_, err := UpdateCaisseVersement(db, 100000, models.OperationVersementAgent)
	require.NoError(t, err)
	_, err = UpdateCaisseVersement(db, 30000, models.OperationPaiementLoyer)
	require.NoError(t, err)

	avant := compterBalances(t, db)

	// paiement_facture est hors table versement : aucune écriture de solde
	res, err := UpdateCaisseVersement(db, 50000, models.OperationPaiementFacture)
	require.NoError(t, err)
	assert.False(t, res.ImpactsCaisse)
	assert.Equal(t, 70000.0, res.SoldeAvant)
	assert.Equal(t, 70000.0, res.SoldeApres)

	assert.Equal(t, avant, compterBalances(t, db))
	solde, err := SoldeCourant(db)
	require.NoError(t, err)
	assert.Equal(t, 70000.0, solde)
}

func TestSortieSansInitialisation(t *testing.T) {
	db := newTestDB(t)

	// Caisse jamais initialisée : solde implicite 0, toute sortie refusée
	_, err := UpdateCaisseVersement(db, 1, models.OperationPaiementLoyer)
	var insuffisant *ErrSoldeInsuffisant
	require.ErrorAs(t, err, &insuffisant)
	assert.Equal(t, 0.0, insuffisant.SoldeActuel)
	assert.Equal(t, int64(0), compterBalances(t, db))
}

func TestMontantInvalide(t *testing.T) {
	db := newTestDB(t)

	_, err := UpdateCaisseVersement(db, 0, models.OperationVersementAgent)
	assert.ErrorIs(t, err, ErrMontantInvalide)
	_, err = UpdateCaisseVersement(db, -500, models.OperationVersementAgent)
	assert.ErrorIs(t, err, ErrMontantInvalide)
	assert.Equal(t, int64(0), compterBalances(t, db))
}

func TestConservationSolde(t *testing.T) {
	db := newTestDB(t)

	type etape struct {
		typeOp  models.TypeOperation
		montant float64
	}
	sequence := []etape{
		{models.OperationVersementAgent, 500000},
		{models.OperationPaiementLoyer, 120000},
		{models.OperationPaiementFacture, 999999}, // hors caisse
		{models.OperationPaiementSouscription, 80000},
		{models.OperationVersementAgent, 50000},
		{models.OperationVente, 777777}, // hors caisse
		{models.OperationPaiementDroitTerre, 25000},
		{models.OperationPaiementCaution, 100000},
	}

	attendu := 0.0
	var dernierApres float64
	for _, e := range sequence {
		res, err := UpdateCaisseVersement(db, e.montant, e.typeOp)
		require.NoError(t, err)

		sens, ok := ClassifierVersement(e.typeOp)
		if !ok {
			assert.False(t, res.ImpactsCaisse)
			continue
		}
		if sens == models.TransactionEntree {
			attendu += e.montant
		} else {
			attendu -= e.montant
		}
		dernierApres = res.SoldeApres
	}

	solde, err := SoldeCourant(db)
	require.NoError(t, err)
	assert.Equal(t, attendu, solde)
	assert.Equal(t, dernierApres, solde)
}

func TestRejetAnnuleToutLePaiement(t *testing.T) {
	db := newTestDB(t)

	_, err := UpdateCaisseVersement(db, 40000, models.OperationVersementAgent)
	require.NoError(t, err)

	var nbAvant int64
	require.NoError(t, db.Model(&models.CashTransaction{}).Count(&nbAvant).Error)

	// Même enchaînement que les handlers de paiement : écriture de solde
	// et insertion au journal dans une seule transaction
	err = db.Transaction(func(tx *gorm.DB) error {
		res, err := UpdateCaisseVersement(tx, 90000, models.OperationPaiementLoyer)
		if err != nil {
			return err
		}
		sens := models.TransactionSortie
		return tx.Create(&models.CashTransaction{
			TypeTransaction: &sens,
			TypeOperation:   models.OperationPaiementLoyer,
			Montant:         90000,
			DateTransaction: time.Now(),
			SoldeAvant:      &res.SoldeAvant,
			SoldeApres:      &res.SoldeApres,
		}).Error
	})
	var insuffisant *ErrSoldeInsuffisant
	require.ErrorAs(t, err, &insuffisant)

	// Ni écriture au journal, ni mutation du solde
	var nbApres int64
	require.NoError(t, db.Model(&models.CashTransaction{}).Count(&nbApres).Error)
	assert.Equal(t, nbAvant, nbApres)

	solde, err := SoldeCourant(db)
	require.NoError(t, err)
	assert.Equal(t, 40000.0, solde)
}

func TestCanMakePayment(t *testing.T) {
	db := newTestDB(t)

	ok, err := CanMakePayment(db, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = UpdateCaisseVersement(db, 60000, models.OperationVersementAgent)
	require.NoError(t, err)

	ok, err = CanMakePayment(db, 60000)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = CanMakePayment(db, 60001)
	require.NoError(t, err)
	assert.False(t, ok)
}
