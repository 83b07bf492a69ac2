package caisse

import (
	"testing"
	"time"

	"immogest-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecalculCorrectitude(t *testing.T) {
	db := newTestDB(t)

	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	// Historique inséré dans le désordre, instantanés absents ou faux :
	// le recalcul doit tout reconstruire dans l'ordre chronologique
	t3 := ajouterTransaction(t, db, models.OperationPaiementLoyer, 30000, base.AddDate(0, 0, 10))
	t1 := ajouterTransaction(t, db, models.OperationVersementAgent, 100000, base)
	t4 := ajouterTransaction(t, db, models.OperationPaiementFacture, 999999, base.AddDate(0, 0, 12)) // hors caisse
	t2 := ajouterTransaction(t, db, models.OperationVersementAgent, 50000, base.AddDate(0, 0, 5))
	t5 := ajouterTransaction(t, db, models.OperationPaiementCaution, 70000, base.AddDate(0, 0, 20))

	// Instantané faux sur une écriture hors caisse : il doit rester intact
	faux := 123456.0
	require.NoError(t, db.Model(&models.CashTransaction{}).Where("id = ?", t4.ID).
		Updates(map[string]interface{}{"solde_avant": faux, "solde_apres": faux}).Error)

	// Solde caché divergent (dérive simulée)
	require.NoError(t, db.Create(&models.CaisseBalance{
		SoldeCourant: 999, Balance: 999, DerniereMaj: time.Now(),
	}).Error)

	res, err := RecalculerSoldesCaisse(db)
	require.NoError(t, err)
	assert.Equal(t, 999.0, res.AncienSolde)
	assert.Equal(t, 50000.0, res.NouveauSolde) // 100000 + 50000 - 30000 - 70000
	assert.Equal(t, 4, res.TransactionsTraitees)

	verifier := func(id uint, avant, apres float64) {
		var tr models.CashTransaction
		require.NoError(t, db.First(&tr, "id = ?", id).Error)
		require.NotNil(t, tr.SoldeAvant)
		require.NotNil(t, tr.SoldeApres)
		assert.Equal(t, avant, *tr.SoldeAvant)
		assert.Equal(t, apres, *tr.SoldeApres)
	}
	verifier(t1.ID, 0, 100000)
	verifier(t2.ID, 100000, 150000)
	verifier(t3.ID, 150000, 120000)
	verifier(t5.ID, 120000, 50000)

	// L'écriture hors caisse garde ses instantanés tels quels
	var horsCaisse models.CashTransaction
	require.NoError(t, db.First(&horsCaisse, "id = ?", t4.ID).Error)
	require.NotNil(t, horsCaisse.SoldeApres)
	assert.Equal(t, faux, *horsCaisse.SoldeApres)

	solde, err := SoldeCourant(db)
	require.NoError(t, err)
	assert.Equal(t, 50000.0, solde)

	// La double colonne reste alignée après recalcul
	var rows []models.CaisseBalance
	require.NoError(t, db.Find(&rows).Error)
	for _, r := range rows {
		if r.SoldeCourant == 50000 {
			assert.Equal(t, r.SoldeCourant, r.Balance)
		}
	}
}

func TestRecalculIdempotence(t *testing.T) {
	db := newTestDB(t)

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	ajouterTransaction(t, db, models.OperationVersementAgent, 80000, base)
	ajouterTransaction(t, db, models.OperationPaiementSouscription, 20000, base.AddDate(0, 0, 1))

	premier, err := RecalculerSoldesCaisse(db)
	require.NoError(t, err)
	assert.Equal(t, 0.0, premier.AncienSolde)
	assert.Equal(t, 60000.0, premier.NouveauSolde)

	second, err := RecalculerSoldesCaisse(db)
	require.NoError(t, err)
	assert.Equal(t, premier.NouveauSolde, second.AncienSolde)
	assert.Equal(t, premier.NouveauSolde, second.NouveauSolde)
	assert.Equal(t, premier.TransactionsTraitees, second.TransactionsTraitees)
}

func TestRecalculHistoriqueVide(t *testing.T) {
	db := newTestDB(t)

	res, err := RecalculerSoldesCaisse(db)
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.AncienSolde)
	assert.Equal(t, 0.0, res.NouveauSolde)
	assert.Equal(t, 0, res.TransactionsTraitees)

	// La ligne de solde est créée même sans historique
	assert.Equal(t, int64(1), compterBalances(t, db))
}

// Après recalcul, le solde reconstruit doit correspondre exactement à ce
// que produirait la même séquence passée par le moteur en direct.
func TestRecalculCoherentAvecMoteur(t *testing.T) {
	db := newTestDB(t)

	sequence := []struct {
		typeOp  models.TypeOperation
		montant float64
	}{
		{models.OperationVersementAgent, 300000},
		{models.OperationPaiementLoyer, 90000},
		{models.OperationPaiementDroitTerre, 15000},
		{models.OperationVersementAgent, 10000},
	}

	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for i, e := range sequence {
		res, err := UpdateCaisseVersement(db, e.montant, e.typeOp)
		require.NoError(t, err)
		tr := models.CashTransaction{
			TypeOperation:   e.typeOp,
			Montant:         e.montant,
			DateTransaction: base.AddDate(0, 0, i),
			SoldeAvant:      &res.SoldeAvant,
			SoldeApres:      &res.SoldeApres,
		}
		if sens, ok := ClassifierVersement(e.typeOp); ok {
			tr.TypeTransaction = &sens
		}
		require.NoError(t, db.Create(&tr).Error)
	}

	soldeDirect, err := SoldeCourant(db)
	require.NoError(t, err)

	res, err := RecalculerSoldesCaisse(db)
	require.NoError(t, err)
	assert.Equal(t, soldeDirect, res.AncienSolde)
	assert.Equal(t, soldeDirect, res.NouveauSolde)
}
