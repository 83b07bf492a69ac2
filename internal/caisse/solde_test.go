package caisse

import (
	"testing"
	"time"

	"immogest-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculerSoldeEntreprise(t *testing.T) {
	db := newTestDB(t)

	client := models.Client{Nom: "Diallo"}
	require.NoError(t, db.Create(&client).Error)
	propriete := models.Propriete{Type: models.ProprieteMaison, Adresse: "Quartier Plateau"}
	require.NoError(t, db.Create(&propriete).Error)
	location := models.Location{ClientID: client.ID, ProprieteID: propriete.ID, LoyerMensuel: 150000, DateDebut: time.Now(), Statut: models.LocationActive}
	require.NoError(t, db.Create(&location).Error)
	souscription := models.Souscription{ClientID: client.ID, ProprieteID: propriete.ID, MontantTotal: 5000000, DateDebut: time.Now(), Statut: models.SouscriptionEnCours}
	require.NoError(t, db.Create(&souscription).Error)
	echeance := models.EcheanceDroitTerre{SouscriptionID: souscription.ID, Montant: 10000, MoisConcerne: "Mars", AnneeConcerne: 2025, DateEcheance: time.Now(), Statut: models.EcheanceAPayer}
	require.NoError(t, db.Create(&echeance).Error)

	// Revenus
	require.NoError(t, db.Create(&models.PaiementLoyer{LocationID: location.ID, Montant: 150000, DatePaiement: time.Now()}).Error)
	require.NoError(t, db.Create(&models.PaiementLoyer{LocationID: location.ID, Montant: 150000, DatePaiement: time.Now()}).Error)
	require.NoError(t, db.Create(&models.PaiementSouscription{SouscriptionID: souscription.ID, Montant: 250000, DatePaiement: time.Now()}).Error)
	require.NoError(t, db.Create(&models.PaiementDroitTerre{EcheanceID: echeance.ID, Montant: 10000, DatePaiement: time.Now()}).Error)
	require.NoError(t, db.Create(&models.PaiementCaution{LocationID: location.ID, Montant: 300000, DatePaiement: time.Now()}).Error)
	require.NoError(t, db.Create(&models.Vente{ClientID: client.ID, ProprieteID: propriete.ID, Montant: 2000000, DateVente: time.Now()}).Error)

	// Dépenses : facture partiellement réglée + dépenses de caisse
	require.NoError(t, db.Create(&models.Facture{Fournisseur: "SODECI", Numero: "F-001", Montant: 90000, MontantPaye: 60000, DateEmission: time.Now(), Statut: models.FacturePartiellement}).Error)

	sortie := models.TransactionSortie
	require.NoError(t, db.Create(&models.CashTransaction{
		TypeTransaction: &sortie, TypeOperation: models.OperationDepenseEntreprise,
		Montant: 45000, DateTransaction: time.Now(),
	}).Error)
	require.NoError(t, db.Create(&models.CashTransaction{
		TypeTransaction: &sortie, TypeOperation: models.OperationAutre,
		Montant: 5000, DateTransaction: time.Now(),
	}).Error)

	s, err := CalculerSoldeEntreprise(db)
	require.NoError(t, err)

	assert.Equal(t, 300000.0, s.RevenusLoyers)
	assert.Equal(t, 250000.0, s.RevenusSouscriptions)
	assert.Equal(t, 10000.0, s.RevenusDroitsTerre)
	assert.Equal(t, 300000.0, s.RevenusCautions)
	assert.Equal(t, 2000000.0, s.RevenusVentes)
	assert.Equal(t, 2860000.0, s.TotalRevenus)

	assert.Equal(t, 60000.0, s.DepensesFactures)
	assert.Equal(t, 50000.0, s.DepensesCaisse)
	assert.Equal(t, 110000.0, s.TotalDepenses)
	assert.Equal(t, 2750000.0, s.Solde)
}

// Invariant de réconciliation : un règlement de facture apparaît à la fois
// dans factures.montant_paye et au journal de caisse (type "facture") ;
// il ne doit être compté qu'une fois dans les dépenses entreprise.
func TestReconciliationReglementFacture(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.Create(&models.Facture{
		Fournisseur: "CIE", Numero: "F-042", Montant: 80000, MontantPaye: 80000,
		DateEmission: time.Now(), Statut: models.FacturePayee,
	}).Error)

	// Trace du règlement au journal, type générique "facture"
	sortie := models.TransactionSortie
	require.NoError(t, db.Create(&models.CashTransaction{
		TypeTransaction: &sortie, TypeOperation: models.OperationPaiementFacture,
		Type: "facture", Montant: 80000, DateTransaction: time.Now(),
	}).Error)

	s, err := CalculerSoldeEntreprise(db)
	require.NoError(t, err)

	assert.Equal(t, 80000.0, s.DepensesFactures)
	assert.Equal(t, 0.0, s.DepensesCaisse, "le règlement ne doit pas être compté deux fois")
	assert.Equal(t, 80000.0, s.TotalDepenses)

	// Une dépense de caisse portant par erreur le type "facture" serait
	// elle aussi exclue : le filtre repose sur la discipline d'écriture
	require.NoError(t, db.Create(&models.CashTransaction{
		TypeTransaction: &sortie, TypeOperation: models.OperationDepenseEntreprise,
		Montant: 12000, DateTransaction: time.Now(),
	}).Error)
	s, err = CalculerSoldeEntreprise(db)
	require.NoError(t, err)
	assert.Equal(t, 12000.0, s.DepensesCaisse)
}

func TestSoldeParPeriode(t *testing.T) {
	db := newTestDB(t)

	// Mars 2025 : un versement de 200 000, un loyer de 60 000
	ajouterTransactionPeriode(t, db, models.OperationVersementAgent, 200000, "Mars", 2025)
	ajouterTransactionPeriode(t, db, models.OperationPaiementLoyer, 60000, "Mars", 2025)

	// Bruit : autres périodes et opérations hors périmètre
	ajouterTransactionPeriode(t, db, models.OperationVersementAgent, 500000, "Avril", 2025)
	ajouterTransactionPeriode(t, db, models.OperationVersementAgent, 500000, "Mars", 2024)
	sortie := models.TransactionSortie
	mois, annee := "Mars", 2025
	require.NoError(t, db.Create(&models.CashTransaction{
		TypeTransaction: &sortie, TypeOperation: models.OperationDepenseEntreprise,
		Montant: 999999, DateTransaction: time.Now(), MoisConcerne: &mois, AnneeConcerne: &annee,
	}).Error)

	solde, err := SoldeParPeriode(db, "Mars", 2025)
	require.NoError(t, err)
	assert.Equal(t, 140000.0, solde)

	res, err := PeutPayerPourPeriode(db, 150000, "Mars", 2025)
	require.NoError(t, err)
	assert.False(t, res.CanPay)
	assert.Equal(t, 140000.0, res.SoldeDisponible)
	assert.Equal(t, 150000.0, res.SoldeNecessaire)

	res, err = PeutPayerPourPeriode(db, 140000, "Mars", 2025)
	require.NoError(t, err)
	assert.True(t, res.CanPay)
}

func TestSoldeParPeriodeVide(t *testing.T) {
	db := newTestDB(t)

	solde, err := SoldeParPeriode(db, "Janvier", 2030)
	require.NoError(t, err)
	assert.Equal(t, 0.0, solde)
}
