package caisse

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"immogest-backend/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestDB ouvre une base SQLite en mémoire nommée d'après le test.
// cache=shared : le pool de connexions GORM doit voir le même schéma.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Agent{},
		&models.Client{},
		&models.Propriete{},
		&models.Location{},
		&models.PaiementLoyer{},
		&models.Souscription{},
		&models.PaiementSouscription{},
		&models.EcheanceDroitTerre{},
		&models.PaiementDroitTerre{},
		&models.PaiementCaution{},
		&models.Vente{},
		&models.Facture{},
		&models.CashTransaction{},
		&models.CaisseBalance{},
	))
	return db
}

// ajouterTransaction insère une écriture brute au journal, sans passer par
// le moteur (pour préparer des historiques à recalculer).
func ajouterTransaction(t *testing.T, db *gorm.DB, typeOp models.TypeOperation, montant float64, date time.Time) models.CashTransaction {
	t.Helper()

	tr := models.CashTransaction{
		TypeOperation:   typeOp,
		Montant:         montant,
		DateTransaction: date,
	}
	if sens, ok := ClassifierVersement(typeOp); ok {
		tr.TypeTransaction = &sens
	}
	require.NoError(t, db.Create(&tr).Error)
	return tr
}

// ajouterTransactionPeriode insère une écriture rattachée à un mois donné.
func ajouterTransactionPeriode(t *testing.T, db *gorm.DB, typeOp models.TypeOperation, montant float64, mois string, annee int) models.CashTransaction {
	t.Helper()

	tr := models.CashTransaction{
		TypeOperation:   typeOp,
		Montant:         montant,
		DateTransaction: time.Now(),
		MoisConcerne:    &mois,
		AnneeConcerne:   &annee,
	}
	if sens, ok := ClassifierVersement(typeOp); ok {
		tr.TypeTransaction = &sens
	}
	require.NoError(t, db.Create(&tr).Error)
	return tr
}

func compterBalances(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.CaisseBalance{}).Count(&n).Error)
	return n
}
