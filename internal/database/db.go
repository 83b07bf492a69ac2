package database

import (
	"log"

	"immogest-backend/internal/config"
	"immogest-backend/internal/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(mysql.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Connexion à la base de données impossible: %v", err)
	}

	// Migration manuelle caisse_balances : la colonne legacy "balance" doit
	// toujours refléter solde_courant. Les déploiements issus de l'ancien
	// schéma peuvent avoir des lignes où balance est NULL ou divergente
	// (AVANT AutoMigrate, pour préserver les lignes existantes).
	if DB.Migrator().HasTable(&models.CaisseBalance{}) &&
		DB.Migrator().HasColumn(&models.CaisseBalance{}, "balance") {
		var diverged int64
		DB.Raw("SELECT COUNT(*) FROM caisse_balances WHERE balance IS NULL OR balance <> solde_courant").Scan(&diverged)
		if diverged > 0 {
			log.Printf("caisse_balances: %d ligne(s) avec balance divergente, réalignement sur solde_courant...", diverged)
			if err := DB.Exec("UPDATE caisse_balances SET balance = solde_courant WHERE balance IS NULL OR balance <> solde_courant").Error; err != nil {
				log.Printf("Réalignement de balance échoué: %v", err)
			} else {
				log.Println("caisse_balances réaligné")
			}
		}
	}

	err = DB.AutoMigrate(
		&models.User{},
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
		&models.AuditLog{},
	)
	if err != nil {
		log.Fatalf("Erreur AutoMigrate: %v", err)
	}

	log.Println("Connexion base de données réussie. Migration terminée.")
}
