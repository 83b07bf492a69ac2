package souscription

import (
	"time"

	"immogest-backend/internal/caisse"
	"immogest-backend/internal/database"
	"immogest-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type SouscriptionRequest struct {
	ClientID     uint    `json:"client_id"`
	ProprieteID  uint    `json:"propriete_id"`
	MontantTotal float64 `json:"montant_total"`
	DroitTerre   float64 `json:"droit_terre"` // montant de chaque échéance, 0 = pas de droit de terre
	DateDebut    string  `json:"date_debut"`  // "2006-01-02"
	NbEcheances  int     `json:"nb_echeances"`
}

// -------------------------------------------------
// POST /api/souscriptions
// Crée la souscription et planifie ses échéances de droit de terre,
// une par mois à partir de la date de début.
// -------------------------------------------------
func CreateSouscriptionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body SouscriptionRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corps de requête invalide")
		}
		if body.MontantTotal <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Le montant total doit être supérieur à 0")
		}
		if body.DroitTerre > 0 && (body.NbEcheances < 1 || body.NbEcheances > 120) {
			return fiber.NewError(fiber.StatusBadRequest, "nb_echeances doit être entre 1 et 120")
		}

		var client models.Client
		if err := database.DB.First(&client, "id = ?", body.ClientID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Client introuvable")
		}
		var propriete models.Propriete
		if err := database.DB.First(&propriete, "id = ?", body.ProprieteID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Propriété introuvable")
		}
		if !propriete.Disponible {
			return fiber.NewError(fiber.StatusBadRequest, "Cette propriété n'est pas disponible")
		}

		dateDebut, err := time.Parse("2006-01-02", body.DateDebut)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "date_debut invalide, attendu 'YYYY-MM-DD'")
		}

		var souscription models.Souscription
		err = database.DB.Transaction(func(tx *gorm.DB) error {
			souscription = models.Souscription{
				ClientID:     client.ID,
				ProprieteID:  propriete.ID,
				MontantTotal: body.MontantTotal,
				DroitTerre:   body.DroitTerre,
				DateDebut:    dateDebut,
				Statut:       models.SouscriptionEnCours,
			}
			if err := tx.Create(&souscription).Error; err != nil {
				return err
			}

			if body.DroitTerre > 0 {
				for i := 0; i < body.NbEcheances; i++ {
					d := dateDebut.AddDate(0, i, 0)
					echeance := models.EcheanceDroitTerre{
						SouscriptionID: souscription.ID,
						Montant:        body.DroitTerre,
						MoisConcerne:   caisse.MoisAnnee[int(d.Month())-1],
						AnneeConcerne:  d.Year(),
						DateEcheance:   d,
						Statut:         models.EcheanceAPayer,
					}
					if err := tx.Create(&echeance).Error; err != nil {
						return err
					}
				}
			}

			return tx.Model(&propriete).Update("disponible", false).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Création de la souscription échouée")
		}

		return c.Status(fiber.StatusCreated).JSON(souscription)
	}
}

// -------------------------------------------------
// GET /api/souscriptions?statut=en_cours
// -------------------------------------------------
func ListSouscriptionsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Souscription{}).Preload("Client").Preload("Propriete")
		if statut := c.Query("statut"); statut != "" {
			dbq = dbq.Where("statut = ?", statut)
		}

		var souscriptions []models.Souscription
		if err := dbq.Order("created_at DESC").Find(&souscriptions).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Souscriptions illisibles")
		}
		return c.JSON(souscriptions)
	}
}

// -------------------------------------------------
// GET /api/souscriptions/:id/echeances?statut=a_payer
// -------------------------------------------------
func ListEcheancesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var souscription models.Souscription
		if err := database.DB.First(&souscription, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Souscription introuvable")
		}

		dbq := database.DB.Model(&models.EcheanceDroitTerre{}).
			Where("souscription_id = ?", souscription.ID)
		if statut := c.Query("statut"); statut != "" {
			dbq = dbq.Where("statut = ?", statut)
		}

		var echeances []models.EcheanceDroitTerre
		if err := dbq.Order("date_echeance ASC").Find(&echeances).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Échéances illisibles")
		}
		return c.JSON(echeances)
	}
}
