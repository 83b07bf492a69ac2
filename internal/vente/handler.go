package vente

import (
	"fmt"
	"time"

	"immogest-backend/internal/audit"
	"immogest-backend/internal/caisse"
	"immogest-backend/internal/database"
	"immogest-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type VenteRequest struct {
	ClientID    uint    `json:"client_id"`
	ProprieteID uint    `json:"propriete_id"`
	Montant     float64 `json:"montant"`
	DateVente   *string `json:"date_vente"` // "2006-01-02", vide = aujourd'hui
	Description string  `json:"description"`
}

// -------------------------------------------------
// POST /api/ventes
// La vente est un revenu entreprise pur : elle laisse une trace au journal
// mais ne touche pas la caisse physique (hors table versement).
// -------------------------------------------------
func CreateVenteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body VenteRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corps de requête invalide")
		}
		if body.Montant <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Le montant doit être supérieur à 0")
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

		var date time.Time
		if body.DateVente == nil || *body.DateVente == "" {
			date = time.Now()
		} else {
			var err error
			date, err = time.Parse("2006-01-02", *body.DateVente)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "date_vente invalide, attendu 'YYYY-MM-DD'")
			}
		}

		var vente models.Vente
		err := database.DB.Transaction(func(tx *gorm.DB) error {
			vente = models.Vente{
				ClientID:    client.ID,
				ProprieteID: propriete.ID,
				Montant:     body.Montant,
				DateVente:   date,
				Reference:   caisse.NouvelleReference("VENT"),
				Description: body.Description,
			}
			if err := tx.Create(&vente).Error; err != nil {
				return err
			}

			res, err := caisse.UpdateCaisseVersement(tx, body.Montant, models.OperationVente)
			if err != nil {
				return err
			}

			tr := models.CashTransaction{
				TypeOperation:      models.OperationVente,
				Montant:            body.Montant,
				DateTransaction:    date,
				SoldeAvant:         &res.SoldeAvant,
				SoldeApres:         &res.SoldeApres,
				ReferenceOperation: vente.Reference,
				Description:        body.Description,
			}
			if err := tx.Create(&tr).Error; err != nil {
				return err
			}

			return tx.Model(&propriete).Update("disponible", false).Error
		})
		if err != nil {
			return caisse.ErreurHTTP(err)
		}

		audit.LogFromCtx(c, "vente", vente.ID, models.AuditActionCreate,
			fmt.Sprintf("Vente de propriété: %s", caisse.FormatMontant(vente.Montant)), nil, vente)

		return c.Status(fiber.StatusCreated).JSON(vente)
	}
}

// -------------------------------------------------
// GET /api/ventes
// -------------------------------------------------
func ListVentesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var ventes []models.Vente
		if err := database.DB.Preload("Client").Preload("Propriete").
			Order("date_vente DESC").Find(&ventes).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ventes illisibles")
		}
		return c.JSON(ventes)
	}
}
