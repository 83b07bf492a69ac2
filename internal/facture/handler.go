package facture

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

type FactureRequest struct {
	Fournisseur  string  `json:"fournisseur"`
	Numero       string  `json:"numero"`
	Montant      float64 `json:"montant"`
	DateEmission string  `json:"date_emission"` // "2006-01-02"
	DateEcheance *string `json:"date_echeance"`
	Description  string  `json:"description"`
}

type ReglementRequest struct {
	Montant     float64 `json:"montant"`
	Date        *string `json:"date"`
	Description string  `json:"description"`
}

// -------------------------------------------------
// POST /api/factures
// -------------------------------------------------
func CreateFactureHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body FactureRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corps de requête invalide")
		}
		if body.Fournisseur == "" || body.Numero == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Fournisseur et numéro obligatoires")
		}
		if body.Montant <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Le montant doit être supérieur à 0")
		}

		dateEmission, err := time.Parse("2006-01-02", body.DateEmission)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "date_emission invalide, attendu 'YYYY-MM-DD'")
		}

		facture := models.Facture{
			Fournisseur:  body.Fournisseur,
			Numero:       body.Numero,
			Montant:      body.Montant,
			DateEmission: dateEmission,
			Statut:       models.FactureImpayee,
			Description:  body.Description,
		}
		if body.DateEcheance != nil && *body.DateEcheance != "" {
			d, err := time.Parse("2006-01-02", *body.DateEcheance)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "date_echeance invalide, attendu 'YYYY-MM-DD'")
			}
			facture.DateEcheance = &d
		}

		if err := database.DB.Create(&facture).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Création de la facture échouée")
		}
		return c.Status(fiber.StatusCreated).JSON(facture)
	}
}

// -------------------------------------------------
// GET /api/factures?statut=impayee
// -------------------------------------------------
func ListFacturesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Facture{})
		if statut := c.Query("statut"); statut != "" {
			dbq = dbq.Where("statut = ?", statut)
		}

		var factures []models.Facture
		if err := dbq.Order("date_emission DESC").Find(&factures).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Factures illisibles")
		}
		return c.JSON(factures)
	}
}

// -------------------------------------------------
// POST /api/factures/:id/reglement
// Le règlement s'ajoute au cumul montant_paye de la facture et laisse une
// trace au journal de caisse (type générique "facture"). La dépense
// entreprise est comptée via montant_paye uniquement : le filtre du solde
// entreprise exclut ces écritures pour éviter le double comptage. La
// caisse physique n'est pas touchée.
// -------------------------------------------------
func ReglerFactureHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var facture models.Facture
		if err := database.DB.First(&facture, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Facture introuvable")
		}

		var body ReglementRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corps de requête invalide")
		}
		if body.Montant <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Le montant doit être supérieur à 0")
		}
		restant := facture.Montant - facture.MontantPaye
		if body.Montant > restant {
			return fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("Le règlement dépasse le restant dû (%s)", caisse.FormatMontant(restant)))
		}

		var date time.Time
		if body.Date == nil || *body.Date == "" {
			date = time.Now()
		} else {
			var err error
			date, err = time.Parse("2006-01-02", *body.Date)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Format de date invalide, attendu 'YYYY-MM-DD'")
			}
		}

		var tr models.CashTransaction
		err := database.DB.Transaction(func(tx *gorm.DB) error {
			res, err := caisse.UpdateCaisseVersement(tx, body.Montant, models.OperationPaiementFacture)
			if err != nil {
				return err
			}

			sens := models.TransactionSortie
			tr = models.CashTransaction{
				TypeTransaction:    &sens,
				TypeOperation:      models.OperationPaiementFacture,
				Type:               "facture",
				Montant:            body.Montant,
				DateTransaction:    date,
				SoldeAvant:         &res.SoldeAvant,
				SoldeApres:         &res.SoldeApres,
				Beneficiaire:       facture.Fournisseur,
				ReferenceOperation: caisse.NouvelleReference("FACT"),
				Description:        body.Description,
			}
			if err := tx.Create(&tr).Error; err != nil {
				return err
			}

			paye := facture.MontantPaye + body.Montant
			statut := models.FacturePartiellement
			if paye >= facture.Montant {
				statut = models.FacturePayee
			}
			return tx.Model(&facture).Updates(map[string]interface{}{
				"montant_paye": paye,
				"statut":       statut,
			}).Error
		})
		if err != nil {
			return caisse.ErreurHTTP(err)
		}

		audit.LogFromCtx(c, "facture", facture.ID, models.AuditActionUpdate,
			fmt.Sprintf("Règlement facture %s: %s", facture.Numero, caisse.FormatMontant(body.Montant)), nil, tr)

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"facture_id":     facture.ID,
			"montant":        body.Montant,
			"transaction_id": tr.ID,
			"reference":      tr.ReferenceOperation,
		})
	}
}
