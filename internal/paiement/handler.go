package paiement

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

// Tous les paiements suivent le même enchaînement, dans UNE transaction :
// contrôle d'admission par période (si le paiement est rattaché à un mois),
// ligne de paiement métier, écriture au journal de caisse, mise à jour du
// solde via le moteur. Un solde insuffisant annule l'ensemble.

type PaiementRequest struct {
	Montant       float64 `json:"montant"`
	Date          *string `json:"date"` // "2006-01-02", vide = aujourd'hui
	MoisConcerne  string  `json:"mois_concerne"`
	AnneeConcerne int     `json:"annee_concerne"`
	Beneficiaire  string  `json:"beneficiaire"`
	Description   string  `json:"description"`

	// Cible selon le type de paiement
	LocationID     uint `json:"location_id"`
	SouscriptionID uint `json:"souscription_id"`
	EcheanceID     uint `json:"echeance_id"`
}

type PaiementResponse struct {
	PaiementID  uint    `json:"paiement_id"`
	Reference   string  `json:"reference"`
	Montant     float64 `json:"montant"`
	SoldeAvant  float64 `json:"solde_avant"`
	SoldeApres  float64 `json:"solde_apres"`
	Transaction uint    `json:"transaction_id"`
}

func validerRequete(body *PaiementRequest) error {
	if body.Montant <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Le montant doit être supérieur à 0")
	}
	if body.MoisConcerne != "" {
		if !caisse.MoisValide(body.MoisConcerne) {
			return fiber.NewError(fiber.StatusBadRequest, "mois_concerne invalide (Janvier..Décembre)")
		}
		if body.AnneeConcerne < 2000 {
			return fiber.NewError(fiber.StatusBadRequest, "annee_concerne invalide")
		}
	}
	return nil
}

func dateDePaiement(body *PaiementRequest) (time.Time, error) {
	if body.Date == nil || *body.Date == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), nil
	}
	return time.Parse("2006-01-02", *body.Date)
}

// controlePeriode applique la règle d'admission par période : un paiement
// rattaché à un mois doit être couvert par les versements de ce mois.
// S'ajoute au contrôle global de découvert du moteur, qui s'applique
// toujours.
func controlePeriode(tx *gorm.DB, body *PaiementRequest) error {
	if body.MoisConcerne == "" {
		return nil
	}
	res, err := caisse.PeutPayerPourPeriode(tx, body.Montant, body.MoisConcerne, body.AnneeConcerne)
	if err != nil {
		return err
	}
	if !res.CanPay {
		return fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("Solde de la période %s %d insuffisant. Disponible: %s, requis: %s",
				body.MoisConcerne, body.AnneeConcerne,
				caisse.FormatMontant(res.SoldeDisponible), caisse.FormatMontant(res.SoldeNecessaire)))
	}
	return nil
}

// ecrireTransaction insère l'écriture de caisse d'un paiement (sortie) avec
// ses instantanés de solde.
func ecrireTransaction(tx *gorm.DB, typeOp models.TypeOperation, body *PaiementRequest, date time.Time, prefix string) (*models.CashTransaction, error) {
	res, err := caisse.UpdateCaisseVersement(tx, body.Montant, typeOp)
	if err != nil {
		return nil, err
	}

	sens := models.TransactionSortie
	tr := models.CashTransaction{
		TypeTransaction:    &sens,
		TypeOperation:      typeOp,
		Montant:            body.Montant,
		DateTransaction:    date,
		SoldeAvant:         &res.SoldeAvant,
		SoldeApres:         &res.SoldeApres,
		Beneficiaire:       body.Beneficiaire,
		ReferenceOperation: caisse.NouvelleReference(prefix),
		Description:        body.Description,
	}
	if body.MoisConcerne != "" {
		tr.MoisConcerne = &body.MoisConcerne
		tr.AnneeConcerne = &body.AnneeConcerne
	}
	if err := tx.Create(&tr).Error; err != nil {
		return nil, err
	}
	return &tr, nil
}

func reponse(paiementID uint, tr *models.CashTransaction) PaiementResponse {
	return PaiementResponse{
		PaiementID:  paiementID,
		Reference:   tr.ReferenceOperation,
		Montant:     tr.Montant,
		SoldeAvant:  *tr.SoldeAvant,
		SoldeApres:  *tr.SoldeApres,
		Transaction: tr.ID,
	}
}

func erreurPaiement(err error) error {
	if e, ok := err.(*fiber.Error); ok {
		return e
	}
	return caisse.ErreurHTTP(err)
}

// -------------------------------------------------
// POST /api/paiements/loyer
// -------------------------------------------------
func PayerLoyerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body PaiementRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corps de requête invalide")
		}
		if err := validerRequete(&body); err != nil {
			return err
		}

		var location models.Location
		if err := database.DB.First(&location, "id = ?", body.LocationID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Bail introuvable")
		}
		if location.Statut != models.LocationActive {
			return fiber.NewError(fiber.StatusBadRequest, "Ce bail est résilié")
		}

		date, err := dateDePaiement(&body)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Format de date invalide, attendu 'YYYY-MM-DD'")
		}

		var paiement models.PaiementLoyer
		var tr *models.CashTransaction
		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if err := controlePeriode(tx, &body); err != nil {
				return err
			}

			tr, err = ecrireTransaction(tx, models.OperationPaiementLoyer, &body, date, "LOY")
			if err != nil {
				return err
			}

			paiement = models.PaiementLoyer{
				LocationID:    location.ID,
				Montant:       body.Montant,
				MoisConcerne:  body.MoisConcerne,
				AnneeConcerne: body.AnneeConcerne,
				DatePaiement:  date,
				Reference:     tr.ReferenceOperation,
			}
			return tx.Create(&paiement).Error
		})
		if err != nil {
			return erreurPaiement(err)
		}

		audit.LogFromCtx(c, "paiement_loyer", paiement.ID, models.AuditActionCreate,
			fmt.Sprintf("Paiement de loyer: %s", caisse.FormatMontant(paiement.Montant)), nil, paiement)

		return c.Status(fiber.StatusCreated).JSON(reponse(paiement.ID, tr))
	}
}

// -------------------------------------------------
// POST /api/paiements/souscription
// -------------------------------------------------
func PayerSouscriptionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body PaiementRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corps de requête invalide")
		}
		if err := validerRequete(&body); err != nil {
			return err
		}

		var souscription models.Souscription
		if err := database.DB.First(&souscription, "id = ?", body.SouscriptionID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Souscription introuvable")
		}
		if souscription.Statut != models.SouscriptionEnCours {
			return fiber.NewError(fiber.StatusBadRequest, "Cette souscription n'est plus en cours")
		}

		date, err := dateDePaiement(&body)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Format de date invalide, attendu 'YYYY-MM-DD'")
		}

		var paiement models.PaiementSouscription
		var tr *models.CashTransaction
		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if err := controlePeriode(tx, &body); err != nil {
				return err
			}

			tr, err = ecrireTransaction(tx, models.OperationPaiementSouscription, &body, date, "SOUS")
			if err != nil {
				return err
			}

			paiement = models.PaiementSouscription{
				SouscriptionID: souscription.ID,
				Montant:        body.Montant,
				MoisConcerne:   body.MoisConcerne,
				AnneeConcerne:  body.AnneeConcerne,
				DatePaiement:   date,
				Reference:      tr.ReferenceOperation,
			}
			if err := tx.Create(&paiement).Error; err != nil {
				return err
			}

			// Cumul dénormalisé + clôture automatique une fois soldée
			verse := souscription.MontantVerse + body.Montant
			maj := map[string]interface{}{"montant_verse": verse}
			if verse >= souscription.MontantTotal {
				maj["statut"] = models.SouscriptionSoldee
			}
			return tx.Model(&souscription).Updates(maj).Error
		})
		if err != nil {
			return erreurPaiement(err)
		}

		audit.LogFromCtx(c, "paiement_souscription", paiement.ID, models.AuditActionCreate,
			fmt.Sprintf("Tranche de souscription: %s", caisse.FormatMontant(paiement.Montant)), nil, paiement)

		return c.Status(fiber.StatusCreated).JSON(reponse(paiement.ID, tr))
	}
}

// -------------------------------------------------
// POST /api/paiements/droit-terre
// -------------------------------------------------
func PayerDroitTerreHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body PaiementRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corps de requête invalide")
		}
		if err := validerRequete(&body); err != nil {
			return err
		}

		var echeance models.EcheanceDroitTerre
		if err := database.DB.First(&echeance, "id = ?", body.EcheanceID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Échéance introuvable")
		}
		if echeance.Statut == models.EcheancePayee {
			return fiber.NewError(fiber.StatusBadRequest, "Cette échéance est déjà payée")
		}

		// Le paiement d'une échéance hérite de sa période
		if body.MoisConcerne == "" {
			body.MoisConcerne = echeance.MoisConcerne
			body.AnneeConcerne = echeance.AnneeConcerne
		}

		date, err := dateDePaiement(&body)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Format de date invalide, attendu 'YYYY-MM-DD'")
		}

		var paiement models.PaiementDroitTerre
		var tr *models.CashTransaction
		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if err := controlePeriode(tx, &body); err != nil {
				return err
			}

			tr, err = ecrireTransaction(tx, models.OperationPaiementDroitTerre, &body, date, "DTER")
			if err != nil {
				return err
			}

			paiement = models.PaiementDroitTerre{
				EcheanceID:    echeance.ID,
				Montant:       body.Montant,
				MoisConcerne:  body.MoisConcerne,
				AnneeConcerne: body.AnneeConcerne,
				DatePaiement:  date,
				Reference:     tr.ReferenceOperation,
			}
			if err := tx.Create(&paiement).Error; err != nil {
				return err
			}

			return tx.Model(&echeance).Update("statut", models.EcheancePayee).Error
		})
		if err != nil {
			return erreurPaiement(err)
		}

		audit.LogFromCtx(c, "paiement_droit_terre", paiement.ID, models.AuditActionCreate,
			fmt.Sprintf("Droit de terre %s %d: %s", body.MoisConcerne, body.AnneeConcerne,
				caisse.FormatMontant(paiement.Montant)), nil, paiement)

		return c.Status(fiber.StatusCreated).JSON(reponse(paiement.ID, tr))
	}
}

// -------------------------------------------------
// POST /api/paiements/caution
// -------------------------------------------------
func PayerCautionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body PaiementRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corps de requête invalide")
		}
		if err := validerRequete(&body); err != nil {
			return err
		}

		var location models.Location
		if err := database.DB.First(&location, "id = ?", body.LocationID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Bail introuvable")
		}

		date, err := dateDePaiement(&body)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Format de date invalide, attendu 'YYYY-MM-DD'")
		}

		var paiement models.PaiementCaution
		var tr *models.CashTransaction
		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if err := controlePeriode(tx, &body); err != nil {
				return err
			}

			tr, err = ecrireTransaction(tx, models.OperationPaiementCaution, &body, date, "CAUT")
			if err != nil {
				return err
			}

			paiement = models.PaiementCaution{
				LocationID:    location.ID,
				Montant:       body.Montant,
				MoisConcerne:  body.MoisConcerne,
				AnneeConcerne: body.AnneeConcerne,
				DatePaiement:  date,
				Reference:     tr.ReferenceOperation,
			}
			return tx.Create(&paiement).Error
		})
		if err != nil {
			return erreurPaiement(err)
		}

		audit.LogFromCtx(c, "paiement_caution", paiement.ID, models.AuditActionCreate,
			fmt.Sprintf("Caution encaissée: %s", caisse.FormatMontant(paiement.Montant)), nil, paiement)

		return c.Status(fiber.StatusCreated).JSON(reponse(paiement.ID, tr))
	}
}
