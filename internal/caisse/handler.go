package caisse

import (
	"errors"
	"fmt"
	"time"

	"immogest-backend/internal/audit"
	"immogest-backend/internal/database"
	"immogest-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type VersementRequest struct {
	AgentID       uint    `json:"agent_id"`
	Montant       float64 `json:"montant"`
	Date          *string `json:"date"` // "2006-01-02", vide = aujourd'hui
	MoisConcerne  string  `json:"mois_concerne"`
	AnneeConcerne int     `json:"annee_concerne"`
	Description   string  `json:"description"`
}

type DepenseRequest struct {
	TypeOperation      models.TypeOperation `json:"type_operation"` // depense_entreprise | autre
	Montant            float64              `json:"montant"`
	Date               *string              `json:"date"`
	Beneficiaire       string               `json:"beneficiaire"`
	Description        string               `json:"description"`
	PieceJustificative string               `json:"piece_justificative"`
}

type TransactionResponse struct {
	ID                 uint     `json:"id"`
	TypeTransaction    *string  `json:"type_transaction"`
	TypeOperation      string   `json:"type_operation"`
	Montant            float64  `json:"montant"`
	DateTransaction    string   `json:"date_transaction"`
	MoisConcerne       *string  `json:"mois_concerne"`
	AnneeConcerne      *int     `json:"annee_concerne"`
	SoldeAvant         *float64 `json:"solde_avant"`
	SoldeApres         *float64 `json:"solde_apres"`
	AgentID            *uint    `json:"agent_id"`
	Beneficiaire       string   `json:"beneficiaire"`
	ReferenceOperation string   `json:"reference_operation"`
	Description        string   `json:"description"`
}

// ErreurHTTP traduit une erreur du moteur de caisse en erreur fiber :
// rejet métier en 400 avec le message tel quel, le reste en 500 générique.
func ErreurHTTP(err error) error {
	var insuffisant *ErrSoldeInsuffisant
	if errors.As(err, &insuffisant) {
		return fiber.NewError(fiber.StatusBadRequest, insuffisant.Error())
	}
	if errors.Is(err, ErrMontantInvalide) {
		return fiber.NewError(fiber.StatusBadRequest, "Le montant doit être supérieur à 0")
	}
	return fiber.NewError(fiber.StatusInternalServerError, "Opération de caisse échouée")
}

func parseDate(s *string) (time.Time, error) {
	if s == nil || *s == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), nil
	}
	return time.Parse("2006-01-02", *s)
}

func transactionResponse(t *models.CashTransaction) TransactionResponse {
	var sens *string
	if t.TypeTransaction != nil {
		s := string(*t.TypeTransaction)
		sens = &s
	}
	return TransactionResponse{
		ID:                 t.ID,
		TypeTransaction:    sens,
		TypeOperation:      string(t.TypeOperation),
		Montant:            t.Montant,
		DateTransaction:    t.DateTransaction.Format("2006-01-02"),
		MoisConcerne:       t.MoisConcerne,
		AnneeConcerne:      t.AnneeConcerne,
		SoldeAvant:         t.SoldeAvant,
		SoldeApres:         t.SoldeApres,
		AgentID:            t.AgentID,
		Beneficiaire:       t.Beneficiaire,
		ReferenceOperation: t.ReferenceOperation,
		Description:        t.Description,
	}
}

// -------------------------------------------------
// GET /api/caisse/solde
// -------------------------------------------------
func SoldeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		solde, err := SoldeCourant(database.DB)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Lecture du solde impossible")
		}
		return c.JSON(fiber.Map{
			"solde":         solde,
			"solde_formate": FormatMontant(solde),
		})
	}
}

// -------------------------------------------------
// GET /api/caisse/solde-entreprise
// -------------------------------------------------
func SoldeEntrepriseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := CalculerSoldeEntreprise(database.DB)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Calcul du solde entreprise impossible")
		}
		return c.JSON(s)
	}
}

// -------------------------------------------------
// GET /api/caisse/solde-periode?mois=Mars&annee=2025
// -------------------------------------------------
func SoldePeriodeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		mois := c.Query("mois")
		if !MoisValide(mois) {
			return fiber.NewError(fiber.StatusBadRequest, "mois invalide (Janvier..Décembre)")
		}
		var annee int
		if _, err := fmt.Sscan(c.Query("annee"), &annee); err != nil || annee < 2000 {
			return fiber.NewError(fiber.StatusBadRequest, "annee invalide")
		}

		solde, err := SoldeParPeriode(database.DB, mois, annee)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Calcul du solde de période impossible")
		}
		return c.JSON(fiber.Map{
			"mois":          mois,
			"annee":         annee,
			"solde":         solde,
			"solde_formate": FormatMontant(solde),
		})
	}
}

// -------------------------------------------------
// GET /api/caisse/peut-payer?montant=80000&mois=Mars&annee=2025
// Pré-contrôle optimiste pour les dialogues de paiement : avec mois/annee
// le contrôle porte sur la période, sinon sur le solde global. Le contrôle
// faisant foi reste celui appliqué au moment de l'écriture.
// -------------------------------------------------
func PeutPayerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var montant float64
		if _, err := fmt.Sscan(c.Query("montant"), &montant); err != nil || montant <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "montant invalide")
		}

		if mois := c.Query("mois"); mois != "" {
			if !MoisValide(mois) {
				return fiber.NewError(fiber.StatusBadRequest, "mois invalide (Janvier..Décembre)")
			}
			var annee int
			if _, err := fmt.Sscan(c.Query("annee"), &annee); err != nil || annee < 2000 {
				return fiber.NewError(fiber.StatusBadRequest, "annee invalide")
			}
			res, err := PeutPayerPourPeriode(database.DB, montant, mois, annee)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Contrôle de période impossible")
			}
			return c.JSON(res)
		}

		ok, err := CanMakePayment(database.DB, montant)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Lecture du solde impossible")
		}
		solde, _ := SoldeCourant(database.DB)
		return c.JSON(ResultatPeriode{CanPay: ok, SoldeDisponible: solde, SoldeNecessaire: montant})
	}
}

// -------------------------------------------------
// GET /api/caisse/transactions?from=2025-03-01&to=2025-03-31&type_operation=paiement_loyer
// -------------------------------------------------
func ListTransactionsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.CashTransaction{})

		if fromStr := c.Query("from"); fromStr != "" {
			from, err := time.Parse("2006-01-02", fromStr)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "date from invalide")
			}
			dbq = dbq.Where("date_transaction >= ?", from)
		}
		if toStr := c.Query("to"); toStr != "" {
			to, err := time.Parse("2006-01-02", toStr)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "date to invalide")
			}
			dbq = dbq.Where("date_transaction <= ?", to)
		}
		if op := c.Query("type_operation"); op != "" {
			dbq = dbq.Where("type_operation = ?", op)
		}

		var transactions []models.CashTransaction
		if err := dbq.Order("date_transaction ASC, created_at ASC").Find(&transactions).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Transactions illisibles")
		}

		resp := make([]TransactionResponse, 0, len(transactions))
		for i := range transactions {
			resp = append(resp, transactionResponse(&transactions[i]))
		}
		return c.JSON(resp)
	}
}

// -------------------------------------------------
// POST /api/caisse/versements
// Entrée de caisse : un agent de terrain dépose sa collecte.
// -------------------------------------------------
func CreateVersementHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body VersementRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corps de requête invalide")
		}
		if body.Montant <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Le montant doit être supérieur à 0")
		}
		if body.MoisConcerne != "" && !MoisValide(body.MoisConcerne) {
			return fiber.NewError(fiber.StatusBadRequest, "mois_concerne invalide (Janvier..Décembre)")
		}

		var agent models.Agent
		if err := database.DB.First(&agent, "id = ?", body.AgentID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Agent introuvable")
		}

		date, err := parseDate(body.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Format de date invalide, attendu 'YYYY-MM-DD'")
		}

		var tr models.CashTransaction
		err = database.DB.Transaction(func(tx *gorm.DB) error {
			res, err := UpdateCaisseVersement(tx, body.Montant, models.OperationVersementAgent)
			if err != nil {
				return err
			}

			sens := models.TransactionEntree
			tr = models.CashTransaction{
				TypeTransaction:    &sens,
				TypeOperation:      models.OperationVersementAgent,
				Montant:            body.Montant,
				DateTransaction:    date,
				SoldeAvant:         &res.SoldeAvant,
				SoldeApres:         &res.SoldeApres,
				AgentID:            &agent.ID,
				ReferenceOperation: NouvelleReference("VERS"),
				Description:        body.Description,
			}
			if body.MoisConcerne != "" {
				tr.MoisConcerne = &body.MoisConcerne
				tr.AnneeConcerne = &body.AnneeConcerne
			}
			return tx.Create(&tr).Error
		})
		if err != nil {
			return ErreurHTTP(err)
		}

		audit.LogFromCtx(c, "cash_transaction", tr.ID, models.AuditActionCreate,
			fmt.Sprintf("Versement agent %s: %s", agent.Nom, FormatMontant(tr.Montant)), nil, tr)

		return c.Status(fiber.StatusCreated).JSON(transactionResponse(&tr))
	}
}

// -------------------------------------------------
// POST /api/caisse/depenses
// Dépense entreprise : sortie comptable uniquement, la caisse physique
// n'est pas touchée (hors table versement).
// -------------------------------------------------
func CreateDepenseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body DepenseRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corps de requête invalide")
		}
		if body.Montant <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Le montant doit être supérieur à 0")
		}
		switch body.TypeOperation {
		case models.OperationDepenseEntreprise, models.OperationAutre:
			// ok
		default:
			return fiber.NewError(fiber.StatusBadRequest, "type_operation invalide (depense_entreprise|autre)")
		}

		date, err := parseDate(body.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Format de date invalide, attendu 'YYYY-MM-DD'")
		}

		var tr models.CashTransaction
		err = database.DB.Transaction(func(tx *gorm.DB) error {
			res, err := UpdateCaisseVersement(tx, body.Montant, body.TypeOperation)
			if err != nil {
				return err
			}

			// Sortie comptable : le sens est porté par l'écriture elle-même
			sens := models.TransactionSortie
			tr = models.CashTransaction{
				TypeTransaction:    &sens,
				TypeOperation:      body.TypeOperation,
				Montant:            body.Montant,
				DateTransaction:    date,
				SoldeAvant:         &res.SoldeAvant,
				SoldeApres:         &res.SoldeApres,
				Beneficiaire:       body.Beneficiaire,
				ReferenceOperation: NouvelleReference("DEP"),
				Description:        body.Description,
				PieceJustificative: body.PieceJustificative,
			}
			return tx.Create(&tr).Error
		})
		if err != nil {
			return ErreurHTTP(err)
		}

		audit.LogFromCtx(c, "cash_transaction", tr.ID, models.AuditActionCreate,
			fmt.Sprintf("Dépense entreprise: %s", FormatMontant(tr.Montant)), nil, tr)

		return c.Status(fiber.StatusCreated).JSON(transactionResponse(&tr))
	}
}

// -------------------------------------------------
// POST /api/admin/caisse/recalculer
// Action administrative : reconstruit les soldes depuis l'historique.
// -------------------------------------------------
func RecalculerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := RecalculerSoldesCaisse(database.DB)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Recalcul des soldes échoué")
		}

		audit.LogFromCtx(c, "caisse_balance", 0, models.AuditActionUpdate,
			fmt.Sprintf("Recalcul des soldes: %s -> %s (%d transactions)",
				FormatMontant(res.AncienSolde), FormatMontant(res.NouveauSolde), res.TransactionsTraitees),
			nil, res)

		return c.JSON(res)
	}
}
