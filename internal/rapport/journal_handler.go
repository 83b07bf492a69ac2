package rapport

import (
	"fmt"
	"time"

	"immogest-backend/internal/caisse"
	"immogest-backend/internal/database"
	"immogest-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

// GET /api/rapports/journal-caisse?mois=3&annee=2025
// Export Excel du journal de caisse du mois : une ligne par écriture,
// avec le solde après chaque mouvement.
func JournalCaisseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var mois, annee int
		if _, err := fmt.Sscan(c.Query("mois"), &mois); err != nil || mois < 1 || mois > 12 {
			return fiber.NewError(fiber.StatusBadRequest, "mois invalide (1-12)")
		}
		if _, err := fmt.Sscan(c.Query("annee"), &annee); err != nil || annee < 2000 {
			return fiber.NewError(fiber.StatusBadRequest, "annee invalide")
		}

		loc := time.Now().Location()
		debut := time.Date(annee, time.Month(mois), 1, 0, 0, 0, 0, loc)
		fin := debut.AddDate(0, 1, 0)

		var transactions []models.CashTransaction
		if err := database.DB.
			Where("date_transaction >= ? AND date_transaction < ?", debut, fin).
			Order("date_transaction ASC, created_at ASC").
			Find(&transactions).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Journal illisible")
		}

		f := excelize.NewFile()
		defer f.Close()

		sheet := "Journal"
		f.SetSheetName("Sheet1", sheet)

		entetes := []string{"Date", "Référence", "Opération", "Sens", "Montant", "Solde avant", "Solde après", "Bénéficiaire", "Description"}
		for i, h := range entetes {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			f.SetCellValue(sheet, cell, h)
		}

		ligne := 2
		var totalEntrees, totalSorties float64
		for i := range transactions {
			t := &transactions[i]

			sens := ""
			if t.TypeTransaction != nil {
				sens = string(*t.TypeTransaction)
				if caisse.AffecteVersement(t.TypeOperation) {
					if *t.TypeTransaction == models.TransactionEntree {
						totalEntrees += t.Montant
					} else {
						totalSorties += t.Montant
					}
				}
			}

			valeurs := []interface{}{
				t.DateTransaction.Format("02/01/2006"),
				t.ReferenceOperation,
				string(t.TypeOperation),
				sens,
				t.Montant,
				"",
				"",
				t.Beneficiaire,
				t.Description,
			}
			if t.SoldeAvant != nil {
				valeurs[5] = *t.SoldeAvant
			}
			if t.SoldeApres != nil {
				valeurs[6] = *t.SoldeApres
			}
			for j, v := range valeurs {
				cell, _ := excelize.CoordinatesToCellName(j+1, ligne)
				f.SetCellValue(sheet, cell, v)
			}
			ligne++
		}

		// Lignes de synthèse
		ligne++
		f.SetCellValue(sheet, fmt.Sprintf("A%d", ligne), "Total entrées")
		f.SetCellValue(sheet, fmt.Sprintf("B%d", ligne), caisse.FormatMontant(totalEntrees))
		ligne++
		f.SetCellValue(sheet, fmt.Sprintf("A%d", ligne), "Total sorties")
		f.SetCellValue(sheet, fmt.Sprintf("B%d", ligne), caisse.FormatMontant(totalSorties))

		solde, err := caisse.SoldeCourant(database.DB)
		if err == nil {
			ligne++
			f.SetCellValue(sheet, fmt.Sprintf("A%d", ligne), "Solde caisse courant")
			f.SetCellValue(sheet, fmt.Sprintf("B%d", ligne), caisse.FormatMontant(solde))
		}

		buf, err := f.WriteToBuffer()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Génération du fichier échouée")
		}

		filename := fmt.Sprintf("journal-caisse-%04d-%02d.xlsx", annee, mois)
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
		return c.Send(buf.Bytes())
	}
}
