package dashboard

import (
	"fmt"
	"time"

	"immogest-backend/internal/caisse"
	"immogest-backend/internal/database"
	"immogest-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type FluxPoint struct {
	Label   string  `json:"label"` // premier jour du mois
	Entrees float64 `json:"entrees"`
	Sorties float64 `json:"sorties"`
	Net     float64 `json:"net"`
}

type FluxTotaux struct {
	Entrees float64 `json:"entrees"`
	Sorties float64 `json:"sorties"`
	Net     float64 `json:"net"`
}

type FluxCaisseResponse struct {
	From         string      `json:"from"`
	To           string      `json:"to"`
	Points       []FluxPoint `json:"points"`
	Totaux       FluxTotaux  `json:"totaux"`
	SoldeCourant float64     `json:"solde_courant"`
}

// GET /api/dashboard/flux-caisse?count=12
// Série mensuelle des entrées/sorties de la caisse physique, pour le
// graphique du tableau de bord.
func FluxCaisseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		count := 12
		if countStr := c.Query("count", ""); countStr != "" {
			if _, err := fmt.Sscan(countStr, &count); err != nil || count <= 0 || count > 60 {
				return fiber.NewError(fiber.StatusBadRequest, "count invalide")
			}
		}

		now := time.Now()
		loc := now.Location()
		// début du mois courant, puis count-1 mois en arrière
		end := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
		start := end.AddDate(0, -(count - 1), 0)

		var transactions []models.CashTransaction
		if err := database.DB.
			Where("date_transaction >= ? AND type_transaction IS NOT NULL", start).
			Order("date_transaction ASC").
			Find(&transactions).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Flux de caisse illisible")
		}

		// Agrégation par mois côté application : le bucket mensuel dépend du
		// fuseau du serveur, pas de celui de la base
		buckets := make(map[string]*FluxPoint, count)
		order := make([]string, 0, count)
		for i := 0; i < count; i++ {
			d := start.AddDate(0, i, 0)
			label := d.Format("2006-01")
			buckets[label] = &FluxPoint{Label: label}
			order = append(order, label)
		}

		totaux := FluxTotaux{}
		for i := range transactions {
			t := &transactions[i]
			point, ok := buckets[t.DateTransaction.Format("2006-01")]
			if !ok || t.TypeTransaction == nil {
				continue
			}
			switch *t.TypeTransaction {
			case models.TransactionEntree:
				point.Entrees += t.Montant
				totaux.Entrees += t.Montant
			case models.TransactionSortie:
				point.Sorties += t.Montant
				totaux.Sorties += t.Montant
			}
			point.Net = point.Entrees - point.Sorties
		}
		totaux.Net = totaux.Entrees - totaux.Sorties

		points := make([]FluxPoint, 0, count)
		for _, label := range order {
			points = append(points, *buckets[label])
		}

		solde, err := caisse.SoldeCourant(database.DB)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Lecture du solde impossible")
		}

		return c.JSON(FluxCaisseResponse{
			From:         start.Format("2006-01-02"),
			To:           now.Format("2006-01-02"),
			Points:       points,
			Totaux:       totaux,
			SoldeCourant: solde,
		})
	}
}
