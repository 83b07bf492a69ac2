package main

import (
	"log"
	"strings"

	"immogest-backend/internal/admin"
	"immogest-backend/internal/audit"
	"immogest-backend/internal/auth"
	"immogest-backend/internal/caisse"
	"immogest-backend/internal/config"
	"immogest-backend/internal/dashboard"
	"immogest-backend/internal/database"
	"immogest-backend/internal/facture"
	"immogest-backend/internal/immobilier"
	"immogest-backend/internal/models"
	"immogest-backend/internal/paiement"
	"immogest-backend/internal/rapport"
	"immogest-backend/internal/souscription"
	"immogest-backend/internal/vente"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Erreur inattendue:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Erreur serveur inattendue",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Auth public
	api.Post("/auth/register-admin", auth.RegisterAdminHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protégé
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Routes admin
	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(auth.RequireRole(models.RoleAdmin))

	// Agents de recouvrement
	adminRoutes.Post("/agents", admin.CreateAgentHandler())
	adminRoutes.Get("/agents", admin.ListAgentsHandler())
	adminRoutes.Put("/agents/:id", admin.UpdateAgentHandler())
	adminRoutes.Delete("/agents/:id", admin.DesactiverAgentHandler())

	// Recalcul des soldes (correction de dérive)
	adminRoutes.Post("/caisse/recalculer", caisse.RecalculerHandler())

	// Caisse
	protected.Get("/caisse/solde", caisse.SoldeHandler())
	protected.Get("/caisse/solde-entreprise", caisse.SoldeEntrepriseHandler())
	protected.Get("/caisse/solde-periode", caisse.SoldePeriodeHandler())
	protected.Get("/caisse/peut-payer", caisse.PeutPayerHandler())
	protected.Get("/caisse/transactions", caisse.ListTransactionsHandler())
	protected.Post("/caisse/versements", caisse.CreateVersementHandler())
	protected.Post("/caisse/depenses", caisse.CreateDepenseHandler())

	// Paiements
	protected.Post("/paiements/loyer", paiement.PayerLoyerHandler())
	protected.Post("/paiements/souscription", paiement.PayerSouscriptionHandler())
	protected.Post("/paiements/droit-terre", paiement.PayerDroitTerreHandler())
	protected.Post("/paiements/caution", paiement.PayerCautionHandler())

	// Immobilier
	protected.Post("/clients", immobilier.CreateClientHandler())
	protected.Get("/clients", immobilier.ListClientsHandler())
	protected.Put("/clients/:id", immobilier.UpdateClientHandler())
	protected.Post("/proprietes", immobilier.CreateProprieteHandler())
	protected.Get("/proprietes", immobilier.ListProprietesHandler())
	protected.Post("/locations", immobilier.CreateLocationHandler())
	protected.Get("/locations", immobilier.ListLocationsHandler())
	protected.Post("/locations/:id/resilier", immobilier.ResilierLocationHandler())

	// Souscriptions & droit de terre
	protected.Post("/souscriptions", souscription.CreateSouscriptionHandler())
	protected.Get("/souscriptions", souscription.ListSouscriptionsHandler())
	protected.Get("/souscriptions/:id/echeances", souscription.ListEcheancesHandler())

	// Factures fournisseur
	protected.Post("/factures", facture.CreateFactureHandler())
	protected.Get("/factures", facture.ListFacturesHandler())
	protected.Post("/factures/:id/reglement", facture.ReglerFactureHandler())

	// Ventes
	protected.Post("/ventes", vente.CreateVenteHandler())
	protected.Get("/ventes", vente.ListVentesHandler())

	// Tableau de bord
	protected.Get("/dashboard/flux-caisse", dashboard.FluxCaisseHandler())

	// Rapports
	protected.Get("/rapports/journal-caisse", rapport.JournalCaisseHandler())

	// Journal d'audit
	protected.Get("/audit-logs", audit.ListAuditLogsHandler())

	log.Println("Serveur démarré port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
