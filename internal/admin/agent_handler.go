package admin

import (
	"immogest-backend/internal/database"
	"immogest-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type AgentRequest struct {
	Nom       string `json:"nom"`
	Telephone string `json:"telephone"`
	Zone      string `json:"zone"`
}

// -------------------------------------------------
// POST /api/admin/agents
// -------------------------------------------------
func CreateAgentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body AgentRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corps de requête invalide")
		}
		if body.Nom == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Le nom est obligatoire")
		}

		agent := models.Agent{
			Nom:       body.Nom,
			Telephone: body.Telephone,
			Zone:      body.Zone,
			Actif:     true,
		}
		if err := database.DB.Create(&agent).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Création de l'agent échouée")
		}
		return c.Status(fiber.StatusCreated).JSON(agent)
	}
}

// -------------------------------------------------
// GET /api/admin/agents?actif=true
// -------------------------------------------------
func ListAgentsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Agent{})
		if c.Query("actif") == "true" {
			dbq = dbq.Where("actif = ?", true)
		}

		var agents []models.Agent
		if err := dbq.Order("nom ASC").Find(&agents).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Agents illisibles")
		}
		return c.JSON(agents)
	}
}

// -------------------------------------------------
// PUT /api/admin/agents/:id
// -------------------------------------------------
func UpdateAgentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var agent models.Agent
		if err := database.DB.First(&agent, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Agent introuvable")
		}

		var body AgentRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corps de requête invalide")
		}
		if body.Nom == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Le nom est obligatoire")
		}

		agent.Nom = body.Nom
		agent.Telephone = body.Telephone
		agent.Zone = body.Zone
		if err := database.DB.Save(&agent).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Mise à jour de l'agent échouée")
		}
		return c.JSON(agent)
	}
}

// -------------------------------------------------
// DELETE /api/admin/agents/:id
// Désactivation : les agents référencés par le journal de caisse ne sont
// jamais supprimés physiquement.
// -------------------------------------------------
func DesactiverAgentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var agent models.Agent
		if err := database.DB.First(&agent, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Agent introuvable")
		}

		if err := database.DB.Model(&agent).Update("actif", false).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Désactivation échouée")
		}
		return c.JSON(fiber.Map{"id": agent.ID, "actif": false})
	}
}
