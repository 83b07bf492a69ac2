package immobilier

import (
	"time"

	"immogest-backend/internal/database"
	"immogest-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type ClientRequest struct {
	Nom       string `json:"nom"`
	Prenom    string `json:"prenom"`
	Telephone string `json:"telephone"`
	Email     string `json:"email"`
	Adresse   string `json:"adresse"`
}

type ProprieteRequest struct {
	Type        models.TypePropriete `json:"type"`
	Adresse     string               `json:"adresse"`
	Superficie  float64              `json:"superficie"`
	Valeur      float64              `json:"valeur"`
	Description string               `json:"description"`
}

type LocationRequest struct {
	ClientID     uint    `json:"client_id"`
	ProprieteID  uint    `json:"propriete_id"`
	LoyerMensuel float64 `json:"loyer_mensuel"`
	Caution      float64 `json:"caution"`
	DateDebut    string  `json:"date_debut"` // "2006-01-02"
}

// -------------------------------------------------
// POST /api/clients
// -------------------------------------------------
func CreateClientHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ClientRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corps de requête invalide")
		}
		if body.Nom == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Le nom est obligatoire")
		}

		client := models.Client{
			Nom:       body.Nom,
			Prenom:    body.Prenom,
			Telephone: body.Telephone,
			Email:     body.Email,
			Adresse:   body.Adresse,
		}
		if err := database.DB.Create(&client).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Création du client échouée")
		}
		return c.Status(fiber.StatusCreated).JSON(client)
	}
}

// -------------------------------------------------
// GET /api/clients
// -------------------------------------------------
func ListClientsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var clients []models.Client
		if err := database.DB.Order("nom ASC").Find(&clients).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Clients illisibles")
		}
		return c.JSON(clients)
	}
}

// -------------------------------------------------
// PUT /api/clients/:id
// -------------------------------------------------
func UpdateClientHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var client models.Client
		if err := database.DB.First(&client, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Client introuvable")
		}

		var body ClientRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corps de requête invalide")
		}
		if body.Nom == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Le nom est obligatoire")
		}

		client.Nom = body.Nom
		client.Prenom = body.Prenom
		client.Telephone = body.Telephone
		client.Email = body.Email
		client.Adresse = body.Adresse
		if err := database.DB.Save(&client).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Mise à jour du client échouée")
		}
		return c.JSON(client)
	}
}

// -------------------------------------------------
// POST /api/proprietes
// -------------------------------------------------
func CreateProprieteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ProprieteRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corps de requête invalide")
		}
		switch body.Type {
		case models.ProprieteMaison, models.ProprieteTerrain, models.ProprieteLocal:
			// ok
		default:
			return fiber.NewError(fiber.StatusBadRequest, "Type invalide (maison|terrain|local_commercial)")
		}
		if body.Adresse == "" {
			return fiber.NewError(fiber.StatusBadRequest, "L'adresse est obligatoire")
		}

		propriete := models.Propriete{
			Type:        body.Type,
			Adresse:     body.Adresse,
			Superficie:  body.Superficie,
			Valeur:      body.Valeur,
			Description: body.Description,
			Disponible:  true,
		}
		if err := database.DB.Create(&propriete).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Création de la propriété échouée")
		}
		return c.Status(fiber.StatusCreated).JSON(propriete)
	}
}

// -------------------------------------------------
// GET /api/proprietes?disponible=true
// -------------------------------------------------
func ListProprietesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Propriete{})
		if c.Query("disponible") == "true" {
			dbq = dbq.Where("disponible = ?", true)
		}

		var proprietes []models.Propriete
		if err := dbq.Order("created_at DESC").Find(&proprietes).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Propriétés illisibles")
		}
		return c.JSON(proprietes)
	}
}

// -------------------------------------------------
// POST /api/locations
// -------------------------------------------------
func CreateLocationHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LocationRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corps de requête invalide")
		}
		if body.LoyerMensuel <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Le loyer mensuel doit être supérieur à 0")
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

		location := models.Location{
			ClientID:     client.ID,
			ProprieteID:  propriete.ID,
			LoyerMensuel: body.LoyerMensuel,
			Caution:      body.Caution,
			DateDebut:    dateDebut,
			Statut:       models.LocationActive,
		}
		if err := database.DB.Create(&location).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Création du bail échouée")
		}

		database.DB.Model(&propriete).Update("disponible", false)

		return c.Status(fiber.StatusCreated).JSON(location)
	}
}

// -------------------------------------------------
// GET /api/locations?statut=active
// -------------------------------------------------
func ListLocationsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Location{}).Preload("Client").Preload("Propriete")
		if statut := c.Query("statut"); statut != "" {
			dbq = dbq.Where("statut = ?", statut)
		}

		var locations []models.Location
		if err := dbq.Order("created_at DESC").Find(&locations).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Baux illisibles")
		}
		return c.JSON(locations)
	}
}

// -------------------------------------------------
// POST /api/locations/:id/resilier
// -------------------------------------------------
func ResilierLocationHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var location models.Location
		if err := database.DB.First(&location, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Bail introuvable")
		}
		if location.Statut == models.LocationResiliee {
			return fiber.NewError(fiber.StatusBadRequest, "Ce bail est déjà résilié")
		}

		now := time.Now()
		location.Statut = models.LocationResiliee
		location.DateFin = &now
		if err := database.DB.Save(&location).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Résiliation échouée")
		}

		// La propriété redevient disponible
		database.DB.Model(&models.Propriete{}).
			Where("id = ?", location.ProprieteID).
			Update("disponible", true)

		return c.JSON(location)
	}
}
