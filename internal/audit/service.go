package audit

import (
	"encoding/json"
	"fmt"
	"log"

	"immogest-backend/internal/auth"
	"immogest-backend/internal/database"
	"immogest-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type LogOptions struct {
	UserID      uint
	UserName    string
	EntityType  string
	EntityID    uint
	Action      models.AuditAction
	Description string
	Before      any
	After       any
}

func WriteLog(opts LogOptions) error {
	// Colonne JSON : "null" explicite plutôt que chaîne vide
	beforeStr := "null"
	afterStr := "null"

	if opts.Before != nil {
		if b, err := json.Marshal(opts.Before); err == nil {
			beforeStr = string(b)
		}
	}
	if opts.After != nil {
		if b, err := json.Marshal(opts.After); err == nil {
			afterStr = string(b)
		}
	}

	entry := models.AuditLog{
		UserID:      opts.UserID,
		UserName:    opts.UserName,
		EntityType:  opts.EntityType,
		EntityID:    opts.EntityID,
		Action:      opts.Action,
		Description: opts.Description,
		BeforeData:  beforeStr,
		AfterData:   afterStr,
	}

	if err := database.DB.Create(&entry).Error; err != nil {
		return fmt.Errorf("journal d'audit non enregistré: %w", err)
	}
	return nil
}

// LogFromCtx écrit une entrée d'audit pour l'utilisateur de la requête.
// Best-effort : un échec d'audit ne fait pas échouer l'opération métier.
func LogFromCtx(c *fiber.Ctx, entityType string, entityID uint, action models.AuditAction, description string, before, after any) {
	userID, ok := c.Locals(auth.CtxUserIDKey).(uint)
	if !ok {
		return
	}

	var user models.User
	userName := ""
	if err := database.DB.First(&user, "id = ?", userID).Error; err == nil {
		userName = user.Nom
	}

	if err := WriteLog(LogOptions{
		UserID:      userID,
		UserName:    userName,
		EntityType:  entityType,
		EntityID:    entityID,
		Action:      action,
		Description: description,
		Before:      before,
		After:       after,
	}); err != nil {
		log.Printf("Audit non écrit: %v", err)
	}
}
