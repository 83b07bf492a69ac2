package caisse

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// NouvelleReference génère une référence de reçu courte et unique,
// ex: "VERS-3F2A9C1D".
func NouvelleReference(prefix string) string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	return fmt.Sprintf("%s-%s", prefix, id[:8])
}
