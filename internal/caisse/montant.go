package caisse

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.French)

// FormatMontant formate un montant avec séparateurs de milliers (locale
// française) et le suffixe FCFA, tel qu'affiché à l'utilisateur.
// Le FCFA n'a pas de subdivision, on arrondit à l'unité.
func FormatMontant(montant float64) string {
	return printer.Sprintf("%d FCFA", int64(math.Round(montant)))
}
