package caisse

import (
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
)

// Le séparateur de milliers français de x/text est une espace insécable
// (fine ou non selon la version CLDR) : on compare après normalisation.
func sansEspaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func TestFormatMontant(t *testing.T) {
	cas := []struct {
		montant float64
		attendu string
	}{
		{0, "0FCFA"},
		{500, "500FCFA"},
		{30000, "30000FCFA"},
		{1250000, "1250000FCFA"},
		{99999.6, "100000FCFA"}, // arrondi au franc
	}
	for _, c := range cas {
		assert.Equal(t, c.attendu, sansEspaces(FormatMontant(c.montant)))
	}
}

func TestFormatMontantDansErreur(t *testing.T) {
	err := &ErrSoldeInsuffisant{SoldeActuel: 20000, MontantRequis: 80000}
	msg := sansEspaces(err.Error())
	assert.Contains(t, msg, "Soldeinsuffisant")
	assert.Contains(t, msg, "20000FCFA")
	assert.Contains(t, msg, "80000FCFA")
}
