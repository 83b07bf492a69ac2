package caisse

// MoisAnnee - noms de mois tels que stockés dans mois_concerne
var MoisAnnee = []string{
	"Janvier", "Février", "Mars", "Avril", "Mai", "Juin",
	"Juillet", "Août", "Septembre", "Octobre", "Novembre", "Décembre",
}

func MoisValide(mois string) bool {
	for _, m := range MoisAnnee {
		if m == mois {
			return true
		}
	}
	return false
}
