package caisse

import (
	"errors"
	"fmt"
)

// ErrMontantInvalide - le montant d'une écriture doit être strictement positif
var ErrMontantInvalide = errors.New("le montant doit être strictement positif")

// ErrSoldeInsuffisant - une sortie ferait passer la caisse physique en
// négatif. Rejet métier : la transaction englobante doit être annulée
// intégralement. Le message est pré-formaté pour affichage direct.
type ErrSoldeInsuffisant struct {
	SoldeActuel   float64
	MontantRequis float64
}

func (e *ErrSoldeInsuffisant) Error() string {
	return fmt.Sprintf("Solde insuffisant dans la caisse. Solde actuel: %s, montant requis: %s",
		FormatMontant(e.SoldeActuel), FormatMontant(e.MontantRequis))
}
