package caisse

import "immogest-backend/internal/models"

// Deux classifications indépendantes pour chaque type d'opération :
// son effet sur la caisse physique (versement) et son effet sur le
// solde entreprise. Une même opération peut figurer dans les deux
// (ex: paiement_loyer = sortie de caisse ET revenu entreprise : l'argent
// quitte la caisse physique pour la comptabilité au moment où il est
// reconnu comme revenu).

var versementEntrees = map[models.TypeOperation]bool{
	models.OperationVersementAgent: true,
}

var versementSorties = map[models.TypeOperation]bool{
	models.OperationPaiementLoyer:        true,
	models.OperationPaiementSouscription: true,
	models.OperationPaiementDroitTerre:   true,
	models.OperationPaiementCaution:      true,
}

var revenusEntreprise = map[models.TypeOperation]bool{
	models.OperationPaiementLoyer:        true,
	models.OperationPaiementSouscription: true,
	models.OperationPaiementDroitTerre:   true,
	models.OperationPaiementCaution:      true,
	models.OperationVente:                true,
}

var depensesEntreprise = map[models.TypeOperation]bool{
	models.OperationDepenseEntreprise:    true,
	models.OperationPaiementFacture:      true,
	models.OperationAutre:                true,
	models.OperationRemboursementCaution: true,
}

// ClassifierVersement retourne le sens du mouvement de caisse physique
// pour une opération, ou ok=false si l'opération ne touche pas la caisse.
func ClassifierVersement(typeOp models.TypeOperation) (models.TypeTransaction, bool) {
	if versementEntrees[typeOp] {
		return models.TransactionEntree, true
	}
	if versementSorties[typeOp] {
		return models.TransactionSortie, true
	}
	return "", false
}

func AffecteVersement(typeOp models.TypeOperation) bool {
	_, ok := ClassifierVersement(typeOp)
	return ok
}

func EstRevenu(typeOp models.TypeOperation) bool {
	return revenusEntreprise[typeOp]
}

func EstDepense(typeOp models.TypeOperation) bool {
	return depensesEntreprise[typeOp]
}
