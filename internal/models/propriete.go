package models

import "time"

type TypePropriete string

const (
	ProprieteMaison  TypePropriete = "maison"
	ProprieteTerrain TypePropriete = "terrain"
	ProprieteLocal   TypePropriete = "local_commercial"
)

type Propriete struct {
	ID          uint          `gorm:"primaryKey"`
	Type        TypePropriete `gorm:"size:30;not null"`
	Adresse     string        `gorm:"size:255;not null"`
	Superficie  float64       // m²
	Valeur      float64       // valeur estimée
	Description string        `gorm:"size:500"`
	Disponible  bool          `gorm:"default:true"` // false une fois louée ou vendue
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
