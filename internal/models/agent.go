package models

import "time"

// Agent - agent de recouvrement sur le terrain, alimente la caisse par ses versements
type Agent struct {
	ID        uint   `gorm:"primaryKey"`
	Nom       string `gorm:"size:100;not null"`
	Telephone string `gorm:"size:30"`
	Zone      string `gorm:"size:100"` // secteur géographique couvert
	Actif     bool   `gorm:"default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
