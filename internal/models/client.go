package models

import "time"

type Client struct {
	ID        uint   `gorm:"primaryKey"`
	Nom       string `gorm:"size:100;not null"`
	Prenom    string `gorm:"size:100"`
	Telephone string `gorm:"size:30"`
	Email     string `gorm:"size:100"`
	Adresse   string `gorm:"size:255"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
