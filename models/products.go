package models

import "time"

type Product struct {
	ID          string    `gorm:"primaryKey;size:36" bson:"_id" json:"id"`
	Name        string    `gorm:"not null" bson:"name" json:"name"`
	Price       float64   `gorm:"not null" bson:"price" json:"price"`
	Description string    `bson:"description" json:"description"`
	Category    string    `bson:"category" json:"category"`
	Image       string    `bson:"image" json:"image"`
	Rating      float64   `gorm:"default:0" bson:"rating" json:"rating"`
	ReviewCount int       `gorm:"default:0" bson:"reviews" json:"reviews"`
	Badge       string    `bson:"badge,omitempty" json:"badge,omitempty"` // optional: "New", "Sale", ...
	Stock       int       `gorm:"default:0" bson:"stock" json:"stock"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}
