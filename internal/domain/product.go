package domain

import "time"

type Product struct {
	ID         string    `bson:"_id,omitempty" json:"id"`
	Name       string    `bson:"name" json:"name"`
	Price      int64     `bson:"price" json:"price"`
	TrackStock bool      `bson:"track_stock" json:"track_stock"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time `bson:"updated_at" json:"updated_at"`
}
