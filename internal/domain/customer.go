package domain

import "time"

type Customer struct {
	ID        string         `bson:"_id,omitempty" json:"id"`
	Email     string         `bson:"email" json:"email"`
	Name      string         `bson:"name,omitempty" json:"name,omitempty"`
	FirstName string         `bson:"first_name,omitempty" json:"first_name,omitempty"`
	LastName  string         `bson:"last_name,omitempty" json:"last_name,omitempty"`
	Published bool           `bson:"published" json:"published"`
	Orders    []string       `bson:"orders,omitempty" json:"orders,omitempty"`
	Data      map[string]any `bson:"data,omitempty" json:"data,omitempty"`
	CreatedAt time.Time      `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time      `bson:"updated_at" json:"updated_at"`
}

// Merge copies the whitelisted keys from data onto the customer. Known
// identity fields land on the struct, everything else in the free-form bag.
func (c *Customer) Merge(data map[string]any, whitelist []string) {
	for _, key := range whitelist {
		value, ok := data[key]
		if !ok {
			continue
		}
		s, _ := value.(string)
		switch key {
		case "name":
			c.Name = s
		case "first_name":
			c.FirstName = s
		case "last_name":
			c.LastName = s
		case "email":
			c.Email = s
		default:
			if c.Data == nil {
				c.Data = make(map[string]any)
			}
			c.Data[key] = value
		}
	}
}

// RecordOrder appends an order id to the customer's in-band order history.
// Appending twice for the same order is a no-op.
func (c *Customer) RecordOrder(orderID string) {
	for _, id := range c.Orders {
		if id == orderID {
			return
		}
	}
	c.Orders = append(c.Orders, orderID)
}
