package model

import (
	"time"
)

type Cafe struct {
	ID       int64  `db:"id"`
	Name     string `db:"name"`
	MapURL   string `db:"map_url"`
	ImgURL   string `db:"img_url"`
	Location string `db:"location"`
	// Seats is free text on purpose: submissions look like "20-30" or "50+".
	Seats        string    `db:"seats"`
	HasToilet    bool      `db:"has_toilet"`
	HasWifi      bool      `db:"has_wifi"`
	HasSockets   bool      `db:"has_sockets"`
	CanTakeCalls bool      `db:"can_take_calls"`
	CoffeePrice  *string   `db:"coffee_price"` // Nullable
	CreatedAt    time.Time `db:"created_at"`
}

// Fields returns the café as an explicit, statically declared list of
// name/value pairs in column order, for views that show every attribute.
func (c *Cafe) Fields() []CafeField {
	price := ""
	if c.CoffeePrice != nil {
		price = *c.CoffeePrice
	}
	return []CafeField{
		{"name", c.Name},
		{"map_url", c.MapURL},
		{"img_url", c.ImgURL},
		{"location", c.Location},
		{"seats", c.Seats},
		{"has_toilet", boolWord(c.HasToilet)},
		{"has_wifi", boolWord(c.HasWifi)},
		{"has_sockets", boolWord(c.HasSockets)},
		{"can_take_calls", boolWord(c.CanTakeCalls)},
		{"coffee_price", price},
	}
}

type CafeField struct {
	Name  string
	Value string
}

func boolWord(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
