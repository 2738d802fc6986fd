package models

// Location is a point on the map, optionally with the address it was geocoded from.
type Location struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address,omitempty"`
}

// DefaultLocation is Buenos Aires city centre.
var DefaultLocation = Location{Lat: -34.6037, Lng: -58.3816}

type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
	Sub   string `json:"sub"`
}

// CategoryTaxi is the only category without products; it opens a ride request.
const CategoryTaxi = "taxi"

const defaultEmoji = "📦"

var Categories = []Category{
	{ID: "food", Name: "Comida", Emoji: "🍔", Sub: "Sabor Local"},
	{ID: "market", Name: "Súper", Emoji: "🛒", Sub: "Despensa"},
	{ID: CategoryTaxi, Name: "Taxi", Emoji: "🚕", Sub: "Pedir Viaje"},
	{ID: "pets", Name: "Mascotas", Emoji: "🐶", Sub: "Pet Shop"},
	{ID: "health", Name: "Salud", Emoji: "💊", Sub: "Farmacias"},
	{ID: "home", Name: "Hogar", Emoji: "🛠️", Sub: "Ferretería"},
}

// FindCategory looks a category up by id.
func FindCategory(id string) (Category, bool) {
	for _, c := range Categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// CategoryEmoji returns the emoji shown for products of a category.
func CategoryEmoji(id string) string {
	if c, ok := FindCategory(id); ok {
		return c.Emoji
	}
	return defaultEmoji
}
