package stubapi

import "github.com/five82/roost/internal/api"

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func city(name string, lat, lng float64) api.ServerCity {
	return api.ServerCity{
		Name:     name,
		Location: api.ServerLocation{Latitude: lat, Longitude: lng, Zoom: 13},
	}
}

var (
	paris      = city("Paris", 48.85661, 2.351499)
	cologne    = city("Cologne", 50.938361, 6.959974)
	amsterdam  = city("Amsterdam", 52.370216, 4.895168)
	hamburg    = city("Hamburg", 53.550341, 10.000654)
	angelina   = &api.ServerHost{Name: "Angelina", AvatarURL: "img/avatar-angelina.jpg", IsPro: true}
	maxHost    = &api.ServerHost{Name: "Max", AvatarURL: "img/avatar-max.jpg", IsPro: false}
	commonGood = []string{"Wi-Fi", "Heating", "Kitchen", "Fridge", "Towels"}
)

// seedOffers returns the catalogue the stub serves. Hosts and goods are
// shared between calls and must be treated as read-only.
func seedOffers() []api.ServerOffer {
	return []api.ServerOffer{
		{
			ID: "1", Title: "Beautiful & luxurious apartment at great location", Type: "apartment",
			Price: 120, City: amsterdam, IsPremium: true, Rating: 4.8,
			Location:     api.ServerLocation{Latitude: 52.3909553943508, Longitude: 4.85309666406198, Zoom: 16},
			PreviewImage: "img/apartment-01.jpg",
			Images:       []string{"img/apartment-01.jpg"},
			Bedrooms:     intPtr(3), MaxAdults: intPtr(4),
			Goods: []string{"Wi-Fi", "Washing machine", "Towels", "Heating", "Coffee machine", "Baby seat", "Kitchen", "Dishwasher", "Cable TV", "Fridge"},
			Host:  angelina,
			Description: strPtr("A quiet cozy and picturesque that hides behind a a river by the unique lightness of Amsterdam. The building is green and from 18th century.\n" +
				"An independent House, strategically located between Rembrand Square and National Opera, but where the bustle of the city comes to rest in this alley flowery and colorful."),
		},
		{
			ID: "2", Title: "Wood and stone place", Type: "room",
			Price: 80, City: amsterdam, Rating: 4.0,
			Location:     api.ServerLocation{Latitude: 52.3609553943508, Longitude: 4.85309666406198, Zoom: 16},
			PreviewImage: "img/room.jpg",
			Images:       []string{"img/room.jpg", "img/room-small.jpg"},
			Bedrooms:     intPtr(1), MaxAdults: intPtr(2),
			Goods:       []string{"Wi-Fi", "Heating", "Kitchen"},
			Host:        maxHost,
			Description: strPtr("A cozy room with wooden beams and stone walls, close to the canals."),
		},
		{
			ID: "3", Title: "Canal View Prinsengracht", Type: "apartment",
			Price: 132, City: amsterdam, Rating: 4.2,
			Location:     api.ServerLocation{Latitude: 52.3909553943508, Longitude: 4.929309666406198, Zoom: 16},
			PreviewImage: "img/apartment-02.jpg",
			Images:       []string{"img/apartment-02.jpg", "img/apartment-01.jpg", "img/apartment-03.jpg"},
			Bedrooms:     intPtr(2), MaxAdults: intPtr(3),
			Goods:       commonGood,
			Host:        angelina,
			Description: strPtr("Bright apartment overlooking the Prinsengracht canal."),
		},
		{
			ID: "4", Title: "Nice, cozy, warm big bed apartment", Type: "apartment",
			Price: 180, City: amsterdam, IsPremium: true, Rating: 5.0,
			Location:     api.ServerLocation{Latitude: 52.3809553943508, Longitude: 4.939309666406198, Zoom: 16},
			PreviewImage: "img/apartment-03.jpg",
			Images:       []string{"img/apartment-03.jpg", "img/apartment-small-03.jpg"},
			Bedrooms:     intPtr(4), MaxAdults: intPtr(6),
			Goods:       commonGood,
			Host:        angelina,
			Description: strPtr("Spacious and luxurious apartment with premium amenities and stunning city views."),
		},
		{
			ID: "5", Title: "White castle", Type: "apartment",
			Price: 180, City: cologne, Rating: 5.0,
			Location:     api.ServerLocation{Latitude: 50.9339553943508, Longitude: 6.956309666406198, Zoom: 16},
			PreviewImage: "img/apartment-small-04.jpg",
			Images:       []string{"img/apartment-small-04.jpg"},
			Bedrooms:     intPtr(4), MaxAdults: intPtr(6),
			Goods:       commonGood,
			Host:        angelina,
			Description: strPtr("Spacious and luxurious apartment with premium amenities and stunning city views."),
		},
		{
			ID: "6", Title: "Loft near Canal Saint-Martin", Type: "house",
			Price: 240, City: paris, IsPremium: true, Rating: 4.6,
			Location:     api.ServerLocation{Latitude: 48.8716, Longitude: 2.3655, Zoom: 16},
			PreviewImage: "img/apartment-02.jpg",
			Images:       []string{"img/apartment-02.jpg", "img/apartment-03.jpg"},
			Bedrooms:     intPtr(2), MaxAdults: intPtr(4),
			Goods:       commonGood,
			Host:        maxHost,
			Description: strPtr("Industrial loft a short walk from the canal.\nQuiet at night, lively during the day."),
		},
		{
			ID: "7", Title: "Studio in Le Marais", Type: "room",
			Price: 95, City: paris, Rating: 3.9,
			Location:     api.ServerLocation{Latitude: 48.8599, Longitude: 2.3622, Zoom: 16},
			PreviewImage: "img/room.jpg",
			Bedrooms:     intPtr(1), MaxAdults: intPtr(2),
			Goods:        []string{"Wi-Fi"},
			Host:         angelina,
		},
		{
			ID: "8", Title: "Harbour view hotel room", Type: "hotel",
			Price: 150, City: hamburg, Rating: 4.4,
			Location:     api.ServerLocation{Latitude: 53.5451, Longitude: 9.9665, Zoom: 16},
			PreviewImage: "img/apartment-01.jpg",
			Bedrooms:     intPtr(1), MaxAdults: intPtr(2),
			Goods:        []string{"Wi-Fi", "Breakfast"},
			Host:         maxHost,
			Description:  strPtr("Wake up to container ships gliding past your window."),
		},
	}
}

func seedReviews() map[string][]api.ServerReview {
	return map[string][]api.ServerReview{
		"1": {{
			ID: "1", Date: "2019-04-24T10:00:00.000Z", Rating: 4,
			User:    api.ServerUser{Name: "Max", AvatarURL: "img/avatar-max.jpg"},
			Comment: "A quiet cozy and picturesque that hides behind a a river by the unique lightness of Amsterdam. The building is green and from 18th century.",
		}},
		"2": {{
			ID: "2", Date: "2019-05-15T10:00:00.000Z", Rating: 5,
			User:    api.ServerUser{Name: "Angelina", AvatarURL: "img/avatar-angelina.jpg", IsPro: true},
			Comment: "Perfect location and amazing views! The apartment was clean and had everything we needed for our stay.",
		}},
		"4": {{
			ID: "3", Date: "2019-06-10T10:00:00.000Z", Rating: 3,
			User:    api.ServerUser{Name: "John", AvatarURL: "img/avatar-max.jpg"},
			Comment: "Good apartment but could use some updates. The location is great though.",
		}},
	}
}
