package domain

type Service struct {
	ID          ID
	Name        string
	Price       float64
	Description string
}

// RawService carries the price under whichever key the backend chose.
// encoding/json matches field names case-insensitively, so "Price" and
// "price" already collapse; the remaining aliases need their own fields.
type RawService struct {
	ID          ID     `json:"id"`
	ServiceID   ID     `json:"serviceId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       Amount `json:"price"`
	AmountAlt   Amount `json:"amount"`
	Cost        Amount `json:"cost"`
	Value       Amount `json:"value"`
}

func (r RawService) Normalize() Service {
	price := float64(r.Price)
	for _, alt := range []Amount{r.AmountAlt, r.Cost, r.Value} {
		if price != 0 {
			break
		}
		price = float64(alt)
	}
	name := r.Name
	if name == "" {
		name = "Service"
	}
	return Service{
		ID:          firstID(r.ID, r.ServiceID),
		Name:        name,
		Price:       price,
		Description: r.Description,
	}
}

func NormalizeServices(raw []RawService) []Service {
	services := make([]Service, 0, len(raw))
	for _, r := range raw {
		services = append(services, r.Normalize())
	}
	return services
}

type Room struct {
	ID            ID
	Number        string
	Type          string
	PricePerNight float64
	Description   string
	Images        []string
	Services      []Service
	AverageRating float64
	TotalReviews  int
}

type RawRoom struct {
	ID            ID           `json:"id"`
	RoomID        ID           `json:"roomId"`
	Number        string       `json:"number"`
	Type          string       `json:"type"`
	PricePerNight Amount       `json:"pricePerNight"`
	PriceAlt      Amount       `json:"price"`
	Description   string       `json:"description"`
	ImageURL      string       `json:"imageUrl"`
	Image         string       `json:"image"`
	GalleryImages []string     `json:"galleryImages"`
	Services      []RawService `json:"services"`
	AverageRating Amount       `json:"averageRating"`
	TotalReviews  int          `json:"totalReviews"`
}

func (r RawRoom) Normalize() Room {
	price := float64(r.PricePerNight)
	if price == 0 {
		price = float64(r.PriceAlt)
	}
	return Room{
		ID:            firstID(r.ID, r.RoomID),
		Number:        r.Number,
		Type:          r.Type,
		PricePerNight: price,
		Description:   r.Description,
		Images:        r.images(),
		Services:      NormalizeServices(r.Services),
		AverageRating: float64(r.AverageRating),
		TotalReviews:  r.TotalReviews,
	}
}

// images folds the single cover field and the gallery into one deduplicated
// list, cover first.
func (r RawRoom) images() []string {
	var out []string
	seen := map[string]bool{}
	for _, img := range append([]string{firstNonEmpty(r.ImageURL, r.Image)}, r.GalleryImages...) {
		if img == "" || seen[img] {
			continue
		}
		seen[img] = true
		out = append(out, img)
	}
	return out
}

func NormalizeRooms(raw []RawRoom) []Room {
	rooms := make([]Room, 0, len(raw))
	for _, r := range raw {
		rooms = append(rooms, r.Normalize())
	}
	return rooms
}
