package domain

// PlaceDetails mirrors the Places details payload for the fields we project.
// Everything is optional; the upstream API omits whatever it does not know.
type PlaceDetails struct {
	Name                 string        `json:"name,omitempty"`
	FormattedAddress     string        `json:"formatted_address,omitempty"`
	Rating               *float64      `json:"rating,omitempty"`
	UserRatingsTotal     *int          `json:"user_ratings_total,omitempty"`
	PriceLevel           *int          `json:"price_level,omitempty"`
	OpeningHours         *OpeningHours `json:"opening_hours,omitempty"`
	Website              string        `json:"website,omitempty"`
	FormattedPhoneNumber string        `json:"formatted_phone_number,omitempty"`
	Photos               []Photo       `json:"photos,omitempty"`
	Reviews              []Review      `json:"reviews,omitempty"`
}

type OpeningHours struct {
	OpenNow     *bool    `json:"open_now,omitempty"`
	WeekdayText []string `json:"weekday_text,omitempty"`
}

type Photo struct {
	PhotoReference string `json:"photo_reference,omitempty"`
	Width          int    `json:"width,omitempty"`
	Height         int    `json:"height,omitempty"`
}

type Review struct {
	AuthorName              string   `json:"author_name,omitempty"`
	Rating                  *float64 `json:"rating,omitempty"`
	Text                    string   `json:"text,omitempty"`
	Time                    int64    `json:"time,omitempty"`
	RelativeTimeDescription string   `json:"relative_time_description,omitempty"`
}
