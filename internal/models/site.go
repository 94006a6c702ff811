package models

// SiteInfo is the shop profile printed on bills and served to the public endpoint.
type SiteInfo struct {
	Name           string  `json:"name"`
	Tagline        string  `json:"tagline"`
	Address        string  `json:"address"`
	Phone          string  `json:"phone"`
	Email          string  `json:"email"`
	GSTNumber      string  `json:"gst_number" mapstructure:"gst_number"`
	CurrencySymbol string  `json:"currency_symbol" mapstructure:"currency_symbol"`
	OpeningHours   string  `json:"opening_hours" mapstructure:"opening_hours"`
	Footer         string  `json:"footer"`
	Socials        Socials `json:"socials"`
}

type Socials struct {
	Facebook  string `json:"facebook"`
	Instagram string `json:"instagram"`
	Whatsapp  string `json:"whatsapp"`
}
