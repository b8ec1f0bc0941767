package domain

// MoneyScale number of fraction digits kept for prices
const MoneyScale = 2

// Business validation constants
const (
	MaxNotesLength      = 500
	MaxClientNameLength = 100
	MaxEmailLength      = 254
	MaxPromoCodeLength  = 50
	DefaultDatesAhead   = 30
	MaxDatesAhead       = 60
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
