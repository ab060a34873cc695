// Package models defines the request and response shapes the CLI exchanges
// with the filmlog API.
package models

// MovieDate is the day a movie was watched.
type MovieDate struct {
	Year  string `json:"year"`
	Month string `json:"month"`
	Day   string `json:"day"`
}

// NewMovie is the body of a create request.
type NewMovie struct {
	Title      string    `json:"title"`
	Date       MovieDate `json:"date"`
	StarRating *int      `json:"starRating,omitempty"`
	Review     string    `json:"review,omitempty"`
}

// Movie is a movie as the API returns it.
type Movie struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	Title       string `json:"title"`
	Date        string `json:"date"`
	MonthAndDay string `json:"monthAndDay"`
	StarRating  int    `json:"starRating"`
	Review      string `json:"review"`
}
