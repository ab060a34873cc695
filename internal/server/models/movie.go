package models

import "strings"

// DefaultReview is stored when a movie is created without a review.
const DefaultReview = "You have not entered a review."

// MovieDate is the day a movie was watched, kept as the user typed it.
type MovieDate struct {
	Year  string `json:"year"`
	Month string `json:"month"`
	Day   string `json:"day"`
}

// MonthAndDay renders "<month> <day>".
func (d MovieDate) MonthAndDay() string {
	return strings.TrimSpace(d.Month + " " + d.Day)
}

// Full renders "<month> <day> <year>".
func (d MovieDate) Full() string {
	return strings.TrimSpace(strings.TrimSpace(d.Month+" "+d.Day) + " " + d.Year)
}

type Movie struct {
	ID         string
	UserID     string
	Title      string
	Date       MovieDate
	StarRating int
	Review     string
}

// MovieUpdate carries the fields of a partial update; nil means unchanged.
type MovieUpdate struct {
	Title      *string
	Date       *MovieDate
	StarRating *int
	Review     *string
}
