package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMovieDate_Rendering(t *testing.T) {
	tests := []struct {
		date        MovieDate
		full, short string
	}{
		{MovieDate{Year: "2017", Month: "March", Day: "8"}, "March 8 2017", "March 8"},
		{MovieDate{Year: "2017", Month: "March"}, "March 2017", "March"},
		{MovieDate{Year: "2017"}, "2017", ""},
		{MovieDate{}, "", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.full, tt.date.Full())
		assert.Equal(t, tt.short, tt.date.MonthAndDay())
	}
}

func TestSession_ExpiresAt(t *testing.T) {
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s := Session{CreatedAt: created, ExpiresIn: 86_400_000}
	assert.True(t, s.ExpiresAt().Equal(created.Add(24*time.Hour)))
}
