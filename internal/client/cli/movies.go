package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/dmitrijs2005/filmlog/internal/client/models"
)

var getMultiline = GetMultiline

var errBadRating = errors.New("star rating must be a whole number")

// ListMovies prints the logged-in user's movies as a table.
func (a *App) ListMovies(ctx context.Context) error {
	movies, err := a.api.Movies(ctx)
	if err != nil {
		return err
	}
	if len(movies) == 0 {
		fmt.Fprintln(a.out, "No movies yet")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tWATCHED\tSTARS")
	for _, m := range movies {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", m.ID, m.Title, m.Date, m.StarRating)
	}
	return tw.Flush()
}

// AddMovie prompts for a movie and stores it. Rating and review are optional.
func (a *App) AddMovie(ctx context.Context) error {
	var (
		m   models.NewMovie
		err error
	)
	prompts := []struct {
		text string
		dst  *string
	}{
		{"Enter title", &m.Title},
		{"Enter year watched", &m.Date.Year},
		{"Enter month watched", &m.Date.Month},
		{"Enter day watched", &m.Date.Day},
	}
	for _, p := range prompts {
		if *p.dst, err = getSimpleText(a.reader, p.text, a.out); err != nil {
			return err
		}
	}

	rating, err := getSimpleText(a.reader, "Enter star rating 0-5 (empty to skip)", a.out)
	if err != nil {
		return err
	}
	if rating != "" {
		n, err := strconv.Atoi(rating)
		if err != nil {
			return errBadRating
		}
		m.StarRating = &n
	}

	if m.Review, err = getMultiline(a.reader, "Enter review (optional)", a.out); err != nil {
		return err
	}

	saved, err := a.api.AddMovie(ctx, m)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Saved %q (%s)\n", saved.Title, saved.ID)
	return nil
}
