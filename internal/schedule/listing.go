package schedule

import (
	"fmt"
	"io"
)

// WriteListing renders a schedule as a human-readable listing, one block per
// date, titles alphabetical, showtimes ascending.
func WriteListing(w io.Writer, s *Schedule) error {
	for _, day := range s.Days {
		if _, err := fmt.Fprintf(w, "Date: %s\n", dateKey(day.Date)); err != nil {
			return err
		}
		for _, title := range day.Titles() {
			if _, err := fmt.Fprintf(w, "  Movie: %s\n", title); err != nil {
				return err
			}
			for _, sh := range day.Showings[title] {
				if _, err := fmt.Fprintf(w, "    Auditorium: %d, Showtime: %s\n", sh.Room, sh.Start.Format("15:04")); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
