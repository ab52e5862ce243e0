package onthisday

import (
	"fmt"
	"time"

	"TootBot/internal/domain"
)

// Format renders entry as a post for the given day.
func Format(entry domain.Entry, today time.Time) string {
	text := fmt.Sprintf("Heute vor %d Jahren:\n\n%s", today.Year()-entry.Year, entry.Text)
	if len(entry.Links) > 0 {
		text += "\n\n" + entry.Links[0]
	}
	return text
}
