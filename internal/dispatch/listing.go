package dispatch

import (
	"fmt"
	"strings"

	"telegram-todo-bot/internal/models"
)

// FormatItems renders items grouped by category. Rows must arrive
// pre-sorted by category name then item id; grouping is a single pass
// emitting a header whenever the category changes.
func FormatItems(items []models.Item) string {
	if len(items) == 0 {
		return replyEmptyList
	}

	var lines []string
	current := ""
	for i, it := range items {
		if i == 0 || it.Category != current {
			lines = append(lines, fmt.Sprintf("\n--- %s ---", it.Category))
			current = it.Category
		}

		status := "📝"
		if it.Done {
			status = "✅"
		}
		line := fmt.Sprintf("%s [%d] %s (%s)", status, it.ID, it.Title, it.SubCategory)
		if it.Done && it.CompletedAt != nil {
			line += " - 完成於 " + it.CompletedAt.Format("2006-01-02 15:04")
		}
		lines = append(lines, line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
