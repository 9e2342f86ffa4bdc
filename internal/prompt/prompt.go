// Package prompt turns a conversation into the single prompt string sent to
// the generate endpoint.
package prompt

import (
	"fmt"
	"strings"

	"github.com/diogo/cvischat/internal/models"
)

// Format renders every message as a role line and a quoted content line,
// separating blocks with a blank line. Content is neither escaped nor
// truncated.
func Format(msgs []models.Message) string {
	blocks := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		blocks = append(blocks, formatBlock(msg))
	}
	return strings.Join(blocks, "\n")
}

func formatBlock(msg models.Message) string {
	return fmt.Sprintf("Role: %s\nContent: \"%s\"\n", msg.Role, msg.Content)
}
