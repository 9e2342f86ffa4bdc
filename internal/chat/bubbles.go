package chat

import "github.com/diogo/cvischat/internal/models"

// Variant is the side a bubble is drawn on
type Variant string

const (
	VariantSent     Variant = "sent"
	VariantReceived Variant = "received"
)

// Bubble is the render-ready form of one conversation entry
type Bubble struct {
	Index   int
	Variant Variant
	Avatar  string
	Content string
	Loading bool
}

// Bubbles projects msgs onto bubbles. When loading is true a trailing
// placeholder bubble is added; msgs itself is never modified.
func Bubbles(msgs []models.Message, loading bool) []Bubble {
	out := make([]Bubble, 0, len(msgs)+1)
	for i, msg := range msgs {
		variant := VariantReceived
		if msg.Role == models.RoleUser {
			variant = VariantSent
		}
		out = append(out, Bubble{
			Index:   i,
			Variant: variant,
			Avatar:  msg.Role.Avatar(),
			Content: msg.Content,
		})
	}

	if loading {
		out = append(out, Bubble{
			Index:   len(msgs),
			Variant: VariantReceived,
			Avatar:  models.RoleSystem.Avatar(),
			Loading: true,
		})
	}

	return out
}
