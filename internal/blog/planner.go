package blog

import "github.com/bwmarrin/discordgo"

// Placement is the outcome of planning where a channel belongs in its category
type Placement struct {
	Channel  string // ID of the channel being placed
	Position int    // Position the channel should hold
	Move     bool   // False when the channel is already where it belongs
}

// PlanPosition works out the position that keeps siblings sorted by name after
// the channel marked with marker was created or renamed.
//
// The target takes over the position its alphabetical predecessor holds; the
// platform shifts everything after it. A target that sorts first stays put.
func PlanPosition(siblings []*discordgo.Channel, marker string) (Placement, error) {
	if len(siblings) == 0 {
		return Placement{}, ErrEmptySiblingGroup
	}

	sorted := SortByName(siblings)
	lastPosition := sorted[0].Position

	for idx, ch := range sorted {
		if ch.Topic != marker || marker == "" {
			lastPosition = ch.Position
			continue
		}

		if idx == 0 {
			return Placement{Channel: ch.ID, Position: ch.Position}, nil
		}

		return Placement{
			Channel:  ch.ID,
			Position: lastPosition,
			Move:     lastPosition != ch.Position,
		}, nil
	}

	return Placement{}, ErrTargetNotInGroup
}
