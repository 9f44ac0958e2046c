package bot

import (
	"fmt"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"
)

// handleTimeoutMe handles /timeoutme <duration>
func (h *CommandHandler) handleTimeoutMe(s Session, i *discordgo.InteractionCreate) error {
	member, err := invoker(i)
	if err != nil {
		return err
	}
	log.Printf("[TIMEOUTME] Command triggered by user %s in guild %s", member.User.ID, i.GuildID)

	value, ok, err := stringOption(i.ApplicationCommandData().Options, "duration")
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: missing option 'duration'", ErrInvalidOption)
	}

	duration, err := parseTimeoutDuration(value)
	if err != nil {
		return err
	}

	until := time.Now().Add(duration)
	if err := s.GuildMemberTimeout(i.GuildID, member.User.ID, &until); err != nil {
		return fmt.Errorf("failed to time out member: %w", err)
	}
	log.Printf("[TIMEOUTME] User %s timed out until %s", member.User.ID, until.Format(time.RFC3339))

	return respondSuccess(s, i, fmt.Sprintf("You have been timed out for %s.", duration))
}
