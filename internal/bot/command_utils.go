package bot

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// Command Utility Functions
// Shared helper functions used across all command handlers

// discordMessageLimit is the maximum length of a message's content
const discordMessageLimit = 2000

var (
	// ErrNotInGuild is returned for commands that only make sense in a server
	ErrNotInGuild = errors.New("This command can only be used in a server.")
	// ErrInvalidOption is wrapped by every malformed-option error
	ErrInvalidOption = errors.New("invalid option")
)

// respond sends the single reply for an interaction
func respond(s Session, i *discordgo.InteractionCreate, message string, ephemeral bool) error {
	// Truncate message to Discord's 2000 character limit
	message = truncateMessage(message, discordMessageLimit)

	data := &discordgo.InteractionResponseData{
		Content: message,
	}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral // Only visible to the user
	}

	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
}

// respondSuccess sends a public confirmation
func respondSuccess(s Session, i *discordgo.InteractionCreate, message string) error {
	if err := respond(s, i, message, false); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}
	return nil
}

// respondPrivate sends a confirmation only the invoking user can see
func respondPrivate(s Session, i *discordgo.InteractionCreate, message string) error {
	if err := respond(s, i, message, true); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}
	return nil
}

// respondError sends the error reply for a failed command. Error replies are
// ephemeral so failures only reach the user who ran the command instead of
// the whole channel.
func respondError(s Session, i *discordgo.InteractionCreate, message string) error {
	return respond(s, i, message, true)
}

// invoker returns the guild member who ran the command
func invoker(i *discordgo.InteractionCreate) (*discordgo.Member, error) {
	if i.GuildID == "" || i.Member == nil || i.Member.User == nil {
		return nil, ErrNotInGuild
	}
	return i.Member, nil
}

// displayName returns the name a member is shown as in the guild
func displayName(member *discordgo.Member) string {
	if member.Nick != "" {
		return member.Nick
	}
	if member.User.GlobalName != "" {
		return member.User.GlobalName
	}
	return member.User.Username
}

// subcommandOptions returns the options passed to the invoked subcommand
func subcommandOptions(data discordgo.ApplicationCommandInteractionData) ([]*discordgo.ApplicationCommandInteractionDataOption, error) {
	if len(data.Options) == 0 || data.Options[0] == nil {
		return nil, fmt.Errorf("%w: no subcommand present", ErrInvalidOption)
	}

	sub := data.Options[0]
	if sub.Type != discordgo.ApplicationCommandOptionSubCommand {
		return nil, fmt.Errorf("%w: option '%s' is not a subcommand", ErrInvalidOption, sub.Name)
	}

	return sub.Options, nil
}

// stringOption returns the value of the named string option. ok is false
// when the option was not supplied.
func stringOption(options []*discordgo.ApplicationCommandInteractionDataOption, name string) (value string, ok bool, err error) {
	for _, opt := range options {
		if opt == nil || opt.Name != name {
			continue
		}
		if opt.Type != discordgo.ApplicationCommandOptionString {
			return "", false, fmt.Errorf("%w: option '%s' must be a string", ErrInvalidOption, name)
		}
		return opt.StringValue(), true, nil
	}
	return "", false, nil
}
