package bot

import (
	"fmt"
	"log"

	"github.com/GustavoLR548/blog-bot/internal/storage"
	"github.com/bwmarrin/discordgo"
)

// Config holds the settings injected into the command handler
type Config struct {
	// GuildID scopes command registration; empty registers global commands
	GuildID string
	// DenyRoleID is the role denied Send Messages in blog channels
	DenyRoleID string
}

// CommandHandler handles Discord slash commands
// Individual command implementations are split across:
//   - blog_commands.go: /blog create, nick, delete and webhook
//   - timeout_commands.go: /timeoutme
//   - command_utils.go: Shared utility functions
type CommandHandler struct {
	config   Config
	cooldown storage.CooldownRepository // nil disables cooldowns
	router   *Router
}

// NewCommandHandler creates a new command handler
func NewCommandHandler(config Config, cooldown storage.CooldownRepository) *CommandHandler {
	h := &CommandHandler{
		config:   config,
		cooldown: cooldown,
		router:   NewRouter(),
	}

	h.router.HandleSub("blog", "create", h.handleBlogCreate)
	h.router.HandleSub("blog", "nick", h.handleBlogNick)
	h.router.HandleSub("blog", "delete", h.handleBlogDelete)
	h.router.HandleSub("blog", "webhook", h.handleBlogWebhook)
	h.router.Handle("timeoutme", h.handleTimeoutMe)
	h.router.Handle("help", h.handleHelp)

	return h
}

// Commands returns the slash command definitions served by the handler
func (h *CommandHandler) Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "blog",
			Description: "Manage your personal blog channel",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "create",
					Description: "Create your blog channel",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "nick",
					Description: "Rename your blog channel",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "name",
							Description: "New channel name (default: your display name)",
							Required:    false,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "delete",
					Description: "Delete your blog channel",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "webhook",
					Description: "Get a webhook URL for posting into this channel",
				},
			},
		},
		{
			Name:        "timeoutme",
			Description: "Time yourself out",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "duration",
					Description: "How long, e.g. 10m or 1h30m (max 28 days)",
					Required:    true,
				},
			},
		},
		{
			Name:        "help",
			Description: "Show all available commands and how to use them",
		},
	}
}

// RegisterCommands registers all slash commands with Discord
func (h *CommandHandler) RegisterCommands(s *discordgo.Session) error {
	for _, cmd := range h.Commands() {
		_, err := s.ApplicationCommandCreate(s.State.User.ID, h.config.GuildID, cmd)
		if err != nil {
			return fmt.Errorf("failed to create command %s: %w", cmd.Name, err)
		}
		log.Printf("Registered command: %s", cmd.Name)
	}

	return nil
}

// HandleCommands routes every interaction through the command router.
func (h *CommandHandler) HandleCommands(s *discordgo.Session) {
	s.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		h.onInteraction(s, i)
	})
}

// onInteraction dispatches a single interaction. Failing to deliver an error
// reply leaves the interaction unanswered, which is treated as unrecoverable.
func (h *CommandHandler) onInteraction(s Session, i *discordgo.InteractionCreate) {
	if err := h.router.Dispatch(s, i); err != nil {
		log.Panicf("[ROUTER] FATAL: %v", err)
	}
}

// handleHelp handles the help command
func (h *CommandHandler) handleHelp(s Session, i *discordgo.InteractionCreate) error {
	helpMessage := "🤖 **Bot Commands Help**\n\n" +
		"**Blog Commands:**\n" +
		"• `/blog create` - Create your blog channel in the Blogs category\n" +
		"• `/blog nick [name]` - Rename your blog channel (defaults to your display name)\n" +
		"• `/blog delete` - Delete your blog channel\n" +
		"• `/blog webhook` - Get a webhook URL for the current channel\n\n" +
		"**Other Commands:**\n" +
		"• `/timeoutme <duration>` - Time yourself out (e.g. 10m, 1h30m)\n" +
		"• `/help` - Show this help message"

	return respondPrivate(s, i, helpMessage)
}
