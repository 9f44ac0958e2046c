package bot

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/GustavoLR548/blog-bot/internal/blog"
	"github.com/bwmarrin/discordgo"
)

// Blog Channel Commands
// This file contains the /blog subcommand handlers

const (
	msgBlogCreated = "Your blog channel has been created!"
	msgBlogRenamed = "Your blog channel has been renamed!"
	msgBlogDeleted = "Your blog channel has been deleted!"
)

var (
	// ErrBlogExists is returned when a user asks for a second blog channel
	ErrBlogExists = errors.New("Do not be greedy! Your blog channel already exists.")
	// ErrNoBlog is returned when a user without a blog channel tries to change it
	ErrNoBlog = errors.New("You don't have a blog silly goose!")
	// ErrCooldown is wrapped when a user changes their blog too often
	ErrCooldown = errors.New("Slow down!")
)

// handleBlogCreate handles /blog create
func (h *CommandHandler) handleBlogCreate(s Session, i *discordgo.InteractionCreate) error {
	member, err := invoker(i)
	if err != nil {
		return err
	}
	log.Printf("[BLOG-CREATE] Command triggered by user %s in guild %s", member.User.ID, i.GuildID)

	if err := h.checkCooldown(member.User.ID); err != nil {
		return err
	}

	channels, err := s.GuildChannels(i.GuildID)
	if err != nil {
		return fmt.Errorf("failed to fetch channels: %w", err)
	}

	marker := blog.OwnerMarker(member.User.ID)
	if blog.FindOwned(channels, marker) != nil {
		return ErrBlogExists
	}

	category, err := blog.FindCategory(channels)
	if err != nil {
		return err
	}

	name := displayName(member)
	if err := isValidChannelName(name); err != nil {
		return err
	}

	created, err := s.GuildChannelCreateComplex(i.GuildID, discordgo.GuildChannelCreateData{
		Name:                 name,
		Type:                 discordgo.ChannelTypeGuildText,
		Topic:                marker,
		ParentID:             category.ID,
		PermissionOverwrites: h.blogPermissions(member.User.ID),
	})
	if err != nil {
		return fmt.Errorf("failed to create blog channel: %w", err)
	}
	log.Printf("[BLOG-CREATE] Created channel %s (%s) for user %s", created.ID, created.Name, member.User.ID)

	// The channel stays created even if sorting fails
	if err := sortBlogChannel(s, i.GuildID, marker); err != nil {
		return err
	}

	h.recordCooldown(member.User.ID)

	return respondSuccess(s, i, msgBlogCreated)
}

// handleBlogNick handles /blog nick [name]
func (h *CommandHandler) handleBlogNick(s Session, i *discordgo.InteractionCreate) error {
	member, err := invoker(i)
	if err != nil {
		return err
	}
	log.Printf("[BLOG-NICK] Command triggered by user %s in guild %s", member.User.ID, i.GuildID)

	options, err := subcommandOptions(i.ApplicationCommandData())
	if err != nil {
		return err
	}

	name, ok, err := stringOption(options, "name")
	if err != nil {
		return err
	}
	if !ok {
		name = displayName(member)
		log.Printf("[BLOG-NICK] No name given, using display name: %s", name)
	}

	channels, err := s.GuildChannels(i.GuildID)
	if err != nil {
		return fmt.Errorf("failed to fetch channels: %w", err)
	}

	// Ownership is reported before anything about the requested name
	marker := blog.OwnerMarker(member.User.ID)
	owned := blog.FindOwned(channels, marker)
	if owned == nil {
		return ErrNoBlog
	}

	if err := isValidChannelName(name); err != nil {
		return err
	}

	if err := h.checkCooldown(member.User.ID); err != nil {
		return err
	}

	if _, err := s.ChannelEdit(owned.ID, &discordgo.ChannelEdit{Name: name}); err != nil {
		return fmt.Errorf("failed to rename blog channel: %w", err)
	}
	log.Printf("[BLOG-NICK] Renamed channel %s from %s to %s", owned.ID, owned.Name, name)

	if err := sortBlogChannel(s, i.GuildID, marker); err != nil {
		return err
	}

	h.recordCooldown(member.User.ID)

	return respondSuccess(s, i, msgBlogRenamed)
}

// handleBlogDelete handles /blog delete
func (h *CommandHandler) handleBlogDelete(s Session, i *discordgo.InteractionCreate) error {
	member, err := invoker(i)
	if err != nil {
		return err
	}
	log.Printf("[BLOG-DELETE] Command triggered by user %s in guild %s", member.User.ID, i.GuildID)

	if err := h.checkCooldown(member.User.ID); err != nil {
		return err
	}

	channels, err := s.GuildChannels(i.GuildID)
	if err != nil {
		return fmt.Errorf("failed to fetch channels: %w", err)
	}

	owned := blog.FindOwned(channels, blog.OwnerMarker(member.User.ID))
	if owned == nil {
		return ErrNoBlog
	}

	if _, err := s.ChannelDelete(owned.ID); err != nil {
		return fmt.Errorf("failed to delete blog channel: %w", err)
	}
	log.Printf("[BLOG-DELETE] Deleted channel %s (%s)", owned.ID, owned.Name)

	h.recordCooldown(member.User.ID)

	return respondSuccess(s, i, msgBlogDeleted)
}

// handleBlogWebhook handles /blog webhook for the channel it is run in
func (h *CommandHandler) handleBlogWebhook(s Session, i *discordgo.InteractionCreate) error {
	log.Printf("[BLOG-WEBHOOK] Command triggered in channel %s", i.ChannelID)

	if i.ChannelID == "" {
		return fmt.Errorf("%w: no channel in interaction", ErrInvalidOption)
	}

	webhooks, err := s.ChannelWebhooks(i.ChannelID)
	if err != nil {
		return fmt.Errorf("failed to fetch webhooks: %w", err)
	}

	webhook := blog.FindWebhook(webhooks, blog.WebhookName)
	if webhook == nil {
		webhook, err = s.WebhookCreate(i.ChannelID, blog.WebhookName, "")
		if err != nil {
			return fmt.Errorf("Error while creating webhook: %w", err)
		}
		log.Printf("[BLOG-WEBHOOK] Created webhook %s in channel %s", webhook.ID, i.ChannelID)
	}

	url, err := blog.WebhookURL(webhook)
	if err != nil {
		return err
	}

	return respondPrivate(s, i, fmt.Sprintf("Your blog channel's webhook URL is: %s", url))
}

// blogPermissions lets the owner post and stops everyone else
func (h *CommandHandler) blogPermissions(userID string) []*discordgo.PermissionOverwrite {
	return []*discordgo.PermissionOverwrite{
		{
			ID:    userID,
			Type:  discordgo.PermissionOverwriteTypeMember,
			Allow: discordgo.PermissionSendMessages,
		},
		{
			ID:   h.config.DenyRoleID,
			Type: discordgo.PermissionOverwriteTypeRole,
			Deny: discordgo.PermissionSendMessages,
		},
	}
}

// sortBlogChannel moves the channel carrying marker to its alphabetical slot
// in the blog category, using a fresh channel list.
func sortBlogChannel(s Session, guildID, marker string) error {
	channels, err := s.GuildChannels(guildID)
	if err != nil {
		return fmt.Errorf("failed to fetch channels: %w", err)
	}

	category, err := blog.FindCategory(channels)
	if err != nil {
		return err
	}

	placement, err := blog.PlanPosition(blog.Siblings(channels, category.ID), marker)
	if err != nil {
		return err
	}

	if !placement.Move {
		return nil
	}

	position := placement.Position
	if _, err := s.ChannelEdit(placement.Channel, &discordgo.ChannelEdit{Position: &position}); err != nil {
		return fmt.Errorf("failed to move blog channel: %w", err)
	}
	log.Printf("[BLOG-SORT] Moved channel %s to position %d", placement.Channel, position)

	return nil
}

// checkCooldown rejects users who changed their blog too recently. Cooldown
// storage errors are logged and let the command through.
func (h *CommandHandler) checkCooldown(userID string) error {
	if h.cooldown == nil {
		return nil
	}

	remaining, err := h.cooldown.Remaining(userID)
	if err != nil {
		log.Printf("[BLOG] ERROR: Failed to check cooldown for user %s: %v", userID, err)
		return nil
	}

	if remaining > 0 {
		return fmt.Errorf("%w You can manage your blog again in %s.", ErrCooldown, remaining.Round(time.Second))
	}

	return nil
}

// recordCooldown starts a cooldown after a successful change
func (h *CommandHandler) recordCooldown(userID string) {
	if h.cooldown == nil {
		return
	}

	if err := h.cooldown.Record(userID); err != nil {
		log.Printf("[BLOG] ERROR: Failed to record cooldown for user %s: %v", userID, err)
	}
}
