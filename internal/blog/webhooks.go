package blog

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// FindWebhook returns the first webhook called name, or nil
func FindWebhook(webhooks []*discordgo.Webhook, name string) *discordgo.Webhook {
	for _, w := range webhooks {
		if w != nil && w.Name == name {
			return w
		}
	}
	return nil
}

// WebhookURL returns the URL used to execute a webhook. Only webhooks that
// carry a token can be executed.
func WebhookURL(w *discordgo.Webhook) (string, error) {
	if w == nil {
		return "", fmt.Errorf("webhook is nil")
	}
	if w.Token == "" {
		return "", fmt.Errorf("webhook %s has no token", w.ID)
	}
	return discordgo.EndpointWebhookToken(w.ID, w.Token), nil
}
