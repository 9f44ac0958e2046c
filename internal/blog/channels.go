package blog

import (
	"errors"
	"fmt"
	"sort"

	"github.com/bwmarrin/discordgo"
)

const (
	// CategoryName is the name of the category that holds every blog channel
	CategoryName = "Blogs"
	// WebhookName is the name given to webhooks created by /blog webhook
	WebhookName = "BlogHook"
)

var (
	// ErrCategoryNotFound means the guild has no channel named CategoryName
	ErrCategoryNotFound = fmt.Errorf("blog category %q not found", CategoryName)
	// ErrAmbiguousCategory means more than one channel is named CategoryName
	ErrAmbiguousCategory = fmt.Errorf("more than one %q category exists", CategoryName)
	// ErrEmptySiblingGroup means there is nothing to sort the channel against
	ErrEmptySiblingGroup = errors.New("blog category has no channels")
	// ErrTargetNotInGroup means the channel being placed is missing from its category
	ErrTargetNotInGroup = errors.New("blog channel not found in blog category")
)

// OwnerMarker returns the topic value that marks a channel as owned by userID
func OwnerMarker(userID string) string {
	return userID
}

// FindOwned returns the channel whose topic carries marker, or nil if the
// owner has no blog. Only the first match is returned.
func FindOwned(channels []*discordgo.Channel, marker string) *discordgo.Channel {
	if marker == "" {
		return nil
	}

	for _, ch := range channels {
		if ch != nil && ch.Topic == marker {
			return ch
		}
	}

	return nil
}

// FindCategory returns the single channel named CategoryName
func FindCategory(channels []*discordgo.Channel) (*discordgo.Channel, error) {
	var category *discordgo.Channel
	for _, ch := range channels {
		if ch == nil || ch.Name != CategoryName {
			continue
		}
		if category != nil {
			return nil, ErrAmbiguousCategory
		}
		category = ch
	}

	if category == nil {
		return nil, ErrCategoryNotFound
	}

	return category, nil
}

// Siblings returns the channels whose parent is parentID, in fetch order
func Siblings(channels []*discordgo.Channel, parentID string) []*discordgo.Channel {
	siblings := make([]*discordgo.Channel, 0, len(channels))
	for _, ch := range channels {
		if ch != nil && ch.ParentID != "" && ch.ParentID == parentID {
			siblings = append(siblings, ch)
		}
	}
	return siblings
}

// SortByName returns a copy of channels sorted by name. Equal names keep
// their relative order.
func SortByName(channels []*discordgo.Channel) []*discordgo.Channel {
	sorted := make([]*discordgo.Channel, len(channels))
	copy(sorted, channels)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})
	return sorted
}
