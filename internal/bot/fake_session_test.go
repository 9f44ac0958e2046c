package bot

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/bwmarrin/discordgo"
)

const (
	testGuildID   = "900"
	testChannelID = "901"
)

// fakeSession is an in-memory guild implementing Session
type fakeSession struct {
	channels  []*discordgo.Channel
	webhooks  map[string][]*discordgo.Webhook
	responses []*discordgo.InteractionResponse
	timeouts  map[string]time.Time
	nextID    int

	created        []discordgo.GuildChannelCreateData
	edits          []*discordgo.ChannelEdit
	deletes        []string
	webhookCreates int

	listErr          error
	createErr        error
	editErr          error
	deleteErr        error
	webhooksErr      error
	webhookCreateErr error
	respondErr       error
	timeoutErr       error
}

func newFakeSession(channels ...*discordgo.Channel) *fakeSession {
	return &fakeSession{
		channels: channels,
		webhooks: make(map[string][]*discordgo.Webhook),
		timeouts: make(map[string]time.Time),
		nextID:   1000,
	}
}

func (f *fakeSession) newID() string {
	f.nextID++
	return strconv.Itoa(f.nextID)
}

func (f *fakeSession) find(channelID string) (int, *discordgo.Channel) {
	for idx, ch := range f.channels {
		if ch.ID == channelID {
			return idx, ch
		}
	}
	return -1, nil
}

// GuildChannels returns copies so handlers cannot mutate guild state directly
func (f *fakeSession) GuildChannels(guildID string, _ ...discordgo.RequestOption) ([]*discordgo.Channel, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]*discordgo.Channel, 0, len(f.channels))
	for _, ch := range f.channels {
		c := *ch
		out = append(out, &c)
	}
	return out, nil
}

// GuildChannelCreateComplex appends the channel at the end of its category
func (f *fakeSession) GuildChannelCreateComplex(guildID string, data discordgo.GuildChannelCreateData, _ ...discordgo.RequestOption) (*discordgo.Channel, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, data)

	position := 0
	for _, ch := range f.channels {
		if ch.ParentID == data.ParentID && ch.Position >= position {
			position = ch.Position + 1
		}
	}

	ch := &discordgo.Channel{
		ID:                   f.newID(),
		GuildID:              guildID,
		Name:                 data.Name,
		Type:                 data.Type,
		Topic:                data.Topic,
		ParentID:             data.ParentID,
		Position:             position,
		PermissionOverwrites: data.PermissionOverwrites,
	}
	f.channels = append(f.channels, ch)

	c := *ch
	return &c, nil
}

func (f *fakeSession) ChannelEdit(channelID string, data *discordgo.ChannelEdit, _ ...discordgo.RequestOption) (*discordgo.Channel, error) {
	if f.editErr != nil {
		return nil, f.editErr
	}
	_, ch := f.find(channelID)
	if ch == nil {
		return nil, fmt.Errorf("unknown channel %s", channelID)
	}
	f.edits = append(f.edits, data)

	if data.Name != "" {
		ch.Name = data.Name
	}
	if data.Position != nil {
		ch.Position = *data.Position
	}

	c := *ch
	return &c, nil
}

func (f *fakeSession) ChannelDelete(channelID string, _ ...discordgo.RequestOption) (*discordgo.Channel, error) {
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	idx, ch := f.find(channelID)
	if ch == nil {
		return nil, fmt.Errorf("unknown channel %s", channelID)
	}
	f.deletes = append(f.deletes, channelID)
	f.channels = append(f.channels[:idx], f.channels[idx+1:]...)
	return ch, nil
}

func (f *fakeSession) ChannelWebhooks(channelID string, _ ...discordgo.RequestOption) ([]*discordgo.Webhook, error) {
	if f.webhooksErr != nil {
		return nil, f.webhooksErr
	}
	return f.webhooks[channelID], nil
}

func (f *fakeSession) WebhookCreate(channelID, name, avatar string, _ ...discordgo.RequestOption) (*discordgo.Webhook, error) {
	if f.webhookCreateErr != nil {
		return nil, f.webhookCreateErr
	}
	f.webhookCreates++
	id := f.newID()
	w := &discordgo.Webhook{
		ID:        id,
		ChannelID: channelID,
		Name:      name,
		Token:     "token-" + id,
	}
	f.webhooks[channelID] = append(f.webhooks[channelID], w)
	return w, nil
}

func (f *fakeSession) InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, _ ...discordgo.RequestOption) error {
	if f.respondErr != nil {
		return f.respondErr
	}
	f.responses = append(f.responses, resp)
	return nil
}

func (f *fakeSession) GuildMemberTimeout(guildID string, userID string, until *time.Time, _ ...discordgo.RequestOption) error {
	if f.timeoutErr != nil {
		return f.timeoutErr
	}
	f.timeouts[userID] = *until
	return nil
}

// channelByTopic returns the stored channel carrying topic
func (f *fakeSession) channelByTopic(topic string) *discordgo.Channel {
	for _, ch := range f.channels {
		if ch.Topic == topic {
			return ch
		}
	}
	return nil
}

// orderedNames lists a category's channels the way Discord displays them:
// by position, ties broken by the older (smaller) snowflake.
func (f *fakeSession) orderedNames(parentID string) []string {
	var children []*discordgo.Channel
	for _, ch := range f.channels {
		if ch.ParentID == parentID {
			children = append(children, ch)
		}
	}
	sort.SliceStable(children, func(i, j int) bool {
		if children[i].Position != children[j].Position {
			return children[i].Position < children[j].Position
		}
		a, _ := strconv.ParseUint(children[i].ID, 10, 64)
		b, _ := strconv.ParseUint(children[j].ID, 10, 64)
		return a < b
	})

	names := make([]string, 0, len(children))
	for _, ch := range children {
		names = append(names, ch.Name)
	}
	return names
}

func (f *fakeSession) lastResponse() *discordgo.InteractionResponse {
	if len(f.responses) == 0 {
		return nil
	}
	return f.responses[len(f.responses)-1]
}

// blogGuild returns the channels of a guild with a Blogs category
func blogGuild(children ...*discordgo.Channel) []*discordgo.Channel {
	channels := []*discordgo.Channel{
		{ID: "10", Name: "general", Type: discordgo.ChannelTypeGuildText, Position: 0},
		{ID: "20", Name: "Blogs", Type: discordgo.ChannelTypeGuildCategory, Position: 1},
	}
	return append(channels, children...)
}

func blogChannel(id, name, owner string, position int) *discordgo.Channel {
	return &discordgo.Channel{
		ID:       id,
		Name:     name,
		Type:     discordgo.ChannelTypeGuildText,
		ParentID: "20",
		Topic:    owner,
		Position: position,
	}
}

func testMember(id, username, nick string) *discordgo.Member {
	return &discordgo.Member{
		Nick: nick,
		User: &discordgo.User{ID: id, Username: username},
	}
}

// commandInteraction builds a slash command interaction from member in the test guild
func commandInteraction(member *discordgo.Member, name string, options ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			ID:        "interaction",
			Type:      discordgo.InteractionApplicationCommand,
			GuildID:   testGuildID,
			ChannelID: testChannelID,
			Member:    member,
			Data: discordgo.ApplicationCommandInteractionData{
				Name:    name,
				Options: options,
			},
		},
	}
}

func subcommand(name string, options ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:    name,
		Type:    discordgo.ApplicationCommandOptionSubCommand,
		Options: options,
	}
}

func stringOpt(name, value string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  name,
		Type:  discordgo.ApplicationCommandOptionString,
		Value: value,
	}
}

func blogInteraction(member *discordgo.Member, sub string, options ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionCreate {
	return commandInteraction(member, "blog", subcommand(sub, options...))
}
