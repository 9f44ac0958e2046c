package bot

import (
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"
)

// HandlerFunc handles one slash command. It must send its own reply on
// success and must not reply at all when it returns an error.
type HandlerFunc func(s Session, i *discordgo.InteractionCreate) error

// Router maps (command, subcommand) pairs to handlers and turns handler
// errors into the interaction's reply.
type Router struct {
	routes map[string]map[string]HandlerFunc
}

// NewRouter creates an empty router
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]map[string]HandlerFunc),
	}
}

// Handle registers a command that has no subcommands
func (r *Router) Handle(command string, fn HandlerFunc) {
	r.HandleSub(command, "", fn)
}

// HandleSub registers a handler for one subcommand of command
func (r *Router) HandleSub(command, subcommand string, fn HandlerFunc) {
	subs, ok := r.routes[command]
	if !ok {
		subs = make(map[string]HandlerFunc)
		r.routes[command] = subs
	}
	subs[subcommand] = fn
}

// lookup resolves the handler for an incoming command
func (r *Router) lookup(data discordgo.ApplicationCommandInteractionData) (HandlerFunc, error) {
	subs, ok := r.routes[data.Name]
	if !ok {
		return nil, fmt.Errorf("Invalid command: '%s'", data.Name)
	}

	// Plain commands route on the name alone, whatever options they carry
	if fn, ok := subs[""]; ok && len(subs) == 1 {
		return fn, nil
	}

	subcommand := ""
	if len(data.Options) > 0 && data.Options[0] != nil {
		subcommand = data.Options[0].Name
	}

	fn, ok := subs[subcommand]
	if !ok {
		return nil, fmt.Errorf("Invalid %s subcommand: '%s'", data.Name, subcommand)
	}

	return fn, nil
}

// Dispatch runs the handler for i. Exactly one reply is sent per command:
// the handler's own on success, an error reply built here on failure.
// The returned error is non-nil only when that error reply could not be sent.
func (r *Router) Dispatch(s Session, i *discordgo.InteractionCreate) error {
	if i == nil || i.Interaction == nil || i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	data := i.ApplicationCommandData()

	fn, err := r.lookup(data)
	if err == nil {
		err = fn(s, i)
	}
	if err == nil {
		return nil
	}

	log.Printf("[ROUTER] /%s failed: %v", data.Name, err)

	if err := respondError(s, i, err.Error()); err != nil {
		return fmt.Errorf("failed to send error response for /%s: %w", data.Name, err)
	}

	return nil
}
