package bot

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
	"github.com/slack-go/slack/socketmode"

	"github.com/solethus/slack-ollama/src/shared/ai"
	"github.com/solethus/slack-ollama/src/slackbot/components/responder"
	"github.com/solethus/slack-ollama/src/slackbot/components/transcript"
	"github.com/solethus/slack-ollama/src/slackbot/config"
)

// SlackAPI is the slice of the Slack Web API the bot uses. *slack.Client
// satisfies it; tests substitute a fake.
type SlackAPI interface {
	transcript.SlackAPI
	responder.SlackAPI
}

// Bot receives app_mention events over Socket Mode and relays them to the
// model. One event is processed start to finish per invocation; the only
// state shared across invocations is the stats counters.
type Bot struct {
	config      *config.Config
	api         SlackAPI
	socketMode  *socketmode.Client
	transcripts *transcript.Builder
	responder   *responder.Responder
	rdb         *redis.Client
	stats       *Stats
}

// New constructs a bot with explicitly injected collaborators.
func New(cfg *config.Config, model ai.Client, rdb *redis.Client) (*Bot, error) {
	if cfg.SlackBotToken == "" {
		return nil, fmt.Errorf("bot token is required")
	}
	if cfg.SlackAppToken == "" {
		return nil, fmt.Errorf("app token is required for Socket Mode")
	}
	if !strings.HasPrefix(cfg.SlackAppToken, "xapp-") {
		return nil, fmt.Errorf("app token must start with xapp-")
	}

	client := slack.New(
		cfg.SlackBotToken,
		slack.OptionDebug(cfg.Debug),
		slack.OptionAppLevelToken(cfg.SlackAppToken),
	)

	socketClient := socketmode.New(
		client,
		socketmode.OptionDebug(cfg.Debug),
	)

	b := &Bot{
		config:     cfg,
		api:        client,
		socketMode: socketClient,
		rdb:        rdb,
		stats:      NewStats(),
	}
	b.transcripts = transcript.NewBuilder(b.api)
	b.responder = responder.New(b.api, model)
	return b, nil
}

// Stats exposes the handler counters for the status endpoint.
func (b *Bot) Stats() *Stats { return b.stats }

// Run starts the Socket Mode event loop. Blocks until the context is
// canceled or the connection fails terminally.
func (b *Bot) Run(ctx context.Context) error {
	go func() {
		for evt := range b.socketMode.Events {
			b.handleEvent(ctx, evt)
		}
	}()

	return b.socketMode.RunContext(ctx)
}

func (b *Bot) handleEvent(ctx context.Context, evt socketmode.Event) {
	switch evt.Type {
	case socketmode.EventTypeConnecting:
		log.Println("slack: connecting to Socket Mode...")

	case socketmode.EventTypeConnected:
		log.Println("slack: connected to Socket Mode")

	case socketmode.EventTypeConnectionError:
		log.Printf("slack: connection error: %v", evt.Data)

	case socketmode.EventTypeEventsAPI:
		if evt.Request != nil {
			b.socketMode.Ack(*evt.Request)
		}
		ev, ok := evt.Data.(slackevents.EventsAPIEvent)
		if !ok || ev.Type != slackevents.CallbackEvent {
			return
		}
		if m, ok := ev.InnerEvent.Data.(*slackevents.AppMentionEvent); ok && m != nil {
			b.handleMention(ctx, m)
		}
	}
}
