package bot

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/slack-go/slack/slackevents"

	"github.com/solethus/slack-ollama/src/shared/data"
	"github.com/solethus/slack-ollama/src/slackbot/components/mention"
	"github.com/solethus/slack-ollama/src/slackbot/components/responder"
	"github.com/solethus/slack-ollama/src/slackbot/components/transcript"
)

// handleMention is the single event handler: normalize, classify, fetch what
// the intent needs, call the model, deliver. Every per-request error ends as
// a chat-visible message, never a crash.
func (b *Bot) handleMention(ctx context.Context, ev *slackevents.AppMentionEvent) {
	reqID := uuid.NewString()
	b.stats.Event()

	threadTS := ev.ThreadTimeStamp
	if threadTS == "" {
		threadTS = ev.TimeStamp
	}

	normalized := mention.Normalize(ev.Text)
	intent := mention.Classify(normalized)
	log.Printf("mention %s: channel=%s user=%s kind=%d private=%v", reqID, ev.Channel, ev.User, intent.Kind, intent.Private)

	req := responder.Request{
		ChannelID: ev.Channel,
		UserID:    ev.User,
		ThreadTS:  threadTS,
		Private:   intent.Private,
	}

	outcome := "ok"
	switch intent.Kind {
	case mention.SummarizeThread:
		b.stats.Summary()
		lines, err := b.transcripts.Build(ctx, ev.Channel, threadTS)
		switch {
		case errors.Is(err, transcript.ErrThreadUnavailable):
			log.Printf("mention %s: %v", reqID, err)
			outcome = "thread_unavailable"
			if err := b.responder.ThreadUnavailable(ctx, req); err != nil {
				log.Printf("mention %s: deliver error message: %v", reqID, err)
			}
		case err != nil:
			log.Printf("mention %s: build transcript: %v", reqID, err)
			outcome = "error"
			b.stats.Error()
			if err := b.responder.Apologize(ctx, req); err != nil {
				log.Printf("mention %s: deliver apology: %v", reqID, err)
			}
		default:
			if err := b.responder.Summarize(ctx, req, strings.Join(lines, "\n")); err != nil {
				log.Printf("mention %s: deliver summary: %v", reqID, err)
				outcome = "error"
				b.stats.Error()
			}
		}

	default:
		b.stats.Chat()
		if err := b.responder.Chat(ctx, req, mention.Clean(ev.Text)); err != nil {
			log.Printf("mention %s: deliver answer: %v", reqID, err)
			outcome = "error"
			b.stats.Error()
		}
	}

	b.publishActivity(ctx, ev, intent, outcome)
}

// publishActivity appends one record per handled mention to the redis stream
// for external consumers. A missing redis connection disables it.
func (b *Bot) publishActivity(ctx context.Context, ev *slackevents.AppMentionEvent, intent mention.Intent, outcome string) {
	if b.rdb == nil {
		return
	}
	kind := "chat"
	if intent.Kind == mention.SummarizeThread {
		kind = "summarize"
	}
	if err := data.PublishActivity(ctx, b.rdb, map[string]interface{}{
		"kind":    kind,
		"channel": ev.Channel,
		"user":    ev.User,
		"private": intent.Private,
		"outcome": outcome,
		"ts":      ev.TimeStamp,
	}); err != nil {
		log.Printf("publish activity: %v", err)
	}
}
