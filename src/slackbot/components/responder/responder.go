package responder

import (
	"context"
	"log"
	"strings"

	"github.com/slack-go/slack"

	"github.com/solethus/slack-ollama/src/shared/ai"
)

// SlackAPI is the slice of the Slack Web API the responder needs.
type SlackAPI interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
	PostEphemeralContext(ctx context.Context, channelID, userID string, options ...slack.MsgOption) (string, error)
}

// Request carries where and how a reply should be delivered. Every reply is
// anchored to the original event's thread.
type Request struct {
	ChannelID string
	UserID    string
	ThreadTS  string
	Private   bool
}

const (
	chatFallback = "I couldn't generate a response. Please try rephrasing your question."

	ephemeralFallback = "I encountered an error sending you a private message. Please check my permissions."

	modelFailure = "I encountered an unexpected error. Please try again later."

	summaryHeader = "*Thread Summary:*"
	summaryFooter = "_Note: This summary was generated using AI and may not be perfect._"

	summarizeDirective = "Please summarize the following Slack conversation, " +
		"focusing on key points, decisions, and action items:\n\n"

	threadUnavailableMessage = "I couldn't fetch the thread messages. This might be because:\n" +
		"1. I don't have permission to access the channel history\n" +
		"2. The thread is too old or has been deleted\n" +
		"3. There was an error connecting to Slack\n\n" +
		"Please make sure I have the necessary permissions and try again."
)

// Responder dispatches to the model and delivers the result with the
// requested visibility.
type Responder struct {
	api   SlackAPI
	model ai.Client
}

func New(api SlackAPI, model ai.Client) *Responder {
	return &Responder{api: api, model: model}
}

// Chat answers a question. Empty model output is replaced by a user-facing
// fallback rather than silence.
func (r *Responder) Chat(ctx context.Context, req Request, question string) error {
	answer, err := r.model.Chat(ctx, question)
	if err != nil {
		log.Printf("responder: chat model call: %v", err)
		return r.deliver(ctx, req, modelFailure)
	}
	if strings.TrimSpace(answer) == "" {
		answer = chatFallback
	}
	return r.deliver(ctx, req, answer)
}

// Summarize condenses a transcript and wraps the result in the summary
// header and disclaimer.
func (r *Responder) Summarize(ctx context.Context, req Request, transcript string) error {
	summary, err := r.model.Summarize(ctx, summarizeDirective+transcript)
	if err != nil {
		log.Printf("responder: summarize model call: %v", err)
		return r.deliver(ctx, req, modelFailure)
	}
	return r.deliver(ctx, req, summaryHeader+"\n\n"+summary+"\n\n"+summaryFooter)
}

// ThreadUnavailable explains a failed thread fetch, with the same visibility
// the request asked for.
func (r *Responder) ThreadUnavailable(ctx context.Context, req Request) error {
	return r.deliver(ctx, req, threadUnavailableMessage)
}

// Apologize is the handler-boundary reply for errors that have no more
// specific message. The error itself is logged, never shown.
func (r *Responder) Apologize(ctx context.Context, req Request) error {
	return r.deliver(ctx, req, modelFailure)
}

func (r *Responder) deliver(ctx context.Context, req Request, text string) error {
	if req.Private {
		_, err := r.api.PostEphemeralContext(ctx, req.ChannelID, req.UserID,
			slack.MsgOptionText(text, false),
			slack.MsgOptionTS(req.ThreadTS),
		)
		if err == nil {
			return nil
		}
		log.Printf("responder: post ephemeral: %v", err)
		_, _, err = r.api.PostMessageContext(ctx, req.ChannelID,
			slack.MsgOptionText(ephemeralFallback, false),
			slack.MsgOptionTS(req.ThreadTS),
		)
		return err
	}

	_, _, err := r.api.PostMessageContext(ctx, req.ChannelID,
		slack.MsgOptionText(text, false),
		slack.MsgOptionTS(req.ThreadTS),
	)
	return err
}
