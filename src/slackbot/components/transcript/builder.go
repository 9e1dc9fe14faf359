package transcript

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/slack-go/slack"
)

// ErrThreadUnavailable means the thread fetch itself failed (missing channel
// history permission, deleted thread, transport error). Distinct from
// per-message degradation, which never aborts the transcript.
var ErrThreadUnavailable = errors.New("thread history unavailable")

// SlackAPI is the slice of the Slack Web API the builder needs.
type SlackAPI interface {
	UserAPI
	GetConversationRepliesContext(ctx context.Context, params *slack.GetConversationRepliesParameters) ([]slack.Message, bool, string, error)
}

// Builder renders a thread into "DisplayName: text" lines, resolving inline
// user mentions along the way. Transcripts are built fresh per request and
// discarded after use.
type Builder struct {
	api      SlackAPI
	resolver *Resolver
}

func NewBuilder(api SlackAPI) *Builder {
	return &Builder{api: api, resolver: NewResolver(api)}
}

// Build fetches every message in the thread, root inclusive, and returns one
// line per message in platform order.
func (b *Builder) Build(ctx context.Context, channelID, threadTS string) ([]string, error) {
	params := &slack.GetConversationRepliesParameters{
		ChannelID: channelID,
		Timestamp: threadTS,
		Inclusive: true,
	}

	var messages []slack.Message
	for {
		page, hasMore, cursor, err := b.api.GetConversationRepliesContext(ctx, params)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrThreadUnavailable, err)
		}
		messages = append(messages, page...)
		// An empty cursor with has_more set would refetch the first page
		// forever; treat it as the end of the thread.
		if !hasMore || cursor == "" {
			break
		}
		params.Cursor = cursor
	}

	lines := make([]string, 0, len(messages))
	for _, msg := range messages {
		lines = append(lines, b.formatMessage(ctx, msg))
	}
	return lines, nil
}

// formatMessage never fails: a malformed message degrades to an
// "Unknown User" line so one bad message cannot abort the transcript.
func (b *Builder) formatMessage(ctx context.Context, msg slack.Message) string {
	author, err := b.resolver.Resolve(ctx, msg.User)
	if err != nil {
		log.Printf("transcript: resolve author: %v", err)
		return "Unknown User: " + textOrPlaceholder(msg)
	}

	text := msg.Text
	for _, userID := range mentionedUserIDs(msg) {
		name, err := b.resolver.Resolve(ctx, userID)
		if err != nil {
			log.Printf("transcript: resolve mention: %v", err)
			return "Unknown User: " + textOrPlaceholder(msg)
		}
		text = strings.ReplaceAll(text, "<@"+userID+">", "@"+name)
	}

	return author + ": " + text
}

// mentionedUserIDs walks the message's rich-text blocks and collects the user
// IDs of inline mention elements, in order of appearance.
func mentionedUserIDs(msg slack.Message) []string {
	var ids []string
	for _, block := range msg.Blocks.BlockSet {
		rtb, ok := block.(*slack.RichTextBlock)
		if !ok {
			continue
		}
		for _, element := range rtb.Elements {
			section, ok := element.(*slack.RichTextSection)
			if !ok {
				continue
			}
			for _, inner := range section.Elements {
				if user, ok := inner.(*slack.RichTextSectionUserElement); ok {
					ids = append(ids, user.UserID)
				}
			}
		}
	}
	return ids
}

func textOrPlaceholder(msg slack.Message) string {
	if msg.Text == "" {
		return "No text available"
	}
	return msg.Text
}
