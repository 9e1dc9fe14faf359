package responder

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/slack-go/slack"
)

type posted struct {
	channel string
	user    string // set for ephemeral posts only
}

type fakeSlackAPI struct {
	public       []posted
	ephemeral    []posted
	ephemeralErr error
}

func (f *fakeSlackAPI) PostMessageContext(_ context.Context, channelID string, _ ...slack.MsgOption) (string, string, error) {
	f.public = append(f.public, posted{channel: channelID})
	return channelID, "1.1", nil
}

func (f *fakeSlackAPI) PostEphemeralContext(_ context.Context, channelID, userID string, _ ...slack.MsgOption) (string, error) {
	if f.ephemeralErr != nil {
		return "", f.ephemeralErr
	}
	f.ephemeral = append(f.ephemeral, posted{channel: channelID, user: userID})
	return "1.1", nil
}

type fakeModel struct {
	chatOut string
	sumOut  string
	err     error

	lastPrompt string
}

func (f *fakeModel) Chat(_ context.Context, question string) (string, error) {
	f.lastPrompt = question
	return f.chatOut, f.err
}

func (f *fakeModel) Summarize(_ context.Context, transcript string) (string, error) {
	f.lastPrompt = transcript
	return f.sumOut, f.err
}

func request(private bool) Request {
	return Request{ChannelID: "C1", UserID: "U1", ThreadTS: "1700000000.000100", Private: private}
}

func TestChatDeliversAnswerPublicly(t *testing.T) {
	api := &fakeSlackAPI{}
	r := New(api, &fakeModel{chatOut: "the answer"})
	if err := r.Chat(context.Background(), request(false), "what is up"); err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if len(api.public) != 1 || len(api.ephemeral) != 0 {
		t.Fatalf("expected one public post, got public=%d ephemeral=%d", len(api.public), len(api.ephemeral))
	}
}

func TestChatEmptyModelOutputUsesFallback(t *testing.T) {
	api := &fakeSlackAPI{}
	model := &fakeModel{chatOut: "   "}
	r := New(api, model)
	if err := r.Chat(context.Background(), request(false), "question"); err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if len(api.public) != 1 {
		t.Fatal("fallback must still be delivered")
	}
}

func TestChatModelErrorDeliversApologyNotSilence(t *testing.T) {
	api := &fakeSlackAPI{}
	r := New(api, &fakeModel{err: errors.New("connection refused")})
	if err := r.Chat(context.Background(), request(false), "question"); err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if len(api.public) != 1 {
		t.Fatal("model failure must produce a user-facing apology")
	}
}

func TestSummarizePrefixesDirective(t *testing.T) {
	api := &fakeSlackAPI{}
	model := &fakeModel{sumOut: "short summary"}
	r := New(api, model)
	if err := r.Summarize(context.Background(), request(false), "Ada: hi\nGrace: hello"); err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if !strings.HasPrefix(model.lastPrompt, "Please summarize the following Slack conversation") {
		t.Fatalf("missing summarization directive: %q", model.lastPrompt)
	}
	if !strings.HasSuffix(model.lastPrompt, "Ada: hi\nGrace: hello") {
		t.Fatalf("transcript not embedded: %q", model.lastPrompt)
	}
}

func TestSummarizePrivateGoesEphemeralOnly(t *testing.T) {
	api := &fakeSlackAPI{}
	r := New(api, &fakeModel{sumOut: "summary"})
	if err := r.Summarize(context.Background(), request(true), "Ada: hi"); err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if len(api.ephemeral) != 1 {
		t.Fatalf("expected one ephemeral post, got %d", len(api.ephemeral))
	}
	if len(api.public) != 0 {
		t.Fatalf("private summary must not be posted publicly, got %d public posts", len(api.public))
	}
	if api.ephemeral[0].user != "U1" {
		t.Fatalf("ephemeral post addressed to %q, want requester", api.ephemeral[0].user)
	}
}

func TestEphemeralFailureFallsBackToPublicNotice(t *testing.T) {
	api := &fakeSlackAPI{ephemeralErr: slack.SlackErrorResponse{Err: "missing_scope"}}
	r := New(api, &fakeModel{sumOut: "summary"})
	if err := r.Summarize(context.Background(), request(true), "Ada: hi"); err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if len(api.public) != 1 {
		t.Fatal("expected public fallback notice after ephemeral failure")
	}
}

func TestThreadUnavailableHonorsRequestedVisibility(t *testing.T) {
	api := &fakeSlackAPI{}
	r := New(api, &fakeModel{})

	if err := r.ThreadUnavailable(context.Background(), request(false)); err != nil {
		t.Fatalf("ThreadUnavailable: %v", err)
	}
	if len(api.public) != 1 {
		t.Fatal("expected public error message")
	}

	if err := r.ThreadUnavailable(context.Background(), request(true)); err != nil {
		t.Fatalf("ThreadUnavailable: %v", err)
	}
	if len(api.ephemeral) != 1 {
		t.Fatal("expected ephemeral error message for private request")
	}
}
