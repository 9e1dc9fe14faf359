package mention

import "testing"

func TestClassifySummarizeTriggers(t *testing.T) {
	for _, text := range []string{
		"summarize thread",
		"please sumarize thread for me",
		"can i get a thread summary here",
	} {
		if got := Classify(text); got.Kind != SummarizeThread {
			t.Fatalf("Classify(%q).Kind = %v, want SummarizeThread", text, got.Kind)
		}
	}
}

func TestClassifyDefaultsToChat(t *testing.T) {
	for _, text := range []string{
		"what is the capital of france",
		"summary",
		"thread",
		"",
	} {
		if got := Classify(text); got.Kind != Chat {
			t.Fatalf("Classify(%q).Kind = %v, want Chat", text, got.Kind)
		}
	}
}

func TestClassifyPrivacyFlag(t *testing.T) {
	if got := Classify("summarize thread private"); !got.Private {
		t.Fatal("expected private flag for 'private'")
	}
	if got := Classify("thread summary me only"); !got.Private {
		t.Fatal("expected private flag for 'me only'")
	}
	if got := Classify("summarize thread"); got.Private {
		t.Fatal("unexpected private flag")
	}
	// The flag is independent of the chat/summarize split.
	if got := Classify("tell me a private joke"); !got.Private || got.Kind != Chat {
		t.Fatalf("want Chat+Private, got %+v", got)
	}
}
