package mention

import "strings"

// Kind is the request category derived from a normalized mention text.
type Kind int

const (
	Chat Kind = iota
	SummarizeThread
)

// Intent is derived per request and never stored.
type Intent struct {
	Kind    Kind
	Private bool
}

// summarizeTriggers includes a common misspelling on purpose.
var summarizeTriggers = []string{
	"summarize thread",
	"sumarize thread",
	"thread summary",
}

var privacyMarkers = []string{
	"private",
	"me only",
}

// Classify inspects normalized, lowercased text. Any trigger match wins; the
// privacy flag is computed independently of the chat/summarize split.
func Classify(text string) Intent {
	intent := Intent{Kind: Chat}

	for _, trigger := range summarizeTriggers {
		if strings.Contains(text, trigger) {
			intent.Kind = SummarizeThread
			break
		}
	}

	for _, marker := range privacyMarkers {
		if strings.Contains(text, marker) {
			intent.Private = true
			break
		}
	}

	return intent
}
