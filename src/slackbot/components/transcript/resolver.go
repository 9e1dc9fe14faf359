package transcript

import (
	"context"
	"errors"
	"fmt"

	"github.com/slack-go/slack"
)

// UserAPI is the slice of the Slack Web API the resolver needs.
type UserAPI interface {
	GetUserInfoContext(ctx context.Context, user string) (*slack.User, error)
}

// Capability is the outcome of a platform permission check, made explicit
// instead of matching on rendered error strings.
type Capability int

const (
	CapAllowed Capability = iota
	CapDenied
	CapError
)

// deniedCodes are the platform error codes treated as a missing read
// permission. Anything else is a real failure.
var deniedCodes = map[string]bool{
	"missing_scope":    true,
	"user_not_visible": true,
}

// Resolver turns user IDs into display names.
type Resolver struct {
	api UserAPI
}

func NewResolver(api UserAPI) *Resolver {
	return &Resolver{api: api}
}

// Resolve returns the user's real name. A denied lookup degrades to the
// deterministic placeholder and is not an error; any other failure
// propagates so the caller can substitute and continue.
func (r *Resolver) Resolve(ctx context.Context, userID string) (string, error) {
	user, err := r.api.GetUserInfoContext(ctx, userID)
	if err != nil {
		if capabilityOf(err) == CapDenied {
			return Placeholder(userID), nil
		}
		return "", fmt.Errorf("lookup user %s: %w", userID, err)
	}

	name := user.RealName
	if name == "" {
		name = user.Name
	}
	if name == "" {
		name = Placeholder(userID)
	}
	return name, nil
}

// Placeholder is the synthetic display name used when a lookup is denied.
func Placeholder(userID string) string {
	return "User-" + userID
}

func capabilityOf(err error) Capability {
	var apiErr slack.SlackErrorResponse
	if errors.As(err, &apiErr) {
		if deniedCodes[apiErr.Err] {
			return CapDenied
		}
	}
	return CapError
}
