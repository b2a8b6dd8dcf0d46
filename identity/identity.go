package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Provider gates the start of a game session. The id is opaque to the engine.
type Provider interface {
	IsReady() bool
	ID() string
}

// Resolver maps an external account (a discord user for instance) to a player id
type Resolver interface {
	Resolve(ctx context.Context, externalID string) (string, error)
}

type static struct {
	id string
}

func (s static) IsReady() bool { return true }
func (s static) ID() string    { return s.id }

// Static returns a ready provider with a fixed id
func Static(id string) Provider {
	return static{id: id}
}

// Anonymous returns a ready provider with a random id, used when no account is available
func Anonymous() Provider {
	return static{id: uuid.New().String()}
}

// OrAnonymous returns p, or an anonymous provider when p is missing or not ready
func OrAnonymous(p Provider) Provider {
	if p == nil || !p.IsReady() {
		return Anonymous()
	}
	return p
}

// Bootstrap resolves the player behind externalID. Failures are logged and fall
// back to an anonymous identity so the game can always start.
func Bootstrap(ctx context.Context, r Resolver, externalID string) Provider {
	if r == nil {
		p := Anonymous()
		log.Warn().Str("external", externalID).Str("id", p.ID()).Msg("no identity resolver, using anonymous id")
		return p
	}

	id, err := r.Resolve(ctx, externalID)
	if err != nil || id == "" {
		p := Anonymous()
		log.Error().Err(err).Str("external", externalID).Str("id", p.ID()).Msg("cannot resolve identity, using anonymous id")
		return p
	}

	log.Debug().Str("external", externalID).Str("id", id).Msg("identity resolved")
	return Static(id)
}
