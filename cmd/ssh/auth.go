package main

import (
	"context"
	"time"

	"github.com/charmbracelet/ssh"
	"github.com/rs/zerolog/log"
	gossh "golang.org/x/crypto/ssh"

	"github.com/tomz197/snake/internal/store"
)

// keyAuth admits public key logins and ties each player name to the first
// key that signs in with it. The name a session plays under is therefore
// always backed by its key.
type keyAuth struct {
	players store.PlayerKeys
}

// handler is the wish public key callback.
func (a keyAuth) handler(ctx ssh.Context, key ssh.PublicKey) bool {
	return a.allow(ctx, ctx.User(), key)
}

func (a keyAuth) allow(ctx context.Context, user string, key gossh.PublicKey) bool {
	if user == "" || key == nil {
		return false
	}
	fingerprint := gossh.FingerprintSHA256(key)

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	ok, err := a.players.ClaimName(ctx, user, fingerprint)
	if err != nil {
		log.Error().Err(err).Str("user", user).Msg("cannot check player key")
		return false
	}
	if !ok {
		log.Warn().Str("user", user).Str("key", fingerprint).Msg("name belongs to another key")
	}
	return ok
}
