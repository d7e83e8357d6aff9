// Package leaderboard records game results reported by trusted hosts.
//
// A host that ran the game signs a short-lived receipt (HS256 JWT) for each
// finished game; the service verifies the signature and checks that the
// numbers could have been produced under the game's rules before storing the
// entry. Each receipt is accepted once.
package leaderboard

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tomz197/snake/internal/game"
	"github.com/tomz197/snake/internal/store"
)

// ReceiptTTL is how long a signed receipt stays valid.
const ReceiptTTL = 5 * time.Minute

// ErrInvalidReceipt wraps every reason a receipt is refused.
var ErrInvalidReceipt = errors.New("leaderboard: invalid receipt")

var playerPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]{1,16}$`)

// Result is the outcome of one finished game.
type Result struct {
	Player string
	Score  int
	Level  int
	Length int
}

// Claims is the JWT payload of a receipt. The player is the subject and the
// receipt id doubles as the entry id.
type Claims struct {
	Score  int `json:"score"`
	Level  int `json:"level"`
	Length int `json:"len"`
	jwt.RegisteredClaims
}

// Signer issues receipts.
type Signer struct {
	secret []byte
	now    func() time.Time
}

func NewSigner(secret []byte) *Signer {
	return &Signer{secret: secret, now: time.Now}
}

// Sign returns a compact JWT for r.
func (s *Signer) Sign(r Result) (string, error) {
	id, err := newID()
	if err != nil {
		return "", err
	}
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Score:  r.Score,
		Level:  r.Level,
		Length: r.Length,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   r.Player,
			ID:        id,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ReceiptTTL)),
		},
	})
	return token.SignedString(s.secret)
}

// Verifier checks receipts against the signing secret and the ruleset.
type Verifier struct {
	secret   []byte
	settings game.Settings
	maxScore int
}

// NewVerifier builds a verifier for games played under settings.
func NewVerifier(secret []byte, settings game.Settings) (*Verifier, error) {
	if len(secret) == 0 {
		return nil, errors.New("leaderboard: empty secret")
	}
	g, err := settings.Grid()
	if err != nil {
		return nil, err
	}
	return &Verifier{
		secret:   secret,
		settings: settings,
		maxScore: settings.MaxScore(g.Size()),
	}, nil
}

// Verify parses token and returns the entry it vouches for.
func (v *Verifier) Verify(token string) (store.Entry, error) {
	var c Claims
	_, err := jwt.ParseWithClaims(token, &c, func(*jwt.Token) (interface{}, error) {
		return v.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	)
	if err != nil {
		return store.Entry{}, fmt.Errorf("%w: %v", ErrInvalidReceipt, err)
	}
	if err := v.plausible(c); err != nil {
		return store.Entry{}, fmt.Errorf("%w: %v", ErrInvalidReceipt, err)
	}

	e := store.Entry{
		ID:     c.ID,
		Player: c.Subject,
		Score:  c.Score,
		Level:  c.Level,
		Length: c.Length,
	}
	if c.IssuedAt != nil {
		e.CreatedAt = c.IssuedAt.Time.UTC()
	}
	return e, nil
}

// plausible rejects numbers no game under v.settings can produce.
func (v *Verifier) plausible(c Claims) error {
	ppf := v.settings.PointsPerFood
	switch {
	case c.ID == "":
		return errors.New("missing receipt id")
	case c.IssuedAt == nil:
		return errors.New("missing issue time")
	case !playerPattern.MatchString(c.Subject):
		return fmt.Errorf("bad player name %q", c.Subject)
	case c.Score < 0 || c.Score%ppf != 0:
		return fmt.Errorf("score %d is not a multiple of %d", c.Score, ppf)
	case c.Score > v.maxScore:
		return fmt.Errorf("score %d exceeds board maximum %d", c.Score, v.maxScore)
	case c.Length != c.Score/ppf+1:
		return fmt.Errorf("length %d does not match score %d", c.Length, c.Score)
	case c.Level != game.LevelFor(c.Score, v.settings.LevelUpPoints):
		return fmt.Errorf("level %d does not match score %d", c.Level, c.Score)
	}
	return nil
}

func newID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("receipt id: %w", err)
	}
	return hex.EncodeToString(b), nil
}
