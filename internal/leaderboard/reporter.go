package leaderboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomz197/snake/internal/game"
)

const submitTimeout = 5 * time.Second

// Reporter submits finished games to a leaderboard service. Submissions
// run on their own goroutines; failures are logged and dropped.
type Reporter struct {
	url    string
	signer *Signer
	client *http.Client
	log    zerolog.Logger
	wg     sync.WaitGroup
}

// NewReporter posts receipts to baseURL + "/scores". A nil client uses a
// default one with a timeout.
func NewReporter(baseURL string, signer *Signer, client *http.Client, logger zerolog.Logger) *Reporter {
	if client == nil {
		client = &http.Client{Timeout: submitTimeout}
	}
	return &Reporter{
		url:    strings.TrimRight(baseURL, "/") + "/scores",
		signer: signer,
		client: client,
		log:    logger,
	}
}

// Listener returns a game listener reporting the games of player.
func (r *Reporter) Listener(player string) game.Listener {
	return game.ListenerFunc(func(e game.Event) {
		if e.Type != game.EventGameOver || e.Score == 0 {
			return
		}
		if !playerPattern.MatchString(player) {
			r.log.Debug().Str("player", player).Msg("player name not eligible for leaderboard")
			return
		}
		res := Result{Player: player, Score: e.Score, Level: e.Level, Length: e.Length}
		r.wg.Add(1)
		go func() {
			defer r.wg.Done()
			if err := r.submit(res); err != nil {
				r.log.Warn().Err(err).Str("player", player).Int("score", e.Score).Msg("leaderboard submit failed")
			}
		}()
	})
}

// Wait blocks until in-flight submissions finish.
func (r *Reporter) Wait() {
	r.wg.Wait()
}

func (r *Reporter) submit(res Result) error {
	token, err := r.signer.Sign(res)
	if err != nil {
		return fmt.Errorf("sign receipt: %w", err)
	}
	body, err := json.Marshal(submitReq{Receipt: token})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("post %s: %w", r.url, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("post %s: status %d", r.url, resp.StatusCode)
	}
	r.log.Info().Str("player", res.Player).Int("score", res.Score).Msg("score reported")
	return nil
}
