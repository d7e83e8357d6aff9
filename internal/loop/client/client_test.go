package client

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/tomz197/snake/internal/game"
	"github.com/tomz197/snake/internal/grid"
	"github.com/tomz197/snake/internal/input"
	"github.com/tomz197/snake/internal/loop/server"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// fakeServer records what a client reports.
type fakeServer struct {
	mu           sync.Mutex
	handle       *server.ClientHandle
	snapshot     server.Snapshot
	scores       []int
	unregistered []int
}

func newFakeServer() *fakeServer {
	return &fakeServer{
		handle: &server.ClientHandle{ID: 7, EventsCh: make(chan server.ClientEvent, 4)},
		snapshot: server.Snapshot{
			Players:   2,
			TopScores: []server.TopScoreEntry{{Username: "alice", Score: 30}},
		},
	}
}

func (f *fakeServer) RegisterClient(username string) *server.ClientHandle {
	f.handle.Username = username
	return f.handle
}

func (f *fakeServer) UnregisterClient(clientID int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.unregistered = append(f.unregistered, clientID)
}

func (f *fakeServer) ReportScore(clientID, score int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scores = append(f.scores, score)
}

func (f *fakeServer) GetSnapshot() *server.Snapshot {
	return &f.snapshot
}

// termSize is a resizable fake terminal.
type termSize struct {
	width, height int
}

func (ts *termSize) get() (int, int, error) {
	return ts.width, ts.height, nil
}

type testClient struct {
	*Client
	server *fakeServer
	clock  *game.MockTimeProvider
	term   *termSize
	out    *bytes.Buffer
}

// newTestClient builds a client on an 80x24 terminal whose input never
// closes, so tests can feed decoded input directly.
func newTestClient(t *testing.T) *testClient {
	t.Helper()
	pr, pw := io.Pipe()
	t.Cleanup(func() { pw.Close() })
	return newTestClientWithReader(t, bufio.NewReader(pr))
}

func newTestClientWithReader(t *testing.T, r *bufio.Reader) *testClient {
	t.Helper()
	fs := newFakeServer()
	clock := game.NewMockTimeProvider(epoch)
	term := &termSize{width: 80, height: 24}
	out := &bytes.Buffer{}

	settings := game.DefaultSettings()
	settings.Seed = 7
	c, err := NewClient(fs, r, out, ClientOptions{
		TermSizeFunc: term.get,
		Username:     "tester",
		Settings:     settings,
		Clock:        clock,

		DisconnectIdle: true,
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	c.state.lastFrame = clock.Now()
	return &testClient{Client: c, server: fs, clock: clock, term: term, out: out}
}

func keys(ks ...input.Key) input.Input {
	return input.Input{Keys: ks, Pressed: []byte{0}}
}

// tick advances the clock by one initial interval and updates the game.
func (tc *testClient) tick() {
	tc.update(tc.clock.Advance(game.InitialTick))
}

func TestNewClientRegisters(t *testing.T) {
	tc := newTestClient(t)
	if tc.handle != tc.server.handle || tc.server.handle.Username != "tester" {
		t.Errorf("client did not register as tester")
	}
	if !tc.layout.Fits() || tc.layout.Scale != 2 {
		t.Errorf("layout = %+v, want scale 2 on 80x24", tc.layout)
	}
	if tc.Game().Phase() != game.PhaseStart {
		t.Errorf("phase = %v, want start", tc.Game().Phase())
	}
}

func TestClientStartAndSteer(t *testing.T) {
	tc := newTestClient(t)

	tc.handleInput(keys(input.KeySpace), tc.clock.Now())
	if tc.Game().Phase() != game.PhasePlaying {
		t.Fatalf("phase = %v, want playing after SPACE", tc.Game().Phase())
	}

	tc.handleInput(keys(input.KeyUp), tc.clock.Now())
	tc.tick()
	if got := tc.Game().Snapshot().Direction; got != grid.Up {
		t.Errorf("direction = %v, want up", got)
	}

	tc.handleInput(keys(input.KeyEscape), tc.clock.Now())
	if tc.Game().Phase() != game.PhasePaused {
		t.Errorf("phase = %v, want paused after ESC", tc.Game().Phase())
	}
}

func TestClientFocusLostPauses(t *testing.T) {
	tc := newTestClient(t)
	tc.Game().Start()

	tc.handleInput(input.Input{FocusLost: true}, tc.clock.Now())
	if tc.Game().Phase() != game.PhasePaused {
		t.Errorf("phase = %v, want paused", tc.Game().Phase())
	}
}

func TestClientQuit(t *testing.T) {
	tc := newTestClient(t)
	tc.handleInput(keys(input.KeyQuit), tc.clock.Now())
	if tc.state.Running {
		t.Error("client should stop on quit")
	}

	tc = newTestClient(t)
	tc.handleInput(input.Input{Closed: true}, tc.clock.Now())
	if tc.state.Running {
		t.Error("client should stop when input closes")
	}
}

func TestClientMouseGestures(t *testing.T) {
	tc := newTestClient(t)
	l := tc.layout

	// Terminal position of the middle of board cell (x, y) at scale 2.
	at := func(x, y int) (int, int) {
		return l.OffsetCol + x*l.Scale, l.OffsetRow + y*l.Scale/2
	}

	col, row := at(5, 5)
	tc.handleInput(input.Input{Mouse: []input.MouseEvent{
		{X: col, Y: row, Press: true},
		{X: col, Y: row},
	}}, tc.clock.Now())
	if tc.Game().Phase() != game.PhasePlaying {
		t.Fatalf("phase = %v, want playing after a tap", tc.Game().Phase())
	}

	downCol, downRow := at(5, 9)
	tc.handleInput(input.Input{Mouse: []input.MouseEvent{
		{X: col, Y: row, Press: true},
		{X: downCol, Y: downRow},
	}}, tc.clock.Now())
	tc.tick()
	if got := tc.Game().Snapshot().Direction; got != grid.Down {
		t.Errorf("direction = %v, want down after a downward swipe", got)
	}
}

func TestClientReleaseOffBoardDropsGesture(t *testing.T) {
	tc := newTestClient(t)
	l := tc.layout
	col, row := l.OffsetCol+4, l.OffsetRow+4

	tc.handleInput(input.Input{Mouse: []input.MouseEvent{
		{X: col, Y: row, Press: true},
		{X: l.OffsetCol + l.Width + 2, Y: row},
	}}, tc.clock.Now())
	if tc.swipe.Pressed() {
		t.Fatal("press should be dropped by a release off the board")
	}

	// A later release on the board has no press to pair with.
	tc.handleInput(input.Input{Mouse: []input.MouseEvent{{X: col, Y: row}}}, tc.clock.Now())
	if tc.Game().Phase() != game.PhaseStart {
		t.Errorf("phase = %v, want start", tc.Game().Phase())
	}
}

func TestClientInactivity(t *testing.T) {
	tc := newTestClient(t)

	tc.handleInput(input.Input{}, tc.clock.Advance(91*time.Second))
	if !tc.state.isInactive || !tc.state.Running {
		t.Fatalf("inactive=%v running=%v, want warning only", tc.state.isInactive, tc.state.Running)
	}

	tc.handleInput(keys(input.KeyNone), tc.clock.Now())
	if tc.state.isInactive {
		t.Error("any key should clear the warning")
	}

	tc.handleInput(input.Input{}, tc.clock.Advance(121*time.Second))
	if tc.state.Running {
		t.Error("client should disconnect after prolonged inactivity")
	}

	tc = newTestClient(t)
	tc.idleLimit = false
	tc.handleInput(input.Input{}, tc.clock.Advance(time.Hour))
	if tc.state.isInactive || !tc.state.Running {
		t.Error("local clients are never disconnected for inactivity")
	}
}

func TestClientShutdown(t *testing.T) {
	tc := newTestClient(t)
	tc.Game().Start()

	tc.server.handle.EventsCh <- server.ClientEvent{Type: server.EventServerShutdown}
	tc.processServerEvents()
	if !tc.state.shutdown {
		t.Fatal("shutdown event not applied")
	}
	if tc.Game().Phase() != game.PhasePaused {
		t.Errorf("phase = %v, want paused during shutdown", tc.Game().Phase())
	}

	// Only quit is honored now.
	tc.handleInput(keys(input.KeySpace), tc.clock.Now())
	if tc.Game().Phase() != game.PhasePaused {
		t.Errorf("SPACE should be ignored during shutdown")
	}

	if err := tc.frame(tc.clock.Advance(time.Second)); err != nil {
		t.Fatalf("frame: %v", err)
	}
	if !tc.state.Running {
		t.Fatal("client stopped before the countdown ended")
	}
	if !strings.Contains(tc.out.String(), "SERVER SHUTTING DOWN") {
		t.Error("shutdown screen not drawn")
	}

	if err := tc.frame(tc.clock.Advance(10 * time.Second)); err != nil {
		t.Fatalf("frame: %v", err)
	}
	if tc.state.Running {
		t.Error("client should stop when the countdown ends")
	}
}

func TestClientReportsScore(t *testing.T) {
	tc := newTestClient(t)
	tc.Game().Start()

	// Walk a one-cell snake greedily to the food.
	for i := 0; i < 100 && tc.Game().Snapshot().Score == 0; i++ {
		snap := tc.Game().Snapshot()
		head := snap.Snake[0]
		switch {
		case head.X < snap.Food.X:
			tc.Game().Submit(grid.Right)
		case head.X > snap.Food.X:
			tc.Game().Submit(grid.Left)
		case head.Y < snap.Food.Y:
			tc.Game().Submit(grid.Down)
		default:
			tc.Game().Submit(grid.Up)
		}
		tc.tick()
	}

	if got := tc.Game().Snapshot().Score; got != game.PointsPerFood {
		t.Fatalf("score = %d, want %d", got, game.PointsPerFood)
	}
	tc.server.mu.Lock()
	defer tc.server.mu.Unlock()
	if len(tc.server.scores) != 1 || tc.server.scores[0] != game.PointsPerFood {
		t.Errorf("reported scores = %v, want [%d]", tc.server.scores, game.PointsPerFood)
	}
}
