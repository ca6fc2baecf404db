package session

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"testing"
	"time"

	"github.com/lixenwraith/neurobreath/core"
	"github.com/lixenwraith/neurobreath/event"
	"github.com/lixenwraith/neurobreath/grid"
	"github.com/lixenwraith/neurobreath/signal"
)

const frame = time.Second / 60

var backdrop = [4]core.Color{core.ColorBlue, core.ColorGreen, core.ColorPurple, core.ColorYellow}

// patternCells builds a 7x7 grid where no two neighbors share a color
func patternCells(vis core.Visibility) []grid.Cell {
	cells := make([]grid.Cell, 49)
	for i := range cells {
		r, c := i/7, i%7
		cells[i] = grid.Cell{
			ID:         fmt.Sprintf("c%02d", i),
			Index:      i,
			Color:      backdrop[(r*2+c)%4],
			Visibility: vis,
		}
	}
	return cells
}

func paint(cells []grid.Cell, color core.Color, indices ...int) {
	for _, i := range indices {
		cells[i].Color = color
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestController starts mode with a fixed loudness and fresh event queue
func newTestController(t *testing.T, mode core.GameMode, cfg Config, loudness float64) (*Controller, *event.EventQueue) {
	t.Helper()
	q := event.NewEventQueue()
	c := New(cfg, Deps{
		Loudness: signal.Fixed(loudness),
		Events:   q,
		Rand:     rand.New(rand.NewSource(1)),
		Logger:   testLogger(),
	})
	if err := c.SelectMode(mode); err != nil {
		t.Fatalf("SelectMode: %v", err)
	}
	q.Consume()
	return c, q
}

// install replaces the live grid
func install(t *testing.T, c *Controller, cells []grid.Cell) {
	t.Helper()
	g, err := grid.FromCells(7, 7, cells)
	if err != nil {
		t.Fatalf("FromCells: %v", err)
	}
	c.mu.Lock()
	c.grid = g
	c.mu.Unlock()
}

// matchCells sets up two independent one-swap matches:
// Swap(9, 2) completes red at 0,1,2 and Swap(37, 44) completes red at 42,43,44
func matchCells() []grid.Cell {
	cells := patternCells(core.Revealed)
	paint(cells, core.ColorRed, 0, 1, 9, 42, 43, 37)
	return cells
}

func count(evs []event.GameEvent, t event.EventType) int {
	n := 0
	for _, ev := range evs {
		if ev.Type == t {
			n++
		}
	}
	return n
}

func phaseChangesTo(evs []event.GameEvent, to core.GamePhase) int {
	n := 0
	for _, ev := range evs {
		if p, ok := ev.Payload.(*event.PhaseChangePayload); ok && p.To == to {
			n++
		}
	}
	return n
}

func advanceFor(c *Controller, d time.Duration) {
	for elapsed := time.Duration(0); elapsed < d; elapsed += frame {
		c.Advance(frame)
	}
}

func assertValid(t *testing.T, c *Controller) {
	t.Helper()
	if err := c.Grid().Validate(); err != nil {
		t.Fatalf("grid invariant broken: %v", err)
	}
}
