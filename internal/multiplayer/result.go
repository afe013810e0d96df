package multiplayer

import (
	"time"

	"github.com/vovakirdan/shared-garden/internal/garden"
)

// MatchResultSaver is an interface for saving match results.
// This allows the host to save results without depending on the storage package.
type MatchResultSaver interface {
	SaveMatchResult(result MatchResultData) error
}

// PlayerResult is one player's final standing.
type PlayerResult struct {
	PlayerID    string
	Seat        int
	Score       int
	Infestation int
	Planted     int // occupied cells, pests excluded
	Grown       int
}

// MatchResultData contains match result data for persistence.
type MatchResultData struct {
	MatchID      MatchID
	Winner       string
	Turns        int
	EndReason    string
	DurationSecs int
	Settings     garden.Settings
	Players      []PlayerResult
}

// resultFromGame summarizes a finished game.
func resultFromGame(id MatchID, g *garden.Game, reason MatchEndReason, started time.Time) MatchResultData {
	winner, _ := g.Winner()
	data := MatchResultData{
		MatchID:      id,
		Winner:       winner,
		Turns:        g.CurrentTurn(),
		EndReason:    reason.String(),
		DurationSecs: int(time.Since(started).Seconds()),
		Settings:     g.Settings(),
	}
	for seat, p := range g.Players() {
		pr := PlayerResult{
			PlayerID:    p.ID,
			Seat:        seat,
			Score:       p.Score,
			Infestation: p.Infestation,
		}
		size := p.Grid.Size()
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				t := p.Grid.At(x, y)
				if !t.IsPlant() {
					continue
				}
				pr.Planted++
				if t.Grown {
					pr.Grown++
				}
			}
		}
		data.Players = append(data.Players, pr)
	}
	return data
}

func scores(g *garden.Game) map[string]int {
	out := make(map[string]int)
	for _, p := range g.Players() {
		out[p.ID] = p.Score
	}
	return out
}
