// Package storage provides SQLite-based persistence for finished garden games.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
//
// Only completed games are recorded. A session in progress lives in memory
// and is never restored from here.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/vovakirdan/shared-garden/internal/config"
	"github.com/vovakirdan/shared-garden/internal/multiplayer"
)

// Store manages the SQLite database connection for game results.
type Store struct {
	db *sql.DB
}

// GameRecord is one finished game.
type GameRecord struct {
	ID           int64
	MatchID      string
	Winner       string
	Turns        int
	EndReason    string
	DurationSecs int
	GridSize     int
	Players      []PlayerRecord
	CreatedAt    time.Time
}

// PlayerRecord is one player's final standing in a game.
type PlayerRecord struct {
	PlayerID    string
	Seat        int
	Score       int
	Infestation int
	Planted     int
	Grown       int
}

// ScoreEntry is a single leaderboard row.
type ScoreEntry struct {
	MatchID   string
	PlayerID  string
	Score     int
	Won       bool
	CreatedAt time.Time
}

// PlayerStats contains aggregated statistics for a player.
type PlayerStats struct {
	PlayerID   string
	Games      int
	Wins       int
	HighScore  int
	AvgScore   float64
	LastPlayed time.Time
}

// Open opens the database at dbPath, creating it and its parent directories
// on first use. A leading "~" is expanded to the home directory.
func Open(dbPath string) (*Store, error) {
	path, err := config.ExpandHome(dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory for %s: %w", path, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open %s: %w", path, err)
	}
	store := &Store{db: db}
	for _, step := range []func() error{db.Ping, store.migrate} {
		if err := step(); err != nil {
			db.Close()
			return nil, fmt.Errorf("storage: cannot initialise %s: %w", path, err)
		}
	}
	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		PRAGMA foreign_keys = ON;

		CREATE TABLE IF NOT EXISTS games (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			match_id TEXT NOT NULL UNIQUE,
			winner TEXT,
			turns INTEGER NOT NULL DEFAULT 0,
			end_reason TEXT NOT NULL,
			duration_secs INTEGER NOT NULL DEFAULT 0,
			grid_size INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS game_players (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id INTEGER NOT NULL REFERENCES games(id) ON DELETE CASCADE,
			player_id TEXT NOT NULL,
			seat INTEGER NOT NULL,
			score INTEGER NOT NULL,
			infestation INTEGER NOT NULL DEFAULT 0,
			planted INTEGER NOT NULL DEFAULT 0,
			grown INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_game_players_game ON game_players(game_id);
		CREATE INDEX IF NOT EXISTS idx_game_players_player ON game_players(player_id);
		CREATE INDEX IF NOT EXISTS idx_game_players_top ON game_players(score DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveGame records a finished game and its players in one transaction.
// Returns the ID of the inserted game.
func (s *Store) SaveGame(rec GameRecord) (int64, error) {
	if len(rec.Players) == 0 {
		return 0, errors.New("storage: game has no players")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	var winner sql.NullString
	if rec.Winner != "" {
		winner = sql.NullString{String: rec.Winner, Valid: true}
	}
	res, err := tx.Exec(
		`INSERT INTO games (match_id, winner, turns, end_reason, duration_secs, grid_size)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.MatchID, winner, rec.Turns, rec.EndReason, rec.DurationSecs, rec.GridSize,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save game: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	for _, p := range rec.Players {
		if _, err := tx.Exec(
			`INSERT INTO game_players (game_id, player_id, seat, score, infestation, planted, grown)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			id, p.PlayerID, p.Seat, p.Score, p.Infestation, p.Planted, p.Grown,
		); err != nil {
			return 0, fmt.Errorf("storage: cannot save player %s: %w", p.PlayerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit game: %w", err)
	}
	return id, nil
}

// GameByMatchID retrieves a game by its match ID. Returns nil if absent.
func (s *Store) GameByMatchID(matchID string) (*GameRecord, error) {
	var rec GameRecord
	var winner sql.NullString
	var createdAt any

	err := s.db.QueryRow(
		`SELECT id, match_id, winner, turns, end_reason, duration_secs, grid_size, created_at
		 FROM games
		 WHERE match_id = ?`,
		matchID,
	).Scan(&rec.ID, &rec.MatchID, &winner, &rec.Turns, &rec.EndReason, &rec.DurationSecs, &rec.GridSize, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query game: %w", err)
	}
	rec.Winner = winner.String
	rec.CreatedAt = parseTimestamp(createdAt)

	if rec.Players, err = s.gamePlayers(rec.ID); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *Store) gamePlayers(gameID int64) ([]PlayerRecord, error) {
	rows, err := s.db.Query(
		`SELECT player_id, seat, score, infestation, planted, grown
		 FROM game_players
		 WHERE game_id = ?
		 ORDER BY seat`,
		gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query players: %w", err)
	}
	defer rows.Close()

	var players []PlayerRecord
	for rows.Next() {
		var p PlayerRecord
		if err := rows.Scan(&p.PlayerID, &p.Seat, &p.Score, &p.Infestation, &p.Planted, &p.Grown); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return players, nil
}

// RecentGames retrieves the most recent games, newest first.
func (s *Store) RecentGames(limit int) ([]GameRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, match_id, winner, turns, end_reason, duration_secs, grid_size, created_at
		 FROM games
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query games: %w", err)
	}

	var games []GameRecord
	for rows.Next() {
		var rec GameRecord
		var winner sql.NullString
		var createdAt any
		if err := rows.Scan(&rec.ID, &rec.MatchID, &winner, &rec.Turns, &rec.EndReason, &rec.DurationSecs, &rec.GridSize, &createdAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		rec.Winner = winner.String
		rec.CreatedAt = parseTimestamp(createdAt)
		games = append(games, rec)
	}
	err = rows.Err()
	rows.Close()
	if err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	// Players are loaded after the games cursor is closed.
	for i := range games {
		if games[i].Players, err = s.gamePlayers(games[i].ID); err != nil {
			return nil, err
		}
	}
	return games, nil
}

// TopScores retrieves the best individual scores across all games.
func (s *Store) TopScores(limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT g.match_id, p.player_id, p.score, COALESCE(g.winner = p.player_id, 0), g.created_at
		 FROM game_players p
		 JOIN games g ON g.id = p.game_id
		 ORDER BY p.score DESC, g.created_at ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	return scanScores(rows)
}

// PlayerHistory retrieves a player's scores, newest first.
func (s *Store) PlayerHistory(playerID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT g.match_id, p.player_id, p.score, COALESCE(g.winner = p.player_id, 0), g.created_at
		 FROM game_players p
		 JOIN games g ON g.id = p.game_id
		 WHERE p.player_id = ?
		 ORDER BY g.created_at DESC, g.id DESC
		 LIMIT ?`,
		playerID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query player history: %w", err)
	}
	defer rows.Close()

	return scanScores(rows)
}

func scanScores(rows *sql.Rows) ([]ScoreEntry, error) {
	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.MatchID, &e.PlayerID, &e.Score, &e.Won, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTimestamp(createdAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// AllPlayerStats retrieves statistics for every player, best high score first.
func (s *Store) AllPlayerStats() ([]PlayerStats, error) {
	rows, err := s.db.Query(
		`SELECT p.player_id, COUNT(*), SUM(CASE WHEN g.winner = p.player_id THEN 1 ELSE 0 END),
		        MAX(p.score), AVG(p.score), MAX(g.created_at)
		 FROM game_players p
		 JOIN games g ON g.id = p.game_id
		 GROUP BY p.player_id
		 ORDER BY MAX(p.score) DESC, p.player_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get player stats: %w", err)
	}
	defer rows.Close()

	var stats []PlayerStats
	for rows.Next() {
		var st PlayerStats
		var lastPlayed any
		if err := rows.Scan(&st.PlayerID, &st.Games, &st.Wins, &st.HighScore, &st.AvgScore, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTimestamp(lastPlayed)
		stats = append(stats, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

// ClearGames deletes every recorded game.
func (s *Store) ClearGames() error {
	if _, err := s.db.Exec("DELETE FROM game_players; DELETE FROM games;"); err != nil {
		return fmt.Errorf("storage: cannot clear games: %w", err)
	}
	return nil
}

// SaveMatchResult implements multiplayer.MatchResultSaver.
// This adapter allows the host to save match results without direct storage dependency.
func (s *Store) SaveMatchResult(data multiplayer.MatchResultData) error {
	rec := GameRecord{
		MatchID:      string(data.MatchID),
		Winner:       data.Winner,
		Turns:        data.Turns,
		EndReason:    data.EndReason,
		DurationSecs: data.DurationSecs,
		GridSize:     data.Settings.GridSize,
	}
	for _, p := range data.Players {
		rec.Players = append(rec.Players, PlayerRecord{
			PlayerID:    p.PlayerID,
			Seat:        p.Seat,
			Score:       p.Score,
			Infestation: p.Infestation,
			Planted:     p.Planted,
			Grown:       p.Grown,
		})
	}
	_, err := s.SaveGame(rec)
	return err
}

// Ensure Store implements MatchResultSaver
var _ multiplayer.MatchResultSaver = (*Store)(nil)

// parseTimestamp handles the driver returning either time.Time or text.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
