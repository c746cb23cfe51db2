package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var ErrNotFound = errors.New("game history entry not found")

// Entry is one row of the history_games table: the player's relationship
// with a single game (play counts, totals, favourite flag).
type Entry struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	GameName    string    `json:"game_name"`
	GameCode    string    `json:"game_code"`
	Category    string    `json:"category"`
	Provider    string    `json:"provider"`
	GameImage   string    `json:"game_image"`
	GameLink    string    `json:"game_link"`
	IsFavourite bool      `json:"is_favourite"`
	IsWin       bool      `json:"is_win"`
	TotalPlay   int       `json:"total_play"`
	TotalBet    float64   `json:"total_bet"`
	TotalWin    float64   `json:"total_win"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ListOptions narrows and orders history reads.
type ListOptions struct {
	Category   string
	Provider   string
	Favourites bool
	SortBy     string // created_at, updated_at or total_play
	Limit      int
	Offset     int
}

// Stats summarises a user's whole play history.
type Stats struct {
	TotalPlays     int     `json:"total_plays"`
	TotalBet       float64 `json:"total_bet"`
	TotalWin       float64 `json:"total_win"`
	FavouriteCount int     `json:"favourite_count"`
	WinRate        float64 `json:"win_rate"`
	MostPlayed     *Entry  `json:"most_played"`
}

// Store reads and writes history_games rows.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

const entryColumns = `
	id::text, user_id::text, game_name, COALESCE(game_code, ''),
	COALESCE(category, ''), COALESCE(provider, ''),
	COALESCE(game_image, ''), COALESCE(game_link, ''),
	is_favourite, is_win, total_play, total_bet, total_win,
	created_at, updated_at`

func scanEntry(sc interface{ Scan(...any) error }) (*Entry, error) {
	var e Entry
	err := sc.Scan(
		&e.ID, &e.UserID, &e.GameName, &e.GameCode,
		&e.Category, &e.Provider, &e.GameImage, &e.GameLink,
		&e.IsFavourite, &e.IsWin, &e.TotalPlay, &e.TotalBet, &e.TotalWin,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

var sortColumns = map[string]string{
	"created_at": "created_at",
	"updated_at": "updated_at",
	"total_play": "total_play",
}

// List returns the user's history entries, most recent activity first by
// default. SortBy values outside the allowed set fall back to updated_at.
func (s *Store) List(ctx context.Context, userID string, opts ListOptions) ([]*Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM history_games WHERE user_id = $1`
	args := []any{userID}
	if opts.Category != "" {
		args = append(args, opts.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if opts.Provider != "" {
		args = append(args, opts.Provider)
		query += fmt.Sprintf(" AND provider = $%d", len(args))
	}
	if opts.Favourites {
		query += " AND is_favourite"
	}
	col, ok := sortColumns[opts.SortBy]
	if !ok {
		col = "updated_at"
	}
	query += " ORDER BY " + col + " DESC"
	if opts.Limit > 0 {
		args = append(args, opts.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if opts.Offset > 0 {
		args = append(args, opts.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()
	var out []*Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Get returns one entry by id, owner-scoped.
func (s *Store) Get(ctx context.Context, id, userID string) (*Entry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+entryColumns+` FROM history_games WHERE id = $1 AND user_id = $2`,
		id, userID)
	return scanEntry(row)
}

// byGame finds the user's entry for a game code, if any.
func (s *Store) byGame(ctx context.Context, userID, gameCode string) (*Entry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+entryColumns+` FROM history_games WHERE user_id = $1 AND game_code = $2`,
		userID, gameCode)
	return scanEntry(row)
}

// Add inserts a history entry for a game the user has not played before.
func (s *Store) Add(ctx context.Context, userID string, e Entry) (*Entry, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO history_games (
			user_id, game_name, game_code, category, provider,
			game_image, game_link, is_favourite, is_win,
			total_play, total_bet, total_win
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING `+entryColumns,
		userID, e.GameName, e.GameCode, e.Category, e.Provider,
		e.GameImage, e.GameLink, e.IsFavourite, e.IsWin,
		e.TotalPlay, e.TotalBet, e.TotalWin)
	return scanEntry(row)
}

// RecordPlay accumulates one play session onto the user's entry for the game,
// creating the entry on first play. Totals are read then added in Go so the
// returned entry reflects the new values.
func (s *Store) RecordPlay(ctx context.Context, userID string, e Entry, bet, win float64) (*Entry, error) {
	existing, err := s.byGame(ctx, userID, e.GameCode)
	if errors.Is(err, ErrNotFound) {
		e.TotalPlay = 1
		e.TotalBet = bet
		e.TotalWin = win
		e.IsWin = win > 0
		return s.Add(ctx, userID, e)
	}
	if err != nil {
		return nil, err
	}
	row := s.db.QueryRowContext(ctx, `
		UPDATE history_games SET
			total_play = $3, total_bet = $4, total_win = $5,
			is_win = $6, updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING `+entryColumns,
		existing.ID, userID,
		existing.TotalPlay+1, existing.TotalBet+bet, existing.TotalWin+win,
		win > 0)
	return scanEntry(row)
}

// ToggleFavourite flips the favourite flag, owner-scoped.
func (s *Store) ToggleFavourite(ctx context.Context, id, userID string) (*Entry, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE history_games SET is_favourite = NOT is_favourite, updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING `+entryColumns, id, userID)
	return scanEntry(row)
}

// Favourites returns the user's favourite games, most recently touched first.
func (s *Store) Favourites(ctx context.Context, userID string, limit int) ([]*Entry, error) {
	return s.List(ctx, userID, ListOptions{Favourites: true, Limit: limit})
}

// Search finds entries whose game name contains the term, case-insensitive.
func (s *Store) Search(ctx context.Context, userID, term string) ([]*Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+entryColumns+` FROM history_games
		WHERE user_id = $1 AND game_name ILIKE '%' || $2 || '%'
		ORDER BY updated_at DESC`, userID, term)
	if err != nil {
		return nil, fmt.Errorf("search history: %w", err)
	}
	defer rows.Close()
	var out []*Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Delete removes one entry, owner-scoped.
func (s *Store) Delete(ctx context.Context, id, userID string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM history_games WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete history: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// UserStats loads all of the user's entries and summarises them.
func (s *Store) UserStats(ctx context.Context, userID string) (*Stats, error) {
	entries, err := s.List(ctx, userID, ListOptions{})
	if err != nil {
		return nil, err
	}
	return ComputeStats(entries), nil
}

// ComputeStats folds a set of entries into summary numbers. Win rate is the
// share of games whose last recorded session was a win.
func ComputeStats(entries []*Entry) *Stats {
	st := &Stats{}
	wins := 0
	for _, e := range entries {
		st.TotalPlays += e.TotalPlay
		st.TotalBet += e.TotalBet
		st.TotalWin += e.TotalWin
		if e.IsFavourite {
			st.FavouriteCount++
		}
		if e.IsWin {
			wins++
		}
		if st.MostPlayed == nil || e.TotalPlay > st.MostPlayed.TotalPlay {
			st.MostPlayed = e
		}
	}
	if len(entries) > 0 {
		st.WinRate = float64(wins) / float64(len(entries)) * 100
	}
	return st
}
