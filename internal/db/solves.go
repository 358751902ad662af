package db

import (
	"fmt"
	"log/slog"

	"github.com/slidery/slidery/internal/models"
)

// InsertSolve records a completed solve.
func (d *DB) InsertSolve(s models.Solve) error {
	_, err := d.conn.Exec(`
		INSERT INTO solves (id, seed, width, height, player, move_count, moves, duration_ms, solved_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.Seed, s.Width, s.Height, s.Player, s.MoveCount, s.Moves, s.DurationMS, s.SolvedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert solve %s: %w", s.ID, err)
	}

	slog.Info("solve inserted",
		"solveID", s.ID,
		"shape", fmt.Sprintf("%dx%d", s.Width, s.Height),
		"durationMS", s.DurationMS,
		"moveCount", s.MoveCount,
	)
	return nil
}

// BestSolves returns the fastest solves for a board shape, ordered by
// duration then move count.
func (d *DB) BestSolves(width, height, limit int) ([]models.Solve, error) {
	rows, err := d.conn.Query(`
		SELECT id, seed, width, height, player, move_count, moves, duration_ms, solved_at
		FROM solves
		WHERE width = ? AND height = ?
		ORDER BY duration_ms ASC, move_count ASC
		LIMIT ?`,
		width, height, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query best solves: %w", err)
	}
	defer rows.Close()

	return scanSolves(rows)
}

// RecentSolves returns the latest solves across all shapes.
func (d *DB) RecentSolves(limit int) ([]models.Solve, error) {
	rows, err := d.conn.Query(`
		SELECT id, seed, width, height, player, move_count, moves, duration_ms, solved_at
		FROM solves
		ORDER BY solved_at DESC
		LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent solves: %w", err)
	}
	defer rows.Close()

	return scanSolves(rows)
}

// CountSolves returns the total number of recorded solves.
func (d *DB) CountSolves() (int, error) {
	var count int
	if err := d.conn.QueryRow("SELECT COUNT(*) FROM solves").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count solves: %w", err)
	}
	return count, nil
}

// DeleteSolves removes all recorded solves. Admin reset.
func (d *DB) DeleteSolves() error {
	slog.Warn("deleting all recorded solves")

	if _, err := d.conn.Exec("DELETE FROM solves"); err != nil {
		return fmt.Errorf("failed to delete solves: %w", err)
	}

	slog.Info("solves deleted")
	return nil
}

type rowScanner interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

func scanSolves(rows rowScanner) ([]models.Solve, error) {
	var solves []models.Solve
	for rows.Next() {
		var s models.Solve
		if err := rows.Scan(
			&s.ID, &s.Seed, &s.Width, &s.Height, &s.Player,
			&s.MoveCount, &s.Moves, &s.DurationMS, &s.SolvedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan solve row: %w", err)
		}
		solves = append(solves, s)
	}
	return solves, rows.Err()
}
