package db

import (
	"fmt"

	"exportlens/internal/stats"
)

// SaveRun persists a parse's summary snapshot: the run row, its
// frequency tables, and every rollup. Returns the new run ID.
func (db *DB) SaveRun(summary *stats.Summary) (int64, error) {
	result, err := db.Exec(`
		INSERT INTO runs (
			total_messages, total_words, avg_words, attachment_count,
			first_message_at, last_message_at
		) VALUES (?, ?, ?, ?, ?, ?)
	`, summary.TotalMessages, summary.TotalWords, summary.AvgWordsPerMessage,
		summary.AttachmentCount, timeOrNil(summary.FirstMessageAt), timeOrNil(summary.LastMessageAt))
	if err != nil {
		return 0, fmt.Errorf("failed to save run: %w", err)
	}
	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run id: %w", err)
	}

	if err := db.saveRunWords(runID, "word", summary.TopWords); err != nil {
		return 0, err
	}
	if err := db.saveRunWords(runID, "emoji", summary.TopEmojis); err != nil {
		return 0, err
	}

	for _, ch := range summary.ByChannel {
		if err := db.SaveChannel(ch); err != nil {
			return 0, err
		}
	}
	for _, g := range summary.ByGuild {
		if err := db.SaveGuild(g); err != nil {
			return 0, err
		}
	}

	return runID, nil
}

func (db *DB) saveRunWords(runID int64, kind string, entries []stats.WordCount) error {
	for _, entry := range entries {
		_, err := db.Exec(`
			INSERT INTO run_words (run_id, kind, word, count)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(run_id, kind, word) DO UPDATE SET count = excluded.count
		`, runID, kind, entry.Word, entry.Count)
		if err != nil {
			return fmt.Errorf("failed to save %s frequency: %w", kind, err)
		}
	}
	return nil
}

// LatestRunID returns the most recent run's ID, or 0 when none exist.
func (db *DB) LatestRunID() (int64, error) {
	var id int64
	err := db.QueryRow("SELECT COALESCE(MAX(id), 0) FROM runs").Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to find latest run: %w", err)
	}
	return id, nil
}

// TopWords returns a run's stored frequency table for the given kind
// ("word" or "emoji"), highest count first.
func (db *DB) TopWords(runID int64, kind string, limit int) ([]stats.WordCount, error) {
	rows, err := db.Query(`
		SELECT word, count FROM run_words
		WHERE run_id = ? AND kind = ?
		ORDER BY count DESC, word ASC
		LIMIT ?
	`, runID, kind, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query frequencies: %w", err)
	}
	defer rows.Close()

	var entries []stats.WordCount
	for rows.Next() {
		var e stats.WordCount
		if err := rows.Scan(&e.Word, &e.Count); err != nil {
			return nil, fmt.Errorf("failed to scan frequency: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
