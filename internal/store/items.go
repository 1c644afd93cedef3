package store

import (
	"fmt"
	"time"

	"github.com/IshankReddy/LLM-Engineer-Course/internal/item"
)

// ReplaceCategory drops every stored item of category and inserts items in a
// single transaction. Items that are not included are skipped.
func (s *Store) ReplaceCategory(category string, items []*item.Item, curatedAt time.Time) (int, error) {
	tx, err := s.DB.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM items WHERE category = ?`, category); err != nil {
		return 0, fmt.Errorf("clear %s: %w", category, err)
	}
	stmt, err := tx.Prepare(`
		INSERT INTO items (category, title, price, details, token_count, prompt, curated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	ts := curatedAt.Format(time.RFC3339)
	n := 0
	for _, it := range items {
		if !it.Include {
			continue
		}
		if _, err := stmt.Exec(category, it.Title, it.Price, it.Details, it.TokenCount, it.Prompt, ts); err != nil {
			return 0, fmt.Errorf("insert %q: %w", it.Title, err)
		}
		n++
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return n, nil
}

// ListItems returns stored items in insertion order. An empty category lists
// all categories; limit <= 0 means no limit.
func (s *Store) ListItems(category string, limit int) ([]*item.Item, error) {
	query := `SELECT category, title, price, details, token_count, prompt FROM items`
	var args []any
	if category != "" {
		query += ` WHERE category = ?`
		args = append(args, category)
	}
	query += ` ORDER BY id`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*item.Item
	for rows.Next() {
		it := &item.Item{Include: true}
		if err := rows.Scan(&it.Category, &it.Title, &it.Price, &it.Details, &it.TokenCount, &it.Prompt); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// Categories returns the distinct stored categories, sorted.
func (s *Store) Categories() ([]string, error) {
	rows, err := s.DB.Query(`SELECT DISTINCT category FROM items ORDER BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
