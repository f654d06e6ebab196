package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jmoiron/sqlx"

	"github.com/keeltekool/data-tracker/pkg/domain"
)

// validateKeyword trims the keyword and checks the length constraint
func validateKeyword(keyword string) (string, error) {
	kw := strings.TrimSpace(keyword)
	if kw == "" || utf8.RuneCountInString(kw) > domain.MaxKeywordLength {
		return "", domain.ErrInvalidKeyword
	}
	return kw, nil
}

// ListTopics retrieves all topics, newest first
func (db *DB) ListTopics(ctx context.Context) ([]domain.Topic, error) {
	topics := []domain.Topic{}
	query := `SELECT * FROM topics ORDER BY created_at DESC, id DESC`
	if err := db.conn.SelectContext(ctx, &topics, query); err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	return topics, nil
}

// GetTopic retrieves a topic by ID
func (db *DB) GetTopic(ctx context.Context, id int64) (*domain.Topic, error) {
	var topic domain.Topic
	err := db.conn.GetContext(ctx, &topic, `SELECT * FROM topics WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTopicNotFound
		}
		return nil, fmt.Errorf("get topic: %w", err)
	}
	return &topic, nil
}

// CreateTopic inserts a new topic keyword. The count and case-insensitive
// duplicate checks run inside one transaction with the insert, so the
// 20-topic cap and uniqueness hold under concurrent creates.
func (db *DB) CreateTopic(ctx context.Context, keyword string) (*domain.Topic, error) {
	kw, err := validateKeyword(keyword)
	if err != nil {
		return nil, err
	}

	var topic domain.Topic
	err = db.InTransaction(ctx, func(tx *sqlx.Tx) error {
		var count int
		if err := tx.GetContext(ctx, &count, `SELECT COUNT(*) FROM topics`); err != nil {
			return fmt.Errorf("count topics: %w", err)
		}
		if count >= domain.MaxTopics {
			return domain.ErrTopicLimit
		}

		var dup int
		if err := tx.GetContext(ctx, &dup, `SELECT COUNT(*) FROM topics WHERE LOWER(keyword) = LOWER(?)`, kw); err != nil {
			return fmt.Errorf("check duplicate: %w", err)
		}
		if dup > 0 {
			return domain.ErrDuplicateTopic
		}

		now := time.Now().UTC()
		res, err := tx.ExecContext(ctx,
			`INSERT INTO topics (keyword, created_at, updated_at) VALUES (?, ?, ?)`, kw, now, now)
		if err != nil {
			return fmt.Errorf("insert topic: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("get last insert id: %w", err)
		}

		if err := tx.GetContext(ctx, &topic, `SELECT * FROM topics WHERE id = ?`, id); err != nil {
			return fmt.Errorf("reload topic: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &topic, nil
}

// UpdateTopic changes a topic's keyword, re-validated against the same
// length and uniqueness rules with the topic itself excluded
func (db *DB) UpdateTopic(ctx context.Context, id int64, keyword string) (*domain.Topic, error) {
	kw, err := validateKeyword(keyword)
	if err != nil {
		return nil, err
	}

	var topic domain.Topic
	err = db.InTransaction(ctx, func(tx *sqlx.Tx) error {
		var exists int
		if err := tx.GetContext(ctx, &exists, `SELECT COUNT(*) FROM topics WHERE id = ?`, id); err != nil {
			return fmt.Errorf("check topic: %w", err)
		}
		if exists == 0 {
			return domain.ErrTopicNotFound
		}

		var dup int
		if err := tx.GetContext(ctx, &dup,
			`SELECT COUNT(*) FROM topics WHERE LOWER(keyword) = LOWER(?) AND id != ?`, kw, id); err != nil {
			return fmt.Errorf("check duplicate: %w", err)
		}
		if dup > 0 {
			return domain.ErrDuplicateTopic
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE topics SET keyword = ?, updated_at = ? WHERE id = ?`, kw, time.Now().UTC(), id); err != nil {
			return fmt.Errorf("update topic: %w", err)
		}

		if err := tx.GetContext(ctx, &topic, `SELECT * FROM topics WHERE id = ?`, id); err != nil {
			return fmt.Errorf("reload topic: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &topic, nil
}

// DeleteTopic removes a topic by ID
func (db *DB) DeleteTopic(ctx context.Context, id int64) error {
	res, err := db.conn.ExecContext(ctx, `DELETE FROM topics WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete topic: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrTopicNotFound
	}
	return nil
}
