package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Tokenization is the token analysis of one vacancy. It shares its primary
// key with the vacancy row. Token lists are JSON-encoded string arrays.
type Tokenization struct {
	ID               string
	CommonTokens     string
	LenCommonTokens  int
	MissingTokens    string
	LenMissingTokens int
	Tokens           string
	Score            float64
}

// SaveTokenization inserts the analysis row or replaces it wholesale when a
// row with the same id already exists.
func (s *Store) SaveTokenization(ctx context.Context, t *Tokenization) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM tokenization WHERE id = ?`, t.ID).Scan(&exists)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = tx.ExecContext(ctx, `
INSERT INTO tokenization (
	id, common_tokens, len_common_tokens, missing_tokens, len_missing_tokens, tokens, score
) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			t.ID, t.CommonTokens, t.LenCommonTokens, t.MissingTokens, t.LenMissingTokens, t.Tokens, t.Score,
		)
	case err != nil:
		_ = tx.Rollback()
		return fmt.Errorf("lookup tokenization %s: %w", t.ID, err)
	default:
		_, err = tx.ExecContext(ctx, `
UPDATE tokenization SET
	common_tokens = ?, len_common_tokens = ?, missing_tokens = ?, len_missing_tokens = ?, tokens = ?, score = ?
WHERE id = ?`,
			t.CommonTokens, t.LenCommonTokens, t.MissingTokens, t.LenMissingTokens, t.Tokens, t.Score,
			t.ID,
		)
	}

	if err != nil {
		_ = tx.Rollback()
		s.logger.Error("saving tokenization", zap.String("vacancy_id", t.ID), zap.Error(err))
		return fmt.Errorf("save tokenization %s: %w", t.ID, err)
	}

	return tx.Commit()
}

// AllTokenizations returns every stored analysis row in insertion order.
func (s *Store) AllTokenizations(ctx context.Context) ([]Tokenization, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, common_tokens, len_common_tokens, missing_tokens, len_missing_tokens, tokens, score
FROM tokenization ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Tokenization
	for rows.Next() {
		var t Tokenization
		if err := rows.Scan(
			&t.ID, &t.CommonTokens, &t.LenCommonTokens,
			&t.MissingTokens, &t.LenMissingTokens, &t.Tokens, &t.Score,
		); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, rows.Err()
}
