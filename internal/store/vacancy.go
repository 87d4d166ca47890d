package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// ErrNotFound is returned when an operation targets a vacancy id that is not
// in the database.
var ErrNotFound = errors.New("vacancy not found")

// Vacancy is one normalized job posting row. Timestamps are local time
// without a timezone. Salary fields are nil when the employer does not
// disclose them.
type Vacancy struct {
	ID               string
	Experience       string
	Schedule         string
	Employment       string
	Description      string
	KeySkills        string // JSON array of skill names, empty when none
	EmployerID       string
	EmployerName     string
	EmployerURL      string
	PublishedAt      time.Time
	CreatedAt        time.Time
	InitialCreatedAt time.Time
	SalaryFrom       *int
	SalaryTo         *int
	SalaryCurrency   *string
	SalaryGross      *bool
	TypeOpen         string
	Applied          bool
}

// JobText is the id and plain-text description of a stored vacancy.
type JobText struct {
	ID          string
	Description string
}

// SaveVacancy inserts the vacancy or overwrites all mutable fields of the
// existing row with the same id. The applied flag is user state and is never
// touched on update.
func (s *Store) SaveVacancy(ctx context.Context, v *Vacancy) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM vacancies WHERE id = ?`, v.ID).Scan(&exists)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = tx.ExecContext(ctx, `
INSERT INTO vacancies (
	id, experience, schedule, employment, description, key_skills,
	employer_id, employer_name, employer_url,
	published_at, created_at, initial_created_at,
	salary_from, salary_to, salary_currency, salary_gross,
	type_open, applied
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0)`,
			v.ID, v.Experience, v.Schedule, v.Employment, v.Description, v.KeySkills,
			v.EmployerID, v.EmployerName, v.EmployerURL,
			v.PublishedAt.Format(TimeLayout), v.CreatedAt.Format(TimeLayout), v.InitialCreatedAt.Format(TimeLayout),
			v.SalaryFrom, v.SalaryTo, v.SalaryCurrency, v.SalaryGross,
			v.TypeOpen,
		)
	case err != nil:
		_ = tx.Rollback()
		return fmt.Errorf("lookup vacancy %s: %w", v.ID, err)
	default:
		_, err = tx.ExecContext(ctx, `
UPDATE vacancies SET
	experience = ?, schedule = ?, employment = ?, description = ?, key_skills = ?,
	employer_id = ?, employer_name = ?, employer_url = ?,
	published_at = ?, created_at = ?, initial_created_at = ?,
	salary_from = ?, salary_to = ?, salary_currency = ?, salary_gross = ?,
	type_open = ?
WHERE id = ?`,
			v.Experience, v.Schedule, v.Employment, v.Description, v.KeySkills,
			v.EmployerID, v.EmployerName, v.EmployerURL,
			v.PublishedAt.Format(TimeLayout), v.CreatedAt.Format(TimeLayout), v.InitialCreatedAt.Format(TimeLayout),
			v.SalaryFrom, v.SalaryTo, v.SalaryCurrency, v.SalaryGross,
			v.TypeOpen,
			v.ID,
		)
	}

	if err != nil {
		_ = tx.Rollback()
		s.logger.Error("saving vacancy", zap.String("vacancy_id", v.ID), zap.Error(err))
		return fmt.Errorf("save vacancy %s: %w", v.ID, err)
	}

	return tx.Commit()
}

// HasVacancy reports whether the id is already stored.
func (s *Store) HasVacancy(ctx context.Context, id string) (bool, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM vacancies WHERE id = ?`, id).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// UnappliedDescriptions returns id and description of every vacancy the user
// has not applied to yet, in insertion order.
func (s *Store) UnappliedDescriptions(ctx context.Context) ([]JobText, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, description FROM vacancies WHERE applied = 0 ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []JobText
	for rows.Next() {
		var job JobText
		if err := rows.Scan(&job.ID, &job.Description); err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

// SetApplied marks whether the user has responded to the vacancy.
func (s *Store) SetApplied(ctx context.Context, id string, applied bool) error {
	res, err := s.db.ExecContext(ctx, `UPDATE vacancies SET applied = ? WHERE id = ?`, applied, id)
	if err != nil {
		return fmt.Errorf("set applied for %s: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}
