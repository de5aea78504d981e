package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/khadim210/WolumaProject-sub000/internal/common"
	"github.com/khadim210/WolumaProject-sub000/internal/model"
)

// CreateProgram inserts a new program. The program's criteria are validated
// before anything touches the database.
func (s *SQLiteStorage) CreateProgram(ctx context.Context, program *model.Program) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateProgram(program); err != nil {
		return err
	}

	now := time.Now()
	if program.CreatedAt.IsZero() {
		program.CreatedAt = now
	}
	program.UpdatedAt = now

	selection, err := encodeJSON(program.SelectionCriteria, "selection_criteria")
	if err != nil {
		return err
	}
	evaluation, err := encodeJSON(program.EvaluationCriteria, "evaluation_criteria")
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO programs (
			id, partner_id, name, description, budget, currency,
			start_date, end_date, selection_criteria, evaluation_criteria,
			custom_ai_prompt, is_active, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, program.ID, program.PartnerID, program.Name, program.Description,
		program.Budget, program.Currency,
		nullTime(program.StartDate), nullTime(program.EndDate),
		selection, evaluation,
		program.CustomAIPrompt, program.IsActive,
		program.CreatedAt, program.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: program %s", common.ErrDuplicateEntry, program.ID)
		}
		return fmt.Errorf("failed to create program: %w", err)
	}
	return nil
}

// GetProgram retrieves a program by id.
func (s *SQLiteStorage) GetProgram(ctx context.Context, id string) (*model.Program, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, partner_id, name, description, budget, currency,
			start_date, end_date, selection_criteria, evaluation_criteria,
			custom_ai_prompt, is_active, created_at, updated_at
		FROM programs
		WHERE id = ?
	`, id)

	program, err := scanProgram(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: program %s", common.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return program, nil
}

// ListPrograms retrieves programs ordered by name. When partnerID is
// non-empty, only that partner's programs are returned.
func (s *SQLiteStorage) ListPrograms(ctx context.Context, partnerID string) ([]model.Program, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, partner_id, name, description, budget, currency,
			start_date, end_date, selection_criteria, evaluation_criteria,
			custom_ai_prompt, is_active, created_at, updated_at
		FROM programs`
	var args []any
	if partnerID != "" {
		query += ` WHERE partner_id = ?`
		args = append(args, partnerID)
	}
	query += ` ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query programs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var programs []model.Program
	for rows.Next() {
		program, err := scanProgram(rows)
		if err != nil {
			return nil, err
		}
		programs = append(programs, *program)
	}

	return programs, rows.Err()
}

// UpdateProgram updates an existing program.
func (s *SQLiteStorage) UpdateProgram(ctx context.Context, program *model.Program) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateProgram(program); err != nil {
		return err
	}

	program.UpdatedAt = time.Now()

	selection, err := encodeJSON(program.SelectionCriteria, "selection_criteria")
	if err != nil {
		return err
	}
	evaluation, err := encodeJSON(program.EvaluationCriteria, "evaluation_criteria")
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE programs
		SET partner_id = ?, name = ?, description = ?, budget = ?, currency = ?,
			start_date = ?, end_date = ?, selection_criteria = ?,
			evaluation_criteria = ?, custom_ai_prompt = ?, is_active = ?,
			updated_at = ?
		WHERE id = ?
	`, program.PartnerID, program.Name, program.Description,
		program.Budget, program.Currency,
		nullTime(program.StartDate), nullTime(program.EndDate),
		selection, evaluation,
		program.CustomAIPrompt, program.IsActive,
		program.UpdatedAt, program.ID)

	if err != nil {
		return fmt.Errorf("failed to update program: %w", err)
	}
	return checkAffected(result, "program", program.ID)
}

// DeleteProgram deletes a program by id.
func (s *SQLiteStorage) DeleteProgram(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM programs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete program: %w", err)
	}
	return checkAffected(result, "program", id)
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanProgram(row scanner) (*model.Program, error) {
	var (
		program    model.Program
		startDate  sql.NullTime
		endDate    sql.NullTime
		selection  sql.NullString
		evaluation sql.NullString
	)

	err := row.Scan(
		&program.ID,
		&program.PartnerID,
		&program.Name,
		&program.Description,
		&program.Budget,
		&program.Currency,
		&startDate,
		&endDate,
		&selection,
		&evaluation,
		&program.CustomAIPrompt,
		&program.IsActive,
		&program.CreatedAt,
		&program.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan program: %w", err)
	}

	program.StartDate = startDate.Time
	program.EndDate = endDate.Time
	if err := decodeJSON(selection.String, &program.SelectionCriteria, "selection_criteria"); err != nil {
		return nil, err
	}
	if err := decodeJSON(evaluation.String, &program.EvaluationCriteria, "evaluation_criteria"); err != nil {
		return nil, err
	}
	return &program, nil
}

// nullTime maps a zero time to SQL NULL.
func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}
