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

// CreateFormTemplate inserts a new form template.
func (s *SQLiteStorage) CreateFormTemplate(ctx context.Context, template *model.FormTemplate) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateFormTemplate(template); err != nil {
		return err
	}

	now := time.Now()
	if template.CreatedAt.IsZero() {
		template.CreatedAt = now
	}
	template.UpdatedAt = now

	fields, err := encodeJSON(template.Fields, "fields")
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO form_templates (id, program_id, name, fields, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, template.ID, template.ProgramID, template.Name, fields,
		template.CreatedAt, template.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: form template %s", common.ErrDuplicateEntry, template.ID)
		}
		return fmt.Errorf("failed to create form template: %w", err)
	}
	return nil
}

// GetFormTemplate retrieves a form template by id.
func (s *SQLiteStorage) GetFormTemplate(ctx context.Context, id string) (*model.FormTemplate, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}
	return s.getFormTemplateBy(ctx, "id", id)
}

// GetFormTemplateByProgram retrieves the form template bound to a program.
func (s *SQLiteStorage) GetFormTemplateByProgram(ctx context.Context, programID string) (*model.FormTemplate, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(programID, "programID"); err != nil {
		return nil, err
	}
	return s.getFormTemplateBy(ctx, "program_id", programID)
}

func (s *SQLiteStorage) getFormTemplateBy(ctx context.Context, column, value string) (*model.FormTemplate, error) {
	var (
		template model.FormTemplate
		fields   sql.NullString
	)

	err := s.db.QueryRowContext(ctx, fmt.Sprintf(`
		SELECT id, program_id, name, fields, created_at, updated_at
		FROM form_templates
		WHERE %s = ?
	`, column), value).Scan(
		&template.ID,
		&template.ProgramID,
		&template.Name,
		&fields,
		&template.CreatedAt,
		&template.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: form template %s", common.ErrNotFound, value)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get form template: %w", err)
	}

	if err := decodeJSON(fields.String, &template.Fields, "fields"); err != nil {
		return nil, err
	}
	return &template, nil
}

// UpdateFormTemplate updates an existing form template.
func (s *SQLiteStorage) UpdateFormTemplate(ctx context.Context, template *model.FormTemplate) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateFormTemplate(template); err != nil {
		return err
	}

	template.UpdatedAt = time.Now()

	fields, err := encodeJSON(template.Fields, "fields")
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE form_templates
		SET program_id = ?, name = ?, fields = ?, updated_at = ?
		WHERE id = ?
	`, template.ProgramID, template.Name, fields, template.UpdatedAt, template.ID)

	if err != nil {
		return fmt.Errorf("failed to update form template: %w", err)
	}
	return checkAffected(result, "form template", template.ID)
}

// DeleteFormTemplate deletes a form template by id.
func (s *SQLiteStorage) DeleteFormTemplate(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM form_templates WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete form template: %w", err)
	}
	return checkAffected(result, "form template", id)
}
