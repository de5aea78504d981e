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

// CreatePartner inserts a new partner organization.
func (s *SQLiteStorage) CreatePartner(ctx context.Context, partner *model.Partner) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validatePartner(partner); err != nil {
		return err
	}

	if partner.CreatedAt.IsZero() {
		partner.CreatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO partners (id, name, contact_email, description, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, partner.ID, partner.Name, partner.ContactEmail, partner.Description, partner.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: partner %s", common.ErrDuplicateEntry, partner.ID)
		}
		return fmt.Errorf("failed to create partner: %w", err)
	}
	return nil
}

// GetPartner retrieves a partner by id.
func (s *SQLiteStorage) GetPartner(ctx context.Context, id string) (*model.Partner, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	var partner model.Partner
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, contact_email, description, created_at
		FROM partners
		WHERE id = ?
	`, id).Scan(
		&partner.ID,
		&partner.Name,
		&partner.ContactEmail,
		&partner.Description,
		&partner.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: partner %s", common.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get partner: %w", err)
	}
	return &partner, nil
}

// ListPartners retrieves all partners ordered by name.
func (s *SQLiteStorage) ListPartners(ctx context.Context) ([]model.Partner, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, contact_email, description, created_at
		FROM partners
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query partners: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var partners []model.Partner
	for rows.Next() {
		var partner model.Partner
		if err := rows.Scan(
			&partner.ID,
			&partner.Name,
			&partner.ContactEmail,
			&partner.Description,
			&partner.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan partner: %w", err)
		}
		partners = append(partners, partner)
	}

	return partners, rows.Err()
}

// UpdatePartner updates an existing partner.
func (s *SQLiteStorage) UpdatePartner(ctx context.Context, partner *model.Partner) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validatePartner(partner); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE partners
		SET name = ?, contact_email = ?, description = ?
		WHERE id = ?
	`, partner.Name, partner.ContactEmail, partner.Description, partner.ID)

	if err != nil {
		return fmt.Errorf("failed to update partner: %w", err)
	}
	return checkAffected(result, "partner", partner.ID)
}

// DeletePartner deletes a partner by id.
func (s *SQLiteStorage) DeletePartner(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM partners WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete partner: %w", err)
	}
	return checkAffected(result, "partner", id)
}
