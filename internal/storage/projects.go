package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/khadim210/WolumaProject-sub000/internal/common"
	"github.com/khadim210/WolumaProject-sub000/internal/model"
	"github.com/khadim210/WolumaProject-sub000/internal/service"
)

// CreateProject inserts a new project.
func (s *SQLiteStorage) CreateProject(ctx context.Context, project *model.Project) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateProject(project); err != nil {
		return err
	}

	now := time.Now()
	if project.CreatedAt.IsZero() {
		project.CreatedAt = now
	}
	project.UpdatedAt = now
	if project.Status == "" {
		project.Status = model.StatusDraft
	}

	cols, err := encodeProjectColumns(project)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO projects (
			id, program_id, submitter_id, title, description, status,
			recommended_status, budget, tags, form_data, evaluation_scores,
			evaluation_comments, total_evaluation_score, manually_submitted,
			eligibility_notes, evaluation_notes, submission_date,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, project.ID, project.ProgramID, project.SubmitterID,
		project.Title, project.Description, string(project.Status),
		string(project.RecommendedStatus), project.Budget,
		cols.tags, cols.formData, cols.scores, cols.comments,
		project.TotalEvaluationScore, project.ManuallySubmitted,
		project.EligibilityNotes, project.EvaluationNotes,
		nullTime(project.SubmissionDate),
		project.CreatedAt, project.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: project %s", common.ErrDuplicateEntry, project.ID)
		}
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

// GetProject retrieves a project by id.
func (s *SQLiteStorage) GetProject(ctx context.Context, id string) (*model.Project, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, projectSelect+` WHERE id = ?`, id)

	project, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: project %s", common.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return project, nil
}

// ListProjects retrieves projects matching the filter, newest first.
func (s *SQLiteStorage) ListProjects(ctx context.Context, filter service.ProjectFilter) ([]model.Project, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := projectSelect
	var (
		conditions []string
		args       []any
	)
	if filter.Status != nil {
		conditions = append(conditions, "status = ?")
		args = append(args, string(*filter.Status))
	}
	if filter.ProgramID != "" {
		conditions = append(conditions, "program_id = ?")
		args = append(args, filter.ProgramID)
	}
	if filter.SubmitterID != "" {
		conditions = append(conditions, "submitter_id = ?")
		args = append(args, filter.SubmitterID)
	}
	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
		if filter.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, filter.Offset)
		}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var projects []model.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, *project)
	}

	return projects, rows.Err()
}

// UpdateProject updates an existing project. Writes are last-write-wins.
func (s *SQLiteStorage) UpdateProject(ctx context.Context, project *model.Project) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateProject(project); err != nil {
		return err
	}

	project.UpdatedAt = time.Now()

	cols, err := encodeProjectColumns(project)
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE projects
		SET program_id = ?, submitter_id = ?, title = ?, description = ?,
			status = ?, recommended_status = ?, budget = ?, tags = ?,
			form_data = ?, evaluation_scores = ?, evaluation_comments = ?,
			total_evaluation_score = ?, manually_submitted = ?,
			eligibility_notes = ?, evaluation_notes = ?, submission_date = ?,
			updated_at = ?
		WHERE id = ?
	`, project.ProgramID, project.SubmitterID, project.Title, project.Description,
		string(project.Status), string(project.RecommendedStatus), project.Budget,
		cols.tags, cols.formData, cols.scores, cols.comments,
		project.TotalEvaluationScore, project.ManuallySubmitted,
		project.EligibilityNotes, project.EvaluationNotes,
		nullTime(project.SubmissionDate),
		project.UpdatedAt, project.ID)

	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	return checkAffected(result, "project", project.ID)
}

// DeleteProject deletes a project by id.
func (s *SQLiteStorage) DeleteProject(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return checkAffected(result, "project", id)
}

const projectSelect = `
	SELECT id, program_id, submitter_id, title, description, status,
		recommended_status, budget, tags, form_data, evaluation_scores,
		evaluation_comments, total_evaluation_score, manually_submitted,
		eligibility_notes, evaluation_notes, submission_date,
		created_at, updated_at
	FROM projects`

type projectColumns struct {
	tags     string
	formData string
	scores   string
	comments string
}

func encodeProjectColumns(project *model.Project) (projectColumns, error) {
	var cols projectColumns
	var err error
	if cols.tags, err = encodeJSON(project.Tags, "tags"); err != nil {
		return cols, err
	}
	if cols.formData, err = encodeJSON(project.FormData, "form_data"); err != nil {
		return cols, err
	}
	if cols.scores, err = encodeJSON(project.EvaluationScores, "evaluation_scores"); err != nil {
		return cols, err
	}
	if cols.comments, err = encodeJSON(project.EvaluationComments, "evaluation_comments"); err != nil {
		return cols, err
	}
	return cols, nil
}

func scanProject(row scanner) (*model.Project, error) {
	var (
		project          model.Project
		status           string
		recommended      sql.NullString
		tags             sql.NullString
		formData         sql.NullString
		scores           sql.NullString
		comments         sql.NullString
		eligibilityNotes sql.NullString
		evaluationNotes  sql.NullString
		submissionDate   sql.NullTime
	)

	err := row.Scan(
		&project.ID,
		&project.ProgramID,
		&project.SubmitterID,
		&project.Title,
		&project.Description,
		&status,
		&recommended,
		&project.Budget,
		&tags,
		&formData,
		&scores,
		&comments,
		&project.TotalEvaluationScore,
		&project.ManuallySubmitted,
		&eligibilityNotes,
		&evaluationNotes,
		&submissionDate,
		&project.CreatedAt,
		&project.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan project: %w", err)
	}

	project.Status = model.ProjectStatus(status)
	project.RecommendedStatus = model.ProjectStatus(recommended.String)
	project.EligibilityNotes = eligibilityNotes.String
	project.EvaluationNotes = evaluationNotes.String
	project.SubmissionDate = submissionDate.Time
	if err := decodeJSON(tags.String, &project.Tags, "tags"); err != nil {
		return nil, err
	}
	if err := decodeJSON(formData.String, &project.FormData, "form_data"); err != nil {
		return nil, err
	}
	if err := decodeJSON(scores.String, &project.EvaluationScores, "evaluation_scores"); err != nil {
		return nil, err
	}
	if err := decodeJSON(comments.String, &project.EvaluationComments, "evaluation_comments"); err != nil {
		return nil, err
	}
	return &project, nil
}
