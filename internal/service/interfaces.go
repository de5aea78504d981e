// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/khadim210/WolumaProject-sub000/internal/model"
)

// ProjectFilter defines filtering options for project queries.
type ProjectFilter struct {
	Status      *model.ProjectStatus
	ProgramID   string
	SubmitterID string
	Limit       int
	Offset      int
}

// Storage defines the contract for our persistence layer. The core only ever
// sees plain record types keyed by id; query syntax stays behind this
// boundary.
type Storage interface {
	// User operations
	CreateUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	UpdateUser(ctx context.Context, user *model.User) error
	DeleteUser(ctx context.Context, id string) error

	// Partner operations
	CreatePartner(ctx context.Context, partner *model.Partner) error
	GetPartner(ctx context.Context, id string) (*model.Partner, error)
	ListPartners(ctx context.Context) ([]model.Partner, error)
	UpdatePartner(ctx context.Context, partner *model.Partner) error
	DeletePartner(ctx context.Context, id string) error

	// Program operations
	CreateProgram(ctx context.Context, program *model.Program) error
	GetProgram(ctx context.Context, id string) (*model.Program, error)
	ListPrograms(ctx context.Context, partnerID string) ([]model.Program, error)
	UpdateProgram(ctx context.Context, program *model.Program) error
	DeleteProgram(ctx context.Context, id string) error

	// Project operations
	CreateProject(ctx context.Context, project *model.Project) error
	GetProject(ctx context.Context, id string) (*model.Project, error)
	ListProjects(ctx context.Context, filter ProjectFilter) ([]model.Project, error)
	UpdateProject(ctx context.Context, project *model.Project) error
	DeleteProject(ctx context.Context, id string) error

	// Form template operations
	CreateFormTemplate(ctx context.Context, template *model.FormTemplate) error
	GetFormTemplate(ctx context.Context, id string) (*model.FormTemplate, error)
	GetFormTemplateByProgram(ctx context.Context, programID string) (*model.FormTemplate, error)
	UpdateFormTemplate(ctx context.Context, template *model.FormTemplate) error
	DeleteFormTemplate(ctx context.Context, id string) error

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// BulkProgress reports where a bulk evaluation run currently is.
type BulkProgress struct {
	CurrentProject string
	Current        int
	Total          int
}

// FailedEvaluation records one project that could not be evaluated during a
// bulk run.
type FailedEvaluation struct {
	Err       error
	ProjectID string
	Title     string
}

// BulkResult summarizes a completed bulk evaluation run. A partially
// evaluated batch is a normal outcome, not an error.
type BulkResult struct {
	Failed    []FailedEvaluation
	Evaluated int
	Duration  time.Duration
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
