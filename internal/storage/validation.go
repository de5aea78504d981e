package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/khadim210/WolumaProject-sub000/internal/model"
)

// Validation errors.
var (
	ErrNilContext     = errors.New("context cannot be nil")
	ErrEmptyString    = errors.New("string parameter cannot be empty")
	ErrNilParameter   = errors.New("parameter cannot be nil")
	ErrInvalidUser    = errors.New("invalid user")
	ErrInvalidPartner = errors.New("invalid partner")
	ErrInvalidProgram = errors.New("invalid program")
	ErrInvalidProject = errors.New("invalid project")
	ErrInvalidForm    = errors.New("invalid form template")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateUser validates a user record.
func validateUser(user *model.User) error {
	if user == nil {
		return fmt.Errorf("%w: user", ErrNilParameter)
	}
	if user.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidUser)
	}
	if strings.TrimSpace(user.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidUser)
	}
	if strings.TrimSpace(user.Email) == "" {
		return fmt.Errorf("%w: missing email", ErrInvalidUser)
	}
	if !user.Role.Valid() {
		return fmt.Errorf("%w: unknown role %q", ErrInvalidUser, user.Role)
	}
	return nil
}

// validatePartner validates a partner record.
func validatePartner(partner *model.Partner) error {
	if partner == nil {
		return fmt.Errorf("%w: partner", ErrNilParameter)
	}
	if partner.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidPartner)
	}
	if strings.TrimSpace(partner.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidPartner)
	}
	return nil
}

// validateProgram validates a program record, including its criteria.
func validateProgram(program *model.Program) error {
	if program == nil {
		return fmt.Errorf("%w: program", ErrNilParameter)
	}
	if program.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidProgram)
	}
	if strings.TrimSpace(program.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidProgram)
	}
	if program.PartnerID == "" {
		return fmt.Errorf("%w: missing partner ID", ErrInvalidProgram)
	}
	// Criteria are checked at save time so a bad program never reaches
	// eligibility screening or evaluation.
	if err := program.ValidateCriteria(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidProgram, err)
	}
	return nil
}

// validateProject validates a project record.
func validateProject(project *model.Project) error {
	if project == nil {
		return fmt.Errorf("%w: project", ErrNilParameter)
	}
	if project.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidProject)
	}
	if strings.TrimSpace(project.Title) == "" {
		return fmt.Errorf("%w: missing title", ErrInvalidProject)
	}
	if project.ProgramID == "" {
		return fmt.Errorf("%w: missing program ID", ErrInvalidProject)
	}
	if project.SubmitterID == "" {
		return fmt.Errorf("%w: missing submitter ID", ErrInvalidProject)
	}
	if !project.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidProject, project.Status)
	}
	if project.RecommendedStatus != "" && !project.RecommendedStatus.Valid() {
		return fmt.Errorf("%w: unknown recommended status %q", ErrInvalidProject, project.RecommendedStatus)
	}
	return nil
}

// validateFormTemplate validates a form template record.
func validateFormTemplate(template *model.FormTemplate) error {
	if template == nil {
		return fmt.Errorf("%w: template", ErrNilParameter)
	}
	if template.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidForm)
	}
	if template.ProgramID == "" {
		return fmt.Errorf("%w: missing program ID", ErrInvalidForm)
	}
	for i, field := range template.Fields {
		if strings.TrimSpace(field.Name) == "" {
			return fmt.Errorf("%w: field %d has no name", ErrInvalidForm, i)
		}
		if !field.Type.Valid() {
			return fmt.Errorf("%w: field %q has unknown type %q", ErrInvalidForm, field.Name, field.Type)
		}
	}
	return nil
}
