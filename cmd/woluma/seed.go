package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/khadim210/WolumaProject-sub000/internal/cli"
	"github.com/khadim210/WolumaProject-sub000/internal/model"
	"github.com/khadim210/WolumaProject-sub000/internal/service"
)

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Populate the database with a demo partner, program and projects",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			if err := seedDemoData(ctx, store); err != nil {
				return err
			}

			fmt.Println(cli.SuccessStyle.Render(cli.SuccessIcon + " Demo data created"))
			return nil
		},
	}
}

func seedDemoData(ctx context.Context, store service.Storage) error {
	partner := &model.Partner{
		ID:           newID(),
		Name:         "Sahel Development Fund",
		ContactEmail: "contact@sahelfund.example.org",
		Description:  "Regional fund backing rural innovation projects",
	}
	if err := store.CreatePartner(ctx, partner); err != nil {
		return fmt.Errorf("failed to seed partner: %w", err)
	}

	program := &model.Program{
		ID:        newID(),
		PartnerID: partner.ID,
		Name:      "Rural Innovation 2026",
		Budget:    5000000,
		Currency:  "XOF",
		IsActive:  true,
		EvaluationCriteria: []model.EvaluationCriterion{
			{ID: "impact", Name: "Impact", Description: "Expected social and economic impact", Weight: 40, MaxScore: 20},
			{ID: "feasibility", Name: "Feasibility", Description: "Technical and operational feasibility", Weight: 30, MaxScore: 10},
			{ID: "team", Name: "Team", Description: "Team experience and capacity", Weight: 30, MaxScore: 10},
		},
		SelectionCriteria: []model.FieldEligibilityCriterion{
			{
				FieldName:             "team_size",
				Label:                 "Minimum team size",
				Conditions:            model.Condition{Operator: model.OpGreaterEqual, Value: "2"},
				IsEligibilityCriteria: true,
			},
			{
				FieldName:             "registration",
				Label:                 "Legal registration document",
				Conditions:            model.Condition{Operator: model.OpRequired},
				IsEligibilityCriteria: true,
			},
		},
	}
	if err := store.CreateProgram(ctx, program); err != nil {
		return fmt.Errorf("failed to seed program: %w", err)
	}

	template := &model.FormTemplate{
		ID:        newID(),
		ProgramID: program.ID,
		Name:      "Rural Innovation application",
		Fields: []model.FormField{
			{Name: "team_size", Label: "Team size", Type: model.FieldNumber, Required: true},
			{Name: "registration", Label: "Registration document", Type: model.FieldFile, Required: true},
			{Name: "sector", Label: "Sector", Type: model.FieldSelect, Options: []string{"agriculture", "energy", "health"}},
			{Name: "summary", Label: "Project summary", Type: model.FieldTextarea, Required: true},
		},
	}
	if err := store.CreateFormTemplate(ctx, template); err != nil {
		return fmt.Errorf("failed to seed form template: %w", err)
	}

	users := []*model.User{
		{ID: newID(), Name: "Admin", Email: "admin@woluma.example.org", Role: model.RoleAdmin, IsActive: true},
		{ID: newID(), Name: "Mariam Keita", Email: "manager@woluma.example.org", Role: model.RoleManager, IsActive: true},
		{ID: newID(), Name: "Partner Liaison", Email: "partner@sahelfund.example.org", Role: model.RolePartner, PartnerID: partner.ID, IsActive: true},
		{ID: newID(), Name: "Ousmane Ba", Email: "submitter@woluma.example.org", Role: model.RoleSubmitter, IsActive: true},
	}
	for _, user := range users {
		if err := store.CreateUser(ctx, user); err != nil {
			return fmt.Errorf("failed to seed user %s: %w", user.Email, err)
		}
	}
	submitter := users[3]

	projects := []*model.Project{
		{
			ID:          newID(),
			ProgramID:   program.ID,
			SubmitterID: submitter.ID,
			Title:       "Solar irrigation cooperative",
			Description: "Deploy solar-powered irrigation for three villages",
			Status:      model.StatusDraft,
			Budget:      180000,
			Tags:        []string{"agriculture", "energy"},
			FormData: map[string]model.FieldValue{
				"team_size":    model.NumberValue(5),
				"registration": model.FileValue(model.FileReference{Name: "coop-registration.pdf", Path: "/uploads/coop-registration.pdf", Type: "application/pdf", Size: 48213}),
				"sector":       model.SelectValue("agriculture"),
				"summary":      model.TextareaValue("Shared solar pumps with a maintenance cooperative."),
			},
		},
		{
			ID:          newID(),
			ProgramID:   program.ID,
			SubmitterID: submitter.ID,
			Title:       "Mobile health clinic",
			Description: "Equip a mobile clinic serving remote districts",
			Status:      model.StatusDraft,
			Budget:      240000,
			Tags:        []string{"health"},
			FormData: map[string]model.FieldValue{
				"team_size": model.NumberValue(1),
				"sector":    model.SelectValue("health"),
				"summary":   model.TextareaValue("A van-based clinic with monthly rotations."),
			},
		},
	}
	for _, project := range projects {
		if err := store.CreateProject(ctx, project); err != nil {
			return fmt.Errorf("failed to seed project %s: %w", project.Title, err)
		}
	}

	return nil
}
