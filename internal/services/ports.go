// Package services orchestrates the ledger core over the data-access
// collaborator: report reads, lifecycle transitions, and export/print flows.
package services

import (
	"context"

	"daftar/internal/core"
	"daftar/internal/render"
)

// Ports for the data-access collaborator. The storage package implements all
// of them; tests substitute fakes.
type (
	ExpenseStore interface {
		ListExpenses(ctx context.Context) ([]core.RawExpense, error)
		SetExpenseDeleted(ctx context.Context, id string, deleted bool) error
		DeleteExpense(ctx context.Context, id string) error
	}

	EmployeeStore interface {
		ListEmployees(ctx context.Context) ([]core.RawEmployee, error)
		SetEmployeeDeleted(ctx context.Context, id string, deleted bool) error
		DeleteEmployee(ctx context.Context, id string) error
	}

	TemplateStore interface {
		ListTemplates(ctx context.Context) ([]render.Template, error)
		ClearDefaultTemplates(ctx context.Context, templateType string) error
		MarkTemplateDefault(ctx context.Context, id string) error
	}

	// SettingsReader resolves stored settings; missing keys return "".
	SettingsReader interface {
		GetSetting(ctx context.Context, key string) (string, error)
	}

	// Resetter wipes every entity table. Only the guarded reset path uses it.
	Resetter interface {
		PurgeAll(ctx context.Context) error
	}
)

// Setting keys the services consume.
const (
	SettingCompanyName = "company_name"
	SettingTagline     = "tagline"
	SettingLogoURL     = "logo_url"
	SettingDeletePIN   = "delete_pin"
)
