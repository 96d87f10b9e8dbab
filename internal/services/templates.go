package services

import (
	"context"
	"fmt"

	"daftar/internal/core"
	"daftar/internal/render"
)

// TemplateService manages the one-default-per-type invariant over stored
// document templates.
type TemplateService struct {
	templates TemplateStore
}

func NewTemplateService(templates TemplateStore) *TemplateService {
	return &TemplateService{templates: templates}
}

// List returns every stored template.
func (s *TemplateService) List(ctx context.Context) ([]render.Template, error) {
	templates, err := s.templates.ListTemplates(ctx)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	return templates, nil
}

// SetDefault marks one template as its type's default, unsetting every
// sibling of the same type first so at most one default exists at a time.
func (s *TemplateService) SetDefault(ctx context.Context, templateType, id string) error {
	if templateType == "" || id == "" {
		return fmt.Errorf("%w: template type and id required", core.ErrValidation)
	}
	if err := s.templates.ClearDefaultTemplates(ctx, templateType); err != nil {
		return fmt.Errorf("clear defaults for %s: %w", templateType, err)
	}
	if err := s.templates.MarkTemplateDefault(ctx, id); err != nil {
		return fmt.Errorf("mark template %s default: %w", id, err)
	}
	return nil
}
