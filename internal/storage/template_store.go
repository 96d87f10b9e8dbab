package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"daftar/internal/core"
	"daftar/internal/render"
)

func (r *SQLiteRepository) ListTemplates(ctx context.Context) ([]render.Template, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, type, name, html_body, css_text, is_default FROM templates`)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w: %w", core.ErrUpstream, err)
	}
	defer rows.Close()

	var templates []render.Template
	for rows.Next() {
		var t render.Template
		if err := rows.Scan(&t.ID, &t.Type, &t.Name, &t.HTMLBody, &t.CSSText, &t.IsDefault); err != nil {
			return nil, fmt.Errorf("scan template: %w: %w", core.ErrUpstream, err)
		}
		templates = append(templates, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate templates: %w: %w", core.ErrUpstream, err)
	}
	return templates, nil
}

func (r *SQLiteRepository) CreateTemplate(ctx context.Context, t render.Template) (string, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO templates (id, type, name, html_body, css_text, is_default)
		VALUES (?, ?, ?, ?, ?, ?)`,
		t.ID, t.Type, t.Name, t.HTMLBody, t.CSSText, t.IsDefault)
	if err != nil {
		return "", fmt.Errorf("create template: %w: %w", core.ErrUpstream, err)
	}
	return t.ID, nil
}

func (r *SQLiteRepository) ClearDefaultTemplates(ctx context.Context, templateType string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE templates SET is_default = 0 WHERE type = ?`, templateType)
	if err != nil {
		return fmt.Errorf("clear default templates: %w: %w", core.ErrUpstream, err)
	}
	return nil
}

func (r *SQLiteRepository) MarkTemplateDefault(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE templates SET is_default = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("mark template default: %w: %w", core.ErrUpstream, err)
	}
	return requireRow(res, id)
}
