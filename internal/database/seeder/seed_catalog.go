package seeder

import (
	"context"
	"fmt"
	"strings"

	"placement-pro/internal/database"
	"placement-pro/internal/domain/skillgap"
)

// CatalogSeeder writes a catalog spec into the catalog tables. Rows that
// already exist are left alone, so re-running is safe.
type CatalogSeeder struct {
	Spec skillgap.CatalogSpec
}

func (CatalogSeeder) Name() string { return "skill_catalog" }

func (s CatalogSeeder) Run(ctx context.Context, db database.DB) error {
	// a spec that would not load must not reach the tables
	if _, err := skillgap.NewCatalog(s.Spec); err != nil {
		return err
	}

	checks := []struct {
		table   string
		columns []string
	}{
		{"skill_dimensions", []string{"position", "name"}},
		{"skill_aliases", []string{"dimension_position", "position", "alias"}},
		{"role_profiles", []string{"position", "name", "is_default"}},
		{"role_profile_levels", []string{"profile_position", "dimension_position", "level"}},
		{"learning_resources", []string{"position", "skill", "name", "url", "level"}},
		{"generic_recommendations", []string{"position", "text"}},
	}
	for _, c := range checks {
		if err := EnsureTableColumns(ctx, db, c.table, c.columns...); err != nil {
			return err
		}
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	defaultName := strings.TrimSpace(s.Spec.DefaultProfile)
	if defaultName == "" {
		defaultName = s.Spec.Profiles[0].Name
	}

	for i, d := range s.Spec.Dimensions {
		if _, err := tx.Exec(ctx,
			`INSERT INTO skill_dimensions (position, name) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			i, strings.TrimSpace(d.Name),
		); err != nil {
			return err
		}
		for j, a := range d.Aliases {
			if _, err := tx.Exec(ctx,
				`INSERT INTO skill_aliases (dimension_position, position, alias) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`,
				i, j, strings.TrimSpace(a),
			); err != nil {
				return err
			}
		}
	}

	for i, p := range s.Spec.Profiles {
		isDefault := skillgap.NormalizeName(p.Name) == skillgap.NormalizeName(defaultName)
		if _, err := tx.Exec(ctx,
			`INSERT INTO role_profiles (position, name, is_default) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`,
			i, strings.TrimSpace(p.Name), isDefault,
		); err != nil {
			return err
		}
		for j, lvl := range p.Levels {
			if _, err := tx.Exec(ctx,
				`INSERT INTO role_profile_levels (profile_position, dimension_position, level) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`,
				i, j, lvl,
			); err != nil {
				return err
			}
		}
	}

	for i, r := range s.Spec.Resources {
		level, _ := skillgap.NormalizeLevel(r.Level)
		if _, err := tx.Exec(ctx,
			`INSERT INTO learning_resources (position, skill, name, url, level) VALUES ($1, $2, $3, $4, $5) ON CONFLICT DO NOTHING`,
			i, strings.TrimSpace(r.Skill), strings.TrimSpace(r.Name), strings.TrimSpace(r.URL), level,
		); err != nil {
			return err
		}
	}

	for i, g := range s.Spec.GenericRecommendations {
		if _, err := tx.Exec(ctx,
			`INSERT INTO generic_recommendations (position, text) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			i, strings.TrimSpace(g),
		); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
