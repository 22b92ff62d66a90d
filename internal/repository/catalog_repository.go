package repository

import (
	"context"
	"fmt"

	"placement-pro/internal/database"
	"placement-pro/internal/domain/interview"
	"placement-pro/internal/domain/skillgap"
)

// CatalogRepository reads the declarative catalog back from the catalog
// tables. Declared order is the position column.
type CatalogRepository interface {
	LoadCatalogSpec(ctx context.Context) (skillgap.CatalogSpec, error)
	LoadQuestionTopics(ctx context.Context) ([]interview.Topic, error)
}

type SQLCatalogRepository struct {
	db database.DB
}

func NewSQLCatalogRepository(db database.DB) *SQLCatalogRepository {
	return &SQLCatalogRepository{db: db}
}

func (r *SQLCatalogRepository) LoadCatalogSpec(ctx context.Context) (skillgap.CatalogSpec, error) {
	var spec skillgap.CatalogSpec

	dimIndex := map[int]int{}
	err := r.each(ctx, `SELECT position, name FROM skill_dimensions ORDER BY position ASC`, func(rows database.Rows) error {
		var pos int
		var d skillgap.DimensionSpec
		if err := rows.Scan(&pos, &d.Name); err != nil {
			return err
		}
		dimIndex[pos] = len(spec.Dimensions)
		spec.Dimensions = append(spec.Dimensions, d)
		return nil
	})
	if err != nil {
		return skillgap.CatalogSpec{}, fmt.Errorf("load dimensions: %w", err)
	}

	err = r.each(ctx, `SELECT dimension_position, alias FROM skill_aliases ORDER BY dimension_position ASC, position ASC`, func(rows database.Rows) error {
		var pos int
		var alias string
		if err := rows.Scan(&pos, &alias); err != nil {
			return err
		}
		idx, ok := dimIndex[pos]
		if !ok {
			return fmt.Errorf("alias %q references missing dimension %d", alias, pos)
		}
		spec.Dimensions[idx].Aliases = append(spec.Dimensions[idx].Aliases, alias)
		return nil
	})
	if err != nil {
		return skillgap.CatalogSpec{}, fmt.Errorf("load aliases: %w", err)
	}

	profIndex := map[int]int{}
	err = r.each(ctx, `SELECT position, name, is_default FROM role_profiles ORDER BY position ASC`, func(rows database.Rows) error {
		var pos int
		var name string
		var isDefault bool
		if err := rows.Scan(&pos, &name, &isDefault); err != nil {
			return err
		}
		if isDefault && spec.DefaultProfile == "" {
			spec.DefaultProfile = name
		}
		profIndex[pos] = len(spec.Profiles)
		spec.Profiles = append(spec.Profiles, skillgap.ProfileSpec{
			Name:   name,
			Levels: make([]int, len(spec.Dimensions)),
		})
		return nil
	})
	if err != nil {
		return skillgap.CatalogSpec{}, fmt.Errorf("load profiles: %w", err)
	}

	seen := make([]int, len(spec.Profiles))
	err = r.each(ctx, `SELECT profile_position, dimension_position, level FROM role_profile_levels ORDER BY profile_position ASC, dimension_position ASC`, func(rows database.Rows) error {
		var pPos, dPos, level int
		if err := rows.Scan(&pPos, &dPos, &level); err != nil {
			return err
		}
		pi, ok := profIndex[pPos]
		if !ok {
			return fmt.Errorf("level references missing profile %d", pPos)
		}
		di, ok := dimIndex[dPos]
		if !ok {
			return fmt.Errorf("level references missing dimension %d", dPos)
		}
		spec.Profiles[pi].Levels[di] = level
		seen[pi]++
		return nil
	})
	if err != nil {
		return skillgap.CatalogSpec{}, fmt.Errorf("load profile levels: %w", err)
	}
	for i, n := range seen {
		if n != len(spec.Dimensions) {
			return skillgap.CatalogSpec{}, fmt.Errorf("profile %q has %d levels, want %d", spec.Profiles[i].Name, n, len(spec.Dimensions))
		}
	}

	err = r.each(ctx, `SELECT skill, name, url, level FROM learning_resources ORDER BY position ASC`, func(rows database.Rows) error {
		var res skillgap.ResourceSpec
		if err := rows.Scan(&res.Skill, &res.Name, &res.URL, &res.Level); err != nil {
			return err
		}
		spec.Resources = append(spec.Resources, res)
		return nil
	})
	if err != nil {
		return skillgap.CatalogSpec{}, fmt.Errorf("load resources: %w", err)
	}

	err = r.each(ctx, `SELECT text FROM generic_recommendations ORDER BY position ASC`, func(rows database.Rows) error {
		var text string
		if err := rows.Scan(&text); err != nil {
			return err
		}
		spec.GenericRecommendations = append(spec.GenericRecommendations, text)
		return nil
	})
	if err != nil {
		return skillgap.CatalogSpec{}, fmt.Errorf("load generic recommendations: %w", err)
	}

	return spec, nil
}

func (r *SQLCatalogRepository) LoadQuestionTopics(ctx context.Context) ([]interview.Topic, error) {
	out := make([]interview.Topic, 0)
	last := -1
	err := r.each(ctx, `SELECT topic_position, skill, question FROM interview_questions ORDER BY topic_position ASC, position ASC`, func(rows database.Rows) error {
		var pos int
		var skill, q string
		if err := rows.Scan(&pos, &skill, &q); err != nil {
			return err
		}
		if pos != last || len(out) == 0 {
			out = append(out, interview.Topic{Skill: skill})
			last = pos
		}
		out[len(out)-1].Questions = append(out[len(out)-1].Questions, q)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load interview questions: %w", err)
	}
	return out, nil
}

func (r *SQLCatalogRepository) each(ctx context.Context, query string, fn func(database.Rows) error) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("nil db")
	}
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		if err := fn(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}
