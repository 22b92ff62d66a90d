package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"placement-pro/internal/app"
	"placement-pro/internal/config"
	"placement-pro/internal/domain/skillgap"
	"placement-pro/internal/infrastructure/catalog"
	"placement-pro/internal/repository"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score a student's skills against a role profile",
	Long:  "Reads a JSON or YAML skills document and prints the gap report as JSON.",
	RunE:  runAnalyze,
}

var (
	analyzeInput   string
	analyzeRole    string
	analyzeNearest bool
	analyzeLevel   string
	analyzeCatalog string
	analyzeOutput  string
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeInput, "input", "i", "", "Path to skills document, JSON or YAML (required)")
	analyzeCmd.Flags().StringVarP(&analyzeRole, "role", "r", "", "Target role; overrides the document")
	analyzeCmd.Flags().BoolVar(&analyzeNearest, "nearest", false, "Fall back to the nearest role profile")
	analyzeCmd.Flags().StringVar(&analyzeLevel, "level", "", "Student level: beginner, intermediate or advanced")
	analyzeCmd.Flags().StringVar(&analyzeCatalog, "catalog", "", "Catalog YAML file; defaults to the configured source")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "out", "o", "", "Write the report here instead of stdout")

	if err := analyzeCmd.MarkFlagRequired("input"); err != nil {
		panic(fmt.Sprintf("failed to mark input flag as required: %v", err))
	}

	rootCmd.AddCommand(analyzeCmd)
}

type skillsDocument struct {
	Skills []struct {
		SkillName   string `yaml:"skill_name"`
		Proficiency *int   `yaml:"proficiency"`
		Category    string `yaml:"category"`
	} `yaml:"skills"`
	TargetRole   string `yaml:"target_role"`
	MatchNearest bool   `yaml:"match_nearest"`
	StudentLevel string `yaml:"student_level"`
}

// parseSkillsDocument accepts JSON too since it decodes as YAML.
func parseSkillsDocument(raw []byte) (skillsDocument, error) {
	var doc skillsDocument
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return skillsDocument{}, fmt.Errorf("decode skills document: %w", err)
	}
	return doc, nil
}

// studentSkills rejects entries without a proficiency instead of scoring them as 0.
func (d skillsDocument) studentSkills() ([]skillgap.StudentSkill, error) {
	out := make([]skillgap.StudentSkill, 0, len(d.Skills))
	for i, s := range d.Skills {
		if s.Proficiency == nil {
			return nil, &skillgap.ValidationError{Field: fmt.Sprintf("skills[%d].proficiency", i), Reason: "is required"}
		}
		out = append(out, skillgap.StudentSkill{SkillName: s.SkillName, Proficiency: *s.Proficiency, Category: s.Category})
	}
	return out, nil
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	raw, err := os.ReadFile(analyzeInput)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	doc, err := parseSkillsDocument(raw)
	if err != nil {
		return err
	}

	cfg, err := config.LoadTooling()
	if err != nil {
		return err
	}

	role := doc.TargetRole
	if cmd.Flags().Changed("role") {
		role = analyzeRole
	}
	level := doc.StudentLevel
	if cmd.Flags().Changed("level") {
		level = analyzeLevel
	}

	skills, err := doc.studentSkills()
	if err != nil {
		return err
	}
	req, err := skillgap.NewRequest(skills, role, doc.MatchNearest || analyzeNearest, level)
	if err != nil {
		return err
	}

	snap, closeFn, err := loadSnapshot(cmd.Context(), cfg, analyzeCatalog)
	if err != nil {
		return err
	}
	defer closeFn()

	scorer, err := skillgap.NewScorer(snap.Catalog, cfg.Scorer.Options())
	if err != nil {
		return err
	}
	report, err := scorer.Analyze(req)
	if err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if analyzeOutput != "" {
		f, err := os.Create(analyzeOutput)
		if err != nil {
			return fmt.Errorf("failed to create output: %w", err)
		}
		defer f.Close()
		w = f
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// loadSnapshot reads the catalog from file when given, otherwise from the
// configured source.
func loadSnapshot(ctx context.Context, cfg config.Config, file string) (catalog.Snapshot, func(), error) {
	noop := func() {}
	logger := log.New(io.Discard, "", 0)

	if file != "" {
		loader, err := catalog.NewLoader(catalog.Config{Source: catalog.SourceFile, File: file, Logger: logger})
		if err != nil {
			return catalog.Snapshot{}, noop, err
		}
		snap, err := loader.Load(ctx)
		return snap, noop, err
	}

	db, err := app.OpenDatabase(ctx, cfg)
	if err != nil {
		return catalog.Snapshot{}, noop, err
	}
	closeFn := noop
	loaderCfg := catalog.Config{Source: cfg.Catalog.Source, File: cfg.Catalog.File, Logger: logger}
	if db != nil {
		loaderCfg.Repo = repository.NewSQLCatalogRepository(db)
		closeFn = func() { _ = db.Close() }
	}

	loader, err := catalog.NewLoader(loaderCfg)
	if err != nil {
		closeFn()
		return catalog.Snapshot{}, noop, err
	}
	snap, err := loader.Load(ctx)
	if err != nil {
		closeFn()
		return catalog.Snapshot{}, noop, err
	}
	return snap, closeFn, nil
}
