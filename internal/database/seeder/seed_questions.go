package seeder

import (
	"context"
	"fmt"

	"placement-pro/internal/database"
	"placement-pro/internal/domain/interview"
)

type QuestionBankSeeder struct {
	Topics []interview.Topic
}

func (QuestionBankSeeder) Name() string { return "interview_questions" }

func (s QuestionBankSeeder) Run(ctx context.Context, db database.DB) error {
	bank, err := interview.NewQuestionBank(s.Topics)
	if err != nil {
		return err
	}
	if err := EnsureTableColumns(ctx, db, "interview_questions", "topic_position", "position", "skill", "question"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for i, t := range bank.Topics() {
		for j, q := range t.Questions {
			if _, err := tx.Exec(ctx,
				`INSERT INTO interview_questions (topic_position, position, skill, question) VALUES ($1, $2, $3, $4) ON CONFLICT DO NOTHING`,
				i, j, t.Skill, q,
			); err != nil {
				return err
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
