package seeder

import (
	"placement-pro/internal/domain/interview"
	"placement-pro/internal/domain/skillgap"
)

func Defaults() []Seeder {
	return []Seeder{
		CatalogSeeder{Spec: skillgap.DefaultSpec()},
		QuestionBankSeeder{Topics: interview.DefaultTopics()},
	}
}
