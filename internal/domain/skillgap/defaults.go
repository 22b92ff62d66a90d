package skillgap

const DefaultRole = "Data Scientist"

// DefaultSpec returns the built-in data-science catalog. Profile levels follow
// the dimension order below.
func DefaultSpec() CatalogSpec {
	return CatalogSpec{
		Dimensions: []DimensionSpec{
			{Name: "Python", Aliases: []string{"Python Programming"}},
			{Name: "Machine Learning", Aliases: []string{"ML"}},
			{Name: "SQL", Aliases: []string{"Database"}},
			{Name: "Statistics", Aliases: []string{"Probability"}},
			{Name: "Deep Learning", Aliases: []string{"Neural Networks"}},
			{Name: "Cloud Computing", Aliases: []string{"AWS", "Azure"}},
			{Name: "Communication", Aliases: []string{"Soft Skills"}},
		},
		Profiles: []ProfileSpec{
			{Name: "Data Scientist", Levels: []int{90, 85, 85, 90, 80, 70, 85}},
			{Name: "ML Engineer", Levels: []int{85, 90, 80, 85, 85, 75, 80}},
			{Name: "Data Analyst", Levels: []int{80, 75, 90, 80, 70, 65, 90}},
			{Name: "Research Scientist", Levels: []int{95, 80, 75, 85, 90, 85, 75}},
		},
		DefaultProfile: DefaultRole,
		Resources: []ResourceSpec{
			{Skill: "Python", Name: "Python for Data Science", URL: "https://coursera.org/python-data-science", Level: LevelBeginner},
			{Skill: "Python", Name: "Advanced Python Programming", URL: "https://udemy.com/advanced-python", Level: LevelAdvanced},
			{Skill: "Machine Learning", Name: "Machine Learning Specialization", URL: "https://coursera.org/ml-specialization", Level: LevelIntermediate},
			{Skill: "Machine Learning", Name: "Hands-On ML with Scikit-Learn", URL: "https://amazon.com/hands-on-ml", Level: LevelIntermediate},
			{Skill: "SQL", Name: "SQL for Data Analysis", URL: "https://datacamp.com/sql-data-analysis", Level: LevelBeginner},
			{Skill: "SQL", Name: "Advanced SQL Queries", URL: "https://udemy.com/advanced-sql", Level: LevelAdvanced},
		},
		GenericRecommendations: []string{
			"Practice mock interviews focusing on your weak areas",
			"Build an end-to-end portfolio project that combines your strongest skills",
			"Review your weakest topics with a faculty mentor every week",
		},
	}
}

// MustDefaultCatalog panics if the built-in spec stops validating.
func MustDefaultCatalog() *Catalog {
	c, err := NewCatalog(DefaultSpec())
	if err != nil {
		panic(err)
	}
	return c
}
