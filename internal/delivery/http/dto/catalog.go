package dto

type DimensionResponse struct {
	Index   int      `json:"index"`
	Name    string   `json:"name"`
	Aliases []string `json:"aliases"`
}

type RoleLevelResponse struct {
	Skill string `json:"skill"`
	Level int    `json:"level"`
}

type RoleResponse struct {
	Name    string              `json:"name"`
	Default bool                `json:"default"`
	Levels  []RoleLevelResponse `json:"levels"`
}

type HealthResponse struct {
	Status      string `json:"status"`
	Source      string `json:"catalog_source"`
	Fingerprint string `json:"catalog_fingerprint"`
	Dimensions  int    `json:"dimensions"`
	Profiles    int    `json:"profiles"`
}
