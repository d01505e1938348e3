package models

// RawCategorization is the AI provider's answer as decoded from JSON. Providers drift:
// city may arrive as a list, salaries as strings, remote as "is_remote".
type RawCategorization struct {
	Language         string   `json:"language"`
	TechnicalSkills  []string `json:"technical_skills"`
	Requirements     []string `json:"requirements"`
	Benefits         []string `json:"benefits"`
	SalaryMin        any      `json:"salary_min"`
	SalaryMax        any      `json:"salary_max"`
	Seniority        string   `json:"seniority"`
	EmploymentType   string   `json:"employment_type"`
	Remote           *bool    `json:"remote"`
	IsRemote         *bool    `json:"is_remote"`
	FormattedAddress *string  `json:"formatted_address"`
	City             any      `json:"city"`
	Country          *string  `json:"country"`
}

// Categorization is the canonical form of RawCategorization.
type Categorization struct {
	Language         string
	Skills           []string
	Requirements     []string
	Benefits         []string
	SalaryMin        *int
	SalaryMax        *int
	Seniority        Seniority
	EmploymentType   string
	Remote           bool
	FormattedAddress string
	City             string
	Country          string
}

// GeoLocation is a geocoder hit.
type GeoLocation struct {
	Lat              float64
	Lng              float64
	FormattedAddress string
}
