package dto

type UpsertChefProfileRequest struct {
	Headline        string   `json:"headline" validate:"max=150"`
	Bio             string   `json:"bio"`
	YearsExperience int      `json:"years_experience" validate:"min=0,max=60"`
	Cuisines        []string `json:"cuisines"`
	City            string   `json:"city"`
	ExpectedSalary  float64  `json:"expected_salary" validate:"min=0"`
	IsAvailable     *bool    `json:"is_available"`
}
