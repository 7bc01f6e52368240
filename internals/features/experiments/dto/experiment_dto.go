package dto

// Experiment create/patch come in as multipart forms so the scalar fields
// are parsed by hand in the controller; these structs only carry the parsed
// values through validation.

type CreateExperimentRequest struct {
	ClassID        uint     `validate:"required"`
	Title          string   `validate:"required,max=200"`
	Description    string   `validate:"omitempty"`
	EstimatedTime  int      `validate:"gte=0"`
	SafetyTags     []string `validate:"omitempty,dive,max=50"`
	MethodTags     []string `validate:"omitempty,dive,max=50"`
	SubmissionTags []string `validate:"omitempty,dive,max=50"`
	OtherTags      []string `validate:"omitempty,dive,max=50"`
}

type UpdateExperimentRequest struct {
	Title          *string  `validate:"omitempty,max=200"`
	Description    *string  `validate:"omitempty"`
	EstimatedTime  *int     `validate:"omitempty,gte=0"`
	SafetyTags     []string `validate:"omitempty,dive,max=50"`
	MethodTags     []string `validate:"omitempty,dive,max=50"`
	SubmissionTags []string `validate:"omitempty,dive,max=50"`
	OtherTags      []string `validate:"omitempty,dive,max=50"`
}
