package dto

// UpdateMeRequest carries the editable profile fields. The role and user id
// never change through this endpoint.
type UpdateMeRequest struct {
	UserRealName    *string `json:"user_real_name" validate:"omitempty,max=150"`
	UserDepartment  *string `json:"user_department" validate:"omitempty,max=50"`
	UserPhoneNumber *string `json:"user_phone_number" validate:"omitempty,max=20"`
}
