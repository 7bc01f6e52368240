package model

import (
	"time"
)

// UserModel mirrors the identity collaborator's user record. The 10-digit
// user_id is the externally stable primary key; role changes are an external
// administrative action and never happen through this service.
type UserModel struct {
	UserID             string    `gorm:"column:user_id;type:varchar(10);primaryKey" json:"user_id"`
	UserRole           string    `gorm:"column:user_role;type:varchar(20);not null" json:"user_role"`
	UserRealName       *string   `gorm:"column:user_real_name;type:varchar(150)" json:"user_real_name,omitempty"`
	UserDepartment     *string   `gorm:"column:user_department;type:varchar(50)" json:"user_department,omitempty"`
	UserPhoneNumber    *string   `gorm:"column:user_phone_number;type:varchar(20)" json:"user_phone_number,omitempty"`
	UserProfilePicture *string   `gorm:"column:user_profile_picture;type:text" json:"user_profile_picture,omitempty"`
	UserCreatedAt      time.Time `gorm:"column:user_created_at;not null;autoCreateTime" json:"user_created_at"`
	UserUpdatedAt      time.Time `gorm:"column:user_updated_at;not null;autoUpdateTime" json:"user_updated_at"`
}

func (UserModel) TableName() string { return "users" }
