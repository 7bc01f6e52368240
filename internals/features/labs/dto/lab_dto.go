package dto

import (
	"github.com/lib/pq"

	labModel "labadmin_backend/internals/features/labs/model"
)

// ===================== Requests =====================

type CreateLabRequest struct {
	LabName        string   `json:"lab_name" validate:"required,max=100"`
	LabLocation    string   `json:"lab_location" validate:"required,max=255"`
	LabSafetyNotes []string `json:"lab_safety_notes"`
	LabEquipment   []string `json:"lab_equipment"`
}

func (r *CreateLabRequest) ToModel() *labModel.LabModel {
	m := &labModel.LabModel{
		LabName:        r.LabName,
		LabLocation:    r.LabLocation,
		LabSafetyNotes: pq.StringArray(r.LabSafetyNotes),
		LabEquipment:   pq.StringArray(r.LabEquipment),
	}
	if m.LabSafetyNotes == nil {
		m.LabSafetyNotes = pq.StringArray{}
	}
	if m.LabEquipment == nil {
		m.LabEquipment = pq.StringArray{}
	}
	return m
}

type UpdateLabRequest struct {
	LabName        *string   `json:"lab_name" validate:"omitempty,max=100"`
	LabLocation    *string   `json:"lab_location" validate:"omitempty,max=255"`
	LabSafetyNotes *[]string `json:"lab_safety_notes"`
	LabEquipment   *[]string `json:"lab_equipment"`
}

type AddLabManagerRequest struct {
	ManagerID string `json:"manager_id" validate:"required,len=10,numeric"`
	LabID     uint   `json:"lab_id" validate:"required"`
}

// ===================== Responses =====================

type LabManagerDetail struct {
	ManageLabID uint    `json:"manage_lab_id"`
	ManagerID   string  `json:"manager_id"`
	RealName    *string `json:"real_name,omitempty"`
	Department  *string `json:"department,omitempty"`
	LabID       uint    `json:"lab_id"`
}
