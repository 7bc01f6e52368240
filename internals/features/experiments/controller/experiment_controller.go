// internals/features/experiments/controller/experiment_controller.go
package controller

import (
	"errors"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	expDTO "labadmin_backend/internals/features/experiments/dto"
	expModel "labadmin_backend/internals/features/experiments/model"
	helper "labadmin_backend/internals/helpers"
	"labadmin_backend/internals/helpers/blob"
)

// ExperimentController persists experiments together with their image and
// file attachments. The create path writes the row and every attachment in
// one transaction so a half-uploaded experiment is never visible.
type ExperimentController struct {
	DB    *gorm.DB
	Blobs blob.Service
}

func NewExperimentController(db *gorm.DB, blobs blob.Service) *ExperimentController {
	return &ExperimentController{DB: db, Blobs: blobs}
}

var validateExperiment = validator.New()

const (
	experimentImageDir = "experiments/images"
	experimentFileDir  = "experiments/files"
)

// ===================== CREATE =====================
// POST /api/experiments (multipart)
// Scalar fields arrive as form values, tags as repeated values, attachments
// under the "images" and "files" keys.
func (h *ExperimentController) Create(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Expected multipart form data")
	}

	classID, err := strconv.ParseUint(strings.TrimSpace(c.FormValue("experiment_class_id")), 10, 64)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "experiment_class_id must be an integer")
	}
	estimated := 0
	if raw := strings.TrimSpace(c.FormValue("experiment_estimated_time")); raw != "" {
		estimated, err = strconv.Atoi(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "experiment_estimated_time must be an integer")
		}
	}

	req := expDTO.CreateExperimentRequest{
		ClassID:        uint(classID),
		Title:          strings.TrimSpace(c.FormValue("experiment_title")),
		Description:    c.FormValue("experiment_description"),
		EstimatedTime:  estimated,
		SafetyTags:     formTags(form, "experiment_safety_tags"),
		MethodTags:     formTags(form, "experiment_method_tags"),
		SubmissionTags: formTags(form, "experiment_submission_tags"),
		OtherTags:      formTags(form, "experiment_other_tags"),
	}
	if err := validateExperiment.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var classCount int64
	if err := h.DB.Table("classes").Where("class_id = ?", req.ClassID).Count(&classCount).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to validate class")
	}
	if classCount == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Class not found")
	}

	images := form.File["images"]
	files := form.File["files"]

	m := &expModel.ExperimentModel{
		ExperimentClassID:        req.ClassID,
		ExperimentTitle:          req.Title,
		ExperimentDescription:    req.Description,
		ExperimentEstimatedTime:  req.EstimatedTime,
		ExperimentSafetyTags:     datatypes.NewJSONSlice(req.SafetyTags),
		ExperimentMethodTags:     datatypes.NewJSONSlice(req.MethodTags),
		ExperimentSubmissionTags: datatypes.NewJSONSlice(req.SubmissionTags),
		ExperimentOtherTags:      datatypes.NewJSONSlice(req.OtherTags),
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		if err := h.attachImages(c, tx, m.ExperimentID, images); err != nil {
			return err
		}
		return h.attachFiles(c, tx, m.ExperimentID, files)
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create experiment")
	}

	return helper.JsonCreated(c, "Experiment created successfully.", h.detail(m.ExperimentID))
}

// ===================== LIST =====================
// GET /api/experiments?experiment_id=&class_id=
func (h *ExperimentController) List(c *fiber.Ctx) error {
	tx := h.DB.Model(&expModel.ExperimentModel{})

	if raw := strings.TrimSpace(c.Query("experiment_id")); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "experiment_id must be an integer")
		}
		tx = tx.Where("experiment_id = ?", id)
	}
	if raw := strings.TrimSpace(c.Query("class_id")); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "class_id must be an integer")
		}
		tx = tx.Where("experiment_class_id = ?", id)
	}

	var experiments []expModel.ExperimentModel
	if err := tx.Order("experiment_id ASC").Find(&experiments).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch experiments")
	}

	// batch-load attachments for the whole page
	ids := make([]uint, 0, len(experiments))
	for _, e := range experiments {
		ids = append(ids, e.ExperimentID)
	}
	imagesByExp := map[uint][]expModel.ExperimentImageModel{}
	filesByExp := map[uint][]expModel.ExperimentFileModel{}
	if len(ids) > 0 {
		var images []expModel.ExperimentImageModel
		if err := h.DB.Where("experiment_image_experiment_id IN ?", ids).
			Order("experiment_image_id ASC").Find(&images).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch experiment images")
		}
		for _, img := range images {
			imagesByExp[img.ExperimentImageExperimentID] = append(imagesByExp[img.ExperimentImageExperimentID], img)
		}
		var attached []expModel.ExperimentFileModel
		if err := h.DB.Where("experiment_file_experiment_id IN ?", ids).
			Order("experiment_file_id ASC").Find(&attached).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch experiment files")
		}
		for _, f := range attached {
			filesByExp[f.ExperimentFileExperimentID] = append(filesByExp[f.ExperimentFileExperimentID], f)
		}
	}

	out := make([]fiber.Map, 0, len(experiments))
	for _, e := range experiments {
		imgs := imagesByExp[e.ExperimentID]
		if imgs == nil {
			imgs = []expModel.ExperimentImageModel{}
		}
		fls := filesByExp[e.ExperimentID]
		if fls == nil {
			fls = []expModel.ExperimentFileModel{}
		}
		out = append(out, fiber.Map{
			"experiment": e,
			"images":     imgs,
			"files":      fls,
		})
	}
	return helper.JsonList(c, out)
}

// ===================== UPDATE =====================
// PATCH /api/experiments/:id (multipart)
// Scalar fields replace, tag lists replace when present; attachments only
// accumulate. There is no removal path for an uploaded attachment.
func (h *ExperimentController) Update(c *fiber.Ctx) error {
	experimentID, err := strconv.ParseUint(strings.TrimSpace(c.Params("id")), 10, 64)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid experiment id")
	}

	var existing expModel.ExperimentModel
	if err := h.DB.Where("experiment_id = ?", experimentID).First(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Experiment not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch experiment")
	}

	form, err := c.MultipartForm()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Expected multipart form data")
	}

	req := expDTO.UpdateExperimentRequest{
		SafetyTags:     formTags(form, "experiment_safety_tags"),
		MethodTags:     formTags(form, "experiment_method_tags"),
		SubmissionTags: formTags(form, "experiment_submission_tags"),
		OtherTags:      formTags(form, "experiment_other_tags"),
	}
	if vals, ok := form.Value["experiment_title"]; ok && len(vals) > 0 {
		title := strings.TrimSpace(vals[0])
		req.Title = &title
	}
	if vals, ok := form.Value["experiment_description"]; ok && len(vals) > 0 {
		req.Description = &vals[0]
	}
	if vals, ok := form.Value["experiment_estimated_time"]; ok && len(vals) > 0 {
		est, err := strconv.Atoi(strings.TrimSpace(vals[0]))
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "experiment_estimated_time must be an integer")
		}
		req.EstimatedTime = &est
	}
	if err := validateExperiment.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["experiment_title"] = *req.Title
	}
	if req.Description != nil {
		updates["experiment_description"] = *req.Description
	}
	if req.EstimatedTime != nil {
		updates["experiment_estimated_time"] = *req.EstimatedTime
	}
	if _, ok := form.Value["experiment_safety_tags"]; ok {
		updates["experiment_safety_tags"] = datatypes.NewJSONSlice(req.SafetyTags)
	}
	if _, ok := form.Value["experiment_method_tags"]; ok {
		updates["experiment_method_tags"] = datatypes.NewJSONSlice(req.MethodTags)
	}
	if _, ok := form.Value["experiment_submission_tags"]; ok {
		updates["experiment_submission_tags"] = datatypes.NewJSONSlice(req.SubmissionTags)
	}
	if _, ok := form.Value["experiment_other_tags"]; ok {
		updates["experiment_other_tags"] = datatypes.NewJSONSlice(req.OtherTags)
	}

	images := form.File["images"]
	files := form.File["files"]

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&expModel.ExperimentModel{}).
				Where("experiment_id = ?", existing.ExperimentID).
				Updates(updates).Error; err != nil {
				return err
			}
		}
		if err := h.attachImages(c, tx, existing.ExperimentID, images); err != nil {
			return err
		}
		return h.attachFiles(c, tx, existing.ExperimentID, files)
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update experiment")
	}

	return helper.JsonUpdated(c, "Experiment updated successfully.", h.detail(existing.ExperimentID))
}

// ===================== DELETE =====================
// DELETE /api/experiments/:id
func (h *ExperimentController) Delete(c *fiber.Ctx) error {
	experimentID, err := strconv.ParseUint(strings.TrimSpace(c.Params("id")), 10, 64)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid experiment id")
	}

	var existing expModel.ExperimentModel
	if err := h.DB.Where("experiment_id = ?", experimentID).First(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Experiment not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch experiment")
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("experiment_image_experiment_id = ?", existing.ExperimentID).
			Delete(&expModel.ExperimentImageModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("experiment_file_experiment_id = ?", existing.ExperimentID).
			Delete(&expModel.ExperimentFileModel{}).Error; err != nil {
			return err
		}
		return tx.Where("experiment_id = ?", existing.ExperimentID).Delete(&expModel.ExperimentModel{}).Error
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete experiment")
	}

	return helper.JsonDeleted(c, "Experiment deleted successfully.", fiber.Map{
		"experiment_id": existing.ExperimentID,
	})
}

// ===================== Utils =====================

func (h *ExperimentController) attachImages(c *fiber.Ctx, tx *gorm.DB, experimentID uint, images []*multipart.FileHeader) error {
	for _, fh := range images {
		ref, err := h.Blobs.UploadImage(c.Context(), experimentImageDir, fh)
		if err != nil {
			return err
		}
		row := expModel.ExperimentImageModel{
			ExperimentImageExperimentID: experimentID,
			ExperimentImageRef:          ref,
			ExperimentImageOriginalName: fh.Filename,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

func (h *ExperimentController) attachFiles(c *fiber.Ctx, tx *gorm.DB, experimentID uint, files []*multipart.FileHeader) error {
	for _, fh := range files {
		ref, err := h.Blobs.UploadFile(c.Context(), experimentFileDir, fh)
		if err != nil {
			return err
		}
		row := expModel.ExperimentFileModel{
			ExperimentFileExperimentID: experimentID,
			ExperimentFileRef:          ref,
			ExperimentFileOriginalName: fh.Filename,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

// detail reloads one experiment with its attachments for response payloads.
func (h *ExperimentController) detail(experimentID uint) fiber.Map {
	var e expModel.ExperimentModel
	if err := h.DB.Where("experiment_id = ?", experimentID).First(&e).Error; err != nil {
		return fiber.Map{"experiment_id": experimentID}
	}
	images := []expModel.ExperimentImageModel{}
	h.DB.Where("experiment_image_experiment_id = ?", experimentID).
		Order("experiment_image_id ASC").Find(&images)
	files := []expModel.ExperimentFileModel{}
	h.DB.Where("experiment_file_experiment_id = ?", experimentID).
		Order("experiment_file_id ASC").Find(&files)
	return fiber.Map{
		"experiment": e,
		"images":     images,
		"files":      files,
	}
}

// formTags reads a repeated multipart value, dropping blank entries.
func formTags(form *multipart.Form, key string) []string {
	vals := form.Value[key]
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
