package controller_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"labadmin_backend/internals/constants"
	labController "labadmin_backend/internals/features/labs/controller"
	labModel "labadmin_backend/internals/features/labs/model"
	"labadmin_backend/internals/testutil"
)

const (
	managerID = "3000000001"
	studentID = "1000000001"
)

func newLabApp(t *testing.T) (*gorm.DB, *fiber.App) {
	t.Helper()
	db := testutil.OpenTestDB(t)
	testutil.SeedUser(t, db, managerID, constants.RoleManager)
	testutil.SeedUser(t, db, studentID, constants.RoleStudent)

	app := testutil.NewTestApp(managerID, constants.RoleManager)
	ctl := labController.NewLabController(db)
	managerCtl := labController.NewLabManagerController(db)
	app.Post("/api/labs", ctl.Create)
	app.Get("/api/labs", ctl.List)
	app.Post("/api/labs/managers", managerCtl.Create)
	app.Delete("/api/labs/managers", managerCtl.Delete)
	return db, app
}

func doJSON(t *testing.T, app *fiber.App, method, target string, body interface{}) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, target, err)
	}
	return resp
}

func TestLabNameUnique(t *testing.T) {
	_, app := newLabApp(t)

	payload := map[string]interface{}{
		"lab_name":     "Chemistry Lab",
		"lab_location": "Building 1",
	}
	if resp := doJSON(t, app, http.MethodPost, "/api/labs", payload); resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: got %d", resp.StatusCode)
	}
	if resp := doJSON(t, app, http.MethodPost, "/api/labs", payload); resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate name: got %d, want 409", resp.StatusCode)
	}
}

func TestLabManagerRoleValidation(t *testing.T) {
	db, app := newLabApp(t)

	lab := labModel.LabModel{LabName: "Physics Lab", LabLocation: "Building 2"}
	if err := db.Create(&lab).Error; err != nil {
		t.Fatalf("seed lab: %v", err)
	}

	// a student cannot be added as a lab manager
	resp := doJSON(t, app, http.MethodPost, "/api/labs/managers", map[string]interface{}{
		"lab_id":     lab.LabID,
		"manager_id": studentID,
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("student as manager: got %d, want 400", resp.StatusCode)
	}

	ok := map[string]interface{}{"lab_id": lab.LabID, "manager_id": managerID}
	if resp := doJSON(t, app, http.MethodPost, "/api/labs/managers", ok); resp.StatusCode != http.StatusCreated {
		t.Fatalf("manager add: got %d", resp.StatusCode)
	}
	if resp := doJSON(t, app, http.MethodPost, "/api/labs/managers", ok); resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate pair: got %d, want 409", resp.StatusCode)
	}
}

func TestLabListFilters(t *testing.T) {
	db, app := newLabApp(t)

	for _, name := range []string{"Chemistry Lab", "Physics Lab", "Biology Lab"} {
		if err := db.Create(&labModel.LabModel{LabName: name, LabLocation: "Campus"}).Error; err != nil {
			t.Fatalf("seed %s: %v", name, err)
		}
	}

	resp := doJSON(t, app, http.MethodGet, "/api/labs?lab_name=physics", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("filtered list: got %d", resp.StatusCode)
	}
	var labs []labModel.LabModel
	if err := json.NewDecoder(resp.Body).Decode(&labs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(labs) != 1 || labs[0].LabName != "Physics Lab" {
		t.Fatalf("filtered labs = %v", labs)
	}
}
