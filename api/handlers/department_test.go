package handlers_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/carelinkhq/hospital-api/api/handlers"
	"github.com/carelinkhq/hospital-api/databases"
	"github.com/carelinkhq/hospital-api/databases/mocks"
	"github.com/carelinkhq/hospital-api/models"
)

func staffLinkReq(t *testing.T, method string, deptID primitive.ObjectID, body string) *http.Request {
	req, err := http.NewRequest(method, "/api/v1/department/"+deptID.Hex()+"/staff",
		bytes.NewBufferString(body))
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"department_id": deptID.Hex()})
	req.Header.Set("Authorization", "Bearer abc123")
	return req
}

func TestDepartment_DepartmentByIDHandlerBadHex(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/v1/department/1234", nil)
	if err != nil {
		t.Fatal(err)
	}

	req = mux.SetURLVars(req, map[string]string{"department_id": "1234"})
	req.Header.Set("Authorization", "Bearer abc123")

	u := handlers.Department{DB: &mocks.DepartmentDatabase{}}

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.DepartmentByIDHandler).ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusBadRequest {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusBadRequest)
	}

	expected := `{"response": "failed to get objectID from Hex, the provided hex string is not a valid ObjectID"}`
	if rr.Body.String() != expected {
		t.Errorf("handler returned unexpected body: \ngot: %v \nwant: %v", rr.Body.String(), expected)
	}
}

func TestDepartment_CreateDepartmentHandlerMissingName(t *testing.T) {
	req, err := http.NewRequest("POST", "/api/v1/department",
		bytes.NewBufferString(`{"description": "cardiac care"}`))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Authorization", "Bearer abc123")

	u := handlers.Department{DB: &mocks.DepartmentDatabase{}}

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.CreateDepartmentHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestDepartment_AddStaffHandler(t *testing.T) {
	deptID := primitive.NewObjectID()
	nurseID := primitive.NewObjectID()

	deptDB := &mocks.DepartmentDatabase{}
	nurseDB := &mocks.NurseDatabase{}

	deptDB.On("FindOne", mock.Anything, bson.M{"_id": deptID}).
		Return(&models.Department{ID: deptID}, nil)
	nurseDB.On("FindOne", mock.Anything, bson.M{"_id": nurseID}).
		Return(&models.Nurse{ID: nurseID}, nil)
	nurseDB.On("UpdateOne", mock.Anything, bson.M{"_id": nurseID}, mock.Anything).Return(nil)
	deptDB.On("UpdateOne", mock.Anything, bson.M{"_id": deptID}, mock.MatchedBy(func(update bson.M) bool {
		add, ok := update["$addToSet"].(bson.M)
		return ok && add["nurses"] == nurseID
	})).Return(nil)

	u := handlers.Department{
		DB:     deptDB,
		Linker: &databases.Linker{Departments: deptDB, Nurses: nurseDB},
	}

	body := `{"staffId": "` + nurseID.Hex() + `", "kind": "nurse"}`
	rr := httptest.NewRecorder()
	http.HandlerFunc(u.AddStaffHandler).ServeHTTP(rr, staffLinkReq(t, "POST", deptID, body))

	assert.Equal(t, http.StatusOK, rr.Code)
	deptDB.AssertExpectations(t)
	nurseDB.AssertExpectations(t)
}

func TestDepartment_AddStaffHandlerAlreadyAssigned(t *testing.T) {
	deptID := primitive.NewObjectID()
	doctorID := primitive.NewObjectID()

	deptDB := &mocks.DepartmentDatabase{}
	doctorDB := &mocks.DoctorDatabase{}

	deptDB.On("FindOne", mock.Anything, bson.M{"_id": deptID}).
		Return(&models.Department{ID: deptID, Doctors: []primitive.ObjectID{doctorID}}, nil)
	doctorDB.On("FindOne", mock.Anything, bson.M{"_id": doctorID}).
		Return(&models.Doctor{ID: doctorID}, nil)

	u := handlers.Department{
		DB:     deptDB,
		Linker: &databases.Linker{Departments: deptDB, Doctors: doctorDB},
	}

	body := `{"staffId": "` + doctorID.Hex() + `", "kind": "doctor"}`
	rr := httptest.NewRecorder()
	http.HandlerFunc(u.AddStaffHandler).ServeHTTP(rr, staffLinkReq(t, "POST", deptID, body))

	assert.Equal(t, http.StatusConflict, rr.Code)
	doctorDB.AssertNotCalled(t, "UpdateOne", mock.Anything, mock.Anything, mock.Anything)
}

func TestDepartment_AddStaffHandlerUnknownKind(t *testing.T) {
	deptID := primitive.NewObjectID()

	u := handlers.Department{DB: &mocks.DepartmentDatabase{}, Linker: &databases.Linker{}}

	body := `{"staffId": "` + primitive.NewObjectID().Hex() + `", "kind": "janitor"}`
	rr := httptest.NewRecorder()
	http.HandlerFunc(u.AddStaffHandler).ServeHTTP(rr, staffLinkReq(t, "POST", deptID, body))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestDepartment_RemoveStaffHandlerOnlyTouchesDepartment(t *testing.T) {
	deptID := primitive.NewObjectID()
	doctorID := primitive.NewObjectID()

	deptDB := &mocks.DepartmentDatabase{}
	doctorDB := &mocks.DoctorDatabase{}

	deptDB.On("FindOne", mock.Anything, bson.M{"_id": deptID}).
		Return(&models.Department{ID: deptID, Doctors: []primitive.ObjectID{doctorID}}, nil)
	deptDB.On("UpdateOne", mock.Anything, bson.M{"_id": deptID}, mock.MatchedBy(func(update bson.M) bool {
		pull, ok := update["$pull"].(bson.M)
		return ok && pull["doctors"] == doctorID
	})).Return(nil)

	u := handlers.Department{
		DB:     deptDB,
		Linker: &databases.Linker{Departments: deptDB, Doctors: doctorDB},
	}

	body := `{"staffId": "` + doctorID.Hex() + `", "kind": "doctor"}`
	rr := httptest.NewRecorder()
	http.HandlerFunc(u.RemoveStaffHandler).ServeHTTP(rr, staffLinkReq(t, "DELETE", deptID, body))

	assert.Equal(t, http.StatusOK, rr.Code)
	// the doctor keeps its department pointer on this path
	doctorDB.AssertNotCalled(t, "UpdateOne", mock.Anything, mock.Anything, mock.Anything)
	deptDB.AssertExpectations(t)
}

func TestDepartment_DeleteDepartmentHandlerSoftDeletes(t *testing.T) {
	deptID := primitive.NewObjectID()

	req, err := http.NewRequest("DELETE", "/api/v1/department/"+deptID.Hex(), nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"department_id": deptID.Hex()})
	req.Header.Set("Authorization", "Bearer abc123")

	deptDB := &mocks.DepartmentDatabase{}
	deptDB.On("FindOne", mock.Anything, bson.M{"_id": deptID}).
		Return(&models.Department{ID: deptID}, nil)
	deptDB.On("UpdateOne", mock.Anything, bson.M{"_id": deptID}, mock.MatchedBy(func(update bson.M) bool {
		set, ok := update["$set"].(bson.M)
		return ok && set["isDeleted"] == true && set["deletedAt"] != nil && set["isActive"] == false
	})).Return(nil)

	u := handlers.Department{DB: deptDB}

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.DeleteDepartmentHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	deptDB.AssertExpectations(t)
}
