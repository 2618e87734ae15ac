package handlers_test

import (
	"encoding/json"
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

func TestDoctor_DoctorByIDHandlerBadHex(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/v1/doctor/1234", nil)
	if err != nil {
		t.Fatal(err)
	}

	req = mux.SetURLVars(req, map[string]string{"doctor_id": "1234"})
	req.Header.Set("Authorization", "Bearer abc123")

	u := handlers.Doctor{
		DB: &mocks.DoctorDatabase{},
	}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(u.DoctorByIDHandler)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusBadRequest {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusBadRequest)
	}

	expected := `{"response": "failed to get objectID from Hex, the provided hex string is not a valid ObjectID"}`
	if rr.Body.String() != expected {
		t.Errorf("handler returned unexpected body: \ngot: %v \nwant: %v", rr.Body.String(), expected)
	}
}

func TestDoctor_DoctorByIDHandler(t *testing.T) {
	dID := primitive.NewObjectID()
	req, err := http.NewRequest("GET", "/api/v1/doctor/"+dID.Hex(), nil)
	if err != nil {
		t.Fatal(err)
	}

	req = mux.SetURLVars(req, map[string]string{"doctor_id": dID.Hex()})
	req.Header.Set("Authorization", "Bearer abc123")

	doctorDB := &mocks.DoctorDatabase{}
	doctorDB.On("FindOne", mock.Anything, bson.M{"_id": dID}).
		Return(&models.Doctor{ID: dID, Name: "Dr. Priya Raman", Specialization: "Cardiology"}, nil)

	u := handlers.Doctor{DB: doctorDB}

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.DoctorByIDHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Dr. Priya Raman")
}

func TestDoctor_DoctorsHandler(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/v1/doctors?page=0&limit=10", nil)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Authorization", "Bearer abc123")

	doctorDB := &mocks.DoctorDatabase{}
	doctorDB.On("List", mock.Anything, mock.Anything).Return(
		[]models.Doctor{{ID: primitive.NewObjectID(), Name: "Dr. Chen"}},
		models.Pagination{Total: 1, Page: 0, Limit: 10, TotalPages: 1},
		nil,
	)

	u := handlers.Doctor{DB: doctorDB}

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.DoctorsHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp models.DoctorListResponse
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Len(t, resp.Doctors, 1)
	assert.Equal(t, int64(1), resp.Pagination.TotalPages)
}

func TestDoctor_SlotsHandler(t *testing.T) {
	dID := primitive.NewObjectID()
	// 2026-09-07 is a Monday
	req, err := http.NewRequest("GET", "/api/v1/doctor/"+dID.Hex()+"/slots?date=2026-09-07", nil)
	if err != nil {
		t.Fatal(err)
	}

	req = mux.SetURLVars(req, map[string]string{"doctor_id": dID.Hex()})
	req.Header.Set("Authorization", "Bearer abc123")

	doctorDB := &mocks.DoctorDatabase{}
	doctorDB.On("FindOne", mock.Anything, bson.M{"_id": dID}).Return(&models.Doctor{
		ID: dID,
		AvailableSlots: []models.AvailableSlot{
			{Day: "Monday", Time: "10AM-12PM"},
		},
	}, nil)

	u := handlers.Doctor{DB: doctorDB}

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.SlotsHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp models.SlotsResponse
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "2026-09-07", resp.Date)
	assert.Equal(t, []string{"10:00", "10:30", "11:00", "11:30"}, resp.Slots)
}

func TestDoctor_SlotsHandlerNoAvailabilityForDay(t *testing.T) {
	dID := primitive.NewObjectID()
	// 2026-09-08 is a Tuesday; the doctor only works Mondays
	req, err := http.NewRequest("GET", "/api/v1/doctor/"+dID.Hex()+"/slots?date=2026-09-08", nil)
	if err != nil {
		t.Fatal(err)
	}

	req = mux.SetURLVars(req, map[string]string{"doctor_id": dID.Hex()})
	req.Header.Set("Authorization", "Bearer abc123")

	doctorDB := &mocks.DoctorDatabase{}
	doctorDB.On("FindOne", mock.Anything, bson.M{"_id": dID}).Return(&models.Doctor{
		ID: dID,
		AvailableSlots: []models.AvailableSlot{
			{Day: "Monday", Time: "10AM-12PM"},
		},
	}, nil)

	u := handlers.Doctor{DB: doctorDB}

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.SlotsHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp models.SlotsResponse
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, []string{}, resp.Slots)
}

func TestDoctor_SlotsHandlerMissingDate(t *testing.T) {
	dID := primitive.NewObjectID()
	req, err := http.NewRequest("GET", "/api/v1/doctor/"+dID.Hex()+"/slots", nil)
	if err != nil {
		t.Fatal(err)
	}

	req = mux.SetURLVars(req, map[string]string{"doctor_id": dID.Hex()})
	req.Header.Set("Authorization", "Bearer abc123")

	u := handlers.Doctor{DB: &mocks.DoctorDatabase{}}

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.SlotsHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestDoctor_DeleteDoctorHandlerPullsDepartmentReference(t *testing.T) {
	dID := primitive.NewObjectID()
	deptID := primitive.NewObjectID()

	req, err := http.NewRequest("DELETE", "/api/v1/doctor/"+dID.Hex(), nil)
	if err != nil {
		t.Fatal(err)
	}

	req = mux.SetURLVars(req, map[string]string{"doctor_id": dID.Hex()})
	req.Header.Set("Authorization", "Bearer abc123")

	doctorDB := &mocks.DoctorDatabase{}
	deptDB := &mocks.DepartmentDatabase{}

	doctorDB.On("FindOne", mock.Anything, bson.M{"_id": dID}).
		Return(&models.Doctor{ID: dID, Department: &deptID}, nil)
	deptDB.On("UpdateOne", mock.Anything, bson.M{"_id": deptID}, mock.MatchedBy(func(update bson.M) bool {
		pull, ok := update["$pull"].(bson.M)
		return ok && pull["doctors"] == dID
	})).Return(nil)
	doctorDB.On("DeleteOne", mock.Anything, bson.M{"_id": dID}).Return(nil)

	u := handlers.Doctor{
		DB:     doctorDB,
		Linker: &databases.Linker{Departments: deptDB, Doctors: doctorDB},
	}

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.DeleteDoctorHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	deptDB.AssertExpectations(t)
	doctorDB.AssertExpectations(t)
}
