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

func patientStatusRequest(t *testing.T, pID primitive.ObjectID, status string) *http.Request {
	req, err := http.NewRequest("PUT", "/api/v1/patient/"+pID.Hex()+"/status",
		bytes.NewBufferString(`{"status": "`+status+`"}`))
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"patient_id": pID.Hex()})
	req.Header.Set("Authorization", "Bearer abc123")
	return req
}

func TestPatient_UpdatePatientStatusHandlerAdmitted(t *testing.T) {
	pID := primitive.NewObjectID()

	patientDB := &mocks.PatientDatabase{}
	patientDB.On("FindOne", mock.Anything, bson.M{"_id": pID}).
		Return(&models.Patient{ID: pID, Status: models.PatientOutpatient}, nil)

	var captured bson.M
	patientDB.On("UpdateOne", mock.Anything, bson.M{"_id": pID}, mock.Anything).
		Return(nil).
		Run(func(args mock.Arguments) {
			captured = args.Get(2).(bson.M)
		})

	u := handlers.Patient{DB: patientDB, Feed: handlers.NewWardFeed()}

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.UpdatePatientStatusHandler).ServeHTTP(rr, patientStatusRequest(t, pID, "Admitted"))

	assert.Equal(t, http.StatusOK, rr.Code)

	set := captured["$set"].(bson.M)
	assert.Equal(t, "Admitted", set["status"])
	assert.NotNil(t, set["admissionDate"])
	assert.Contains(t, set, "dischargeDate")
	assert.Nil(t, set["dischargeDate"])
}

func TestPatient_UpdatePatientStatusHandlerDischarged(t *testing.T) {
	pID := primitive.NewObjectID()

	patientDB := &mocks.PatientDatabase{}
	patientDB.On("FindOne", mock.Anything, bson.M{"_id": pID}).
		Return(&models.Patient{ID: pID, Status: models.PatientAdmitted}, nil)

	var captured bson.M
	patientDB.On("UpdateOne", mock.Anything, bson.M{"_id": pID}, mock.Anything).
		Return(nil).
		Run(func(args mock.Arguments) {
			captured = args.Get(2).(bson.M)
		})

	u := handlers.Patient{DB: patientDB, Feed: handlers.NewWardFeed()}

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.UpdatePatientStatusHandler).ServeHTTP(rr, patientStatusRequest(t, pID, "Discharged"))

	assert.Equal(t, http.StatusOK, rr.Code)

	// discharge stamps dischargeDate but leaves admissionDate alone
	set := captured["$set"].(bson.M)
	assert.Equal(t, "Discharged", set["status"])
	assert.NotNil(t, set["dischargeDate"])
	assert.NotContains(t, set, "admissionDate")
}

func TestPatient_UpdatePatientStatusHandlerInvalidStatus(t *testing.T) {
	pID := primitive.NewObjectID()

	u := handlers.Patient{DB: &mocks.PatientDatabase{}, Feed: handlers.NewWardFeed()}

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.UpdatePatientStatusHandler).ServeHTTP(rr, patientStatusRequest(t, pID, "Lost"))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestPatient_PatientByIDHandlerBadHex(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/v1/patient/1234", nil)
	if err != nil {
		t.Fatal(err)
	}

	req = mux.SetURLVars(req, map[string]string{"patient_id": "1234"})
	req.Header.Set("Authorization", "Bearer abc123")

	u := handlers.Patient{DB: &mocks.PatientDatabase{}}

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.PatientByIDHandler).ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusBadRequest {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusBadRequest)
	}

	expected := `{"response": "failed to get objectID from Hex, the provided hex string is not a valid ObjectID"}`
	if rr.Body.String() != expected {
		t.Errorf("handler returned unexpected body: \ngot: %v \nwant: %v", rr.Body.String(), expected)
	}
}

func TestPatient_DeletePatientHandlerSoftDeletes(t *testing.T) {
	pID := primitive.NewObjectID()
	dID := primitive.NewObjectID()

	req, err := http.NewRequest("DELETE", "/api/v1/patient/"+pID.Hex(), nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"patient_id": pID.Hex()})
	req.Header.Set("Authorization", "Bearer abc123")

	patientDB := &mocks.PatientDatabase{}
	doctorDB := &mocks.DoctorDatabase{}

	patientDB.On("FindOne", mock.Anything, bson.M{"_id": pID}).
		Return(&models.Patient{ID: pID, AssignedDoctor: &dID}, nil)
	patientDB.On("UpdateOne", mock.Anything, bson.M{"_id": pID}, mock.MatchedBy(func(update bson.M) bool {
		set, ok := update["$set"].(bson.M)
		return ok && set["isDeleted"] == true && set["deletedAt"] != nil && set["isActive"] == false
	})).Return(nil)
	doctorDB.On("UpdateOne", mock.Anything, bson.M{"_id": dID}, mock.MatchedBy(func(update bson.M) bool {
		pull, ok := update["$pull"].(bson.M)
		return ok && pull["patients"] == pID
	})).Return(nil)

	u := handlers.Patient{
		DB:     patientDB,
		Linker: &databases.Linker{Doctors: doctorDB, Patients: patientDB},
	}

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.DeletePatientHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	patientDB.AssertExpectations(t)
	doctorDB.AssertExpectations(t)
}

func TestPatient_AssignDoctorHandlerFirstAssignment(t *testing.T) {
	pID := primitive.NewObjectID()
	dID := primitive.NewObjectID()

	req, err := http.NewRequest("PUT", "/api/v1/patient/"+pID.Hex()+"/doctor",
		bytes.NewBufferString(`{"doctorId": "`+dID.Hex()+`"}`))
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"patient_id": pID.Hex()})
	req.Header.Set("Authorization", "Bearer abc123")

	patientDB := &mocks.PatientDatabase{}
	doctorDB := &mocks.DoctorDatabase{}

	patientDB.On("FindOne", mock.Anything, bson.M{"_id": pID}).
		Return(&models.Patient{ID: pID}, nil)
	doctorDB.On("FindOne", mock.Anything, bson.M{"_id": dID}).
		Return(&models.Doctor{ID: dID}, nil)
	patientDB.On("UpdateOne", mock.Anything, bson.M{"_id": pID}, mock.MatchedBy(func(update bson.M) bool {
		set, ok := update["$set"].(bson.M)
		return ok && set["assignedDoctor"] == dID
	})).Return(nil)
	doctorDB.On("UpdateOne", mock.Anything, bson.M{"_id": dID}, mock.MatchedBy(func(update bson.M) bool {
		add, ok := update["$addToSet"].(bson.M)
		return ok && add["patients"] == pID
	})).Return(nil)

	u := handlers.Patient{
		DB:     patientDB,
		Linker: &databases.Linker{Doctors: doctorDB, Patients: patientDB},
	}

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.AssignDoctorHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Doctor assigned to patient successfully")
}

func TestPatient_AddMedicalHistoryHandlerMissingCondition(t *testing.T) {
	pID := primitive.NewObjectID()

	req, err := http.NewRequest("POST", "/api/v1/patient/"+pID.Hex()+"/medical-history",
		bytes.NewBufferString(`{"notes": "no condition given"}`))
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"patient_id": pID.Hex()})
	req.Header.Set("Authorization", "Bearer abc123")

	u := handlers.Patient{DB: &mocks.PatientDatabase{}}

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.AddMedicalHistoryHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
