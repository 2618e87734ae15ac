package handlers_test

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/carelinkhq/hospital-api/api/handlers"
	"github.com/carelinkhq/hospital-api/databases/mocks"
	"github.com/carelinkhq/hospital-api/models"
)

func restoreRequest(t *testing.T, pID string) *http.Request {
	req, err := http.NewRequest("POST", "/api/v1/pharmacist/"+pID+"/restore", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"pharmacist_id": pID})
	req.Header.Set("Authorization", "Bearer abc123")
	return req
}

func TestPharmacist_CreatePharmacistHandlerDuplicateLicense(t *testing.T) {
	pharmDB := &mocks.PharmacistDatabase{}
	pharmDB.On("CountDocuments", mock.Anything, bson.M{"$or": []bson.M{
		{"email": "a.okafor@carelinkhq.com"},
		{"phone": ""},
		{"licenseNumber": "RPH-88214"},
	}}).Return(int64(1), nil)

	u := handlers.Pharmacist{DB: pharmDB}

	req, err := http.NewRequest("POST", "/api/v1/pharmacist",
		bytes.NewBufferString(`{"name": "Adaeze Okafor", "email": "a.okafor@carelinkhq.com", "licenseNumber": "RPH-88214"}`))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Authorization", "Bearer abc123")

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.CreatePharmacistHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusConflict, rr.Code)
	pharmDB.AssertNotCalled(t, "InsertOne", mock.Anything, mock.Anything)
}

func TestPharmacist_RestorePharmacistHandler(t *testing.T) {
	pID := primitive.NewObjectID()

	pharmDB := &mocks.PharmacistDatabase{}
	// the lookup names isDeleted explicitly to reach past the default read filter
	pharmDB.On("FindOne", mock.Anything, bson.M{"_id": pID, "isDeleted": true}).
		Return(&models.Pharmacist{ID: pID, IsDeleted: true}, nil)
	pharmDB.On("Restore", mock.Anything, pID).Return(nil)

	u := handlers.Pharmacist{DB: pharmDB}

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.RestorePharmacistHandler).ServeHTTP(rr, restoreRequest(t, pID.Hex()))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Pharmacist restored successfully")
	pharmDB.AssertExpectations(t)
}

func TestPharmacist_RestorePharmacistHandlerNotDeleted(t *testing.T) {
	pID := primitive.NewObjectID()

	pharmDB := &mocks.PharmacistDatabase{}
	pharmDB.On("FindOne", mock.Anything, bson.M{"_id": pID, "isDeleted": true}).
		Return(nil, errors.New("mongo: no documents in result"))

	u := handlers.Pharmacist{DB: pharmDB}

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.RestorePharmacistHandler).ServeHTTP(rr, restoreRequest(t, pID.Hex()))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	pharmDB.AssertNotCalled(t, "Restore", mock.Anything, mock.Anything)
}

func TestPharmacist_RestorePharmacistHandlerBadHex(t *testing.T) {
	u := handlers.Pharmacist{DB: &mocks.PharmacistDatabase{}}

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.RestorePharmacistHandler).ServeHTTP(rr, restoreRequest(t, "1234"))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
