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
	"github.com/carelinkhq/hospital-api/databases/mocks"
	"github.com/carelinkhq/hospital-api/models"
)

func TestNurse_CreateNurseHandlerInvalidShift(t *testing.T) {
	req, err := http.NewRequest("POST", "/api/v1/nurse",
		bytes.NewBufferString(`{"name": "Anita Rao", "email": "anita.rao@carelinkhq.com", "shift": "Graveyard"}`))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Authorization", "Bearer abc123")

	u := handlers.Nurse{DB: &mocks.NurseDatabase{}}

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.CreateNurseHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestNurse_CreateNurseHandlerDuplicateEmail(t *testing.T) {
	nurseDB := &mocks.NurseDatabase{}
	nurseDB.On("CountDocuments", mock.Anything, bson.M{"$or": []bson.M{
		{"email": "anita.rao@carelinkhq.com"},
		{"phone": "555-0142"},
	}}).Return(int64(1), nil)

	u := handlers.Nurse{DB: nurseDB}

	req, err := http.NewRequest("POST", "/api/v1/nurse",
		bytes.NewBufferString(`{"name": "Anita Rao", "email": "anita.rao@carelinkhq.com", "phone": "555-0142"}`))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Authorization", "Bearer abc123")

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.CreateNurseHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusConflict, rr.Code)
	nurseDB.AssertNotCalled(t, "InsertOne", mock.Anything, mock.Anything)
}

func TestNurse_DeleteNurseHandlerDeactivates(t *testing.T) {
	nID := primitive.NewObjectID()

	req, err := http.NewRequest("DELETE", "/api/v1/nurse/"+nID.Hex(), nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"nurse_id": nID.Hex()})
	req.Header.Set("Authorization", "Bearer abc123")

	nurseDB := &mocks.NurseDatabase{}
	nurseDB.On("FindOne", mock.Anything, bson.M{"_id": nID}).
		Return(&models.Nurse{ID: nID, IsActive: true}, nil)
	// only isActive flips; there is no soft-delete flag on nurses
	nurseDB.On("UpdateOne", mock.Anything, bson.M{"_id": nID}, mock.MatchedBy(func(update bson.M) bool {
		set, ok := update["$set"].(bson.M)
		if !ok {
			return false
		}
		_, hasDeleted := set["isDeleted"]
		return set["isActive"] == false && !hasDeleted
	})).Return(nil)

	u := handlers.Nurse{DB: nurseDB}

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.DeleteNurseHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Nurse deactivated successfully")
	nurseDB.AssertExpectations(t)
}
