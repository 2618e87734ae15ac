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

func TestResearch_CreateResearchHandlerMissingTitle(t *testing.T) {
	req, err := http.NewRequest("POST", "/api/v1/research",
		bytes.NewBufferString(`{"description": "untitled study"}`))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Authorization", "Bearer abc123")

	u := handlers.Research{DB: &mocks.ResearchDatabase{}}

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.CreateResearchHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "title is required")
}

func TestResearch_CreateResearchHandlerEndDatePrecedesStart(t *testing.T) {
	req, err := http.NewRequest("POST", "/api/v1/research",
		bytes.NewBufferString(`{"title": "Beta blocker trial", "start_date": 2000, "end_date": 1000}`))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Authorization", "Bearer abc123")

	u := handlers.Research{DB: &mocks.ResearchDatabase{}}

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.CreateResearchHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "end_date precedes start_date")
}

func TestResearch_CreateResearchHandlerMissingReferences(t *testing.T) {
	doctorDB := &mocks.DoctorDatabase{}
	deptDB := &mocks.DepartmentDatabase{}
	linker := &databases.Linker{Doctors: doctorDB, Departments: deptDB}

	req, err := http.NewRequest("POST", "/api/v1/research",
		bytes.NewBufferString(`{"title": "Beta blocker trial"}`))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Authorization", "Bearer abc123")

	u := handlers.Research{DB: &mocks.ResearchDatabase{}, Linker: linker}

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.CreateResearchHandler).ServeHTTP(rr, req)

	// the zero id never reaches the reference lookups
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "principal_investigator_id and department_id are required")
	doctorDB.AssertNotCalled(t, "FindOne", mock.Anything, mock.Anything)
	deptDB.AssertNotCalled(t, "FindOne", mock.Anything, mock.Anything)
}

func TestResearch_CreateResearchHandlerInvalidStatus(t *testing.T) {
	req, err := http.NewRequest("POST", "/api/v1/research",
		bytes.NewBufferString(`{"title": "Beta blocker trial", "status": "Paused"}`))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Authorization", "Bearer abc123")

	u := handlers.Research{DB: &mocks.ResearchDatabase{}}

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.CreateResearchHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestResearch_AddAttachmentHandlerMissingName(t *testing.T) {
	rID := primitive.NewObjectID()

	req, err := http.NewRequest("POST", "/api/v1/research/"+rID.Hex()+"/attachments",
		bytes.NewBufferString(`{"url": "https://res.cloudinary.com/carelink/protocol.pdf"}`))
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"research_id": rID.Hex()})
	req.Header.Set("Authorization", "Bearer abc123")

	u := handlers.Research{DB: &mocks.ResearchDatabase{}}

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.AddAttachmentHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestResearch_RemoveAttachmentHandler(t *testing.T) {
	rID := primitive.NewObjectID()

	req, err := http.NewRequest("DELETE", "/api/v1/research/"+rID.Hex()+"/attachments/protocol.pdf", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"research_id": rID.Hex(), "attachment_name": "protocol.pdf"})
	req.Header.Set("Authorization", "Bearer abc123")

	researchDB := &mocks.ResearchDatabase{}
	researchDB.On("FindOne", mock.Anything, bson.M{"_id": rID}).
		Return(&models.Research{ID: rID}, nil)
	researchDB.On("UpdateOne", mock.Anything, bson.M{"_id": rID}, mock.MatchedBy(func(update bson.M) bool {
		pull, ok := update["$pull"].(bson.M)
		if !ok {
			return false
		}
		att, ok := pull["attachments"].(bson.M)
		return ok && att["name"] == "protocol.pdf"
	})).Return(nil)

	u := handlers.Research{DB: researchDB}

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.RemoveAttachmentHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	researchDB.AssertExpectations(t)
}
