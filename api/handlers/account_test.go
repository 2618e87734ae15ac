package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/carelinkhq/hospital-api/api/handlers"
	"github.com/carelinkhq/hospital-api/databases/mocks"
	"github.com/carelinkhq/hospital-api/models"
)

func loginReq(t *testing.T, email, password string) *http.Request {
	req, err := http.NewRequest("POST", "/api/v1/auth/login",
		bytes.NewBufferString(`{"email": "`+email+`", "password": "`+password+`"}`))
	if err != nil {
		t.Fatal(err)
	}
	return req
}

func TestAccount_LoginHandler(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret")
	defer os.Unsetenv("JWT_SECRET")

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}

	accountDB := &mocks.StaffAccountDatabase{}
	accountDB.On("FindOne", mock.Anything, bson.M{"email": "nurse.lee@carelinkhq.com", "active": true}).
		Return(&models.StaffAccount{
			ID:           primitive.NewObjectID(),
			Email:        "nurse.lee@carelinkhq.com",
			PasswordHash: string(hash),
			Roles:        []string{"staff"},
			Active:       true,
		}, nil)

	u := handlers.Account{DB: accountDB}

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.LoginHandler).ServeHTTP(rr, loginReq(t, "Nurse.Lee@carelinkhq.com", "hunter22"))

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["token"])
}

func TestAccount_LoginHandlerWrongPassword(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret")
	defer os.Unsetenv("JWT_SECRET")

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}

	accountDB := &mocks.StaffAccountDatabase{}
	accountDB.On("FindOne", mock.Anything, mock.Anything).
		Return(&models.StaffAccount{
			ID:           primitive.NewObjectID(),
			Email:        "nurse.lee@carelinkhq.com",
			PasswordHash: string(hash),
			Active:       true,
		}, nil)

	u := handlers.Account{DB: accountDB}

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.LoginHandler).ServeHTTP(rr, loginReq(t, "nurse.lee@carelinkhq.com", "wrong"))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "Invalid credentials")
}

func TestAccount_LoginHandlerUnknownAccount(t *testing.T) {
	accountDB := &mocks.StaffAccountDatabase{}
	accountDB.On("FindOne", mock.Anything, mock.Anything).
		Return(nil, errors.New("mongo: no documents in result"))

	u := handlers.Account{DB: accountDB}

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.LoginHandler).ServeHTTP(rr, loginReq(t, "ghost@carelinkhq.com", "hunter22"))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAccount_LoginHandlerMissingFields(t *testing.T) {
	u := handlers.Account{DB: &mocks.StaffAccountDatabase{}}

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.LoginHandler).ServeHTTP(rr, loginReq(t, "", ""))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAccount_CreateAccountHandlerDuplicateEmail(t *testing.T) {
	accountDB := &mocks.StaffAccountDatabase{}
	accountDB.On("CountDocuments", mock.Anything, bson.M{"email": "dr.chen@carelinkhq.com"}).
		Return(int64(1), nil)

	u := handlers.Account{DB: accountDB}

	req, err := http.NewRequest("POST", "/api/v1/accounts",
		bytes.NewBufferString(`{"email": "Dr.Chen@carelinkhq.com", "password": "hunter22"}`))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Authorization", "Bearer abc123")

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.CreateAccountHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusConflict, rr.Code)
	accountDB.AssertNotCalled(t, "InsertOne", mock.Anything, mock.Anything)
}
