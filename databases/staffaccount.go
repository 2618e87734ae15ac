package databases

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"github.com/carelinkhq/hospital-api/models"
)

const staffAccountName = "staff_accounts"

// StaffAccountDatabase defines the interface for staff login records backing
// the auth middleware
type StaffAccountDatabase interface {
	FindOne(context.Context, bson.M, ...*options.FindOneOptions) (*models.StaffAccount, error)
	Find(context.Context, bson.M, ...*options.FindOptions) ([]models.StaffAccount, error)
	InsertOne(context.Context, models.StaffAccount, ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	UpdateOne(context.Context, interface{}, interface{}, ...*options.UpdateOptions) error
	CountDocuments(context.Context, bson.M, ...*options.CountOptions) (int64, error)
}

type staffAccountDatabase struct {
	db DatabaseHelper
}

// NewStaffAccountDatabase creates a new staff account database wrapper
func NewStaffAccountDatabase(db DatabaseHelper) StaffAccountDatabase {
	return &staffAccountDatabase{db: db}
}

func (s *staffAccountDatabase) FindOne(ctx context.Context, filter bson.M, opts ...*options.FindOneOptions) (*models.StaffAccount, error) {
	account := &models.StaffAccount{}
	err := s.db.Collection(staffAccountName).FindOne(ctx, filter, opts...).Decode(&account)
	if err != nil {
		return nil, err
	}
	return account, nil
}

func (s *staffAccountDatabase) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.StaffAccount, error) {
	var accounts []models.StaffAccount
	cur, err := s.db.Collection(staffAccountName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	err = cur.Decode(&accounts)
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

func (s *staffAccountDatabase) InsertOne(ctx context.Context, account models.StaffAccount, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	return s.db.Collection(staffAccountName).InsertOne(ctx, account, opts...)
}

func (s *staffAccountDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) error {
	_, err := s.db.Collection(staffAccountName).UpdateOne(ctx, filter, update, opts...)
	return err
}

func (s *staffAccountDatabase) CountDocuments(ctx context.Context, filter bson.M, opts ...*options.CountOptions) (int64, error) {
	return s.db.Collection(staffAccountName).CountDocuments(ctx, filter, opts...)
}

// EnsureHeadAccount bootstraps an administrator account from env vars if not
// already present.
// Env vars: ADMIN_HEAD_EMAIL, ADMIN_HEAD_PASSWORD
func EnsureHeadAccount(db DatabaseHelper) error {
	headEmail := strings.TrimSpace(strings.ToLower(os.Getenv("ADMIN_HEAD_EMAIL")))
	if headEmail == "" {
		return nil
	}
	ctx := context.Background()
	err := db.Collection(staffAccountName).FindOne(ctx, bson.M{"email": headEmail}).Decode(&struct{}{})
	if err == nil {
		return nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}
	headPassword := os.Getenv("ADMIN_HEAD_PASSWORD")
	if headPassword == "" {
		return errors.New("ADMIN_HEAD_PASSWORD must be set to bootstrap the head account")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(headPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	account := models.StaffAccount{
		Email:        headEmail,
		Name:         "Administrator",
		PasswordHash: string(hash),
		Active:       true,
		Roles:        []string{"admin"},
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	_, err = db.Collection(staffAccountName).InsertOne(ctx, account)
	return err
}
