package databases

// go generate: mockery --name DoctorDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/carelinkhq/hospital-api/models"
)

const doctorName = "doctors"

// DoctorDatabase contains the methods to use with the doctor database.
// Doctors are hard-deleted, so no soft-delete policy applies here.
type DoctorDatabase interface {
	FindOne(context.Context, bson.M, ...*options.FindOneOptions) (*models.Doctor, error)
	Find(context.Context, bson.M, ...*options.FindOptions) ([]models.Doctor, error)
	List(context.Context, ListOptions) ([]models.Doctor, models.Pagination, error)
	InsertOne(context.Context, interface{}, ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	UpdateOne(context.Context, interface{}, interface{}, ...*options.UpdateOptions) error
	DeleteOne(context.Context, interface{}, ...*options.DeleteOptions) error
	CountDocuments(context.Context, bson.M, ...*options.CountOptions) (int64, error)
}

type doctorDatabase struct {
	db DatabaseHelper
}

// NewDoctorDatabase initializes a new instance of doctor database with the
// provided db connection
func NewDoctorDatabase(db DatabaseHelper) DoctorDatabase {
	return &doctorDatabase{
		db: db,
	}
}

func (d *doctorDatabase) FindOne(ctx context.Context, filter bson.M, opts ...*options.FindOneOptions) (*models.Doctor, error) {
	doctor := &models.Doctor{}
	err := d.db.Collection(doctorName).FindOne(ctx, filter, opts...).Decode(&doctor)
	if err != nil {
		return nil, err
	}
	return doctor, nil
}

func (d *doctorDatabase) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Doctor, error) {
	var doctors []models.Doctor
	cur, err := d.db.Collection(doctorName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	err = cur.Decode(&doctors)
	if err != nil {
		return nil, err
	}
	return doctors, nil
}

func (d *doctorDatabase) List(ctx context.Context, lo ListOptions) ([]models.Doctor, models.Pagination, error) {
	filter := lo.Filter()
	doctors := []models.Doctor{}
	cur, err := d.db.Collection(doctorName).Find(ctx, filter, lo.FindOptions())
	if err != nil {
		return nil, models.Pagination{}, err
	}
	if err := cur.Decode(&doctors); err != nil {
		return nil, models.Pagination{}, err
	}
	total, err := d.db.Collection(doctorName).CountDocuments(ctx, filter)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return doctors, lo.Pagination(total), nil
}

func (d *doctorDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	return d.db.Collection(doctorName).InsertOne(ctx, document, opts...)
}

func (d *doctorDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) error {
	_, err := d.db.Collection(doctorName).UpdateOne(ctx, filter, update, opts...)
	return err
}

func (d *doctorDatabase) DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) error {
	return d.db.Collection(doctorName).DeleteOne(ctx, filter, opts...)
}

func (d *doctorDatabase) CountDocuments(ctx context.Context, filter bson.M, opts ...*options.CountOptions) (int64, error) {
	return d.db.Collection(doctorName).CountDocuments(ctx, filter, opts...)
}
