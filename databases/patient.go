package databases

// go generate: mockery --name PatientDatabase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/carelinkhq/hospital-api/models"
)

const patientName = "patients"

// PatientDatabase contains the methods to use with the patient database.
// Reads go through the soft-delete policy.
type PatientDatabase interface {
	FindOne(context.Context, bson.M, ...*options.FindOneOptions) (*models.Patient, error)
	Find(context.Context, bson.M, ...*options.FindOptions) ([]models.Patient, error)
	List(context.Context, ListOptions) ([]models.Patient, models.Pagination, error)
	InsertOne(context.Context, interface{}, ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	UpdateOne(context.Context, interface{}, interface{}, ...*options.UpdateOptions) error
	CountDocuments(context.Context, bson.M, ...*options.CountOptions) (int64, error)
	PurgeDeleted(context.Context, time.Time) (int64, error)
}

type patientDatabase struct {
	db DatabaseHelper
}

// NewPatientDatabase initializes a new instance of patient database with the
// provided db connection
func NewPatientDatabase(db DatabaseHelper) PatientDatabase {
	return &patientDatabase{
		db: db,
	}
}

func (p *patientDatabase) FindOne(ctx context.Context, filter bson.M, opts ...*options.FindOneOptions) (*models.Patient, error) {
	patient := &models.Patient{}
	err := p.db.Collection(patientName).FindOne(ctx, ApplySoftDeleteFilter(filter), opts...).Decode(&patient)
	if err != nil {
		return nil, err
	}
	return patient, nil
}

func (p *patientDatabase) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Patient, error) {
	var patients []models.Patient
	cur, err := p.db.Collection(patientName).Find(ctx, ApplySoftDeleteFilter(filter), opts...)
	if err != nil {
		return nil, err
	}
	err = cur.Decode(&patients)
	if err != nil {
		return nil, err
	}
	return patients, nil
}

func (p *patientDatabase) List(ctx context.Context, lo ListOptions) ([]models.Patient, models.Pagination, error) {
	lo.DoctorKey = "assignedDoctor"
	filter := ApplySoftDeleteFilter(lo.Filter())
	patients := []models.Patient{}
	cur, err := p.db.Collection(patientName).Find(ctx, filter, lo.FindOptions())
	if err != nil {
		return nil, models.Pagination{}, err
	}
	if err := cur.Decode(&patients); err != nil {
		return nil, models.Pagination{}, err
	}
	total, err := p.db.Collection(patientName).CountDocuments(ctx, filter)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return patients, lo.Pagination(total), nil
}

func (p *patientDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	return p.db.Collection(patientName).InsertOne(ctx, document, opts...)
}

func (p *patientDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) error {
	_, err := p.db.Collection(patientName).UpdateOne(ctx, filter, update, opts...)
	return err
}

func (p *patientDatabase) CountDocuments(ctx context.Context, filter bson.M, opts ...*options.CountOptions) (int64, error) {
	return p.db.Collection(patientName).CountDocuments(ctx, ApplySoftDeleteFilter(filter), opts...)
}

func (p *patientDatabase) PurgeDeleted(ctx context.Context, cutoff time.Time) (int64, error) {
	return p.db.Collection(patientName).DeleteMany(ctx, bson.M{
		"isDeleted": true,
		"deletedAt": bson.M{"$lt": primitive.NewDateTimeFromTime(cutoff)},
	})
}
