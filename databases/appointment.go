package databases

// go generate: mockery --name AppointmentDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/carelinkhq/hospital-api/models"
)

const appointmentName = "appointments"

// AppointmentDatabase contains the methods to use with the appointment
// database
type AppointmentDatabase interface {
	FindOne(context.Context, bson.M, ...*options.FindOneOptions) (*models.Appointment, error)
	Find(context.Context, bson.M, ...*options.FindOptions) ([]models.Appointment, error)
	List(context.Context, ListOptions) ([]models.Appointment, models.Pagination, error)
	InsertOne(context.Context, interface{}, ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	UpdateOne(context.Context, interface{}, interface{}, ...*options.UpdateOptions) error
	CountDocuments(context.Context, bson.M, ...*options.CountOptions) (int64, error)
}

type appointmentDatabase struct {
	db DatabaseHelper
}

// NewAppointmentDatabase initializes a new instance of appointment database
// with the provided db connection
func NewAppointmentDatabase(db DatabaseHelper) AppointmentDatabase {
	return &appointmentDatabase{
		db: db,
	}
}

func (a *appointmentDatabase) FindOne(ctx context.Context, filter bson.M, opts ...*options.FindOneOptions) (*models.Appointment, error) {
	appointment := &models.Appointment{}
	err := a.db.Collection(appointmentName).FindOne(ctx, filter, opts...).Decode(&appointment)
	if err != nil {
		return nil, err
	}
	return appointment, nil
}

func (a *appointmentDatabase) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Appointment, error) {
	var appointments []models.Appointment
	cur, err := a.db.Collection(appointmentName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	err = cur.Decode(&appointments)
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (a *appointmentDatabase) List(ctx context.Context, lo ListOptions) ([]models.Appointment, models.Pagination, error) {
	filter := lo.Filter()
	appointments := []models.Appointment{}
	cur, err := a.db.Collection(appointmentName).Find(ctx, filter, lo.FindOptions())
	if err != nil {
		return nil, models.Pagination{}, err
	}
	if err := cur.Decode(&appointments); err != nil {
		return nil, models.Pagination{}, err
	}
	total, err := a.db.Collection(appointmentName).CountDocuments(ctx, filter)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return appointments, lo.Pagination(total), nil
}

func (a *appointmentDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	return a.db.Collection(appointmentName).InsertOne(ctx, document, opts...)
}

func (a *appointmentDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) error {
	_, err := a.db.Collection(appointmentName).UpdateOne(ctx, filter, update, opts...)
	return err
}

func (a *appointmentDatabase) CountDocuments(ctx context.Context, filter bson.M, opts ...*options.CountOptions) (int64, error) {
	return a.db.Collection(appointmentName).CountDocuments(ctx, filter, opts...)
}
