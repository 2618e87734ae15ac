package databases

// go generate: mockery --name DepartmentDatabase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/carelinkhq/hospital-api/models"
)

const departmentName = "departments"

// DepartmentDatabase contains the methods to use with the department
// database. Reads go through the soft-delete policy: deleted departments are
// excluded unless the caller filters on isDeleted explicitly.
type DepartmentDatabase interface {
	FindOne(context.Context, bson.M, ...*options.FindOneOptions) (*models.Department, error)
	Find(context.Context, bson.M, ...*options.FindOptions) ([]models.Department, error)
	List(context.Context, ListOptions) ([]models.Department, models.Pagination, error)
	InsertOne(context.Context, interface{}, ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	UpdateOne(context.Context, interface{}, interface{}, ...*options.UpdateOptions) error
	CountDocuments(context.Context, bson.M, ...*options.CountOptions) (int64, error)
	PurgeDeleted(context.Context, time.Time) (int64, error)
}

type departmentDatabase struct {
	db DatabaseHelper
}

// NewDepartmentDatabase initializes a new instance of department database
// with the provided db connection
func NewDepartmentDatabase(db DatabaseHelper) DepartmentDatabase {
	return &departmentDatabase{
		db: db,
	}
}

func (d *departmentDatabase) FindOne(ctx context.Context, filter bson.M, opts ...*options.FindOneOptions) (*models.Department, error) {
	department := &models.Department{}
	err := d.db.Collection(departmentName).FindOne(ctx, ApplySoftDeleteFilter(filter), opts...).Decode(&department)
	if err != nil {
		return nil, err
	}
	return department, nil
}

func (d *departmentDatabase) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Department, error) {
	var departments []models.Department
	cur, err := d.db.Collection(departmentName).Find(ctx, ApplySoftDeleteFilter(filter), opts...)
	if err != nil {
		return nil, err
	}
	err = cur.Decode(&departments)
	if err != nil {
		return nil, err
	}
	return departments, nil
}

func (d *departmentDatabase) List(ctx context.Context, lo ListOptions) ([]models.Department, models.Pagination, error) {
	filter := ApplySoftDeleteFilter(lo.Filter())
	departments := []models.Department{}
	cur, err := d.db.Collection(departmentName).Find(ctx, filter, lo.FindOptions())
	if err != nil {
		return nil, models.Pagination{}, err
	}
	if err := cur.Decode(&departments); err != nil {
		return nil, models.Pagination{}, err
	}
	// total must be computed against the same filter as the slice
	total, err := d.db.Collection(departmentName).CountDocuments(ctx, filter)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return departments, lo.Pagination(total), nil
}

func (d *departmentDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	return d.db.Collection(departmentName).InsertOne(ctx, document, opts...)
}

func (d *departmentDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) error {
	_, err := d.db.Collection(departmentName).UpdateOne(ctx, filter, update, opts...)
	return err
}

func (d *departmentDatabase) CountDocuments(ctx context.Context, filter bson.M, opts ...*options.CountOptions) (int64, error) {
	return d.db.Collection(departmentName).CountDocuments(ctx, ApplySoftDeleteFilter(filter), opts...)
}

func (d *departmentDatabase) PurgeDeleted(ctx context.Context, cutoff time.Time) (int64, error) {
	return d.db.Collection(departmentName).DeleteMany(ctx, bson.M{
		"isDeleted": true,
		"deletedAt": bson.M{"$lt": primitive.NewDateTimeFromTime(cutoff)},
	})
}
