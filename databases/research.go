package databases

// go generate: mockery --name ResearchDatabase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/carelinkhq/hospital-api/models"
)

const researchName = "research"

// ResearchDatabase contains the methods to use with the research database.
// Reads go through the soft-delete policy.
type ResearchDatabase interface {
	FindOne(context.Context, bson.M, ...*options.FindOneOptions) (*models.Research, error)
	Find(context.Context, bson.M, ...*options.FindOptions) ([]models.Research, error)
	List(context.Context, ListOptions) ([]models.Research, models.Pagination, error)
	InsertOne(context.Context, interface{}, ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	UpdateOne(context.Context, interface{}, interface{}, ...*options.UpdateOptions) error
	CountDocuments(context.Context, bson.M, ...*options.CountOptions) (int64, error)
	PurgeDeleted(context.Context, time.Time) (int64, error)
}

type researchDatabase struct {
	db DatabaseHelper
}

// NewResearchDatabase initializes a new instance of research database with
// the provided db connection
func NewResearchDatabase(db DatabaseHelper) ResearchDatabase {
	return &researchDatabase{
		db: db,
	}
}

func (r *researchDatabase) FindOne(ctx context.Context, filter bson.M, opts ...*options.FindOneOptions) (*models.Research, error) {
	research := &models.Research{}
	err := r.db.Collection(researchName).FindOne(ctx, ApplySoftDeleteFilter(filter), opts...).Decode(&research)
	if err != nil {
		return nil, err
	}
	return research, nil
}

func (r *researchDatabase) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Research, error) {
	var research []models.Research
	cur, err := r.db.Collection(researchName).Find(ctx, ApplySoftDeleteFilter(filter), opts...)
	if err != nil {
		return nil, err
	}
	err = cur.Decode(&research)
	if err != nil {
		return nil, err
	}
	return research, nil
}

func (r *researchDatabase) List(ctx context.Context, lo ListOptions) ([]models.Research, models.Pagination, error) {
	lo.NameKey = "title"
	lo.DoctorKey = "principal_investigator_id"
	lo.DepartmentKey = "department_id"
	filter := ApplySoftDeleteFilter(lo.Filter())
	research := []models.Research{}
	cur, err := r.db.Collection(researchName).Find(ctx, filter, lo.FindOptions())
	if err != nil {
		return nil, models.Pagination{}, err
	}
	if err := cur.Decode(&research); err != nil {
		return nil, models.Pagination{}, err
	}
	total, err := r.db.Collection(researchName).CountDocuments(ctx, filter)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return research, lo.Pagination(total), nil
}

func (r *researchDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	return r.db.Collection(researchName).InsertOne(ctx, document, opts...)
}

func (r *researchDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) error {
	_, err := r.db.Collection(researchName).UpdateOne(ctx, filter, update, opts...)
	return err
}

func (r *researchDatabase) CountDocuments(ctx context.Context, filter bson.M, opts ...*options.CountOptions) (int64, error) {
	return r.db.Collection(researchName).CountDocuments(ctx, ApplySoftDeleteFilter(filter), opts...)
}

func (r *researchDatabase) PurgeDeleted(ctx context.Context, cutoff time.Time) (int64, error) {
	return r.db.Collection(researchName).DeleteMany(ctx, bson.M{
		"isDeleted": true,
		"deletedAt": bson.M{"$lt": primitive.NewDateTimeFromTime(cutoff)},
	})
}
