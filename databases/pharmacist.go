package databases

// go generate: mockery --name PharmacistDatabase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/carelinkhq/hospital-api/models"
)

const pharmacistName = "pharmacists"

// PharmacistDatabase contains the methods to use with the pharmacist
// database. Reads go through the soft-delete policy; Restore brings a
// soft-deleted pharmacist back into default listings.
type PharmacistDatabase interface {
	FindOne(context.Context, bson.M, ...*options.FindOneOptions) (*models.Pharmacist, error)
	Find(context.Context, bson.M, ...*options.FindOptions) ([]models.Pharmacist, error)
	List(context.Context, ListOptions) ([]models.Pharmacist, models.Pagination, error)
	InsertOne(context.Context, interface{}, ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	UpdateOne(context.Context, interface{}, interface{}, ...*options.UpdateOptions) error
	CountDocuments(context.Context, bson.M, ...*options.CountOptions) (int64, error)
	Restore(context.Context, primitive.ObjectID) error
	PurgeDeleted(context.Context, time.Time) (int64, error)
}

type pharmacistDatabase struct {
	db DatabaseHelper
}

// NewPharmacistDatabase initializes a new instance of pharmacist database
// with the provided db connection
func NewPharmacistDatabase(db DatabaseHelper) PharmacistDatabase {
	return &pharmacistDatabase{
		db: db,
	}
}

func (p *pharmacistDatabase) FindOne(ctx context.Context, filter bson.M, opts ...*options.FindOneOptions) (*models.Pharmacist, error) {
	pharmacist := &models.Pharmacist{}
	err := p.db.Collection(pharmacistName).FindOne(ctx, ApplySoftDeleteFilter(filter), opts...).Decode(&pharmacist)
	if err != nil {
		return nil, err
	}
	return pharmacist, nil
}

func (p *pharmacistDatabase) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Pharmacist, error) {
	var pharmacists []models.Pharmacist
	cur, err := p.db.Collection(pharmacistName).Find(ctx, ApplySoftDeleteFilter(filter), opts...)
	if err != nil {
		return nil, err
	}
	err = cur.Decode(&pharmacists)
	if err != nil {
		return nil, err
	}
	return pharmacists, nil
}

func (p *pharmacistDatabase) List(ctx context.Context, lo ListOptions) ([]models.Pharmacist, models.Pagination, error) {
	filter := ApplySoftDeleteFilter(lo.Filter())
	pharmacists := []models.Pharmacist{}
	cur, err := p.db.Collection(pharmacistName).Find(ctx, filter, lo.FindOptions())
	if err != nil {
		return nil, models.Pagination{}, err
	}
	if err := cur.Decode(&pharmacists); err != nil {
		return nil, models.Pagination{}, err
	}
	total, err := p.db.Collection(pharmacistName).CountDocuments(ctx, filter)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return pharmacists, lo.Pagination(total), nil
}

func (p *pharmacistDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	return p.db.Collection(pharmacistName).InsertOne(ctx, document, opts...)
}

func (p *pharmacistDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) error {
	_, err := p.db.Collection(pharmacistName).UpdateOne(ctx, filter, update, opts...)
	return err
}

func (p *pharmacistDatabase) CountDocuments(ctx context.Context, filter bson.M, opts ...*options.CountOptions) (int64, error) {
	return p.db.Collection(pharmacistName).CountDocuments(ctx, ApplySoftDeleteFilter(filter), opts...)
}

// Restore clears the soft-delete flag and timestamp so the record rejoins
// default listings.
func (p *pharmacistDatabase) Restore(ctx context.Context, id primitive.ObjectID) error {
	_, err := p.db.Collection(pharmacistName).UpdateOne(ctx,
		bson.M{"_id": id, "isDeleted": true},
		bson.M{"$set": bson.M{
			"isDeleted": false,
			"deletedAt": nil,
			"isActive":  true,
			"updatedAt": primitive.NewDateTimeFromTime(time.Now()),
		}},
	)
	return err
}

func (p *pharmacistDatabase) PurgeDeleted(ctx context.Context, cutoff time.Time) (int64, error) {
	return p.db.Collection(pharmacistName).DeleteMany(ctx, bson.M{
		"isDeleted": true,
		"deletedAt": bson.M{"$lt": primitive.NewDateTimeFromTime(cutoff)},
	})
}
