package databases

// go generate: mockery --name NurseDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/carelinkhq/hospital-api/models"
)

const nurseName = "nurses"

// NurseDatabase contains the methods to use with the nurse database. Nurses
// are deactivated via isActive rather than soft-deleted, so no soft-delete
// policy applies here.
type NurseDatabase interface {
	FindOne(context.Context, bson.M, ...*options.FindOneOptions) (*models.Nurse, error)
	Find(context.Context, bson.M, ...*options.FindOptions) ([]models.Nurse, error)
	List(context.Context, ListOptions) ([]models.Nurse, models.Pagination, error)
	InsertOne(context.Context, interface{}, ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	UpdateOne(context.Context, interface{}, interface{}, ...*options.UpdateOptions) error
	CountDocuments(context.Context, bson.M, ...*options.CountOptions) (int64, error)
}

type nurseDatabase struct {
	db DatabaseHelper
}

// NewNurseDatabase initializes a new instance of nurse database with the
// provided db connection
func NewNurseDatabase(db DatabaseHelper) NurseDatabase {
	return &nurseDatabase{
		db: db,
	}
}

func (n *nurseDatabase) FindOne(ctx context.Context, filter bson.M, opts ...*options.FindOneOptions) (*models.Nurse, error) {
	nurse := &models.Nurse{}
	err := n.db.Collection(nurseName).FindOne(ctx, filter, opts...).Decode(&nurse)
	if err != nil {
		return nil, err
	}
	return nurse, nil
}

func (n *nurseDatabase) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Nurse, error) {
	var nurses []models.Nurse
	cur, err := n.db.Collection(nurseName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	err = cur.Decode(&nurses)
	if err != nil {
		return nil, err
	}
	return nurses, nil
}

func (n *nurseDatabase) List(ctx context.Context, lo ListOptions) ([]models.Nurse, models.Pagination, error) {
	filter := lo.Filter()
	nurses := []models.Nurse{}
	cur, err := n.db.Collection(nurseName).Find(ctx, filter, lo.FindOptions())
	if err != nil {
		return nil, models.Pagination{}, err
	}
	if err := cur.Decode(&nurses); err != nil {
		return nil, models.Pagination{}, err
	}
	total, err := n.db.Collection(nurseName).CountDocuments(ctx, filter)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return nurses, lo.Pagination(total), nil
}

func (n *nurseDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	return n.db.Collection(nurseName).InsertOne(ctx, document, opts...)
}

func (n *nurseDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) error {
	_, err := n.db.Collection(nurseName).UpdateOne(ctx, filter, update, opts...)
	return err
}

func (n *nurseDatabase) CountDocuments(ctx context.Context, filter bson.M, opts ...*options.CountOptions) (int64, error) {
	return n.db.Collection(nurseName).CountDocuments(ctx, filter, opts...)
}
