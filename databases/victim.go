package databases

// go generate: mockery --name VictimDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/linesmerrill/human-rights-mis-api/models"
)

const victimName = "victims"

// VictimDatabase contains the methods to use with the victim/witness database
type VictimDatabase interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Victim, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Victim, error)
	InsertOne(ctx context.Context, victim models.Victim, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
	DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error)
}

type victimDatabase struct {
	db DatabaseHelper
}

// NewVictimDatabase initializes a new instance of victim database with the provided db connection
func NewVictimDatabase(db DatabaseHelper) VictimDatabase {
	return &victimDatabase{
		db: db,
	}
}

func (v *victimDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Victim, error) {
	victim := &models.Victim{}
	err := v.db.Collection(victimName).FindOne(ctx, filter, opts...).Decode(&victim)
	if err != nil {
		return nil, err
	}
	return victim, nil
}

func (v *victimDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Victim, error) {
	var victims []models.Victim
	curr, err := v.db.Collection(victimName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer curr.Close(ctx)
	err = curr.All(ctx, &victims)
	if err != nil {
		return nil, err
	}
	return victims, nil
}

func (v *victimDatabase) InsertOne(ctx context.Context, victim models.Victim, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	return v.db.Collection(victimName).InsertOne(ctx, victim, opts...)
}

func (v *victimDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	return v.db.Collection(victimName).UpdateOne(ctx, filter, update, opts...)
}

func (v *victimDatabase) DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error) {
	return v.db.Collection(victimName).DeleteOne(ctx, filter, opts...)
}
