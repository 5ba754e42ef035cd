package mongostore

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/harentsoaR/doctors-portal/internal/models"
)

// Collection names match the ones the existing data set was written with.
const (
	ServicesCollection = "services"
	BookingsCollection = "booking"
	UsersCollection    = "user"
	DoctorsCollection  = "doctors"
)

// Database holds the typed collections of one MongoDB database.
type Database struct {
	client *mongo.Client
	db     *mongo.Database

	Services *Collection[models.Service]
	Bookings *Collection[models.Booking]
	Users    *Collection[models.User]
	Doctors  *Collection[models.Doctor]
}

// Connect dials uri and pings the primary before returning.
func Connect(ctx context.Context, uri, name string, logger *zap.Logger) (*Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	logger.Info("connected to mongodb", zap.String("database", name))

	db := client.Database(name)
	return &Database{
		client:   client,
		db:       db,
		Services: NewCollection[models.Service](db.Collection(ServicesCollection)),
		Bookings: NewCollection[models.Booking](db.Collection(BookingsCollection)),
		Users:    NewCollection[models.User](db.Collection(UsersCollection)),
		Doctors:  NewCollection[models.Doctor](db.Collection(DoctorsCollection)),
	}, nil
}

func (d *Database) Close(ctx context.Context) error {
	return d.client.Disconnect(ctx)
}

// BookingKey is the set of fields no two bookings may share.
var BookingKey = []string{"treatment", "date", "patient"}

// IndexModels returns the unique indexes the application depends on, by
// collection. The booking index is what makes admission an atomic
// check-and-insert: two concurrent inserts for the same (treatment, date,
// patient) cannot both succeed.
func IndexModels() map[string]mongo.IndexModel {
	bookingKeys := bson.D{}
	for _, k := range BookingKey {
		bookingKeys = append(bookingKeys, bson.E{Key: k, Value: 1})
	}
	return map[string]mongo.IndexModel{
		BookingsCollection: {
			Keys:    bookingKeys,
			Options: options.Index().SetUnique(true).SetName("unique_treatment_date_patient"),
		},
		UsersCollection: {
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_email"),
		},
		DoctorsCollection: {
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_email"),
		},
	}
}

// EnsureIndexes creates IndexModels. It fails when existing documents
// already violate one of them.
func (d *Database) EnsureIndexes(ctx context.Context) error {
	for coll, model := range IndexModels() {
		if _, err := d.db.Collection(coll).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("create index on %s: %w", coll, err)
		}
	}
	return nil
}
