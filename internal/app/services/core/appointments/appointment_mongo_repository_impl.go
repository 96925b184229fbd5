package appointments

import (
	"context"
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/exceptions"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	appointmentMongoRepositoryInstance contracts.AppointmentRepository
	onceAppointmentMongoRepository     sync.Once
)

type AppointmentMongoRepository struct {
	Collection *mongo.Collection
}

func NewAppointmentMongoRepository(db *mongo.Client, dbName string) contracts.AppointmentRepository {
	onceAppointmentMongoRepository.Do(func() {
		instance := &AppointmentMongoRepository{
			Collection: db.Database(dbName).Collection(constvars.MongoCollectionAppointments),
		}
		appointmentMongoRepositoryInstance = instance
	})
	return appointmentMongoRepositoryInstance
}

func (r *AppointmentMongoRepository) Insert(ctx context.Context, appointment *models.Appointment) error {
	_, err := r.Collection.InsertOne(ctx, appointment)
	if err != nil {
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	return nil
}

func (r *AppointmentMongoRepository) FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	var appointment models.Appointment
	err := r.Collection.FindOne(ctx, bson.M{"_id": appointmentID}).Decode(&appointment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &appointment, nil
}

func (r *AppointmentMongoRepository) FindByPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	return r.findMany(ctx, bson.M{"patientId": patientID}, nil)
}

func (r *AppointmentMongoRepository) FindByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	return r.findMany(ctx, bson.M{"doctorId": doctorID}, nil)
}

func (r *AppointmentMongoRepository) FindAll(ctx context.Context) ([]models.Appointment, error) {
	return r.findMany(ctx, bson.M{}, nil)
}

func (r *AppointmentMongoRepository) FindLatest(ctx context.Context, limit int64) ([]models.Appointment, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1}).SetLimit(limit)
	return r.findMany(ctx, bson.M{}, opts)
}

func (r *AppointmentMongoRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.Collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, exceptions.ErrMongoDBCountDocuments(err)
	}
	return count, nil
}

// MarkCancelled and MarkCompleted only match while the appointment is still
// active, and MarkPaid only while it is unpaid and not cancelled. The filter
// carries the precondition, so concurrent transitions on the same document
// resolve to exactly one winner without a transaction.
func (r *AppointmentMongoRepository) MarkCancelled(ctx context.Context, appointmentID string) (bool, error) {
	return r.conditionalUpdate(ctx,
		bson.M{"_id": appointmentID, "status": models.AppointmentStatusActive},
		bson.M{"$set": bson.M{"status": models.AppointmentStatusCancelled, "updatedAt": time.Now()}},
	)
}

func (r *AppointmentMongoRepository) MarkCompleted(ctx context.Context, appointmentID string) (bool, error) {
	return r.conditionalUpdate(ctx,
		bson.M{"_id": appointmentID, "status": models.AppointmentStatusActive},
		bson.M{"$set": bson.M{"status": models.AppointmentStatusCompleted, "updatedAt": time.Now()}},
	)
}

func (r *AppointmentMongoRepository) MarkPaid(ctx context.Context, appointmentID string) (bool, error) {
	return r.conditionalUpdate(ctx,
		bson.M{
			"_id":    appointmentID,
			"paid":   false,
			"status": bson.M{"$ne": models.AppointmentStatusCancelled},
		},
		bson.M{"$set": bson.M{"paid": true, "updatedAt": time.Now()}},
	)
}

func (r *AppointmentMongoRepository) conditionalUpdate(ctx context.Context, filter, update bson.M) (bool, error) {
	result, err := r.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return result.MatchedCount > 0, nil
}

func (r *AppointmentMongoRepository) findMany(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Appointment, error) {
	var cursor *mongo.Cursor
	var err error
	if opts != nil {
		cursor, err = r.Collection.Find(ctx, filter, opts)
	} else {
		cursor, err = r.Collection.Find(ctx, filter)
	}
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	appointments := make([]models.Appointment, 0)
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return appointments, nil
}
