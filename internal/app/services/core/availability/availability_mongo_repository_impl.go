package availability

import (
	"context"
	"fmt"
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/exceptions"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

var (
	availabilityMongoRepositoryInstance contracts.AvailabilityStore
	onceAvailabilityMongoRepository     sync.Once
)

type AvailabilityMongoRepository struct {
	Collection *mongo.Collection
	Log        *zap.Logger
}

func NewAvailabilityMongoRepository(db *mongo.Client, dbName string, logger *zap.Logger) contracts.AvailabilityStore {
	onceAvailabilityMongoRepository.Do(func() {
		instance := &AvailabilityMongoRepository{
			Collection: db.Database(dbName).Collection(constvars.MongoCollectionDoctors),
			Log:        logger,
		}
		availabilityMongoRepositoryInstance = instance
	})
	return availabilityMongoRepositoryInstance
}

// Reserve appends slotTime to the doctor's reserved set for slotDate in a
// single conditional update. The filter only matches while the label is
// absent, so two concurrent reservations of the same slot cannot both match;
// the loser observes MatchedCount zero and is told the slot is taken.
func (r *AvailabilityMongoRepository) Reserve(ctx context.Context, doctorID, slotDate, slotTime string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("availabilityMongoRepository.Reserve called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
		zap.String(constvars.LoggingSlotDateKey, slotDate),
		zap.String(constvars.LoggingSlotTimeKey, slotTime),
	)

	slotField := fmt.Sprintf("slotsBooked.%s", slotDate)
	filter := bson.M{
		"_id":     doctorID,
		slotField: bson.M{"$ne": slotTime},
	}
	update := bson.M{
		"$addToSet": bson.M{slotField: slotTime},
	}

	result, err := r.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}

	if result.MatchedCount == 0 {
		// Distinguish a missing doctor from a lost race on the slot.
		count, err := r.Collection.CountDocuments(ctx, bson.M{"_id": doctorID})
		if err != nil {
			return exceptions.ErrMongoDBCountDocuments(err)
		}
		if count == 0 {
			return exceptions.ErrDoctorNotFound(fmt.Errorf("doctor %s not found", doctorID))
		}
		return exceptions.ErrSlotAlreadyBooked(fmt.Errorf("slot %s %s already reserved for doctor %s", slotDate, slotTime, doctorID))
	}

	r.Log.Info("availabilityMongoRepository.Reserve succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)
	return nil
}

// Release removes slotTime from the doctor's reserved set for slotDate. A
// label that is already gone is not an error, so release can be retried and
// used as booking compensation without preconditions.
func (r *AvailabilityMongoRepository) Release(ctx context.Context, doctorID, slotDate, slotTime string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("availabilityMongoRepository.Release called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
		zap.String(constvars.LoggingSlotDateKey, slotDate),
		zap.String(constvars.LoggingSlotTimeKey, slotTime),
	)

	slotField := fmt.Sprintf("slotsBooked.%s", slotDate)
	filter := bson.M{"_id": doctorID}
	update := bson.M{
		"$pull": bson.M{slotField: slotTime},
	}

	result, err := r.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	if result.MatchedCount == 0 {
		return exceptions.ErrDoctorNotFound(fmt.Errorf("doctor %s not found", doctorID))
	}

	r.Log.Info("availabilityMongoRepository.Release succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)
	return nil
}
