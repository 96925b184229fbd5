package locker

import (
	"context"
	"fmt"
	"medibook-service/internal/app/config"
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/pkg/constvars"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	slotLockServiceInstance contracts.SlotLockService
	onceSlotLockService     sync.Once
)

// slotLockService guards the reserve-then-insert section of booking with a
// short-lived redis key per slot. The TTL bounds how long a crashed booking
// can keep the slot fenced; the availability store stays the authority on who
// actually owns the slot.
type slotLockService struct {
	redisRepo contracts.RedisRepository
	ttl       time.Duration
	Log       *zap.Logger
}

func NewSlotLockService(repo contracts.RedisRepository, internalConfig *config.InternalConfig, logger *zap.Logger) contracts.SlotLockService {
	onceSlotLockService.Do(func() {
		instance := &slotLockService{
			redisRepo: repo,
			ttl:       time.Duration(internalConfig.Booking.SlotLockTTLInSeconds) * time.Second,
			Log:       logger,
		}
		slotLockServiceInstance = instance
	})
	return slotLockServiceInstance
}

func slotLockKey(doctorID, slotDate, slotTime string) string {
	return fmt.Sprintf(constvars.SlotLockKeyFormat, doctorID, slotDate, slotTime)
}

func (s *slotLockService) LockSlot(ctx context.Context, doctorID, slotDate, slotTime string) (bool, string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	key := slotLockKey(doctorID, slotDate, slotTime)

	fence := uuid.NewString()
	acquired, err := s.redisRepo.TrySetNX(ctx, key, fence, s.ttl)
	if err != nil {
		s.Log.Error("slotLockService.LockSlot error acquiring slot lock",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
		return false, "", err
	}
	if !acquired {
		s.Log.Info("slotLockService.LockSlot slot already locked by another booking",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
		)
		return false, "", nil
	}

	s.Log.Info("slotLockService.LockSlot acquired slot lock",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRedisKey, key),
		zap.String(constvars.LoggingLockValueKey, fence),
		zap.Duration(constvars.LoggingLockExpirationTimeKey, s.ttl),
	)
	return true, fence, nil
}

// UnlockSlot releases the slot only while the fence still matches, in a
// single server-side compare-and-delete. An expired lock or one re-acquired
// by another booking is left alone; either way the slot lock is no longer
// ours, so neither outcome is an error.
func (s *slotLockService) UnlockSlot(ctx context.Context, doctorID, slotDate, slotTime, fence string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	key := slotLockKey(doctorID, slotDate, slotTime)

	released, err := s.redisRepo.DeleteIfEquals(ctx, key, fence)
	if err != nil {
		s.Log.Error("slotLockService.UnlockSlot error releasing slot lock",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
		return err
	}
	if !released {
		s.Log.Info("slotLockService.UnlockSlot lock expired or held by another booking",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
			zap.String(constvars.LoggingLockValueKey, fence),
		)
		return nil
	}

	s.Log.Info("slotLockService.UnlockSlot released slot lock",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRedisKey, key),
	)
	return nil
}
