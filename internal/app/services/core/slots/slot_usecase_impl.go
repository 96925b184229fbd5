package slots

import (
	"context"
	"fmt"
	"medibook-service/internal/app/config"
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/dto/responses"
	"medibook-service/internal/pkg/exceptions"
	"medibook-service/internal/pkg/utils"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	slotUsecaseInstance contracts.SlotUsecase
	onceSlotUsecase     sync.Once
)

type slotUsecase struct {
	DoctorRepository contracts.DoctorRepository
	InternalConfig   *config.InternalConfig
	Log              *zap.Logger
	now              func() time.Time
}

func NewSlotUsecase(
	doctorRepository contracts.DoctorRepository,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.SlotUsecase {
	onceSlotUsecase.Do(func() {
		instance := &slotUsecase{
			DoctorRepository: doctorRepository,
			InternalConfig:   internalConfig,
			Log:              logger,
			now:              time.Now,
		}
		slotUsecaseInstance = instance
	})
	return slotUsecaseInstance
}

func (uc *slotUsecase) ListOpenSlots(ctx context.Context, doctorID string, windowDays int) ([]responses.DaySlots, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("slotUsecase.ListOpenSlots called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
		zap.Int(constvars.LoggingWindowDaysKey, windowDays),
	)

	if windowDays <= 0 {
		windowDays = uc.InternalConfig.Booking.WindowDays
	}

	doctor, err := uc.DoctorRepository.FindByID(ctx, doctorID)
	if err != nil {
		uc.Log.Error("slotUsecase.ListOpenSlots error fetching doctor",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if doctor == nil {
		return nil, exceptions.ErrDoctorNotFound(fmt.Errorf("doctor %s not found", doctorID))
	}
	if !doctor.Available {
		return nil, exceptions.ErrDoctorNotAvailable(fmt.Errorf("doctor %s is not taking appointments", doctorID))
	}

	now := uc.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	cutoff := utils.CeilToHalfHour(now)

	window := make([]responses.DaySlots, 0, windowDays)
	for dayOffset := 0; dayOffset < windowDays; dayOffset++ {
		day := today.AddDate(0, 0, dayOffset)
		dateKey := utils.FormatSlotDateKey(day)
		reserved := doctor.SlotsBooked[dateKey]

		times := make([]string, 0)
		opening := day.Add(time.Duration(uc.InternalConfig.Booking.OpeningHour) * time.Hour)
		closing := day.Add(time.Duration(uc.InternalConfig.Booking.ClosingHour) * time.Hour)
		for slot := opening; slot.Before(closing); slot = slot.Add(constvars.SlotGranularityMinute * time.Minute) {
			if dayOffset == 0 && !slot.After(cutoff) {
				continue
			}
			label := utils.FormatSlotTimeLabel(slot)
			if containsLabel(reserved, label) {
				continue
			}
			times = append(times, label)
		}

		window = append(window, responses.DaySlots{
			Date:  dateKey,
			Times: times,
		})
	}

	uc.Log.Info("slotUsecase.ListOpenSlots succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
		zap.Int(constvars.LoggingResponseCountKey, len(window)),
	)
	return window, nil
}

func containsLabel(labels []string, label string) bool {
	for _, each := range labels {
		if each == label {
			return true
		}
	}
	return false
}
