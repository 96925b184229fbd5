package doctors

import (
	"context"
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/dto/responses"
	"sync"

	"go.uber.org/zap"
)

var (
	doctorUsecaseInstance contracts.DoctorUsecase
	onceDoctorUsecase     sync.Once
)

type doctorUsecase struct {
	DoctorRepository contracts.DoctorRepository
	Log              *zap.Logger
}

func NewDoctorUsecase(doctorRepository contracts.DoctorRepository, logger *zap.Logger) contracts.DoctorUsecase {
	onceDoctorUsecase.Do(func() {
		instance := &doctorUsecase{
			DoctorRepository: doctorRepository,
			Log:              logger,
		}
		doctorUsecaseInstance = instance
	})
	return doctorUsecaseInstance
}

func (uc *doctorUsecase) FindAll(ctx context.Context) ([]responses.Doctor, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("doctorUsecase.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	doctors, err := uc.DoctorRepository.FindAll(ctx)
	if err != nil {
		uc.Log.Error("doctorUsecase.FindAll error fetching doctors",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	response := make([]responses.Doctor, 0, len(doctors))
	for _, eachDoctor := range doctors {
		response = append(response, responses.Doctor{
			ID:         eachDoctor.ID,
			Name:       eachDoctor.Name,
			Speciality: eachDoctor.Speciality,
			Degree:     eachDoctor.Degree,
			Experience: eachDoctor.Experience,
			About:      eachDoctor.About,
			Fees:       eachDoctor.Fees,
			Image:      eachDoctor.Image,
			Available:  eachDoctor.Available,
		})
	}

	uc.Log.Info("doctorUsecase.FindAll succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResponseCountKey, len(response)),
	)
	return response, nil
}
