package appointments

import (
	"context"
	"fmt"
	"medibook-service/internal/app/config"
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/dto/requests"
	"medibook-service/internal/pkg/dto/responses"
	"medibook-service/internal/pkg/exceptions"
	"medibook-service/internal/pkg/utils"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

const dashboardLatestAppointments = 5

var (
	appointmentUsecaseInstance contracts.AppointmentUsecase
	onceAppointmentUsecase     sync.Once
)

type appointmentUsecase struct {
	AppointmentRepository contracts.AppointmentRepository
	DoctorRepository      contracts.DoctorRepository
	PatientRepository     contracts.PatientRepository
	AvailabilityStore     contracts.AvailabilityStore
	LockService           contracts.SlotLockService
	InternalConfig        *config.InternalConfig
	Log                   *zap.Logger
	now                   func() time.Time
}

func NewAppointmentUsecase(
	appointmentRepository contracts.AppointmentRepository,
	doctorRepository contracts.DoctorRepository,
	patientRepository contracts.PatientRepository,
	availabilityStore contracts.AvailabilityStore,
	lockService contracts.SlotLockService,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.AppointmentUsecase {
	onceAppointmentUsecase.Do(func() {
		instance := &appointmentUsecase{
			AppointmentRepository: appointmentRepository,
			DoctorRepository:      doctorRepository,
			PatientRepository:     patientRepository,
			AvailabilityStore:     availabilityStore,
			LockService:           lockService,
			InternalConfig:        internalConfig,
			Log:                   logger,
			now:                   time.Now,
		}
		appointmentUsecaseInstance = instance
	})
	return appointmentUsecaseInstance
}

func (uc *appointmentUsecase) Book(ctx context.Context, session *models.Session, request *requests.CreateAppointmentRequest) (*responses.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.Book called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, request.DoctorID),
		zap.String(constvars.LoggingSlotDateKey, request.SlotDate),
		zap.String(constvars.LoggingSlotTimeKey, request.SlotTime),
	)

	if session.IsNotPatient() {
		return nil, exceptions.ErrNotMatchRoleType(fmt.Errorf("role %s cannot book appointments", session.Role))
	}

	slotInstant, err := utils.SlotInstant(request.SlotDate, request.SlotTime)
	if err != nil {
		return nil, exceptions.ErrCannotParseTime(err)
	}
	// Canonical key and label, so stored reservations always match what the
	// slot listing produces regardless of how the client padded its input.
	slotDate := utils.FormatSlotDateKey(slotInstant)
	slotTime := utils.FormatSlotTimeLabel(slotInstant)

	if err := uc.checkBookable(slotInstant); err != nil {
		uc.Log.Warn("appointmentUsecase.Book slot not bookable",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSlotDateKey, slotDate),
			zap.String(constvars.LoggingSlotTimeKey, slotTime),
			zap.Error(err),
		)
		return nil, err
	}

	patient, err := uc.PatientRepository.FindByID(ctx, session.PatientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, exceptions.ErrPatientNotFound(fmt.Errorf("patient %s not found", session.PatientID))
	}

	doctor, err := uc.DoctorRepository.FindByID(ctx, request.DoctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, exceptions.ErrDoctorNotFound(fmt.Errorf("doctor %s not found", request.DoctorID))
	}
	if !doctor.Available {
		return nil, exceptions.ErrDoctorNotAvailable(fmt.Errorf("doctor %s is not taking appointments", doctor.ID))
	}

	acquired, lockFence, err := uc.LockService.LockSlot(ctx, doctor.ID, slotDate, slotTime)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, exceptions.ErrSlotAlreadyBooked(fmt.Errorf("slot %s %s is being booked by another request", slotDate, slotTime))
	}
	defer func() {
		if unlockErr := uc.LockService.UnlockSlot(ctx, doctor.ID, slotDate, slotTime, lockFence); unlockErr != nil {
			uc.Log.Error("appointmentUsecase.Book error releasing slot lock",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingDoctorIDKey, doctor.ID),
				zap.String(constvars.LoggingSlotDateKey, slotDate),
				zap.String(constvars.LoggingSlotTimeKey, slotTime),
				zap.Error(unlockErr),
			)
		}
	}()

	// The reservation is the one atomic step that decides who gets the slot;
	// the lock above only narrows the race window.
	if err := uc.AvailabilityStore.Reserve(ctx, doctor.ID, slotDate, slotTime); err != nil {
		return nil, err
	}

	bookedAt := uc.now()
	appointment := &models.Appointment{
		ID:          utils.GenerateAppointmentID(),
		PatientID:   patient.ID,
		DoctorID:    doctor.ID,
		SlotDate:    slotDate,
		SlotTime:    slotTime,
		ScheduledAt: slotInstant.Unix(),
		Amount:      doctor.Fees,
		Currency:    uc.InternalConfig.PaymentGateway.Currency,
		Status:      models.AppointmentStatusActive,
		Paid:        false,
		PatientSnapshot: models.PatientSnapshot{
			Name:    patient.Name,
			Image:   patient.Image,
			Address: patient.Address,
		},
		DoctorSnapshot: models.DoctorSnapshot{
			Name:    doctor.Name,
			Image:   doctor.Image,
			Address: doctor.Address,
			Fees:    doctor.Fees,
		},
		TimeModel: models.TimeModel{
			CreatedAt: bookedAt,
			UpdatedAt: bookedAt,
		},
	}

	if err := uc.AppointmentRepository.Insert(ctx, appointment); err != nil {
		uc.Log.Error("appointmentUsecase.Book error inserting appointment, releasing reserved slot",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
			zap.Error(err),
		)
		if releaseErr := uc.AvailabilityStore.Release(ctx, doctor.ID, slotDate, slotTime); releaseErr != nil {
			uc.Log.Error("appointmentUsecase.Book error releasing slot after failed insert",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingDoctorIDKey, doctor.ID),
				zap.Error(releaseErr),
			)
		}
		return nil, err
	}

	uc.Log.Info("appointmentUsecase.Book succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
	)
	response := buildAppointmentResponse(appointment)
	return &response, nil
}

func (uc *appointmentUsecase) Cancel(ctx context.Context, session *models.Session, appointmentID string) (*responses.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.Cancel called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	appointment, err := uc.AppointmentRepository.FindByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, exceptions.ErrAppointmentNotFound(fmt.Errorf("appointment %s not found", appointmentID))
	}

	if !uc.mayCancel(session, appointment) {
		return nil, exceptions.ErrNotAppointmentOwner(fmt.Errorf("caller %s may not cancel appointment %s", session.UserID, appointmentID))
	}

	if appointment.IsTerminal() {
		return nil, exceptions.ErrAppointmentAlreadyTerminal(fmt.Errorf("appointment %s is already %s", appointmentID, appointment.Status))
	}

	matched, err := uc.AppointmentRepository.MarkCancelled(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if !matched {
		// Lost a race against another transition; reload to report precisely.
		return nil, uc.resolveTransitionConflict(ctx, appointmentID)
	}

	if err := uc.AvailabilityStore.Release(ctx, appointment.DoctorID, appointment.SlotDate, appointment.SlotTime); err != nil {
		uc.Log.Error("appointmentUsecase.Cancel error releasing slot",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
			zap.Error(err),
		)
		return nil, err
	}

	appointment.Status = models.AppointmentStatusCancelled
	uc.Log.Info("appointmentUsecase.Cancel succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)
	response := buildAppointmentResponse(appointment)
	return &response, nil
}

func (uc *appointmentUsecase) Complete(ctx context.Context, session *models.Session, appointmentID string) (*responses.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.Complete called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	appointment, err := uc.AppointmentRepository.FindByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, exceptions.ErrAppointmentNotFound(fmt.Errorf("appointment %s not found", appointmentID))
	}

	isOwnDoctor := session.IsDoctor() && session.DoctorID == appointment.DoctorID
	if !session.IsAdmin() && !isOwnDoctor {
		return nil, exceptions.ErrNotMatchRoleType(fmt.Errorf("caller %s may not complete appointment %s", session.UserID, appointmentID))
	}

	if appointment.IsTerminal() {
		return nil, exceptions.ErrAppointmentAlreadyTerminal(fmt.Errorf("appointment %s is already %s", appointmentID, appointment.Status))
	}

	matched, err := uc.AppointmentRepository.MarkCompleted(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, uc.resolveTransitionConflict(ctx, appointmentID)
	}

	appointment.Status = models.AppointmentStatusCompleted
	uc.Log.Info("appointmentUsecase.Complete succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)
	response := buildAppointmentResponse(appointment)
	return &response, nil
}

func (uc *appointmentUsecase) FindForCaller(ctx context.Context, session *models.Session) ([]responses.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.FindForCaller called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Any(constvars.LoggingSessionDataKey, session),
	)

	var appointments []models.Appointment
	var err error
	switch {
	case session.IsPatient():
		appointments, err = uc.AppointmentRepository.FindByPatient(ctx, session.PatientID)
	case session.IsDoctor():
		appointments, err = uc.AppointmentRepository.FindByDoctor(ctx, session.DoctorID)
	default:
		appointments, err = uc.AppointmentRepository.FindAll(ctx)
	}
	if err != nil {
		return nil, err
	}

	response := make([]responses.Appointment, 0, len(appointments))
	for index := range appointments {
		response = append(response, buildAppointmentResponse(&appointments[index]))
	}

	uc.Log.Info("appointmentUsecase.FindForCaller succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResponseCountKey, len(response)),
	)
	return response, nil
}

func (uc *appointmentUsecase) FindAll(ctx context.Context, session *models.Session) ([]responses.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	if !session.IsAdmin() {
		return nil, exceptions.ErrNotMatchRoleType(fmt.Errorf("role %s cannot list all appointments", session.Role))
	}

	appointments, err := uc.AppointmentRepository.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	response := make([]responses.Appointment, 0, len(appointments))
	for index := range appointments {
		response = append(response, buildAppointmentResponse(&appointments[index]))
	}
	return response, nil
}

func (uc *appointmentUsecase) Dashboard(ctx context.Context, session *models.Session) (*responses.Dashboard, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.Dashboard called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	if !session.IsAdmin() {
		return nil, exceptions.ErrNotMatchRoleType(fmt.Errorf("role %s cannot access the dashboard", session.Role))
	}

	doctorCount, err := uc.DoctorRepository.Count(ctx)
	if err != nil {
		return nil, err
	}
	patientCount, err := uc.PatientRepository.Count(ctx)
	if err != nil {
		return nil, err
	}
	appointmentCount, err := uc.AppointmentRepository.Count(ctx)
	if err != nil {
		return nil, err
	}
	latest, err := uc.AppointmentRepository.FindLatest(ctx, dashboardLatestAppointments)
	if err != nil {
		return nil, err
	}

	latestResponse := make([]responses.Appointment, 0, len(latest))
	for index := range latest {
		latestResponse = append(latestResponse, buildAppointmentResponse(&latest[index]))
	}

	uc.Log.Info("appointmentUsecase.Dashboard succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return &responses.Dashboard{
		Doctors:            doctorCount,
		Patients:           patientCount,
		Appointments:       appointmentCount,
		LatestAppointments: latestResponse,
	}, nil
}

// checkBookable applies the same cutoff the slot listing uses: a label is
// bookable only when strictly after now rounded up to the next half hour, so
// Book never accepts a slot the listing already hides.
func (uc *appointmentUsecase) checkBookable(slotInstant time.Time) error {
	cutoff := utils.CeilToHalfHour(uc.now())
	if !slotInstant.After(cutoff) {
		return exceptions.ErrSlotNotBookable(fmt.Errorf("slot starts at %s which is at or before the booking cutoff %s", slotInstant, cutoff))
	}
	hour := slotInstant.Hour()
	if hour < uc.InternalConfig.Booking.OpeningHour || hour >= uc.InternalConfig.Booking.ClosingHour {
		return exceptions.ErrSlotNotBookable(fmt.Errorf("slot hour %d is outside booking hours", hour))
	}
	return nil
}

// Only the booking patient or an admin may cancel; a doctor cannot clear
// their own calendar by cancelling patients' appointments.
func (uc *appointmentUsecase) mayCancel(session *models.Session, appointment *models.Appointment) bool {
	if session.IsAdmin() {
		return true
	}
	return session.IsPatient() && session.PatientID == appointment.PatientID
}

func (uc *appointmentUsecase) resolveTransitionConflict(ctx context.Context, appointmentID string) error {
	appointment, err := uc.AppointmentRepository.FindByID(ctx, appointmentID)
	if err != nil {
		return err
	}
	if appointment == nil {
		return exceptions.ErrAppointmentNotFound(fmt.Errorf("appointment %s not found", appointmentID))
	}
	return exceptions.ErrAppointmentAlreadyTerminal(fmt.Errorf("appointment %s is already %s", appointmentID, appointment.Status))
}

func buildAppointmentResponse(appointment *models.Appointment) responses.Appointment {
	return responses.Appointment{
		ID:          appointment.ID,
		PatientID:   appointment.PatientID,
		DoctorID:    appointment.DoctorID,
		SlotDate:    appointment.SlotDate,
		SlotTime:    appointment.SlotTime,
		ScheduledAt: appointment.ScheduledAt,
		Amount:      appointment.Amount,
		Currency:    appointment.Currency,
		Status:      string(appointment.Status),
		Paid:        appointment.Paid,
		Patient: responses.AppointmentParty{
			Name:    appointment.PatientSnapshot.Name,
			Image:   appointment.PatientSnapshot.Image,
			Address: formatAddress(appointment.PatientSnapshot.Address),
		},
		Doctor: responses.AppointmentParty{
			Name:    appointment.DoctorSnapshot.Name,
			Image:   appointment.DoctorSnapshot.Image,
			Address: formatAddress(appointment.DoctorSnapshot.Address),
		},
		DoctorFees: appointment.DoctorSnapshot.Fees,
	}
}

func formatAddress(address models.Address) string {
	parts := make([]string, 0, 2)
	if address.Line1 != "" {
		parts = append(parts, address.Line1)
	}
	if address.Line2 != "" {
		parts = append(parts, address.Line2)
	}
	return strings.Join(parts, ", ")
}
