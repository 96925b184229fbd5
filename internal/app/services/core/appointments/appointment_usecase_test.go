package appointments

import (
	"context"
	"errors"
	"fmt"
	"medibook-service/internal/app/config"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/dto/requests"
	"medibook-service/internal/pkg/exceptions"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memAvailabilityStore struct {
	mu       sync.Mutex
	reserved map[string]bool
}

func newMemAvailabilityStore() *memAvailabilityStore {
	return &memAvailabilityStore{reserved: make(map[string]bool)}
}

func slotKey(doctorID, slotDate, slotTime string) string {
	return doctorID + "|" + slotDate + "|" + slotTime
}

func (s *memAvailabilityStore) Reserve(ctx context.Context, doctorID, slotDate, slotTime string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := slotKey(doctorID, slotDate, slotTime)
	if s.reserved[key] {
		return exceptions.ErrSlotAlreadyBooked(fmt.Errorf("slot %s already reserved", key))
	}
	s.reserved[key] = true
	return nil
}

func (s *memAvailabilityStore) Release(ctx context.Context, doctorID, slotDate, slotTime string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.reserved, slotKey(doctorID, slotDate, slotTime))
	return nil
}

func (s *memAvailabilityStore) isReserved(doctorID, slotDate, slotTime string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reserved[slotKey(doctorID, slotDate, slotTime)]
}

type memAppointmentRepository struct {
	mu           sync.Mutex
	appointments map[string]*models.Appointment
	insertErr    error
}

func newMemAppointmentRepository() *memAppointmentRepository {
	return &memAppointmentRepository{appointments: make(map[string]*models.Appointment)}
}

func (r *memAppointmentRepository) Insert(ctx context.Context, appointment *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insertErr != nil {
		return r.insertErr
	}
	stored := *appointment
	r.appointments[appointment.ID] = &stored
	return nil
}

func (r *memAppointmentRepository) FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	appointment, ok := r.appointments[appointmentID]
	if !ok {
		return nil, nil
	}
	clone := *appointment
	return &clone, nil
}

func (r *memAppointmentRepository) FindByPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]models.Appointment, 0)
	for _, appointment := range r.appointments {
		if appointment.PatientID == patientID {
			result = append(result, *appointment)
		}
	}
	return result, nil
}

func (r *memAppointmentRepository) FindByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]models.Appointment, 0)
	for _, appointment := range r.appointments {
		if appointment.DoctorID == doctorID {
			result = append(result, *appointment)
		}
	}
	return result, nil
}

func (r *memAppointmentRepository) FindAll(ctx context.Context) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]models.Appointment, 0, len(r.appointments))
	for _, appointment := range r.appointments {
		result = append(result, *appointment)
	}
	return result, nil
}

func (r *memAppointmentRepository) FindLatest(ctx context.Context, limit int64) ([]models.Appointment, error) {
	all, _ := r.FindAll(ctx)
	if int64(len(all)) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *memAppointmentRepository) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.appointments)), nil
}

func (r *memAppointmentRepository) MarkCancelled(ctx context.Context, appointmentID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	appointment, ok := r.appointments[appointmentID]
	if !ok || appointment.Status != models.AppointmentStatusActive {
		return false, nil
	}
	appointment.Status = models.AppointmentStatusCancelled
	return true, nil
}

func (r *memAppointmentRepository) MarkCompleted(ctx context.Context, appointmentID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	appointment, ok := r.appointments[appointmentID]
	if !ok || appointment.Status != models.AppointmentStatusActive {
		return false, nil
	}
	appointment.Status = models.AppointmentStatusCompleted
	return true, nil
}

func (r *memAppointmentRepository) MarkPaid(ctx context.Context, appointmentID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	appointment, ok := r.appointments[appointmentID]
	if !ok || appointment.Paid || appointment.Status == models.AppointmentStatusCancelled {
		return false, nil
	}
	appointment.Paid = true
	return true, nil
}

type stubDoctorRepository struct {
	doctor *models.Doctor
}

func (s *stubDoctorRepository) FindByID(ctx context.Context, doctorID string) (*models.Doctor, error) {
	if s.doctor == nil || s.doctor.ID != doctorID {
		return nil, nil
	}
	clone := *s.doctor
	return &clone, nil
}

func (s *stubDoctorRepository) FindAll(ctx context.Context) ([]models.Doctor, error) {
	if s.doctor == nil {
		return []models.Doctor{}, nil
	}
	return []models.Doctor{*s.doctor}, nil
}

func (s *stubDoctorRepository) Count(ctx context.Context) (int64, error) {
	return 1, nil
}

type stubPatientRepository struct {
	patient *models.Patient
}

func (s *stubPatientRepository) FindByID(ctx context.Context, patientID string) (*models.Patient, error) {
	if s.patient == nil || s.patient.ID != patientID {
		return nil, nil
	}
	clone := *s.patient
	return &clone, nil
}

func (s *stubPatientRepository) Count(ctx context.Context) (int64, error) {
	return 1, nil
}

type memSlotLockService struct {
	mu    sync.Mutex
	locks map[string]string
	next  int
}

func newMemSlotLockService() *memSlotLockService {
	return &memSlotLockService{locks: make(map[string]string)}
}

func (s *memSlotLockService) LockSlot(ctx context.Context, doctorID, slotDate, slotTime string) (bool, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := slotKey(doctorID, slotDate, slotTime)
	if _, held := s.locks[key]; held {
		return false, "", nil
	}
	s.next++
	fence := fmt.Sprintf("fence-%d", s.next)
	s.locks[key] = fence
	return true, fence, nil
}

func (s *memSlotLockService) UnlockSlot(ctx context.Context, doctorID, slotDate, slotTime, fence string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := slotKey(doctorID, slotDate, slotTime)
	if held, ok := s.locks[key]; ok && held == fence {
		delete(s.locks, key)
	}
	return nil
}

type usecaseFixture struct {
	usecase      *appointmentUsecase
	repo         *memAppointmentRepository
	availability *memAvailabilityStore
}

func newFixture() *usecaseFixture {
	repo := newMemAppointmentRepository()
	availabilityStore := newMemAvailabilityStore()
	uc := &appointmentUsecase{
		AppointmentRepository: repo,
		DoctorRepository: &stubDoctorRepository{doctor: &models.Doctor{
			ID:        "doc-1",
			Name:      "Dr. Richard James",
			Fees:      50,
			Available: true,
			Address:   models.Address{Line1: "17th Cross, Richmond", Line2: "Circle, Ring Road, London"},
		}},
		PatientRepository: &stubPatientRepository{patient: &models.Patient{
			ID:      "pat-1",
			Name:    "John Carter",
			Address: models.Address{Line1: "55 Baker Street"},
		}},
		AvailabilityStore: availabilityStore,
		LockService:       newMemSlotLockService(),
		InternalConfig: &config.InternalConfig{
			PaymentGateway: config.PaymentGateway{Currency: "USD"},
			Booking: config.Booking{
				OpeningHour:          10,
				ClosingHour:          21,
				WindowDays:           7,
				SlotLockTTLInSeconds: 10,
			},
		},
		Log: zap.NewNop(),
		now: func() time.Time {
			return time.Date(2025, time.November, 1, 9, 0, 0, 0, time.Local)
		},
	}
	return &usecaseFixture{usecase: uc, repo: repo, availability: availabilityStore}
}

func patientSession() *models.Session {
	return &models.Session{SessionID: "sess-1", UserID: "user-1", Role: "patient", PatientID: "pat-1"}
}

func doctorSession() *models.Session {
	return &models.Session{SessionID: "sess-2", UserID: "user-2", Role: "doctor", DoctorID: "doc-1"}
}

func adminSession() *models.Session {
	return &models.Session{SessionID: "sess-3", UserID: "user-3", Role: "admin"}
}

func bookingRequest() *requests.CreateAppointmentRequest {
	return &requests.CreateAppointmentRequest{
		DoctorID: "doc-1",
		SlotDate: "3_11_2025",
		SlotTime: "10:30 AM",
	}
}

func assertStatusCode(t *testing.T, err error, expected int) {
	t.Helper()
	require.Error(t, err)
	var customErr *exceptions.CustomError
	require.True(t, errors.As(err, &customErr), "expected a CustomError, got %T", err)
	assert.Equal(t, expected, customErr.StatusCode)
}

func TestBook_Success(t *testing.T) {
	f := newFixture()

	response, err := f.usecase.Book(context.Background(), patientSession(), bookingRequest())
	require.NoError(t, err)

	assert.Equal(t, "pat-1", response.PatientID)
	assert.Equal(t, "doc-1", response.DoctorID)
	assert.Equal(t, "3_11_2025", response.SlotDate)
	assert.Equal(t, "10:30 AM", response.SlotTime)
	assert.Equal(t, "active", response.Status)
	assert.False(t, response.Paid)
	assert.Equal(t, float64(50), response.Amount)
	assert.Equal(t, "USD", response.Currency)

	expectedInstant := time.Date(2025, time.November, 3, 10, 30, 0, 0, time.Local)
	assert.Equal(t, expectedInstant.Unix(), response.ScheduledAt)

	// Snapshots are captured from the current profiles.
	assert.Equal(t, "John Carter", response.Patient.Name)
	assert.Equal(t, "Dr. Richard James", response.Doctor.Name)
	assert.Equal(t, "17th Cross, Richmond, Circle, Ring Road, London", response.Doctor.Address)
	assert.Equal(t, float64(50), response.DoctorFees)

	assert.True(t, f.availability.isReserved("doc-1", "3_11_2025", "10:30 AM"))

	stored, err := f.repo.FindByID(context.Background(), response.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, models.AppointmentStatusActive, stored.Status)
}

func TestBook_CanonicalizesPaddedInput(t *testing.T) {
	f := newFixture()

	request := bookingRequest()
	request.SlotDate = "03_11_2025"

	response, err := f.usecase.Book(context.Background(), patientSession(), request)
	require.NoError(t, err)
	assert.Equal(t, "3_11_2025", response.SlotDate)
	assert.True(t, f.availability.isReserved("doc-1", "3_11_2025", "10:30 AM"))
}

func TestBook_RejectsNonPatient(t *testing.T) {
	f := newFixture()

	_, err := f.usecase.Book(context.Background(), doctorSession(), bookingRequest())
	assertStatusCode(t, err, 403)

	count, _ := f.repo.Count(context.Background())
	assert.Zero(t, count)
}

func TestBook_RejectsPastSlot(t *testing.T) {
	f := newFixture()

	request := bookingRequest()
	request.SlotDate = "31_10_2025"

	_, err := f.usecase.Book(context.Background(), patientSession(), request)
	assertStatusCode(t, err, 400)
}

func TestBook_MatchesListingCutoff(t *testing.T) {
	f := newFixture()
	// At 10:05 the listing only shows labels after 10:30, so booking 10:30
	// itself must fail while 11:00 is still open.
	f.usecase.now = func() time.Time {
		return time.Date(2025, time.November, 3, 10, 5, 0, 0, time.Local)
	}

	_, err := f.usecase.Book(context.Background(), patientSession(), bookingRequest())
	assertStatusCode(t, err, 400)

	request := bookingRequest()
	request.SlotTime = "11:00 AM"
	_, err = f.usecase.Book(context.Background(), patientSession(), request)
	require.NoError(t, err)
}

func TestBook_RejectsSlotOutsideBookingHours(t *testing.T) {
	f := newFixture()

	request := bookingRequest()
	request.SlotTime = "9:30 PM"

	_, err := f.usecase.Book(context.Background(), patientSession(), request)
	assertStatusCode(t, err, 400)
}

func TestBook_SlotConflict(t *testing.T) {
	f := newFixture()

	_, err := f.usecase.Book(context.Background(), patientSession(), bookingRequest())
	require.NoError(t, err)

	_, err = f.usecase.Book(context.Background(), patientSession(), bookingRequest())
	assertStatusCode(t, err, 409)

	count, _ := f.repo.Count(context.Background())
	assert.Equal(t, int64(1), count)
}

func TestBook_ReleasesSlotWhenInsertFails(t *testing.T) {
	f := newFixture()
	f.repo.insertErr = errors.New("write failed")

	_, err := f.usecase.Book(context.Background(), patientSession(), bookingRequest())
	require.Error(t, err)

	assert.False(t, f.availability.isReserved("doc-1", "3_11_2025", "10:30 AM"),
		"failed insert must not leave the slot reserved")
}

func TestBook_ConcurrentRequestsExactlyOneWinner(t *testing.T) {
	f := newFixture()

	const attempts = 8
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.usecase.Book(context.Background(), patientSession(), bookingRequest())
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			var customErr *exceptions.CustomError
			require.True(t, errors.As(err, &customErr))
			assert.Equal(t, 409, customErr.StatusCode)
		}
	}
	assert.Equal(t, 1, winners)

	count, _ := f.repo.Count(context.Background())
	assert.Equal(t, int64(1), count)
}

func TestCancel_ByOwnerReleasesSlot(t *testing.T) {
	f := newFixture()

	booked, err := f.usecase.Book(context.Background(), patientSession(), bookingRequest())
	require.NoError(t, err)

	cancelled, err := f.usecase.Cancel(context.Background(), patientSession(), booked.ID)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", cancelled.Status)

	assert.False(t, f.availability.isReserved("doc-1", "3_11_2025", "10:30 AM"))

	// Cancelled appointments stay behind as history.
	stored, _ := f.repo.FindByID(context.Background(), booked.ID)
	require.NotNil(t, stored)
	assert.Equal(t, models.AppointmentStatusCancelled, stored.Status)
}

func TestCancel_ByAdmin(t *testing.T) {
	f := newFixture()

	booked, err := f.usecase.Book(context.Background(), patientSession(), bookingRequest())
	require.NoError(t, err)

	_, err = f.usecase.Cancel(context.Background(), adminSession(), booked.ID)
	require.NoError(t, err)
}

func TestCancel_RejectsOtherPatient(t *testing.T) {
	f := newFixture()

	booked, err := f.usecase.Book(context.Background(), patientSession(), bookingRequest())
	require.NoError(t, err)

	other := &models.Session{SessionID: "sess-9", UserID: "user-9", Role: "patient", PatientID: "pat-9"}
	_, err = f.usecase.Cancel(context.Background(), other, booked.ID)
	assertStatusCode(t, err, 403)
}

func TestCancel_RejectsDoctor(t *testing.T) {
	f := newFixture()

	booked, err := f.usecase.Book(context.Background(), patientSession(), bookingRequest())
	require.NoError(t, err)

	// Not even the appointment's own doctor may cancel a patient's booking.
	_, err = f.usecase.Cancel(context.Background(), doctorSession(), booked.ID)
	assertStatusCode(t, err, 403)

	assert.True(t, f.availability.isReserved("doc-1", "3_11_2025", "10:30 AM"))
	stored, _ := f.repo.FindByID(context.Background(), booked.ID)
	require.NotNil(t, stored)
	assert.Equal(t, models.AppointmentStatusActive, stored.Status)
}

func TestCancel_AlreadyTerminal(t *testing.T) {
	f := newFixture()

	booked, err := f.usecase.Book(context.Background(), patientSession(), bookingRequest())
	require.NoError(t, err)

	_, err = f.usecase.Cancel(context.Background(), patientSession(), booked.ID)
	require.NoError(t, err)

	_, err = f.usecase.Cancel(context.Background(), patientSession(), booked.ID)
	assertStatusCode(t, err, 409)
}

func TestCancel_NotFound(t *testing.T) {
	f := newFixture()

	_, err := f.usecase.Cancel(context.Background(), patientSession(), "missing")
	assertStatusCode(t, err, 404)
}

func TestComplete_ByAppointmentDoctor(t *testing.T) {
	f := newFixture()

	booked, err := f.usecase.Book(context.Background(), patientSession(), bookingRequest())
	require.NoError(t, err)

	completed, err := f.usecase.Complete(context.Background(), doctorSession(), booked.ID)
	require.NoError(t, err)
	assert.Equal(t, "completed", completed.Status)

	// Completion consumes the slot, it is not handed back.
	assert.True(t, f.availability.isReserved("doc-1", "3_11_2025", "10:30 AM"))
}

func TestComplete_RejectsOtherDoctor(t *testing.T) {
	f := newFixture()

	booked, err := f.usecase.Book(context.Background(), patientSession(), bookingRequest())
	require.NoError(t, err)

	other := &models.Session{SessionID: "sess-8", UserID: "user-8", Role: "doctor", DoctorID: "doc-9"}
	_, err = f.usecase.Complete(context.Background(), other, booked.ID)
	assertStatusCode(t, err, 403)
}

func TestComplete_AfterCancelRejected(t *testing.T) {
	f := newFixture()

	booked, err := f.usecase.Book(context.Background(), patientSession(), bookingRequest())
	require.NoError(t, err)

	_, err = f.usecase.Cancel(context.Background(), patientSession(), booked.ID)
	require.NoError(t, err)

	_, err = f.usecase.Complete(context.Background(), doctorSession(), booked.ID)
	assertStatusCode(t, err, 409)
}

func TestFindForCaller_ScopesByRole(t *testing.T) {
	f := newFixture()

	booked, err := f.usecase.Book(context.Background(), patientSession(), bookingRequest())
	require.NoError(t, err)

	forPatient, err := f.usecase.FindForCaller(context.Background(), patientSession())
	require.NoError(t, err)
	require.Len(t, forPatient, 1)
	assert.Equal(t, booked.ID, forPatient[0].ID)

	forDoctor, err := f.usecase.FindForCaller(context.Background(), doctorSession())
	require.NoError(t, err)
	assert.Len(t, forDoctor, 1)

	other := &models.Session{SessionID: "sess-9", UserID: "user-9", Role: "patient", PatientID: "pat-9"}
	forOther, err := f.usecase.FindForCaller(context.Background(), other)
	require.NoError(t, err)
	assert.Empty(t, forOther)
}

func TestFindAll_AdminOnly(t *testing.T) {
	f := newFixture()

	_, err := f.usecase.FindAll(context.Background(), patientSession())
	assertStatusCode(t, err, 403)

	all, err := f.usecase.FindAll(context.Background(), adminSession())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestDashboard_AdminOnly(t *testing.T) {
	f := newFixture()

	_, err := f.usecase.Dashboard(context.Background(), doctorSession())
	assertStatusCode(t, err, 403)

	_, err = f.usecase.Book(context.Background(), patientSession(), bookingRequest())
	require.NoError(t, err)

	dashboard, err := f.usecase.Dashboard(context.Background(), adminSession())
	require.NoError(t, err)
	assert.Equal(t, int64(1), dashboard.Doctors)
	assert.Equal(t, int64(1), dashboard.Patients)
	assert.Equal(t, int64(1), dashboard.Appointments)
	assert.Len(t, dashboard.LatestAppointments, 1)
}
