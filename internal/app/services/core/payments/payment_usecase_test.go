package payments

import (
	"context"
	"errors"
	"fmt"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/dto/requests"
	"medibook-service/internal/pkg/dto/responses"
	"medibook-service/internal/pkg/exceptions"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubAppointmentRepository struct {
	mu           sync.Mutex
	appointments map[string]*models.Appointment
}

func newStubAppointmentRepository(appointments ...*models.Appointment) *stubAppointmentRepository {
	repo := &stubAppointmentRepository{appointments: make(map[string]*models.Appointment)}
	for _, appointment := range appointments {
		clone := *appointment
		repo.appointments[appointment.ID] = &clone
	}
	return repo
}

func (r *stubAppointmentRepository) Insert(ctx context.Context, appointment *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *appointment
	r.appointments[appointment.ID] = &clone
	return nil
}

func (r *stubAppointmentRepository) FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	appointment, ok := r.appointments[appointmentID]
	if !ok {
		return nil, nil
	}
	clone := *appointment
	return &clone, nil
}

func (r *stubAppointmentRepository) FindByPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	return nil, nil
}

func (r *stubAppointmentRepository) FindByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	return nil, nil
}

func (r *stubAppointmentRepository) FindAll(ctx context.Context) ([]models.Appointment, error) {
	return nil, nil
}

func (r *stubAppointmentRepository) FindLatest(ctx context.Context, limit int64) ([]models.Appointment, error) {
	return nil, nil
}

func (r *stubAppointmentRepository) Count(ctx context.Context) (int64, error) {
	return 0, nil
}

func (r *stubAppointmentRepository) MarkCancelled(ctx context.Context, appointmentID string) (bool, error) {
	return false, nil
}

func (r *stubAppointmentRepository) MarkCompleted(ctx context.Context, appointmentID string) (bool, error) {
	return false, nil
}

func (r *stubAppointmentRepository) MarkPaid(ctx context.Context, appointmentID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	appointment, ok := r.appointments[appointmentID]
	if !ok || appointment.Paid || appointment.Status == models.AppointmentStatusCancelled {
		return false, nil
	}
	appointment.Paid = true
	return true, nil
}

type stubPaymentGateway struct {
	createdOrders []*requests.CreateOrderRequest
	orders        map[string]*responses.PaymentOrder
	createErr     error
	fetchErr      error
}

func newStubPaymentGateway() *stubPaymentGateway {
	return &stubPaymentGateway{orders: make(map[string]*responses.PaymentOrder)}
}

func (g *stubPaymentGateway) CreateOrder(ctx context.Context, request *requests.CreateOrderRequest) (*responses.PaymentOrder, error) {
	if g.createErr != nil {
		return nil, g.createErr
	}
	g.createdOrders = append(g.createdOrders, request)
	order := &responses.PaymentOrder{
		ID:       fmt.Sprintf("order_%d", len(g.createdOrders)),
		Amount:   request.Amount,
		Currency: request.Currency,
		Receipt:  request.Receipt,
		Status:   "created",
	}
	g.orders[order.ID] = order
	return order, nil
}

func (g *stubPaymentGateway) FetchOrder(ctx context.Context, orderID string) (*responses.PaymentOrder, error) {
	if g.fetchErr != nil {
		return nil, g.fetchErr
	}
	order, ok := g.orders[orderID]
	if !ok {
		return nil, exceptions.ErrPaymentOrderNotFound(fmt.Errorf("order %s not found", orderID))
	}
	return order, nil
}

func (g *stubPaymentGateway) settle(orderID, status string) {
	g.orders[orderID].Status = status
}

func activeAppointment() *models.Appointment {
	return &models.Appointment{
		ID:        "appt-1",
		PatientID: "pat-1",
		DoctorID:  "doc-1",
		SlotDate:  "3_11_2025",
		SlotTime:  "10:30 AM",
		Amount:    50,
		Currency:  "USD",
		Status:    models.AppointmentStatusActive,
	}
}

func ownerSession() *models.Session {
	return &models.Session{SessionID: "sess-1", UserID: "user-1", Role: "patient", PatientID: "pat-1"}
}

func newPaymentFixture(appointment *models.Appointment) (*paymentUsecase, *stubAppointmentRepository, *stubPaymentGateway) {
	var repo *stubAppointmentRepository
	if appointment != nil {
		repo = newStubAppointmentRepository(appointment)
	} else {
		repo = newStubAppointmentRepository()
	}
	gateway := newStubPaymentGateway()
	uc := &paymentUsecase{
		AppointmentRepository: repo,
		PaymentGateway:        gateway,
		Log:                   zap.NewNop(),
	}
	return uc, repo, gateway
}

func assertPaymentStatusCode(t *testing.T, err error, expected int) {
	t.Helper()
	require.Error(t, err)
	var customErr *exceptions.CustomError
	require.True(t, errors.As(err, &customErr), "expected a CustomError, got %T", err)
	assert.Equal(t, expected, customErr.StatusCode)
}

func TestCreateOrder_AmountInMinorUnits(t *testing.T) {
	uc, _, gateway := newPaymentFixture(activeAppointment())

	order, err := uc.CreateOrder(context.Background(), ownerSession(), "appt-1")
	require.NoError(t, err)

	require.Len(t, gateway.createdOrders, 1)
	assert.Equal(t, int64(5000), gateway.createdOrders[0].Amount, "a 50 fee is 5000 minor units")
	assert.Equal(t, "USD", gateway.createdOrders[0].Currency)
	assert.Equal(t, "appt-1", gateway.createdOrders[0].Receipt, "receipt carries the appointment id")

	assert.Equal(t, int64(5000), order.Amount)
	assert.Equal(t, "created", order.Status)
}

func TestCreateOrder_RejectsOtherPatient(t *testing.T) {
	uc, _, _ := newPaymentFixture(activeAppointment())

	other := &models.Session{SessionID: "sess-9", UserID: "user-9", Role: "patient", PatientID: "pat-9"}
	_, err := uc.CreateOrder(context.Background(), other, "appt-1")
	assertPaymentStatusCode(t, err, 403)
}

func TestCreateOrder_RejectsCancelledAppointment(t *testing.T) {
	appointment := activeAppointment()
	appointment.Status = models.AppointmentStatusCancelled
	uc, _, _ := newPaymentFixture(appointment)

	_, err := uc.CreateOrder(context.Background(), ownerSession(), "appt-1")
	assertPaymentStatusCode(t, err, 409)
}

func TestCreateOrder_RejectsPaidAppointment(t *testing.T) {
	appointment := activeAppointment()
	appointment.Paid = true
	uc, _, _ := newPaymentFixture(appointment)

	_, err := uc.CreateOrder(context.Background(), ownerSession(), "appt-1")
	assertPaymentStatusCode(t, err, 409)
}

func TestCreateOrder_AppointmentNotFound(t *testing.T) {
	uc, _, _ := newPaymentFixture(nil)

	_, err := uc.CreateOrder(context.Background(), ownerSession(), "missing")
	assertPaymentStatusCode(t, err, 404)
}

func TestConfirmPayment_MarksAppointmentPaid(t *testing.T) {
	uc, repo, gateway := newPaymentFixture(activeAppointment())

	order, err := uc.CreateOrder(context.Background(), ownerSession(), "appt-1")
	require.NoError(t, err)
	gateway.settle(order.ID, "paid")

	status, err := uc.ConfirmPayment(context.Background(), order.ID)
	require.NoError(t, err)
	assert.True(t, status.Paid)
	assert.Equal(t, "appt-1", status.AppointmentID)

	stored, _ := repo.FindByID(context.Background(), "appt-1")
	assert.True(t, stored.Paid)
}

func TestConfirmPayment_NonPaidOrderIsNoOp(t *testing.T) {
	uc, repo, gateway := newPaymentFixture(activeAppointment())

	order, err := uc.CreateOrder(context.Background(), ownerSession(), "appt-1")
	require.NoError(t, err)
	gateway.settle(order.ID, "attempted")

	status, err := uc.ConfirmPayment(context.Background(), order.ID)
	require.NoError(t, err, "a pending order is a valid outcome, not an error")
	assert.False(t, status.Paid)
	assert.Equal(t, "attempted", status.Status)

	stored, _ := repo.FindByID(context.Background(), "appt-1")
	assert.False(t, stored.Paid, "appointment must stay untouched")
}

func TestConfirmPayment_Idempotent(t *testing.T) {
	uc, _, gateway := newPaymentFixture(activeAppointment())

	order, err := uc.CreateOrder(context.Background(), ownerSession(), "appt-1")
	require.NoError(t, err)
	gateway.settle(order.ID, "paid")

	first, err := uc.ConfirmPayment(context.Background(), order.ID)
	require.NoError(t, err)
	second, err := uc.ConfirmPayment(context.Background(), order.ID)
	require.NoError(t, err)

	assert.True(t, first.Paid)
	assert.True(t, second.Paid)
}

func TestConfirmPayment_CancelledAppointment(t *testing.T) {
	uc, repo, gateway := newPaymentFixture(activeAppointment())

	order, err := uc.CreateOrder(context.Background(), ownerSession(), "appt-1")
	require.NoError(t, err)

	// Cancellation wins the race before the payment settles.
	repo.appointments["appt-1"].Status = models.AppointmentStatusCancelled
	gateway.settle(order.ID, "paid")

	_, err = uc.ConfirmPayment(context.Background(), order.ID)
	assertPaymentStatusCode(t, err, 409)
}

func TestConfirmPayment_UnknownOrder(t *testing.T) {
	uc, _, _ := newPaymentFixture(activeAppointment())

	_, err := uc.ConfirmPayment(context.Background(), "order_missing")
	assertPaymentStatusCode(t, err, 404)
}
