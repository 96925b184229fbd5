package payments

import (
	"context"
	"fmt"
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/dto/requests"
	"medibook-service/internal/pkg/dto/responses"
	"medibook-service/internal/pkg/exceptions"
	"sync"

	"go.uber.org/zap"
)

var (
	paymentUsecaseInstance contracts.PaymentUsecase
	oncePaymentUsecase     sync.Once
)

type paymentUsecase struct {
	AppointmentRepository contracts.AppointmentRepository
	PaymentGateway        contracts.PaymentGatewayService
	Log                   *zap.Logger
}

func NewPaymentUsecase(
	appointmentRepository contracts.AppointmentRepository,
	paymentGateway contracts.PaymentGatewayService,
	logger *zap.Logger,
) contracts.PaymentUsecase {
	oncePaymentUsecase.Do(func() {
		instance := &paymentUsecase{
			AppointmentRepository: appointmentRepository,
			PaymentGateway:        paymentGateway,
			Log:                   logger,
		}
		paymentUsecaseInstance = instance
	})
	return paymentUsecaseInstance
}

func (uc *paymentUsecase) CreateOrder(ctx context.Context, session *models.Session, appointmentID string) (*responses.PaymentOrder, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.CreateOrder called",
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

	isOwner := session.IsPatient() && session.PatientID == appointment.PatientID
	if !session.IsAdmin() && !isOwner {
		return nil, exceptions.ErrNotAppointmentOwner(fmt.Errorf("caller %s may not pay for appointment %s", session.UserID, appointmentID))
	}

	if appointment.IsCancelled() {
		return nil, exceptions.ErrAppointmentAlreadyCancelled(fmt.Errorf("appointment %s is cancelled", appointmentID))
	}
	if appointment.Paid {
		return nil, exceptions.ErrAppointmentAlreadyPaid(fmt.Errorf("appointment %s is already paid", appointmentID))
	}

	order, err := uc.PaymentGateway.CreateOrder(ctx, &requests.CreateOrderRequest{
		Amount:   int64(appointment.Amount * constvars.MinorUnitFactor),
		Currency: appointment.Currency,
		Receipt:  appointment.ID,
	})
	if err != nil {
		uc.Log.Error("paymentUsecase.CreateOrder error creating order at payment gateway",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("paymentUsecase.CreateOrder succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrderIDKey, order.ID),
		zap.Int64(constvars.LoggingAmountKey, order.Amount),
	)
	return order, nil
}

func (uc *paymentUsecase) ConfirmPayment(ctx context.Context, orderID string) (*responses.PaymentStatus, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.ConfirmPayment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrderIDKey, orderID),
	)

	order, err := uc.PaymentGateway.FetchOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	// The processor, not the caller, decides whether money moved. Anything
	// other than a paid order leaves the appointment untouched.
	if order.Status != constvars.OrderStatusPaid {
		uc.Log.Info("paymentUsecase.ConfirmPayment order not paid",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingOrderIDKey, orderID),
			zap.String(constvars.LoggingOrderStatusKey, order.Status),
		)
		return &responses.PaymentStatus{
			OrderID:       orderID,
			AppointmentID: order.Receipt,
			Paid:          false,
			Status:        order.Status,
		}, nil
	}

	appointmentID := order.Receipt
	appointment, err := uc.AppointmentRepository.FindByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, exceptions.ErrAppointmentNotFound(fmt.Errorf("appointment %s from order receipt not found", appointmentID))
	}

	if appointment.Paid {
		// Confirming the same order twice settles to the same answer.
		return uc.paidStatus(orderID, appointmentID), nil
	}
	if appointment.IsCancelled() {
		return nil, exceptions.ErrAppointmentAlreadyCancelled(fmt.Errorf("appointment %s was cancelled before payment settled", appointmentID))
	}

	matched, err := uc.AppointmentRepository.MarkPaid(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if !matched {
		return uc.resolvePaidConflict(ctx, orderID, appointmentID)
	}

	uc.Log.Info("paymentUsecase.ConfirmPayment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrderIDKey, orderID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)
	return uc.paidStatus(orderID, appointmentID), nil
}

func (uc *paymentUsecase) resolvePaidConflict(ctx context.Context, orderID, appointmentID string) (*responses.PaymentStatus, error) {
	appointment, err := uc.AppointmentRepository.FindByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, exceptions.ErrAppointmentNotFound(fmt.Errorf("appointment %s not found", appointmentID))
	}
	if appointment.Paid {
		return uc.paidStatus(orderID, appointmentID), nil
	}
	return nil, exceptions.ErrAppointmentAlreadyCancelled(fmt.Errorf("appointment %s was cancelled before payment settled", appointmentID))
}

func (uc *paymentUsecase) paidStatus(orderID, appointmentID string) *responses.PaymentStatus {
	return &responses.PaymentStatus{
		OrderID:       orderID,
		AppointmentID: appointmentID,
		Paid:          true,
		Status:        constvars.OrderStatusPaid,
	}
}
