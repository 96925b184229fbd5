package controllers

import (
	"context"
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/dto/requests"
	"medibook-service/internal/pkg/exceptions"
	"medibook-service/internal/pkg/utils"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type PaymentController struct {
	Log            *zap.Logger
	SessionService contracts.SessionService
	PaymentUsecase contracts.PaymentUsecase
}

func NewPaymentController(logger *zap.Logger, sessionService contracts.SessionService, paymentUsecase contracts.PaymentUsecase) *PaymentController {
	return &PaymentController{
		Log:            logger,
		SessionService: sessionService,
		PaymentUsecase: paymentUsecase,
	}
}

func (ctrl *PaymentController) resolveSession(w http.ResponseWriter, r *http.Request) (string, *models.Session, bool) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok {
		ctrl.Log.Error("PaymentController requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return "", nil, false
	}

	sessionData, ok := r.Context().Value(constvars.CONTEXT_SESSION_DATA_KEY).(string)
	if !ok {
		ctrl.Log.Error("PaymentController sessionData not found in context",
			zap.String(constvars.LoggingRequestIDKey, requestID))
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingSessionData(nil))
		return "", nil, false
	}

	session, err := ctrl.SessionService.ParseSessionData(r.Context(), sessionData)
	if err != nil {
		ctrl.Log.Error("PaymentController error parsing session data",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return "", nil, false
	}
	return requestID, session, true
}

func (ctrl *PaymentController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	requestID, session, ok := ctrl.resolveSession(w, r)
	if !ok {
		return
	}

	ctrl.Log.Info("PaymentController.CreateOrder called",
		zap.String(constvars.LoggingRequestIDKey, requestID))

	request := new(requests.CreatePaymentOrderRequest)
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		ctrl.Log.Error("PaymentController.CreateOrder Failed to decode JSON request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))

		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	err = utils.ValidateStruct(request)
	if err != nil {
		ctrl.Log.Error("PaymentController.CreateOrder Validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))

		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	response, err := ctrl.PaymentUsecase.CreateOrder(ctx, session, request.AppointmentID)
	if err != nil {
		ctrl.Log.Error("PaymentController.CreateOrder PaymentUsecase.CreateOrder error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))

		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("PaymentController.CreateOrder succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrderIDKey, response.ID))
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreatePaymentOrderSuccessMessage, response)
}

func (ctrl *PaymentController) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	requestID, _, ok := ctrl.resolveSession(w, r)
	if !ok {
		return
	}

	ctrl.Log.Info("PaymentController.VerifyPayment called",
		zap.String(constvars.LoggingRequestIDKey, requestID))

	request := new(requests.VerifyPaymentRequest)
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		ctrl.Log.Error("PaymentController.VerifyPayment Failed to decode JSON request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))

		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	err = utils.ValidateStruct(request)
	if err != nil {
		ctrl.Log.Error("PaymentController.VerifyPayment Validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))

		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	response, err := ctrl.PaymentUsecase.ConfirmPayment(ctx, request.OrderID)
	if err != nil {
		ctrl.Log.Error("PaymentController.VerifyPayment PaymentUsecase.ConfirmPayment error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))

		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	message := constvars.PaymentConfirmedSuccessMessage
	if !response.Paid {
		message = constvars.PaymentNotCompletedMessage
	}

	ctrl.Log.Info("PaymentController.VerifyPayment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrderIDKey, response.OrderID),
		zap.Bool("paid", response.Paid))
	utils.BuildSuccessResponse(w, constvars.StatusOK, message, response)
}
