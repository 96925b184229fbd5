package routers

import (
	"context"
	"medibook-service/internal/app/config"
	"medibook-service/internal/app/delivery/http/controllers"
	"medibook-service/internal/app/delivery/http/middlewares"
	"medibook-service/internal/pkg/dto/responses"
	"medibook-service/internal/pkg/exceptions"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockDoctorUsecase struct {
	mock.Mock
}

func (m *MockDoctorUsecase) FindAll(ctx context.Context) ([]responses.Doctor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]responses.Doctor), args.Error(1)
}

type MockSlotUsecase struct {
	mock.Mock
}

func (m *MockSlotUsecase) ListOpenSlots(ctx context.Context, doctorID string, windowDays int) ([]responses.DaySlots, error) {
	args := m.Called(ctx, doctorID, windowDays)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]responses.DaySlots), args.Error(1)
}

func newDoctorTestRouter(doctorUsecase *MockDoctorUsecase, slotUsecase *MockSlotUsecase) *chi.Mux {
	logger := zap.NewNop()

	internalConfig := &config.InternalConfig{}

	doctorController := controllers.NewDoctorController(logger, doctorUsecase, slotUsecase)

	middlewareInstance := &middlewares.Middlewares{
		Log:            logger,
		InternalConfig: internalConfig,
	}

	router := chi.NewRouter()
	router.Use(middlewareInstance.RequestIDMiddleware)
	attachDoctorRoutes(router, middlewareInstance, doctorController)
	return router
}

func TestDoctorRouter_FindAll(t *testing.T) {
	mockDoctorUsecase := new(MockDoctorUsecase)
	mockSlotUsecase := new(MockSlotUsecase)
	router := newDoctorTestRouter(mockDoctorUsecase, mockSlotUsecase)

	t.Run("Doctor Listing Is Public", func(t *testing.T) {
		mockDoctorUsecase.On("FindAll", mock.Anything).Return([]responses.Doctor{
			{ID: "doc-1", Name: "Dr. Richard James", Speciality: "General physician", Fees: 50, Available: true},
		}, nil)

		req := httptest.NewRequest("GET", "/", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Dr. Richard James")
		assert.NotEmpty(t, rr.Header().Get("X-Request-Id"), "every response carries a request id")
		mockDoctorUsecase.AssertExpectations(t)
	})

	t.Run("Client Request ID Is Echoed Back", func(t *testing.T) {
		mockDoctorUsecase.On("FindAll", mock.Anything).Return([]responses.Doctor{}, nil)

		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("X-Request-Id", "client-supplied-id")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "client-supplied-id", rr.Header().Get("X-Request-Id"))
	})
}

func TestDoctorRouter_ListOpenSlots(t *testing.T) {

	t.Run("Slots for Doctor", func(t *testing.T) {
		mockDoctorUsecase := new(MockDoctorUsecase)
		mockSlotUsecase := new(MockSlotUsecase)
		router := newDoctorTestRouter(mockDoctorUsecase, mockSlotUsecase)

		mockSlotUsecase.On("ListOpenSlots", mock.Anything, "doc-1", 0).Return([]responses.DaySlots{
			{Date: "3_11_2025", Times: []string{"10:00 AM", "10:30 AM"}},
		}, nil)

		req := httptest.NewRequest("GET", "/doc-1/slots", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "3_11_2025")
		mockSlotUsecase.AssertExpectations(t)
	})

	t.Run("Window Days Query Param Forwarded", func(t *testing.T) {
		mockDoctorUsecase := new(MockDoctorUsecase)
		mockSlotUsecase := new(MockSlotUsecase)
		router := newDoctorTestRouter(mockDoctorUsecase, mockSlotUsecase)

		mockSlotUsecase.On("ListOpenSlots", mock.Anything, "doc-1", 3).Return([]responses.DaySlots{}, nil)

		req := httptest.NewRequest("GET", "/doc-1/slots?days=3", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockSlotUsecase.AssertExpectations(t)
	})

	t.Run("Invalid Window Days Rejected", func(t *testing.T) {
		mockDoctorUsecase := new(MockDoctorUsecase)
		mockSlotUsecase := new(MockSlotUsecase)
		router := newDoctorTestRouter(mockDoctorUsecase, mockSlotUsecase)

		req := httptest.NewRequest("GET", "/doc-1/slots?days=0", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockSlotUsecase.AssertNotCalled(t, "ListOpenSlots")
	})

	t.Run("Unknown Doctor Propagates Not Found", func(t *testing.T) {
		mockDoctorUsecase := new(MockDoctorUsecase)
		mockSlotUsecase := new(MockSlotUsecase)
		router := newDoctorTestRouter(mockDoctorUsecase, mockSlotUsecase)

		mockSlotUsecase.On("ListOpenSlots", mock.Anything, "missing", 0).
			Return(nil, exceptions.ErrDoctorNotFound(nil))

		req := httptest.NewRequest("GET", "/missing/slots", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
