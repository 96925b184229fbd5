package payment_gateway

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"medibook-service/internal/app/config"
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/dto/requests"
	"medibook-service/internal/pkg/dto/responses"
	"medibook-service/internal/pkg/exceptions"
	"net/http"
	"sync"
	"time"

	"github.com/goccy/go-json"
)

var (
	razorpayServiceInstance contracts.PaymentGatewayService
	onceRazorpayService     sync.Once
)

type razorpayService struct {
	BaseUrl    string
	KeyID      string
	KeySecret  string
	HttpClient *http.Client
}

func NewRazorpayService(internalConfig *config.InternalConfig) contracts.PaymentGatewayService {
	onceRazorpayService.Do(func() {
		instance := &razorpayService{
			BaseUrl:   internalConfig.PaymentGateway.BaseUrl,
			KeyID:     internalConfig.PaymentGateway.KeyID,
			KeySecret: internalConfig.PaymentGateway.KeySecret,
			HttpClient: &http.Client{
				Timeout: 15 * time.Second,
			},
		}
		razorpayServiceInstance = instance
	})
	return razorpayServiceInstance
}

func (s *razorpayService) CreateOrder(ctx context.Context, request *requests.CreateOrderRequest) (*responses.PaymentOrder, error) {
	payload, err := json.Marshal(request)
	if err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	url := fmt.Sprintf("%s/orders", s.BaseUrl)
	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, exceptions.ErrPaymentGatewayUnavailable(err)
	}
	httpRequest.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	httpRequest.SetBasicAuth(s.KeyID, s.KeySecret)

	httpResponse, err := s.HttpClient.Do(httpRequest)
	if err != nil {
		return nil, exceptions.ErrPaymentGatewayUnavailable(err)
	}
	defer httpResponse.Body.Close()

	return s.decodeOrder(httpResponse)
}

func (s *razorpayService) FetchOrder(ctx context.Context, orderID string) (*responses.PaymentOrder, error) {
	url := fmt.Sprintf("%s/orders/%s", s.BaseUrl, orderID)
	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, exceptions.ErrPaymentGatewayUnavailable(err)
	}
	httpRequest.SetBasicAuth(s.KeyID, s.KeySecret)

	httpResponse, err := s.HttpClient.Do(httpRequest)
	if err != nil {
		return nil, exceptions.ErrPaymentGatewayUnavailable(err)
	}
	defer httpResponse.Body.Close()

	return s.decodeOrder(httpResponse)
}

func (s *razorpayService) decodeOrder(httpResponse *http.Response) (*responses.PaymentOrder, error) {
	body, err := io.ReadAll(httpResponse.Body)
	if err != nil {
		return nil, exceptions.ErrPaymentGatewayResponse(err)
	}

	switch {
	case httpResponse.StatusCode == http.StatusNotFound:
		return nil, exceptions.ErrPaymentOrderNotFound(fmt.Errorf("payment gateway returned status %d", httpResponse.StatusCode))
	case httpResponse.StatusCode >= http.StatusBadRequest:
		return nil, exceptions.ErrPaymentGatewayUnavailable(fmt.Errorf("payment gateway returned status %d: %s", httpResponse.StatusCode, string(body)))
	}

	order := new(responses.PaymentOrder)
	if err := json.Unmarshal(body, order); err != nil {
		return nil, exceptions.ErrPaymentGatewayResponse(err)
	}
	return order, nil
}
