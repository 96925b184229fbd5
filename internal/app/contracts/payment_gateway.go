package contracts

import (
	"context"
	"medibook-service/internal/pkg/dto/requests"
	"medibook-service/internal/pkg/dto/responses"
)

type PaymentGatewayService interface {
	CreateOrder(ctx context.Context, request *requests.CreateOrderRequest) (*responses.PaymentOrder, error)
	FetchOrder(ctx context.Context, orderID string) (*responses.PaymentOrder, error)
}
