package payments

import (
	"context"
	"fmt"
	"strings"
)

type Service struct {
	baseURL string
}

func NewService(baseURL string) *Service {
	return &Service{baseURL: strings.TrimRight(baseURL, "/")}
}

// PaymentURL строит ссылку на оплату заявки.
// В тестовом варианте это наш же HTTP-сервер.
func (s *Service) PaymentURL(purchaseID int64) string {
	return fmt.Sprintf("%s/payments/pay?purchase=%d", s.baseURL, purchaseID)
}

// CreatePayment — интерфейс на будущее, сейчас просто строит URL.
func (s *Service) CreatePayment(
	_ context.Context,
	purchaseID int64,
	amount int,
	description string,
) (string, error) {
	// amount и description пока никуда не ходят,
	// но сигнатура пригодится для реальной интеграции.
	_ = amount
	_ = description

	return s.PaymentURL(purchaseID), nil
}
