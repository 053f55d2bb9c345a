package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"hotelhub/constants"
	"hotelhub/dto"
	apperrors "hotelhub/errors"
	"hotelhub/models"
	"hotelhub/services/logger"
	"hotelhub/types"

	"github.com/goccy/go-json"
	"gorm.io/gorm"
)

const defaultTossAPIURL = "https://api.tosspayments.com"

// GatewayPayment is the part of a gateway response the booking keeps.
type GatewayPayment struct {
	PaymentKey  string `json:"paymentKey"`
	OrderID     string `json:"orderId"`
	Method      string `json:"method"`
	Status      string `json:"status"`
	TotalAmount int64  `json:"totalAmount"`
}

// Gateway is the external payment processor.
type Gateway interface {
	Confirm(ctx context.Context, paymentKey, orderID string, amount int64) (*GatewayPayment, error)
	Cancel(ctx context.Context, paymentKey, reason string) (*GatewayPayment, error)
}

// TossGateway talks to the Toss Payments REST API.
type TossGateway struct {
	baseURL string
	auth    string
	client  *http.Client
}

func NewTossGateway(secretKey, baseURL string) *TossGateway {
	if baseURL == "" {
		baseURL = defaultTossAPIURL
	}
	return &TossGateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		auth:    "Basic " + base64.StdEncoding.EncodeToString([]byte(secretKey+":")),
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

type tossError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (g *TossGateway) post(ctx context.Context, path string, body interface{}) (*GatewayPayment, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", g.auth)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 300 {
		var te tossError
		_ = json.Unmarshal(data, &te)
		return nil, fmt.Errorf("toss %s: status %d %s %s", path, resp.StatusCode, te.Code, te.Message)
	}

	var payment GatewayPayment
	if err := json.Unmarshal(data, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

func (g *TossGateway) Confirm(ctx context.Context, paymentKey, orderID string, amount int64) (*GatewayPayment, error) {
	return g.post(ctx, "/v1/payments/confirm", map[string]interface{}{
		"paymentKey": paymentKey,
		"orderId":    orderID,
		"amount":     amount,
	})
}

func (g *TossGateway) Cancel(ctx context.Context, paymentKey, reason string) (*GatewayPayment, error) {
	return g.post(ctx, "/v1/payments/"+url.PathEscape(paymentKey)+"/cancel", map[string]interface{}{
		"cancelReason": reason,
	})
}

type PaymentServiceOptions struct {
	DB      *gorm.DB
	Logger  logger.Logger
	Gateway Gateway
}

type PaymentService struct {
	db      *gorm.DB
	logger  logger.Logger
	gateway Gateway
}

func NewPaymentService(opts PaymentServiceOptions) *PaymentService {
	return &PaymentService{
		db:      opts.DB,
		logger:  opts.Logger,
		gateway: opts.Gateway,
	}
}

func (s *PaymentService) findBooking(ctx context.Context, caller types.Caller, column, value string) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.WithContext(ctx).Where(column+" = ?", value).First(&booking).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("예약을 찾을 수 없습니다")
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if booking.UserID != caller.ID {
		return nil, apperrors.Forbidden("본인의 예약만 결제할 수 있습니다")
	}
	return &booking, nil
}

// Confirm approves a pending payment with the gateway, then marks the booking
// paid and credits the accrual points. A gateway failure writes nothing.
func (s *PaymentService) Confirm(ctx context.Context, caller types.Caller, req dto.ConfirmPaymentRequest) (*models.Booking, error) {
	booking, err := s.findBooking(ctx, caller, "order_id", req.OrderID)
	if err != nil {
		return nil, err
	}
	if req.Amount != booking.FinalPrice {
		return nil, apperrors.Validation("결제 금액이 예약 금액과 일치하지 않습니다")
	}
	if err := models.GetPaymentState(booking.PaymentStatus).Complete(booking); err != nil {
		return nil, err
	}

	payment, err := s.gateway.Confirm(ctx, req.PaymentKey, req.OrderID, req.Amount)
	if err != nil {
		s.logger.Error("payment confirm %s: %v", req.OrderID, err)
		return nil, apperrors.Upstream("결제 승인 중 오류가 발생했습니다", err)
	}

	earned := AccruedPoints(req.Amount)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Booking{}).
			Where("id = ? AND payment_status = ? AND booking_status = ?", booking.ID, constants.PaymentPending, constants.BookingConfirmed).
			Updates(map[string]interface{}{
				"payment_status": constants.PaymentCompleted,
				"payment_key":    req.PaymentKey,
				"payment_method": payment.Method,
			})
		if res.Error != nil {
			return apperrors.Internal(res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.Conflict("이미 처리된 결제입니다", apperrors.ErrInvalidTransition)
		}
		if earned > 0 {
			if err := tx.Model(&models.User{}).Where("id = ?", booking.UserID).
				Update("points", gorm.Expr("points + ?", earned)).Error; err != nil {
				return apperrors.Internal(err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, asAppError(err)
	}

	booking.PaymentKey = req.PaymentKey
	booking.PaymentMethod = payment.Method
	s.logger.Info("payment completed: booking=%s amount=%d points=%d", booking.OrderID, req.Amount, earned)
	return booking, nil
}

// Cancel refunds a completed payment through the gateway.
func (s *PaymentService) Cancel(ctx context.Context, caller types.Caller, req dto.CancelPaymentRequest) (*models.Booking, error) {
	booking, err := s.findBooking(ctx, caller, "payment_key", req.PaymentKey)
	if err != nil {
		return nil, err
	}
	if err := models.GetPaymentState(booking.PaymentStatus).Refund(booking); err != nil {
		return nil, err
	}

	if _, err := s.gateway.Cancel(ctx, req.PaymentKey, req.CancelReason); err != nil {
		s.logger.Error("payment cancel %s: %v", booking.OrderID, err)
		return nil, apperrors.Upstream("결제 취소 중 오류가 발생했습니다", err)
	}

	res := s.db.WithContext(ctx).Model(&models.Booking{}).
		Where("id = ? AND payment_status = ?", booking.ID, constants.PaymentCompleted).
		Update("payment_status", constants.PaymentRefunded)
	if res.Error != nil {
		return nil, apperrors.Internal(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperrors.Conflict("이미 환불된 예약입니다", apperrors.ErrInvalidTransition)
	}

	s.logger.Info("payment refunded: booking=%s", booking.OrderID)
	return booking, nil
}
