package models

import (
	"hotelhub/constants"
	apperrors "hotelhub/errors"
)

// BookingState guards transitions on the booking axis.
type BookingState interface {
	Cancel(b *Booking) error
}

type ConfirmedState struct{}

func (s *ConfirmedState) Cancel(b *Booking) error {
	b.BookingStatus = constants.BookingCancelled
	return nil
}

type CancelledState struct{}

func (s *CancelledState) Cancel(b *Booking) error {
	return apperrors.Conflict("이미 취소된 예약입니다", apperrors.ErrAlreadyCancelled)
}

func GetBookingState(status constants.BookingStatus) BookingState {
	if status == constants.BookingCancelled {
		return &CancelledState{}
	}
	return &ConfirmedState{}
}

// PaymentState guards transitions on the payment axis:
// pending -> completed -> refunded.
type PaymentState interface {
	Complete(b *Booking) error
	Refund(b *Booking) error
}

type PaymentPendingState struct{}

func (s *PaymentPendingState) Complete(b *Booking) error {
	if b.BookingStatus == constants.BookingCancelled {
		return apperrors.Conflict("취소된 예약은 결제할 수 없습니다", apperrors.ErrInvalidTransition)
	}
	b.PaymentStatus = constants.PaymentCompleted
	return nil
}

func (s *PaymentPendingState) Refund(b *Booking) error {
	return apperrors.Conflict("결제가 완료되지 않은 예약입니다", apperrors.ErrInvalidTransition)
}

type PaymentCompletedState struct{}

func (s *PaymentCompletedState) Complete(b *Booking) error {
	return apperrors.Conflict("이미 결제가 완료된 예약입니다", apperrors.ErrInvalidTransition)
}

func (s *PaymentCompletedState) Refund(b *Booking) error {
	b.PaymentStatus = constants.PaymentRefunded
	return nil
}

type PaymentRefundedState struct{}

func (s *PaymentRefundedState) Complete(b *Booking) error {
	return apperrors.Conflict("이미 환불된 예약입니다", apperrors.ErrInvalidTransition)
}

func (s *PaymentRefundedState) Refund(b *Booking) error {
	return apperrors.Conflict("이미 환불된 예약입니다", apperrors.ErrInvalidTransition)
}

func GetPaymentState(status constants.PaymentStatus) PaymentState {
	switch status {
	case constants.PaymentCompleted:
		return &PaymentCompletedState{}
	case constants.PaymentRefunded:
		return &PaymentRefundedState{}
	default:
		return &PaymentPendingState{}
	}
}
