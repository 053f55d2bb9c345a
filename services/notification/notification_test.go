package notification

import (
	"testing"

	"hotelhub/dto"
)

func TestMessageBuilder(t *testing.T) {
	alert := dto.PriceAlert{UserID: 7, HotelID: 3, HotelName: "Seoul Grand", CurrentPrice: 140000, TargetPrice: 150000}
	want := "🔔 Seoul Grand 객실이 140000원으로 내려갔습니다 (목표 150000원)."
	if got := NewMessageBuilder(alert).Build(); got != want {
		t.Errorf("message = %q, want %q", got, want)
	}
}

func TestNotifyWithoutMelody(t *testing.T) {
	if err := NewMelodyService(nil).NotifyPriceAlert(dto.PriceAlert{UserID: 1}); err == nil {
		t.Error("expected an error without a melody instance")
	}
}
