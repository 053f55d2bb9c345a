package notification

import (
	"fmt"

	"hotelhub/dto"

	"github.com/goccy/go-json"
	"github.com/olahol/melody"
)

// SessionUserKey is the melody session key holding the connected user's id.
const SessionUserKey = "userID"

type Service interface {
	NotifyPriceAlert(alert dto.PriceAlert) error
}

type MelodyService struct {
	m *melody.Melody
}

func NewMelodyService(m *melody.Melody) *MelodyService {
	return &MelodyService{m: m}
}

// Message is the frame pushed to websocket clients.
type Message struct {
	Type string      `json:"type"`
	Text string      `json:"text"`
	Data interface{} `json:"data,omitempty"`
}

// NotifyPriceAlert pushes the alert to every open session of its user.
func (s *MelodyService) NotifyPriceAlert(alert dto.PriceAlert) error {
	if s.m == nil {
		return fmt.Errorf("melody instance is nil")
	}
	raw, err := json.Marshal(Message{
		Type: "price_alert",
		Text: NewMessageBuilder(alert).Build(),
		Data: alert,
	})
	if err != nil {
		return err
	}
	return s.m.BroadcastFilter(raw, func(sess *melody.Session) bool {
		v, ok := sess.Get(SessionUserKey)
		if !ok {
			return false
		}
		id, ok := v.(uint)
		return ok && id == alert.UserID
	})
}

type MessageBuilder struct {
	alert dto.PriceAlert
}

func NewMessageBuilder(alert dto.PriceAlert) *MessageBuilder {
	return &MessageBuilder{alert: alert}
}

func (b *MessageBuilder) Build() string {
	return fmt.Sprintf("🔔 %s 객실이 %d원으로 내려갔습니다 (목표 %d원).",
		b.alert.HotelName, b.alert.CurrentPrice, b.alert.TargetPrice)
}
