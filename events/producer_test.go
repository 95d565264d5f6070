package events

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishWritesEnvelope(t *testing.T) {
	sp := mocks.NewSyncProducer(t, nil)
	sp.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var ev struct {
			EventType string `json:"event_type"`
			Data      struct {
				OrderID string  `json:"orderId"`
				Total   float64 `json:"total"`
			} `json:"data"`
		}
		if err := json.Unmarshal(val, &ev); err != nil {
			return err
		}
		if ev.EventType != TopicOrderCreated {
			return errors.New("unexpected event type " + ev.EventType)
		}
		if ev.Data.OrderID != "o-1" || ev.Data.Total != 42.5 {
			return errors.New("unexpected payload")
		}
		return nil
	})

	p := NewProducerFrom(sp)
	p.Publish(TopicOrderCreated, "o-1", map[string]interface{}{"orderId": "o-1", "total": 42.5})

	require.NoError(t, p.Close())
}

func TestPublishFailureIsSwallowed(t *testing.T) {
	sp := mocks.NewSyncProducer(t, nil)
	sp.ExpectSendMessageAndFail(errors.New("broker down"))

	p := NewProducerFrom(sp)
	assert.NotPanics(t, func() {
		p.Publish(TopicPaymentProcessed, "txn-1", map[string]string{"status": "success"})
	})
	require.NoError(t, p.Close())
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = Nop{}
	assert.NotPanics(t, func() { p.Publish(TopicPaymentRefunded, "", nil) })
}
