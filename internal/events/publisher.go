package events

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/s0ld1err/MagazinOnline/internal/models"
)

// OrderCreated is emitted after a checkout transaction commits. Downstream
// consumers (fulfillment, analytics) key on the customer id.
type OrderCreated struct {
	OrderID    uint      `json:"order_id"`
	Reference  string    `json:"reference"`
	CustomerID uint      `json:"customer_id"`
	TotalPrice float64   `json:"total_price"`
	OrderDate  time.Time `json:"order_date"`
	ItemCount  int       `json:"item_count"`
}

type Publisher interface {
	PublishOrderCreated(ctx context.Context, order *models.Order) error
}

type kafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher builds a publisher from a comma-separated broker list.
// An empty list returns nil, which callers treat as "events disabled".
func NewKafkaPublisher(brokersCSV, topic string) Publisher {
	var brokers []string
	for _, b := range strings.Split(brokersCSV, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	if len(brokers) == 0 {
		return nil
	}

	return &kafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
		},
	}
}

func (p *kafkaPublisher) PublishOrderCreated(ctx context.Context, order *models.Order) error {
	event := OrderCreated{
		OrderID:    order.ID,
		Reference:  order.Reference,
		CustomerID: order.CustomerID,
		TotalPrice: order.TotalPrice,
		OrderDate:  order.OrderDate,
		ItemCount:  len(order.Items),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatUint(uint64(order.CustomerID), 10)),
		Value: payload,
	})
}
