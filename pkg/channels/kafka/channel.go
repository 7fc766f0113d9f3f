// Package kafka provides the Kafka event channel (watermill-kafka over IBM/sarama).
package kafka

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/IBM/sarama"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v3/pkg/kafka"
)

// ErrNoBrokers is returned when no broker address is configured.
var ErrNoBrokers = errors.New("KAFKA_BROKERS environment variable is not set or empty")

// BrokersFromEnv reads the comma separated KAFKA_BROKERS variable.
func BrokersFromEnv() []string {
	brokers := make([]string, 0)

	for _, broker := range strings.Split(os.Getenv("KAFKA_BROKERS"), ",") {
		if broker = strings.TrimSpace(broker); broker != "" {
			brokers = append(brokers, broker)
		}
	}

	return brokers
}

// CreateChannel creates a Kafka publisher and a subscriber consuming in the "cg-<serviceName>" group.
func CreateChannel(logger watermill.LoggerAdapter, serviceName string, brokers []string) (*kafka.Publisher, *kafka.Subscriber, error) {
	if len(brokers) == 0 {
		return nil, nil, ErrNoBrokers
	}

	saramaSubscriberConfig := kafka.DefaultSaramaSubscriberConfig()
	saramaSubscriberConfig.Consumer.Offsets.Initial = sarama.OffsetOldest

	subscriber, err := kafka.NewSubscriber(
		kafka.SubscriberConfig{
			Brokers:               brokers,
			Unmarshaler:           kafka.DefaultMarshaler{},
			OverwriteSaramaConfig: saramaSubscriberConfig,
			ConsumerGroup:         "cg-" + serviceName,
			OTELEnabled:           true,
		},
		logger,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create kafka subscriber: %w", err)
	}

	saramaPublisherConfig := sarama.NewConfig()
	saramaPublisherConfig.Producer.Return.Successes = true

	publisher, err := kafka.NewPublisher(
		kafka.PublisherConfig{
			Brokers:               brokers,
			Marshaler:             kafka.DefaultMarshaler{},
			OverwriteSaramaConfig: saramaPublisherConfig,
			OTELEnabled:           true,
		},
		logger,
	)
	if err != nil {
		_ = subscriber.Close()

		return nil, nil, fmt.Errorf("failed to create kafka publisher: %w", err)
	}

	return publisher, subscriber, nil
}
