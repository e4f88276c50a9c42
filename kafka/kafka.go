package kafka

import (
	"encoding/json"
	"os"

	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/iliketocde/Finance-Tracker/logger"
	"github.com/iliketocde/Finance-Tracker/models"
	"go.uber.org/zap"
)

var (
	EventProducer *kafka.Producer
	ExpenseTopic  string = "expense_events"
	GroupID       string = "insights-recompute-consumer"
)

// JobSink receives raw event payloads, partition-affine. The worker pool
// implements it.
type JobSink interface {
	Submit(job []byte, partition int32)
}

func InitProducer() error {
	config := &kafka.ConfigMap{
		"bootstrap.servers": os.Getenv("KAFKA_BOOTSTRAP_SERVERS"),
		"sasl.username":     os.Getenv("KAFKA_API_KEY"),
		"sasl.password":     os.Getenv("KAFKA_API_SECRET"),
		"security.protocol": "SASL_SSL",
		"sasl.mechanism":    "PLAIN",
	}

	var err error
	EventProducer, err = kafka.NewProducer(config)
	if err != nil {
		logger.Get().Error("failed to initialize Kafka producer",
			zap.String("bootstrap_servers", os.Getenv("KAFKA_BOOTSTRAP_SERVERS")),
			zap.Error(err))
		return err
	}

	logger.Get().Info("Kafka producer initialized successfully",
		zap.String("bootstrap_servers", os.Getenv("KAFKA_BOOTSTRAP_SERVERS")))
	return nil
}

// ProduceExpenseEvent publishes an expense-created event keyed by user so all
// of one user's events land on the same partition, preserving per-user
// snapshot order.
func ProduceExpenseEvent(event *models.ExpenseEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := &kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &ExpenseTopic, Partition: kafka.PartitionAny},
		Key:            []byte(event.UserID),
		Value:          payload,
	}

	err = EventProducer.Produce(msg, nil)
	if err != nil {
		logger.Get().Error("failed to produce expense event",
			zap.String("user_id", event.UserID),
			zap.Error(err))
		return err
	}

	logger.Get().Debug("expense event produced",
		zap.String("user_id", event.UserID),
		zap.String("expense_id", event.ExpenseID))
	return nil
}

// StartConsumer subscribes to the expense topic and feeds each message into
// the sink, keeping the Kafka partition so per-user ordering carries through
// the worker pool.
func StartConsumer(sink JobSink) error {
	consumer, err := kafka.NewConsumer(&kafka.ConfigMap{
		"bootstrap.servers":  os.Getenv("KAFKA_BOOTSTRAP_SERVERS"),
		"security.protocol":  "SASL_SSL",
		"sasl.mechanisms":    "PLAIN",
		"sasl.username":      os.Getenv("KAFKA_API_KEY"),
		"sasl.password":      os.Getenv("KAFKA_API_SECRET"),
		"session.timeout.ms": "45000",
		"group.id":           GroupID,
		"auto.offset.reset":  "latest",
	})
	if err != nil {
		logger.Get().Error("failed to create consumer",
			zap.String("bootstrap_servers", os.Getenv("KAFKA_BOOTSTRAP_SERVERS")),
			zap.Error(err))
		return err
	}

	err = consumer.Subscribe(ExpenseTopic, nil)
	if err != nil {
		logger.Get().Error("failed to subscribe to topic",
			zap.String("topic", ExpenseTopic),
			zap.Error(err))
		return err
	}

	logger.Get().Info("Kafka consumer started successfully",
		zap.String("topic", ExpenseTopic),
		zap.String("group_id", GroupID))

	go func() {
		for {
			msg, err := consumer.ReadMessage(-1)
			if err != nil {
				logger.Get().Error("consumer error",
					zap.String("topic", ExpenseTopic),
					zap.Error(err))
				continue
			}

			logger.Get().Debug("received expense event",
				zap.String("topic", ExpenseTopic),
				zap.String("value", string(msg.Value)))

			sink.Submit(msg.Value, msg.TopicPartition.Partition)
		}
	}()
	return nil
}
