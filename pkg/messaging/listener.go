package messaging

import (
	"github.com/matst80/slask-view/pkg/common/jsoncompat"
	"github.com/matst80/slask-view/pkg/logger"
	amqp "github.com/rabbitmq/amqp091-go"
)

// DeclareBindAndConsume binds an exclusive queue to the topic exchange.
func DeclareBindAndConsume(ch *amqp.Channel, prefix string, topic ChangeTopic) (<-chan amqp.Delivery, error) {
	name := TopicName(prefix, topic)
	q, err := ch.QueueDeclare(
		"",    // name
		false, // durable
		false, // delete when unused
		true,  // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return nil, err
	}
	if err = ch.QueueBind(q.Name, name, name, false, nil); err != nil {
		return nil, err
	}
	return ch.Consume(
		q.Name,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
}

// ListenToTopic decodes every delivery into V and hands it to fn. Messages
// that fail to decode or process are rejected; the listener keeps going.
func ListenToTopic[V any](ch *amqp.Channel, log logger.Logger, prefix string, topic ChangeTopic, fn func(V) error) error {
	msgs, err := DeclareBindAndConsume(ch, prefix, topic)
	if err != nil {
		return err
	}

	go func() {
		defer ch.Close()
		Consume(msgs, log, fn)
	}()
	return nil
}

// delivery is the part of amqp.Delivery that handle needs.
type delivery interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

// Consume processes deliveries until the channel closes.
func Consume[V any](msgs <-chan amqp.Delivery, log logger.Logger, fn func(V) error) {
	for d := range msgs {
		handle(&d, d.Body, log, fn)
	}
}

func handle[V any](d delivery, body []byte, log logger.Logger, fn func(V) error) {
	var value V
	if err := jsoncompat.Unmarshal(body, &value); err != nil {
		log.Warn("dropping undecodable message", "err", err)
		d.Nack(false, false)
		return
	}
	if err := fn(value); err != nil {
		log.Error("error processing message", "err", err)
		d.Nack(false, false)
		return
	}
	d.Ack(false)
}
