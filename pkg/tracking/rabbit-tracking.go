package tracking

import (
	"net/http"

	"github.com/matst80/slask-view/pkg/common"
	"github.com/matst80/slask-view/pkg/logger"
	"github.com/matst80/slask-view/pkg/messaging"
	"github.com/matst80/slask-view/pkg/types"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	EventSession uint16 = 0
	EventView    uint16 = 1
)

// RabbitTracking publishes session and view events to the global tracking
// exchange from a background queue.
type RabbitTracking struct {
	country    string
	context    string
	connection *amqp.Connection
	queue      *common.QueueHandler[any]
	send       func(events []any) error
	log        logger.Logger
}

func NewRabbitTracking(url, country string, log logger.Logger) (*RabbitTracking, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	defer ch.Close()
	if err := messaging.DefineTopic(ch, messaging.GlobalPrefix, messaging.Tracking); err != nil {
		conn.Close()
		return nil, err
	}
	rt := newTracking(country, log, func(events []any) error {
		return messaging.SendChange(conn, messaging.GlobalPrefix, messaging.Tracking, events...)
	})
	rt.connection = conn
	return rt, nil
}

func newTracking(country string, log logger.Logger, send func([]any) error) *RabbitTracking {
	rt := &RabbitTracking{
		country: country,
		context: "view",
		send:    send,
		log:     log,
	}
	rt.queue = common.NewQueueHandler(rt.publish, 50)
	return rt
}

func (rt *RabbitTracking) publish(events []any) {
	if err := rt.send(events); err != nil {
		rt.log.Error("failed to send tracking events", "count", len(events), "err", err)
	}
}

// Close flushes queued events and closes the connection.
func (rt *RabbitTracking) Close() error {
	rt.queue.Close()
	if rt.connection == nil {
		return nil
	}
	return rt.connection.Close()
}

type BaseEvent struct {
	SessionId string `json:"session_id"`
	Country   string `json:"country,omitempty"`
	Context   string `json:"context,omitempty"`
	Event     uint16 `json:"event"`
}

type Session struct {
	*BaseEvent
	UserAgent    string `json:"user_agent,omitempty"`
	Ip           string `json:"ip,omitempty"`
	Language     string `json:"language,omitempty"`
	PragmaHeader string `json:"pragma,omitempty"`
}

type View struct {
	*BaseEvent
	types.ViewEvent
}

func (rt *RabbitTracking) base(sessionId string, event uint16) *BaseEvent {
	return &BaseEvent{Event: event, SessionId: sessionId, Country: rt.country, Context: rt.context}
}

func (rt *RabbitTracking) TrackSession(sessionId string, r *http.Request) {
	ip := r.Header.Get("X-Real-Ip")
	if ip == "" {
		ip = r.Header.Get("X-Forwarded-For")
	}
	if ip == "" {
		ip = r.RemoteAddr
	}

	rt.queue.Add(Session{
		BaseEvent:    rt.base(sessionId, EventSession),
		Language:     r.Header.Get("Accept-Language"),
		UserAgent:    r.UserAgent(),
		Ip:           ip,
		PragmaHeader: r.Header.Get("Pragma"),
	})
}

func (rt *RabbitTracking) TrackView(sessionId string, event types.ViewEvent) {
	rt.queue.Add(View{
		BaseEvent: rt.base(sessionId, EventView),
		ViewEvent: event,
	})
}
