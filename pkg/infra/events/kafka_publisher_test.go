package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/NeuralTrust/TrustImage/pkg/domain/moderation"
	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProducer struct {
	produced   []*kafka.Message
	produceErr error
	deliverErr error
	silent     bool
	flushed    bool
	closed     bool
}

func (f *fakeProducer) Produce(msg *kafka.Message, deliveryChan chan kafka.Event) error {
	if f.produceErr != nil {
		return f.produceErr
	}
	f.produced = append(f.produced, msg)
	if !f.silent {
		delivered := *msg
		delivered.TopicPartition.Error = f.deliverErr
		deliveryChan <- &delivered
	}
	return nil
}

func (f *fakeProducer) Flush(int) int {
	f.flushed = true
	return 0
}

func (f *fakeProducer) Close() {
	f.closed = true
}

func testEvent() *moderation.TakedownEvent {
	return &moderation.TakedownEvent{
		ID:          uuid.New(),
		JobID:       uuid.New(),
		Fingerprint: "abc123",
		ObjectKey:   "2024/01/abc.jpg",
		Recipient:   "user:42",
		Reason:      "contains exposed content: FEMALE_BREAST_EXPOSED(0.81)",
		Score:       0.81,
		Steps: map[string]string{
			moderation.StepObjectDelete: moderation.StepStatusOK,
			moderation.StepRecordDelete: moderation.StepStatusOK,
			moderation.StepNotify:       moderation.StepStatusOK,
		},
		Attempts:   1,
		OccurredAt: time.Now().UTC(),
	}
}

func TestKafkaPublisher_Publish(t *testing.T) {
	fake := &fakeProducer{}
	p := newKafkaPublisher(logrus.New(), "", fake)
	evt := testEvent()

	require.NoError(t, p.Publish(context.Background(), evt))

	require.Len(t, fake.produced, 1)
	msg := fake.produced[0]
	assert.Equal(t, DefaultTopic, *msg.TopicPartition.Topic)
	assert.Equal(t, []byte("abc123"), msg.Key)

	var decoded moderation.TakedownEvent
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, evt.JobID, decoded.JobID)
	assert.Equal(t, evt.Steps, decoded.Steps)
}

func TestKafkaPublisher_ProduceError(t *testing.T) {
	fake := &fakeProducer{produceErr: errors.New("queue full")}
	p := newKafkaPublisher(logrus.New(), "takedowns", fake)

	err := p.Publish(context.Background(), testEvent())

	assert.ErrorContains(t, err, "queue full")
}

func TestKafkaPublisher_DeliveryError(t *testing.T) {
	fake := &fakeProducer{deliverErr: kafka.NewError(kafka.ErrMsgTimedOut, "timed out", false)}
	p := newKafkaPublisher(logrus.New(), "takedowns", fake)

	err := p.Publish(context.Background(), testEvent())

	assert.ErrorContains(t, err, "delivery failed")
}

func TestKafkaPublisher_ContextDone(t *testing.T) {
	fake := &fakeProducer{silent: true}
	p := newKafkaPublisher(logrus.New(), "takedowns", fake)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := p.Publish(ctx, testEvent())

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestKafkaPublisher_Close(t *testing.T) {
	fake := &fakeProducer{}
	newKafkaPublisher(logrus.New(), "takedowns", fake).Close()

	assert.True(t, fake.flushed)
	assert.True(t, fake.closed)
}

func TestKafkaConfig_Validate(t *testing.T) {
	assert.Error(t, KafkaConfig{Port: "9092"}.Validate())
	assert.Error(t, KafkaConfig{Host: "localhost"}.Validate())
	assert.NoError(t, KafkaConfig{Host: "localhost", Port: "9092"}.Validate())
}

func TestNoopPublisher(t *testing.T) {
	p := NewNoopPublisher(logrus.New())
	assert.NoError(t, p.Publish(context.Background(), testEvent()))
	p.Close()
}
