package merge

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/confluentinc/confluent-kafka-go/kafka"
)

type fakeSession struct {
	processErr error
	closeErr   error
	processed  int
	closed     int
}

func (s *fakeSession) ProcessMerge(ctx context.Context, fields, options map[string]any) error {
	s.processed++
	return s.processErr
}

func (s *fakeSession) Close() error {
	s.closed++
	return s.closeErr
}

type fakeProcessor struct {
	session *fakeSession
	openErr error
}

func (p *fakeProcessor) Open(ctx context.Context, parameters json.RawMessage, configPath string) (Session, error) {
	if p.openErr != nil {
		return nil, p.openErr
	}
	return p.session, nil
}

func TestWithSession_ClosesAfterSuccess(t *testing.T) {
	s := &fakeSession{}
	err := WithSession(context.Background(), &fakeProcessor{session: s}, nil, "p", func(sess Session) error {
		return sess.ProcessMerge(context.Background(), nil, nil)
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if s.processed != 1 || s.closed != 1 {
		t.Fatalf("expected 1 process and 1 close, got %d/%d", s.processed, s.closed)
	}
}

func TestWithSession_ReturnsFnErrorUnchanged(t *testing.T) {
	want := errors.New("some error")
	s := &fakeSession{processErr: want, closeErr: errors.New("close failed")}
	err := WithSession(context.Background(), &fakeProcessor{session: s}, nil, "p", func(sess Session) error {
		return sess.ProcessMerge(context.Background(), nil, nil)
	})
	if err != want {
		t.Fatalf("expected original error, got %v", err)
	}
	if s.closed != 1 {
		t.Fatalf("expected session to be closed")
	}
}

func TestWithSession_OpenError(t *testing.T) {
	want := errors.New("auth failed")
	called := false
	err := WithSession(context.Background(), &fakeProcessor{openErr: want}, nil, "p", func(Session) error {
		called = true
		return nil
	})
	if err != want {
		t.Fatalf("expected open error, got %v", err)
	}
	if called {
		t.Fatalf("fn must not run when open fails")
	}
}

type fakeProducer struct {
	msgs       []*kafka.Message
	produceErr error
	deliverErr error
}

func (p *fakeProducer) Produce(msg *kafka.Message, deliveryChan chan kafka.Event) error {
	if p.produceErr != nil {
		return p.produceErr
	}
	p.msgs = append(p.msgs, msg)
	report := *msg
	report.TopicPartition.Error = p.deliverErr
	deliveryChan <- &report
	return nil
}

func TestKafkaProcessor_PublishesJob(t *testing.T) {
	prod := &fakeProducer{}
	proc := NewKafkaProcessor(prod, "staticman.merge")
	ctx := context.Background()

	err := WithSession(ctx, proc, json.RawMessage(`{"username":"alice"}`), "staticman.yml", func(s Session) error {
		return s.ProcessMerge(ctx, map[string]any{"name": "Alice"}, map[string]any{"slug": "post"})
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(prod.msgs) != 1 {
		t.Fatalf("expected 1 message got %d", len(prod.msgs))
	}
	msg := prod.msgs[0]
	if *msg.TopicPartition.Topic != "staticman.merge" {
		t.Fatalf("unexpected topic %s", *msg.TopicPartition.Topic)
	}
	var job MergeJob
	if err := json.Unmarshal(msg.Value, &job); err != nil {
		t.Fatalf("bad job: %v", err)
	}
	if job.ConfigPath != "staticman.yml" || job.Fields["name"] != "Alice" || job.Options["slug"] != "post" {
		t.Fatalf("unexpected job %+v", job)
	}
	if string(job.Parameters) != `{"username":"alice"}` {
		t.Fatalf("unexpected parameters %s", job.Parameters)
	}
}

func TestKafkaProcessor_DeliveryError(t *testing.T) {
	want := kafka.NewError(kafka.ErrMsgTimedOut, "timed out", false)
	proc := NewKafkaProcessor(&fakeProducer{deliverErr: want}, "t")
	ctx := context.Background()
	s, err := proc.Open(ctx, nil, "p")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	err = s.ProcessMerge(ctx, nil, nil)
	var kerr kafka.Error
	if !errors.As(err, &kerr) || kerr.Code() != kafka.ErrMsgTimedOut {
		t.Fatalf("expected delivery error, got %v", err)
	}
}

func TestKafkaProcessor_RequiresConfigPath(t *testing.T) {
	proc := NewKafkaProcessor(&fakeProducer{}, "t")
	if _, err := proc.Open(context.Background(), nil, ""); !errors.Is(err, ErrNoConfigPath) {
		t.Fatalf("expected ErrNoConfigPath got %v", err)
	}
}

func TestKafkaSession_ClosedRejects(t *testing.T) {
	prod := &fakeProducer{}
	proc := NewKafkaProcessor(prod, "t")
	s, _ := proc.Open(context.Background(), nil, "p")
	_ = s.Close()
	if err := s.ProcessMerge(context.Background(), nil, nil); !errors.Is(err, ErrSessionClosed) {
		t.Fatalf("expected ErrSessionClosed got %v", err)
	}
	if len(prod.msgs) != 0 {
		t.Fatalf("closed session must not publish")
	}
}
