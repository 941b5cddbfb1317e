package email

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nutribook/internal/logger"
)

func TestMain(m *testing.M) {
	logger.Init()

	code := m.Run()
	os.Exit(code)
}

type fakeDeliverer struct {
	mu   sync.Mutex
	err  error
	sent []EmailJob
}

func (f *fakeDeliverer) Deliver(job EmailJob) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, job)
	return f.err
}

func newTestService(rdb *redis.Client, d Deliverer) *Service {
	svc := New(rdb, d)
	svc.retryDelay = 0
	return svc
}

var testDetails = BookingDetails{
	BookingID:        "b-1",
	With:             "Dr. Meera Rao",
	Date:             "2026-03-10",
	Time:             "10:00",
	ConsultationType: "Online",
	Amount:           799,
	PaymentID:        "PAY1",
}

func TestSend(t *testing.T) {
	db, mock := redismock.NewClientMock()
	ctx := context.Background()

	mock.Regexp().ExpectLPush("emails", `.*`).SetVal(1)

	svc := newTestService(db, &fakeDeliverer{})

	err := svc.Send(ctx, TypeBookingConfirmation, "asha@example.com", "Asha", "Hello", "Test body")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSendBookingConfirmation(t *testing.T) {
	db, mock := redismock.NewClientMock()
	ctx := context.Background()

	mock.Regexp().ExpectLPush("emails", `.*`).SetVal(1)

	svc := newTestService(db, &fakeDeliverer{})

	err := svc.SendBookingConfirmation(ctx, "asha@example.com", "Asha", testDetails)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSendCancellation(t *testing.T) {
	db, mock := redismock.NewClientMock()
	ctx := context.Background()

	mock.Regexp().ExpectLPush("emails", `.*`).SetVal(1)

	svc := newTestService(db, &fakeDeliverer{})

	err := svc.SendCancellation(ctx, "asha@example.com", "Asha", testDetails)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSendError(t *testing.T) {
	db, mock := redismock.NewClientMock()
	ctx := context.Background()

	mock.Regexp().ExpectLPush("emails", `.*`).SetErr(assert.AnError)

	svc := newTestService(db, &fakeDeliverer{})

	err := svc.Send(ctx, TypeBookingConfirmation, "asha@example.com", "Asha", "Hello", "Test body")
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueueLength(t *testing.T) {
	db, mock := redismock.NewClientMock()
	ctx := context.Background()

	mock.ExpectLLen("emails").SetVal(5)

	svc := newTestService(db, &fakeDeliverer{})

	assert.Equal(t, int64(5), svc.QueueLength(ctx))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func queuedJob(t *testing.T, tries int) string {
	t.Helper()
	data, err := json.Marshal(EmailJob{
		Type:    TypeBookingConfirmation,
		To:      "asha@example.com",
		Name:    "Asha",
		Subject: "Appointment Confirmed",
		Body:    "See you soon",
		Tries:   tries,
		Created: time.Now(),
	})
	require.NoError(t, err)
	return string(data)
}

func TestProcessNext_Delivers(t *testing.T) {
	db, mock := redismock.NewClientMock()
	deliverer := &fakeDeliverer{}
	svc := newTestService(db, deliverer)

	mock.ExpectBRPop(2*time.Second, "emails").SetVal([]string{"emails", queuedJob(t, 0)})

	svc.processNext(context.Background())

	require.Len(t, deliverer.sent, 1)
	assert.Equal(t, "asha@example.com", deliverer.sent[0].To)
	assert.Equal(t, 1, deliverer.sent[0].Tries)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProcessNext_RequeuesOnFailure(t *testing.T) {
	db, mock := redismock.NewClientMock()
	deliverer := &fakeDeliverer{err: errors.New("smtp: 421 try again later")}
	svc := newTestService(db, deliverer)

	mock.ExpectBRPop(2*time.Second, "emails").SetVal([]string{"emails", queuedJob(t, 0)})
	mock.Regexp().ExpectLPush("emails", `.*`).SetVal(1)

	svc.processNext(context.Background())

	assert.Len(t, deliverer.sent, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProcessNext_MovesToFailedQueue(t *testing.T) {
	db, mock := redismock.NewClientMock()
	deliverer := &fakeDeliverer{err: errors.New("smtp: 550 mailbox unavailable")}
	svc := newTestService(db, deliverer)

	mock.ExpectBRPop(2*time.Second, "emails").SetVal([]string{"emails", queuedJob(t, maxTries-1)})
	mock.Regexp().ExpectLPush("emails:failed", `.*`).SetVal(1)

	svc.processNext(context.Background())

	require.Len(t, deliverer.sent, 1)
	assert.Equal(t, maxTries, deliverer.sent[0].Tries)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequeue_ReportsRedisFailure(t *testing.T) {
	db, mock := redismock.NewClientMock()
	svc := newTestService(db, &fakeDeliverer{})

	mock.Regexp().ExpectLPush("emails", `.*`).SetErr(errors.New("READONLY replica"))

	err := svc.requeue(context.Background(), EmailJob{To: "asha@example.com", Tries: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "READONLY replica")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveFailed_ReportsRedisFailure(t *testing.T) {
	db, mock := redismock.NewClientMock()
	svc := newTestService(db, &fakeDeliverer{})

	mock.Regexp().ExpectLPush("emails:failed", `.*`).SetErr(errors.New("connection refused"))

	err := svc.saveFailed(context.Background(), EmailJob{To: "asha@example.com", Tries: maxTries}, errors.New("smtp: 550"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProcessNext_RequeueFailureDoesNotRetry(t *testing.T) {
	db, mock := redismock.NewClientMock()
	deliverer := &fakeDeliverer{err: errors.New("smtp: 421 try again later")}
	svc := newTestService(db, deliverer)

	mock.ExpectBRPop(2*time.Second, "emails").SetVal([]string{"emails", queuedJob(t, 0)})
	mock.Regexp().ExpectLPush("emails", `.*`).SetErr(errors.New("READONLY replica"))

	svc.processNext(context.Background())

	assert.Len(t, deliverer.sent, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProcessNext_SkipsBadPayload(t *testing.T) {
	db, mock := redismock.NewClientMock()
	deliverer := &fakeDeliverer{}
	svc := newTestService(db, deliverer)

	mock.ExpectBRPop(2*time.Second, "emails").SetVal([]string{"emails", "{not json"})

	svc.processNext(context.Background())

	assert.Empty(t, deliverer.sent)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStart_StopsOnCancel(t *testing.T) {
	db, _ := redismock.NewClientMock()
	svc := newTestService(db, &fakeDeliverer{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		svc.Start(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}
