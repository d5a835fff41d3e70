package controller

import (
	"context"
	"io"
	"path"
	"sync"
	"time"

	"clearance/internal/cache"
	"clearance/internal/database"
	"clearance/internal/model"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.mongodb.org/mongo-driver/bson"
)

type fakeJobDB struct {
	mu       sync.Mutex
	jobs     []model.ShipmentJob
	total    int64
	err      error
	finds    int
	filters  []bson.M
	skip     int64
	limit    int64
	deadline bool
}

func (f *fakeJobDB) FindJobs(ctx context.Context, partition string, filter bson.M, projection bson.M) ([]model.ShipmentJob, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.finds++
	f.filters = append(f.filters, filter)
	_, f.deadline = ctx.Deadline()
	if f.err != nil {
		return nil, f.err
	}
	out := make([]model.ShipmentJob, len(f.jobs))
	copy(out, f.jobs)
	return out, nil
}

func (f *fakeJobDB) ListJobsPage(ctx context.Context, partition string, filter bson.M, projection bson.M, skip, limit int64) ([]model.ShipmentJob, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.filters = append(f.filters, filter)
	f.skip, f.limit = skip, limit
	_, f.deadline = ctx.Deadline()
	if f.err != nil {
		return nil, f.err
	}
	return f.jobs, nil
}

func (f *fakeJobDB) CountJobs(ctx context.Context, partition string, filter bson.M) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.total, nil
}

func (f *fakeJobDB) GetJob(ctx context.Context, partition, year, jobNo string) (*model.ShipmentJob, error) {
	for i := range f.jobs {
		if f.jobs[i].JobNo == jobNo && f.jobs[i].Year == year {
			return &f.jobs[i], nil
		}
	}
	return nil, database.ErrJobNotFound
}

type memoryCache struct {
	mu     sync.Mutex
	data   map[string][]byte
	getErr error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: map[string][]byte{}}
}

func (m *memoryCache) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	v, ok := m.data[key]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return v, nil
}

func (m *memoryCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memoryCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memoryCache) DeletePattern(_ context.Context, pattern string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for k := range m.data {
		if ok, _ := path.Match(pattern, k); ok {
			delete(m.data, k)
			n++
		}
	}
	return n, nil
}

func (m *memoryCache) Ping(context.Context) error { return nil }
func (m *memoryCache) Close() error               { return nil }

func (m *memoryCache) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data)
}

type published struct {
	exchange   string
	routingKey string
	body       []byte
	headers    amqp.Table
}

type fakeRabbit struct {
	mu         sync.Mutex
	deliveries chan amqp.Delivery
	published  []published
	declared   []string
}

func (f *fakeRabbit) Close() error { return nil }

func (f *fakeRabbit) DeclareExchange(name, kind string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.declared = append(f.declared, "exchange:"+name)
	return nil
}

func (f *fakeRabbit) DeclareQueue(name string) (amqp.Queue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.declared = append(f.declared, "queue:"+name)
	return amqp.Queue{Name: name}, nil
}

func (f *fakeRabbit) BindQueue(queueName, exchangeName, routingKey string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.declared = append(f.declared, "bind:"+queueName+"->"+exchangeName+":"+routingKey)
	return nil
}

func (f *fakeRabbit) Publish(_ context.Context, exchange, routingKey string, body []byte, headers amqp.Table) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, published{exchange, routingKey, body, headers})
	return nil
}

func (f *fakeRabbit) Consume(queueName string, consumerTag string) (<-chan amqp.Delivery, error) {
	return f.deliveries, nil
}

func (f *fakeRabbit) Health() error { return nil }

type ackResult struct {
	acked   bool
	requeue bool
}

// fakeAcknowledger reports each ack or nack on a channel
type fakeAcknowledger struct {
	results chan ackResult
}

func newFakeAcknowledger() *fakeAcknowledger {
	return &fakeAcknowledger{results: make(chan ackResult, 8)}
}

func (a *fakeAcknowledger) Ack(tag uint64, multiple bool) error {
	a.results <- ackResult{acked: true}
	return nil
}

func (a *fakeAcknowledger) Nack(tag uint64, multiple, requeue bool) error {
	a.results <- ackResult{requeue: requeue}
	return nil
}

func (a *fakeAcknowledger) Reject(tag uint64, requeue bool) error {
	a.results <- ackResult{requeue: requeue}
	return nil
}

type fakeFileService struct {
	key         string
	contentType string
	size        int
}

func (f *fakeFileService) UploadFile(_ context.Context, key string, body io.Reader, contentType string) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	f.key, f.contentType, f.size = key, contentType, len(data)
	return "https://bucket.s3.ap-south-1.amazonaws.com/" + key, nil
}

func (f *fakeFileService) TestConnection(context.Context) error { return nil }
