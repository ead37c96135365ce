// queue — очередь фоновых задач поверх Redis-списка.
// Сервис кладёт задания при мутациях задач; worker забирает их блокирующим
// BRPOP. Политика backpressure сознательно отсутствует: очередь не ограничена,
// потребитель снимает задания по мере сил.
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Типы заданий.
const (
	JobTaskStatusUpdate = "task-status-update"
	JobTaskOverdue      = "task-overdue"
)

// ErrEmpty — очередь пуста (BRPOP вышел по таймауту).
var ErrEmpty = errors.New("queue is empty")

// Job — одно задание в очереди.
type Job struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	Payload    json.RawMessage `json:"payload"`
	EnqueuedAt time.Time       `json:"enqueued_at"`
}

// TaskJobPayload — полезная нагрузка заданий task-status-update/task-overdue.
type TaskJobPayload struct {
	TaskID string `json:"task_id"`
	Status string `json:"status,omitempty"`
}

// NewJob собирает задание с полезной нагрузкой payload (сериализуется в JSON).
func NewJob(jobType string, payload any) (*Job, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &Job{
		ID:         uuid.NewString(),
		Type:       jobType,
		Payload:    raw,
		EnqueuedAt: time.Now().UTC(),
	}, nil
}

// Queue — минимальный контракт очереди заданий.
type Queue interface {
	// Enqueue кладёт задание в очередь.
	Enqueue(ctx context.Context, job *Job) error
	// Dequeue блокирующе забирает задание; ErrEmpty при простое.
	Dequeue(ctx context.Context) (*Job, error)
	// Close закрывает клиент Redis.
	Close() error
}

type redisQueue struct {
	rdb  *redis.Client
	key  string
	wait time.Duration
}

// NewRedisQueue создаёт очередь из URL Redis (например, redis://:pass@host:6379/0).
// Если key пустой — используется "tasks:jobs".
func NewRedisQueue(redisURL, key string) (Queue, error) {
	if key == "" {
		key = "tasks:jobs"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opt)

	// Fail-fast на старте.
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return &redisQueue{rdb: rdb, key: key, wait: 5 * time.Second}, nil
}

func (q *redisQueue) Enqueue(ctx context.Context, job *Job) error {
	raw, err := json.Marshal(job)
	if err != nil {
		return err
	}

	return q.rdb.LPush(ctx, q.key, raw).Err()
}

func (q *redisQueue) Dequeue(ctx context.Context) (*Job, error) {
	res, err := q.rdb.BRPop(ctx, q.wait, q.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrEmpty
		}

		return nil, err
	}

	// BRPOP возвращает пару [key, value].
	if len(res) != 2 {
		return nil, ErrEmpty
	}

	var job Job
	if err := json.Unmarshal([]byte(res[1]), &job); err != nil {
		return nil, err
	}

	return &job, nil
}

func (q *redisQueue) Close() error { return q.rdb.Close() }
