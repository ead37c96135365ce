// Package worker — фоновая обработка заданий очереди и плановый
// overdue-обход.
//
// Worker поднимает Concurrency потребителей поверх блокирующего Dequeue
// и один тикер, который помечает просроченные задачи. Остановка — через
// отмену контекста, Run ждёт завершения всех горутин.
package worker

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pribylovaa/go-task-tracker/internal/models"
	"github.com/pribylovaa/go-task-tracker/internal/pkg/log"
	"github.com/pribylovaa/go-task-tracker/internal/queue"
	"github.com/pribylovaa/go-task-tracker/internal/service"
)

// Tasks — срез сервиса, нужный обработчикам заданий.
type Tasks interface {
	TaskByID(ctx context.Context, id uuid.UUID) (*models.Task, error)
	SweepOverdue(ctx context.Context) (int, error)
}

// Worker — пул потребителей очереди заданий.
type Worker struct {
	svc             Tasks
	jobs            queue.Queue
	concurrency     int
	overdueInterval time.Duration
}

// New создаёт Worker. При concurrency < 1 используется 1 потребитель,
// при overdueInterval <= 0 обход отключается.
func New(svc Tasks, jobs queue.Queue, concurrency int, overdueInterval time.Duration) *Worker {
	if concurrency < 1 {
		concurrency = 1
	}

	return &Worker{
		svc:             svc,
		jobs:            jobs,
		concurrency:     concurrency,
		overdueInterval: overdueInterval,
	}
}

// Run запускает потребителей и планировщик, блокируется до отмены ctx.
func (w *Worker) Run(ctx context.Context) {
	var wg sync.WaitGroup

	for i := 0; i < w.concurrency; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			w.consume(ctx, id)
		}(i)
	}

	if w.overdueInterval > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.sweepLoop(ctx)
		}()
	}

	wg.Wait()
}

// consume — цикл одного потребителя.
func (w *Worker) consume(ctx context.Context, id int) {
	lg := log.From(ctx).With(slog.Int("consumer", id))

	for {
		job, err := w.jobs.Dequeue(ctx)
		if err != nil {
			if errors.Is(err, queue.ErrEmpty) {
				continue
			}
			if ctx.Err() != nil {
				return
			}

			lg.Error("dequeue_failed", slog.String("err", err.Error()))

			// Пауза перед повтором, чтобы не крутить горячий цикл
			// при лежащем Redis.
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Second):
			}
			continue
		}

		w.handle(ctx, lg, job)
	}
}

// handle разбирает задание по типу. Неизвестный тип и битый payload
// фиксируются в логе и отбрасываются: повтор их не вылечит.
func (w *Worker) handle(ctx context.Context, lg *slog.Logger, job *queue.Job) {
	var payload queue.TaskJobPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		lg.Error("job_payload_invalid",
			slog.String("job_id", job.ID),
			slog.String("type", job.Type),
			slog.String("err", err.Error()),
		)
		return
	}

	taskID, err := uuid.Parse(payload.TaskID)
	if err != nil {
		lg.Error("job_task_id_invalid",
			slog.String("job_id", job.ID),
			slog.String("task_id", payload.TaskID),
		)
		return
	}

	switch job.Type {
	case queue.JobTaskStatusUpdate:
		w.handleStatusUpdate(ctx, lg, job, taskID, payload.Status)
	case queue.JobTaskOverdue:
		w.handleOverdue(ctx, lg, job, taskID)
	default:
		lg.Warn("job_type_unknown",
			slog.String("job_id", job.ID),
			slog.String("type", job.Type),
		)
	}
}

// handleStatusUpdate — аудит смены статуса: подтверждает текущее состояние
// задачи и пишет переход в лог. Задача могла быть удалена между постановкой
// задания и обработкой — это штатный случай.
func (w *Worker) handleStatusUpdate(ctx context.Context, lg *slog.Logger, job *queue.Job, taskID uuid.UUID, status string) {
	task, err := w.svc.TaskByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			lg.Info("status_update_task_gone",
				slog.String("job_id", job.ID),
				slog.String("task_id", taskID.String()),
			)
			return
		}

		lg.Error("status_update_failed",
			slog.String("job_id", job.ID),
			slog.String("task_id", taskID.String()),
			slog.String("err", err.Error()),
		)
		return
	}

	lg.Info("task_status_changed",
		slog.String("job_id", job.ID),
		slog.String("task_id", task.ID.String()),
		slog.String("status", status),
		slog.String("current", string(task.Status)),
	)
}

// handleOverdue — уведомление о просрочке. Канала доставки пока нет,
// событие фиксируется в логе.
func (w *Worker) handleOverdue(ctx context.Context, lg *slog.Logger, job *queue.Job, taskID uuid.UUID) {
	task, err := w.svc.TaskByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return
		}

		lg.Error("overdue_notify_failed",
			slog.String("job_id", job.ID),
			slog.String("task_id", taskID.String()),
			slog.String("err", err.Error()),
		)
		return
	}

	lg.Info("task_overdue",
		slog.String("job_id", job.ID),
		slog.String("task_id", task.ID.String()),
		slog.String("user_id", task.UserID.String()),
		slog.String("title", task.Title),
	)
}

// sweepLoop периодически помечает просроченные задачи.
func (w *Worker) sweepLoop(ctx context.Context) {
	lg := log.From(ctx)

	ticker := time.NewTicker(w.overdueInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := w.svc.SweepOverdue(ctx); err != nil {
				lg.Error("overdue_sweep_failed", slog.String("err", err.Error()))
			}
		}
	}
}
