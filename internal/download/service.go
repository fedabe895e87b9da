package download

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ytget/paper-downloader/internal/catalog"
	"github.com/ytget/paper-downloader/internal/model"
)

// Retry policy
const (
	DefaultMaxRetries = 1
	DefaultRetryDelay = 2 * time.Second
)

// Parallelism bounds
const (
	MinParallel = 1
	MaxParallel = 10
)

var (
	ErrTaskNotFound  = errors.New("task not found")
	ErrTaskNotActive = errors.New("task is not active")
	ErrDuplicateTask = errors.New("task already exists")
)

// Service handles download operations
type Service struct {
	fetcher *Fetcher
	logger  *zap.Logger

	tasks       map[string]*model.DownloadTask
	order       []string
	cancels     map[string]context.CancelFunc
	tasksMutex  sync.RWMutex
	maxParallel int
	activeCount int
	downloadDir string
	onUpdate    func(*model.DownloadTask) // callback for UI updates

	maxRetries int
	retryDelay time.Duration

	wg sync.WaitGroup
}

// NewService creates a new download service
func NewService(fetcher *Fetcher, downloadDir string, maxParallel int, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		fetcher:     fetcher,
		logger:      logger.Named("download"),
		tasks:       make(map[string]*model.DownloadTask),
		cancels:     make(map[string]context.CancelFunc),
		maxParallel: clampParallel(maxParallel),
		downloadDir: downloadDir,
		maxRetries:  DefaultMaxRetries,
		retryDelay:  DefaultRetryDelay,
	}
}

// SetUpdateCallback sets the callback function for task updates. The callback
// receives a snapshot and runs on the worker goroutine.
func (s *Service) SetUpdateCallback(callback func(*model.DownloadTask)) {
	s.tasksMutex.Lock()
	s.onUpdate = callback
	s.tasksMutex.Unlock()
}

// SetMaxParallelDownloads sets the maximum number of parallel downloads
func (s *Service) SetMaxParallelDownloads(max int) {
	s.tasksMutex.Lock()
	s.maxParallel = clampParallel(max)
	s.tasksMutex.Unlock()
	s.schedule()
}

// SetDownloadDirectory sets the directory used by tasks started afterwards
func (s *Service) SetDownloadDirectory(dir string) {
	s.tasksMutex.Lock()
	s.downloadDir = dir
	s.tasksMutex.Unlock()
}

// AddTask queues a save of url under fileName. The "#" sentinel is rejected
// with ErrPaperUnavailable and nothing is queued.
func (s *Service) AddTask(url, fileName string) (*model.DownloadTask, error) {
	if IsUnavailable(url) {
		s.logger.Warn("paper not available", zap.String("file", fileName))
		return nil, ErrPaperUnavailable
	}

	s.tasksMutex.Lock()
	for _, task := range s.tasks {
		if task.URL == url && !task.Status.IsFinished() {
			s.tasksMutex.Unlock()
			return nil, fmt.Errorf("%w for URL: %s", ErrDuplicateTask, url)
		}
	}

	task := &model.DownloadTask{
		ID:        generateTaskID(),
		URL:       url,
		FileName:  fileName,
		Status:    model.TaskStatusPending,
		ETASec:    -1,
		StartedAt: time.Now(),
	}
	s.tasks[task.ID] = task
	s.order = append(s.order, task.ID)
	snap := task.Snapshot()
	s.tasksMutex.Unlock()

	s.logger.Info("download initiated",
		zap.String("task", task.ID),
		zap.String("url", url),
		zap.String("file", fileName))
	s.notifyUpdate(snap)

	s.schedule()
	return snap, nil
}

// GetTask returns a snapshot of a task by ID
func (s *Service) GetTask(id string) (*model.DownloadTask, bool) {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	task, exists := s.tasks[id]
	if !exists {
		return nil, false
	}
	return task.Snapshot(), true
}

// GetAllTasks returns snapshots of all tasks in the order they were added
func (s *Service) GetAllTasks() []*model.DownloadTask {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()

	tasks := make([]*model.DownloadTask, 0, len(s.order))
	for _, id := range s.order {
		tasks = append(tasks, s.tasks[id].Snapshot())
	}
	return tasks
}

// StopTask stops a running task
func (s *Service) StopTask(id string) error {
	s.tasksMutex.Lock()
	task, exists := s.tasks[id]
	if !exists {
		s.tasksMutex.Unlock()
		return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}

	if task.Status == model.TaskStatusPending {
		task.Status = model.TaskStatusStopped
		task.FinishedAt = time.Now()
		snap := task.Snapshot()
		s.tasksMutex.Unlock()
		s.notifyUpdate(snap)
		return nil
	}

	if !task.Status.IsActive() {
		s.tasksMutex.Unlock()
		return fmt.Errorf("%w: %s", ErrTaskNotActive, task.Status)
	}

	task.Status = model.TaskStatusStopping
	cancel := s.cancels[id]
	snap := task.Snapshot()
	s.tasksMutex.Unlock()

	s.notifyUpdate(snap)
	// the worker goroutine records the final status
	if cancel != nil {
		cancel()
	}
	return nil
}

// RestartTask re-queues a stopped or failed task
func (s *Service) RestartTask(id string) error {
	s.tasksMutex.Lock()
	task, exists := s.tasks[id]
	if !exists {
		s.tasksMutex.Unlock()
		return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	if !task.Status.CanRestart() {
		s.tasksMutex.Unlock()
		return fmt.Errorf("task cannot be restarted from status %s", task.Status)
	}

	task.Status = model.TaskStatusPending
	task.Progress, task.Percent = 0, 0
	task.BytesDone, task.BytesTotal = 0, 0
	task.Speed, task.LastError = "", ""
	task.ETASec = -1
	task.StartedAt = time.Now()
	task.FinishedAt = time.Time{}
	snap := task.Snapshot()
	s.tasksMutex.Unlock()

	s.notifyUpdate(snap)
	s.schedule()
	return nil
}

// RemoveTask forgets a task, cancelling it first when active
func (s *Service) RemoveTask(id string) error {
	s.tasksMutex.Lock()
	if _, exists := s.tasks[id]; !exists {
		s.tasksMutex.Unlock()
		return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	cancel := s.cancels[id]
	delete(s.tasks, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.tasksMutex.Unlock()

	if cancel != nil {
		cancel()
	}
	return nil
}

// Shutdown cancels active downloads and waits for workers to exit
func (s *Service) Shutdown() {
	s.tasksMutex.Lock()
	for _, task := range s.tasks {
		if task.Status == model.TaskStatusPending {
			task.Status = model.TaskStatusStopped
		}
	}
	for _, cancel := range s.cancels {
		cancel()
	}
	s.tasksMutex.Unlock()

	s.wg.Wait()
}

// Wait blocks until no task is pending or running
func (s *Service) Wait() {
	s.wg.Wait()
}

// schedule starts pending tasks, oldest first, while capacity allows
func (s *Service) schedule() {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()

	for _, id := range s.order {
		if s.activeCount >= s.maxParallel {
			return
		}
		task := s.tasks[id]
		if task.Status != model.TaskStatusPending {
			continue
		}

		ctx, cancel := context.WithCancel(context.Background())
		s.cancels[id] = cancel
		s.activeCount++
		task.Status = model.TaskStatusStarting

		s.wg.Add(1)
		go s.startTask(ctx, cancel, task, s.downloadDir)
	}
}

// startTask runs one download on its own goroutine
func (s *Service) startTask(ctx context.Context, cancel context.CancelFunc, task *model.DownloadTask, dir string) {
	defer s.wg.Done()
	defer cancel()

	s.tasksMutex.Lock()
	task.Status = model.TaskStatusDownloading
	url, fileName := task.URL, task.FileName
	snap := task.Snapshot()
	s.tasksMutex.Unlock()
	s.notifyUpdate(snap)

	outputPath, err := s.downloadWithRetry(ctx, task, url, fileName, dir)

	// Final status and slot release happen together so a restart cannot
	// observe a finished task that still holds a slot.
	s.tasksMutex.Lock()
	switch {
	case err != nil && ctx.Err() != nil:
		task.Status = model.TaskStatusStopped
	case err != nil:
		task.Status = model.TaskStatusError
		task.LastError = err.Error()
	default:
		task.Status = model.TaskStatusCompleted
		task.Progress = 1.0
		task.Percent = 100
		task.ETASec = -1
		task.OutputPath = outputPath
	}
	task.FinishedAt = time.Now()
	s.activeCount--
	delete(s.cancels, task.ID)
	_, tracked := s.tasks[task.ID]
	snap = task.Snapshot()
	s.tasksMutex.Unlock()

	if err != nil && ctx.Err() == nil {
		s.logger.Error("download failed", zap.String("task", task.ID), zap.String("url", url), zap.Error(err))
	} else if err == nil {
		s.logger.Info("download completed", zap.String("task", task.ID), zap.String("path", outputPath))
	}

	if tracked {
		s.notifyUpdate(snap)
	}

	// Try to start next pending task
	s.schedule()
}

// downloadWithRetry attempts download with retry logic
func (s *Service) downloadWithRetry(ctx context.Context, task *model.DownloadTask, url, fileName, dir string) (string, error) {
	var lastErr error

	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(s.retryDelay):
			case <-ctx.Done():
				return "", ctx.Err()
			}
			s.logger.Info("retrying download", zap.String("task", task.ID), zap.Int("attempt", attempt+1))
		}

		path, err := s.fetcher.Fetch(ctx, url, dir, fileName, func(p Progress) {
			s.updateTaskProgress(task, p)
		})
		if err == nil {
			return path, nil
		}

		lastErr = err
		s.logger.Warn("download attempt failed",
			zap.String("task", task.ID),
			zap.Int("attempt", attempt+1),
			zap.Error(err))

		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if !retryable(err) {
			break
		}
	}

	return "", lastErr
}

// retryable reports whether another attempt could succeed
func retryable(err error) bool {
	if errors.Is(err, ErrPaperUnavailable) {
		return false
	}
	var statusErr *catalog.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode >= 500 || statusErr.StatusCode == 429
	}
	return true
}

// updateTaskProgress records transfer progress on the task
func (s *Service) updateTaskProgress(task *model.DownloadTask, p Progress) {
	s.tasksMutex.Lock()
	task.BytesDone = p.Done
	if p.Total > 0 {
		task.BytesTotal = p.Total
		percent := float64(p.Done) / float64(p.Total) * 100
		task.Percent = int(percent)
		task.Progress = percent / 100.0
	}

	if elapsed := time.Since(p.Started).Seconds(); elapsed > 0 {
		bytesPerSecond := float64(p.Done) / elapsed
		task.Speed = fmt.Sprintf("%.1fMB/s", bytesPerSecond/1024/1024)
		if p.Total > 0 && bytesPerSecond > 0 {
			task.ETASec = int(float64(p.Total-p.Done) / bytesPerSecond)
		}
	}
	snap := task.Snapshot()
	s.tasksMutex.Unlock()

	s.notifyUpdate(snap)
}

// notifyUpdate calls the update callback if set
func (s *Service) notifyUpdate(task *model.DownloadTask) {
	s.tasksMutex.RLock()
	cb := s.onUpdate
	s.tasksMutex.RUnlock()
	if cb != nil {
		cb(task)
	}
}

// generateTaskID generates a unique task ID
func generateTaskID() string {
	return "task-" + uuid.NewString()
}

func clampParallel(n int) int {
	if n < MinParallel {
		return MinParallel
	}
	if n > MaxParallel {
		return MaxParallel
	}
	return n
}
