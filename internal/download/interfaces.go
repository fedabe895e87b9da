package download

import (
	"context"
	"io"

	"github.com/ytget/paper-downloader/internal/model"
)

// Opener opens a catalog reference for reading. The returned size is -1 when
// unknown. *catalog.Loader implements it.
type Opener interface {
	Open(ctx context.Context, ref string) (io.ReadCloser, int64, error)
}

// Downloader defines the interface for the download service.
type Downloader interface {
	SetUpdateCallback(func(*model.DownloadTask))
	AddTask(url, fileName string) (*model.DownloadTask, error)
	GetTask(id string) (*model.DownloadTask, bool)
	GetAllTasks() []*model.DownloadTask
	StopTask(id string) error
	RestartTask(id string) error
	RemoveTask(id string) error

	// SetMaxParallelDownloads sets the maximum number of parallel downloads
	SetMaxParallelDownloads(max int)

	// SetDownloadDirectory sets the download directory
	SetDownloadDirectory(dir string)

	// Shutdown stops all active downloads and waits for them to exit
	Shutdown()
}
