package ui

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"

	"github.com/ytget/paper-downloader/internal/model"
)

func TestFormatFileSize(t *testing.T) {
	assert.Equal(t, "512 B", formatFileSize(512))
	assert.Equal(t, "1.5 KB", formatFileSize(1536))
	assert.Equal(t, "2.0 MB", formatFileSize(2*1024*1024))
}

func TestEffectivePercent(t *testing.T) {
	tests := []struct {
		name string
		task model.DownloadTask
		want int
	}{
		{"completed", model.DownloadTask{Status: model.TaskStatusCompleted}, 100},
		{"percent", model.DownloadTask{Status: model.TaskStatusDownloading, Percent: 42}, 42},
		{"progress only", model.DownloadTask{Status: model.TaskStatusDownloading, Progress: 0.5}, 50},
		{"tiny progress", model.DownloadTask{Status: model.TaskStatusDownloading, Progress: 0.001}, 1},
		{"over", model.DownloadTask{Status: model.TaskStatusDownloading, Percent: 140}, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, effectivePercent(&tt.task))
		})
	}
}

func TestTaskRow_StopAndRetry(t *testing.T) {
	test.NewApp()
	task := &model.DownloadTask{ID: "task-1", FileName: "10th_Hindi_2022.pdf", Status: model.TaskStatusDownloading}
	row := NewTaskRow(task, NewLocalization())

	var stopped, restarted []string
	row.SetCallbacks(
		func(id string) { stopped = append(stopped, id) },
		func(id string) { restarted = append(restarted, id) },
		nil, nil, nil,
	)

	assert.Equal(t, "Stop", row.stopRetryBtn.Text)
	assert.True(t, row.removeBtn.Disabled())
	test.Tap(row.stopRetryBtn)
	assert.Equal(t, []string{"task-1"}, stopped)

	row.UpdateTask(&model.DownloadTask{ID: "task-1", FileName: "10th_Hindi_2022.pdf", Status: model.TaskStatusError, LastError: "HTTP 500"})
	assert.Equal(t, "Retry", row.stopRetryBtn.Text)
	assert.Equal(t, "HTTP 500", row.speedEtaLabel.Text)
	assert.False(t, row.removeBtn.Disabled())
	test.Tap(row.stopRetryBtn)
	assert.Equal(t, []string{"task-1"}, restarted)
}

func TestTaskRow_Completed(t *testing.T) {
	test.NewApp()
	row := NewTaskRow(&model.DownloadTask{ID: "task-1", Status: model.TaskStatusPending}, NewLocalization())
	assert.True(t, row.openBtn.Disabled())

	var opened, revealed string
	row.SetCallbacks(nil, nil,
		func(p string) { opened = p },
		func(p string) { revealed = p },
		nil,
	)

	row.UpdateTask(&model.DownloadTask{
		ID:         "task-1",
		Status:     model.TaskStatusCompleted,
		OutputPath: "/tmp/papers/10th_Hindi_2022.pdf",
		BytesDone:  2048,
	})

	assert.Equal(t, "10th_Hindi_2022.pdf", row.titleLabel.Text)
	assert.True(t, row.stopRetryBtn.Hidden)
	assert.Equal(t, "2.0 KB", row.speedEtaLabel.Text)
	assert.Equal(t, float64(100), row.progressBar.Value)

	test.Tap(row.openBtn)
	test.Tap(row.revealBtn)
	assert.Equal(t, "/tmp/papers/10th_Hindi_2022.pdf", opened)
	assert.Equal(t, "/tmp/papers/10th_Hindi_2022.pdf", revealed)
}
