package ui

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/paper-downloader/internal/model"
)

// File size formatting constants
const (
	FileSizeUnit  = 1024
	FileSizeUnits = "KMGTPE"
)

// Progress calculation constants
const (
	MaxProgressPercent  = 100
	MinProgressPercent  = 1
	RoundingCoefficient = 0.5
)

// formatFileSize formats file size in bytes to human readable format
func formatFileSize(bytes int64) string {
	if bytes < FileSizeUnit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(FileSizeUnit), 0
	for n := bytes / FileSizeUnit; n >= FileSizeUnit; n /= FileSizeUnit {
		div *= FileSizeUnit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), FileSizeUnits[exp])
}

// effectivePercent derives a display percentage, never showing 0 once bytes flow
func effectivePercent(task *model.DownloadTask) int {
	if task.Status == model.TaskStatusCompleted {
		return MaxProgressPercent
	}
	percent := task.Percent
	if percent <= 0 && task.Progress > 0 {
		percent = int(task.Progress*MaxProgressPercent + RoundingCoefficient)
		if percent == 0 {
			percent = MinProgressPercent
		}
	}
	if percent < 0 {
		percent = 0
	}
	if percent > MaxProgressPercent {
		percent = MaxProgressPercent
	}
	return percent
}

// TaskRow represents a compact download row widget
type TaskRow struct {
	widget.BaseWidget

	task         *model.DownloadTask
	localization *Localization

	// UI components
	titleLabel    *widget.Label
	statusLabel   *widget.Label
	progressBar   *widget.ProgressBar
	speedEtaLabel *widget.Label

	// Action buttons
	stopRetryBtn *widget.Button
	openBtn      *widget.Button // open with default PDF viewer
	revealBtn    *widget.Button // reveal in file manager
	removeBtn    *widget.Button

	// Callbacks
	onStop    func(taskID string)
	onRestart func(taskID string)
	onOpen    func(filePath string)
	onReveal  func(filePath string)
	onRemove  func(taskID string)
}

// NewTaskRow creates a new task row widget
func NewTaskRow(task *model.DownloadTask, localization *Localization) *TaskRow {
	if task == nil {
		task = &model.DownloadTask{Status: model.TaskStatusPending}
	}

	tr := &TaskRow{
		task:         task,
		localization: localization,
	}
	tr.ExtendBaseWidget(tr)
	tr.createUI()
	tr.updateFromTask()
	return tr
}

// SetCallbacks sets the action callbacks
func (tr *TaskRow) SetCallbacks(
	onStop func(taskID string),
	onRestart func(taskID string),
	onOpen func(filePath string),
	onReveal func(filePath string),
	onRemove func(taskID string),
) {
	tr.onStop = onStop
	tr.onRestart = onRestart
	tr.onOpen = onOpen
	tr.onReveal = onReveal
	tr.onRemove = onRemove
}

// Task returns the task currently shown
func (tr *TaskRow) Task() *model.DownloadTask {
	return tr.task
}

// UpdateTask updates the row with new task data
func (tr *TaskRow) UpdateTask(task *model.DownloadTask) {
	if task == nil {
		return
	}
	tr.task = task
	tr.updateFromTask()
	tr.Refresh()
}

// createUI creates the UI components
func (tr *TaskRow) createUI() {
	tr.titleLabel = widget.NewLabel("")
	tr.titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	tr.titleLabel.Truncation = fyne.TextTruncateEllipsis

	tr.statusLabel = widget.NewLabel("")
	tr.statusLabel.Alignment = fyne.TextAlignTrailing

	tr.progressBar = widget.NewProgressBar()
	tr.progressBar.Max = MaxProgressPercent
	tr.progressBar.TextFormatter = func() string {
		return fmt.Sprintf(ProgressLabelFormat, int(tr.progressBar.Value))
	}

	tr.speedEtaLabel = widget.NewLabel("")
	tr.speedEtaLabel.TextStyle = fyne.TextStyle{Monospace: true}

	// Stop while running, retry once finished without success
	tr.stopRetryBtn = widget.NewButton(tr.localization.GetText(KeyStop), func() {
		current := tr.task
		switch {
		case current.Status.CanStop():
			if tr.onStop != nil {
				tr.onStop(current.ID)
			}
		case current.Status.CanRestart():
			if tr.onRestart != nil {
				tr.onRestart(current.ID)
			}
		}
	})

	tr.openBtn = widget.NewButton(tr.localization.GetText(KeyOpen), func() {
		if tr.onOpen != nil && tr.task.OutputPath != "" {
			tr.onOpen(tr.task.OutputPath)
		}
	})

	tr.revealBtn = widget.NewButton(IconFolder, func() {
		if tr.onReveal != nil && tr.task.OutputPath != "" {
			tr.onReveal(tr.task.OutputPath)
		}
	})

	tr.removeBtn = widget.NewButton(IconClose, func() {
		if tr.onRemove != nil {
			tr.onRemove(tr.task.ID)
		}
	})
	tr.removeBtn.Importance = widget.LowImportance
}

// updateFromTask updates UI components based on task state
func (tr *TaskRow) updateFromTask() {
	task := tr.task
	tr.titleLabel.SetText(task.GetDisplayTitle())

	switch task.Status {
	case model.TaskStatusError:
		tr.statusLabel.Importance = widget.DangerImportance
		tr.statusLabel.SetText(IconError + " " + task.Status.String())
	case model.TaskStatusCompleted:
		tr.statusLabel.Importance = widget.SuccessImportance
		tr.statusLabel.SetText(task.Status.String())
	case model.TaskStatusDownloading, model.TaskStatusStarting:
		tr.statusLabel.Importance = widget.HighImportance
		tr.statusLabel.SetText(IconPlay + " " + task.Status.String())
	case model.TaskStatusPending:
		tr.statusLabel.Importance = widget.MediumImportance
		tr.statusLabel.SetText(IconPending + " " + task.Status.String())
	case model.TaskStatusStopped, model.TaskStatusStopping:
		tr.statusLabel.Importance = widget.MediumImportance
		tr.statusLabel.SetText(IconStop + " " + task.Status.String())
	default:
		tr.statusLabel.Importance = widget.MediumImportance
		tr.statusLabel.SetText(task.Status.String())
	}

	tr.progressBar.SetValue(float64(effectivePercent(task)))

	speedEtaText := ""
	switch task.Status {
	case model.TaskStatusDownloading:
		if task.Speed != "" {
			speedEtaText = task.Speed
		}
		if task.ETASec > 0 {
			if speedEtaText != "" {
				speedEtaText += MiddleDotSeparator
			}
			speedEtaText += task.GetETAString()
		}
		if speedEtaText == "" {
			speedEtaText = DashPlaceholder
		}
	case model.TaskStatusCompleted:
		if task.BytesDone > 0 {
			speedEtaText = formatFileSize(task.BytesDone)
		}
	case model.TaskStatusError:
		speedEtaText = task.LastError
	}
	tr.speedEtaLabel.SetText(speedEtaText)

	tr.updateButtons()
}

// updateButtons updates button states based on task status
func (tr *TaskRow) updateButtons() {
	task := tr.task

	switch {
	case task.Status == model.TaskStatusCompleted:
		tr.stopRetryBtn.Hide()
	case task.Status == model.TaskStatusStopping:
		tr.stopRetryBtn.Show()
		tr.stopRetryBtn.Disable()
		tr.stopRetryBtn.SetText(tr.localization.GetText(KeyStop))
	case task.Status.CanRestart():
		tr.stopRetryBtn.Show()
		tr.stopRetryBtn.Enable()
		tr.stopRetryBtn.SetText(tr.localization.GetText(KeyRetry))
	default:
		tr.stopRetryBtn.Show()
		tr.stopRetryBtn.Enable()
		tr.stopRetryBtn.SetText(tr.localization.GetText(KeyStop))
	}

	if task.Status == model.TaskStatusCompleted && task.OutputPath != "" {
		tr.openBtn.Enable()
		tr.revealBtn.Enable()
	} else {
		tr.openBtn.Disable()
		tr.revealBtn.Disable()
	}

	if task.Status.IsActive() {
		tr.removeBtn.Disable()
	} else {
		tr.removeBtn.Enable()
	}
}

// CreateRenderer creates the widget renderer
func (tr *TaskRow) CreateRenderer() fyne.WidgetRenderer {
	// Fix status width with a transparent rectangle underneath
	spacer := canvas.NewRectangle(color.Transparent)
	spacer.SetMinSize(fyne.NewSize(StatusLabelWidth, tr.statusLabel.MinSize().Height))
	status := container.NewStack(spacer, tr.statusLabel)

	actionRow := container.NewHBox(tr.stopRetryBtn, tr.openBtn, tr.revealBtn, tr.removeBtn)
	top := container.NewBorder(nil, nil, nil, container.NewHBox(status, actionRow), tr.titleLabel)
	bottom := container.NewBorder(nil, nil, nil, tr.speedEtaLabel, tr.progressBar)

	minSize := canvas.NewRectangle(color.Transparent)
	minSize.SetMinSize(fyne.NewSize(RowMinWidth, RowMinHeight))

	return widget.NewSimpleRenderer(container.NewStack(minSize, container.NewVBox(top, bottom, widget.NewSeparator())))
}
