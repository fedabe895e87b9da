package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/ytget/paper-downloader/internal/catalog"
	"github.com/ytget/paper-downloader/internal/config"
	"github.com/ytget/paper-downloader/internal/download"
	"github.com/ytget/paper-downloader/internal/model"
	"github.com/ytget/paper-downloader/internal/platform"
	"github.com/ytget/paper-downloader/internal/selection"
)

// Preview loading limits
const (
	PreviewTimeout  = 30 * time.Second
	MaxPreviewBytes = 20 << 20
)

var errPreviewTooLarge = errors.New("preview image too large")

// RootUI represents the main window
type RootUI struct {
	window       fyne.Window
	machine      *selection.Machine
	opener       download.Opener
	downloadSvc  download.Downloader
	settings     *config.Settings
	localization *Localization
	logger       *zap.Logger
	origin       catalog.Origin

	// Selection controls
	classLabel     *widget.Label
	mediumLabel    *widget.Label
	subjectLabel   *widget.Label
	classRadio     *widget.RadioGroup
	mediumRadio    *widget.RadioGroup
	mediumOptions  map[string]string // display label -> medium
	subjectRow     *fyne.Container
	subjectButtons map[string]*widget.Button

	// Papers area
	captionLabel *widget.Label
	papersArea   *fyne.Container
	preview      *PreviewOverlay

	// Downloads panel, only touched on the UI goroutine
	downloadsLabel *widget.Label
	taskList       *widget.List
	tasks          []*model.DownloadTask

	// Notification panel
	notificationContainer *fyne.Container
	notificationLabel     *widget.Label
	notificationSeq       int
}

// NewRootUI builds the window content around an already loaded catalog.
// opener resolves preview images; it is usually the catalog loader.
func NewRootUI(
	window fyne.Window,
	machine *selection.Machine,
	opener download.Opener,
	downloadSvc download.Downloader,
	settings *config.Settings,
	origin catalog.Origin,
	logger *zap.Logger,
) *RootUI {
	if logger == nil {
		logger = zap.NewNop()
	}

	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		window:         window,
		machine:        machine,
		opener:         opener,
		downloadSvc:    downloadSvc,
		settings:       settings,
		localization:   localization,
		logger:         logger.Named("ui"),
		origin:         origin,
		mediumOptions:  make(map[string]string),
		subjectButtons: make(map[string]*widget.Button),
	}

	window.SetTitle(localization.GetText(KeyAppTitle))

	ui.downloadSvc.SetUpdateCallback(ui.onTaskUpdate)
	ui.machine.SetObserver(ui.applyState)

	ui.setupUI()
	ui.applyState(machine.Selection(), machine.View())

	if origin == catalog.OriginFallback {
		ui.showNotification(IconNotice + " " + localization.GetText(KeyFallbackCatalog))
	}
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	header := container.NewHBox(settingsBtn)
	if logo, err := LoadLogoResource(); err == nil {
		logoImage := canvas.NewImageFromResource(logo)
		logoImage.SetMinSize(fyne.NewSize(32, 32))
		logoImage.FillMode = canvas.ImageFillContain
		header = container.NewHBox(logoImage, settingsBtn)
	}

	sel := ui.machine.Selection()

	ui.classLabel = widget.NewLabel("")
	ui.classLabel.TextStyle = fyne.TextStyle{Bold: true}
	ui.classRadio = widget.NewRadioGroup(model.Classes(), nil)
	ui.classRadio.Horizontal = true
	ui.classRadio.Required = true
	ui.classRadio.Selected = sel.Class
	ui.classRadio.OnChanged = func(class string) {
		if class != "" {
			ui.dispatch(selection.ChooseClass{Class: class})
		}
	}

	ui.mediumLabel = widget.NewLabel("")
	ui.mediumLabel.TextStyle = fyne.TextStyle{Bold: true}
	ui.mediumRadio = widget.NewRadioGroup(nil, nil)
	ui.mediumRadio.Horizontal = true
	ui.mediumRadio.Required = true
	ui.mediumRadio.OnChanged = func(label string) {
		if medium, ok := ui.mediumOptions[label]; ok {
			ui.dispatch(selection.ChooseMedium{Medium: medium})
		}
	}

	ui.subjectLabel = widget.NewLabel("")
	ui.subjectLabel.TextStyle = fyne.TextStyle{Bold: true}
	ui.subjectRow = container.NewHBox()

	ui.captionLabel = widget.NewLabel("")
	ui.captionLabel.TextStyle = fyne.TextStyle{Bold: true}
	ui.captionLabel.Alignment = fyne.TextAlignCenter

	ui.notificationLabel = widget.NewLabel("")
	ui.notificationLabel.Wrapping = fyne.TextWrapWord
	ui.notificationContainer = container.NewPadded(ui.notificationLabel)
	ui.notificationContainer.Hide()

	controls := container.NewVBox(
		header,
		container.NewBorder(nil, nil, ui.classLabel, nil, ui.classRadio),
		container.NewBorder(nil, nil, ui.mediumLabel, nil, ui.mediumRadio),
		container.NewBorder(nil, nil, ui.subjectLabel, nil, container.NewHScroll(ui.subjectRow)),
		ui.notificationContainer,
		widget.NewSeparator(),
		ui.captionLabel,
	)

	ui.papersArea = container.NewStack()
	papers := container.NewBorder(controls, nil, nil, nil, container.NewVScroll(ui.papersArea))

	ui.downloadsLabel = widget.NewLabel("")
	ui.downloadsLabel.TextStyle = fyne.TextStyle{Bold: true}
	ui.taskList = widget.NewList(
		func() int { return len(ui.tasks) },
		ui.createTaskItem,
		ui.updateTaskItem,
	)
	downloads := container.NewBorder(ui.downloadsLabel, nil, nil, nil, ui.taskList)

	split := container.NewVSplit(papers, downloads)
	split.Offset = DownloadsPanelOffset

	ui.refreshTexts()
	ui.window.SetContent(split)
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	for _, code := range []string{"en", "hi"} {
		langCode := code
		name := ui.localization.GetAvailableLanguages()[code]
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})
		langItem.Checked = ui.localization.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem),
		languageMenu,
	))
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshTexts()
	ui.applyState(ui.machine.Selection(), ui.machine.View())
	ui.taskList.Refresh()
	ui.createMenu()
}

// refreshTexts updates all static texts with the current language
func (ui *RootUI) refreshTexts() {
	l := ui.localization
	ui.window.SetTitle(l.GetText(KeyAppTitle))
	ui.classLabel.SetText(l.GetText(KeyClass))
	ui.mediumLabel.SetText(l.GetText(KeyMedium))
	ui.subjectLabel.SetText(l.GetText(KeySubject))
	ui.downloadsLabel.SetText(l.GetText(KeyDownloads))

	// Assigning fields directly keeps OnChanged from firing
	ui.mediumOptions = make(map[string]string)
	options := make([]string, 0, len(model.Media()))
	selected := ""
	for _, medium := range model.Media() {
		label := ui.mediumText(medium)
		ui.mediumOptions[label] = medium
		options = append(options, label)
		if medium == ui.machine.Selection().Medium {
			selected = label
		}
	}
	ui.mediumRadio.Options = options
	ui.mediumRadio.Selected = selected
	ui.mediumRadio.Refresh()
}

func (ui *RootUI) mediumText(medium string) string {
	switch medium {
	case model.MediumEnglish:
		return ui.localization.GetText(KeyEnglishMedium)
	case model.MediumHindi:
		return ui.localization.GetText(KeyHindiMedium)
	}
	return medium
}

// dispatch sends msg to the selection machine. Accepted messages are drawn
// by the machine observer.
func (ui *RootUI) dispatch(msg selection.Message) {
	if _, err := ui.machine.Dispatch(msg); err != nil {
		ui.logger.Warn("selection rejected", zap.Error(err))
		ui.showNotification(IconError + " " + err.Error())
	}
}

// applyState redraws the controls and the papers area for sel
func (ui *RootUI) applyState(sel model.Selection, view model.View) {
	if ui.classRadio.Selected != sel.Class {
		ui.classRadio.Selected = sel.Class
		ui.classRadio.Refresh()
	}
	if medium := ui.mediumText(sel.Medium); ui.mediumRadio.Selected != medium {
		ui.mediumRadio.Selected = medium
		ui.mediumRadio.Refresh()
	}

	ui.rebuildSubjects(sel.Subject)
	ui.showView(view)
}

// rebuildSubjects recreates the subject buttons for the current class
func (ui *RootUI) rebuildSubjects(active string) {
	ui.subjectButtons = make(map[string]*widget.Button)
	objects := make([]fyne.CanvasObject, 0, len(ui.machine.Subjects()))
	for _, subject := range ui.machine.Subjects() {
		subj := subject
		btn := widget.NewButton(subj, func() {
			ui.dispatch(selection.ChooseSubject{Subject: subj})
		})
		if subj == active {
			btn.Importance = widget.HighImportance
		}
		ui.subjectButtons[subj] = btn
		objects = append(objects, btn)
	}
	ui.subjectRow.Objects = objects
	ui.subjectRow.Refresh()
}

// showView draws either the placeholder or the card grid
func (ui *RootUI) showView(view model.View) {
	ui.captionLabel.SetText(view.Caption)

	var content fyne.CanvasObject
	if view.IsPlaceholder() {
		content = ui.placeholder(view.Placeholder)
	} else {
		grid := container.NewGridWrap(fyne.NewSize(CardWidth, CardHeight))
		for _, c := range view.Cards {
			pc := NewPaperCard(c, ui.localization)
			pc.SetCallbacks(ui.onDownloadCard, ui.onPreviewCard)
			grid.Add(pc)
		}
		content = grid
	}

	ui.papersArea.Objects = []fyne.CanvasObject{content}
	ui.papersArea.Refresh()
}

func (ui *RootUI) placeholder(p model.Placeholder) fyne.CanvasObject {
	icon, title, hint := IconSearch, p.Title, p.Hint
	switch p.Kind {
	case model.PlaceholderPrompt:
		title, hint = ui.localization.GetText(KeyPromptTitle), ui.localization.GetText(KeyPromptHint)
	case model.PlaceholderNoResults:
		icon = IconFile
		title, hint = ui.localization.GetText(KeyNoResultsTitle), ui.localization.GetText(KeyNoResultsHint)
	}

	iconLabel := widget.NewLabel(icon)
	iconLabel.Alignment = fyne.TextAlignCenter
	titleLabel := widget.NewLabel(title)
	titleLabel.Alignment = fyne.TextAlignCenter
	titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	hintLabel := widget.NewLabel(hint)
	hintLabel.Alignment = fyne.TextAlignCenter
	hintLabel.Importance = widget.LowImportance

	return container.NewCenter(container.NewVBox(iconLabel, titleLabel, hintLabel))
}

// onDownloadCard queues the card's file, or explains why it cannot
func (ui *RootUI) onDownloadCard(c model.Card) {
	if !c.Available() {
		ui.showUnavailable(c)
		return
	}

	task, err := ui.downloadSvc.AddTask(c.URL, c.FileName)
	switch {
	case errors.Is(err, download.ErrPaperUnavailable):
		ui.showUnavailable(c)
		return
	case errors.Is(err, download.ErrDuplicateTask):
		ui.showNotification(ui.localization.GetText(KeyAlreadyInQueue))
		return
	case err != nil:
		ui.logger.Error("add download", zap.String("url", c.URL), zap.Error(err))
		dialog.ShowError(err, ui.window)
		return
	}

	if ui.taskIndex(task.ID) < 0 {
		ui.tasks = append(ui.tasks, task)
		ui.taskList.Refresh()
	}
	ui.showNotification(ui.localization.GetText(KeyDownloadStarted) + ": " + c.FileName)
}

func (ui *RootUI) showUnavailable(c model.Card) {
	ui.logger.Warn("paper not available",
		zap.String("class", c.Class),
		zap.String("subject", c.Subject),
		zap.String("year", c.Year))
	dialog.ShowInformation(ui.localization.GetText(KeyAppTitle), ui.localization.GetText(KeyPaperUnavailable), ui.window)
}

// onPreviewCard opens a preview overlay and loads the image in the background
func (ui *RootUI) onPreviewCard(c model.Card) {
	if !c.HasPreview() {
		return
	}
	if ui.preview != nil {
		ui.preview.Dismiss()
	}

	ctx, cancel := context.WithTimeout(context.Background(), PreviewTimeout)
	var overlay *PreviewOverlay
	overlay = NewPreviewOverlay(ui.window.Canvas(), ui.localization, func() {
		cancel()
		if ui.preview == overlay {
			ui.preview = nil
		}
	})
	ui.preview = overlay
	overlay.Open()

	ref := c.Preview
	go func() {
		data, err := ui.readPreview(ctx, ref)
		fyne.Do(func() {
			if !overlay.IsOpen() {
				return
			}
			if err != nil {
				ui.logger.Warn("load preview", zap.String("preview", ref), zap.Error(err))
				overlay.SetError(err)
				return
			}
			overlay.SetImage(path.Base(ref), data)
		})
	}()
}

func (ui *RootUI) readPreview(ctx context.Context, ref string) ([]byte, error) {
	body, _, err := ui.opener.Open(ctx, ref)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	data, err := io.ReadAll(io.LimitReader(body, MaxPreviewBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read preview: %w", err)
	}
	if len(data) > MaxPreviewBytes {
		return nil, errPreviewTooLarge
	}
	return data, nil
}

// showNotification displays a message under the controls; it hides itself
// after NotificationAutoHide unless replaced.
func (ui *RootUI) showNotification(message string) {
	ui.notificationSeq++
	seq := ui.notificationSeq

	ui.notificationLabel.SetText(message)
	ui.notificationContainer.Show()

	time.AfterFunc(NotificationAutoHide, func() {
		fyne.Do(func() {
			if ui.notificationSeq == seq {
				ui.notificationContainer.Hide()
			}
		})
	})
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	ShowSettingsDialog(ui.window, ui.settings, ui.localization, ui.applySettings)
}

// applySettings pushes saved settings into the running services
func (ui *RootUI) applySettings() {
	dir := ui.settings.GetDownloadDirectory()
	if err := platform.CreateDirectoryIfNotExists(dir); err != nil {
		ui.logger.Warn("create download directory", zap.String("dir", dir), zap.Error(err))
	}
	ui.downloadSvc.SetDownloadDirectory(dir)
	ui.downloadSvc.SetMaxParallelDownloads(ui.settings.GetMaxParallelDownloads())

	if lang := ui.settings.GetLanguage(); lang != ui.localization.GetCurrentLanguage() {
		ui.onLanguageChange(lang)
	}
}

// createTaskItem creates a new task row for the list
func (ui *RootUI) createTaskItem() fyne.CanvasObject {
	row := NewTaskRow(nil, ui.localization)
	row.SetCallbacks(ui.onStopTask, ui.onRestartTask, ui.onOpenFile, ui.onRevealFile, ui.onRemoveTask)
	return row
}

// updateTaskItem binds a list row to the task at id
func (ui *RootUI) updateTaskItem(id widget.ListItemID, item fyne.CanvasObject) {
	if id < 0 || id >= len(ui.tasks) {
		return
	}
	if row, ok := item.(*TaskRow); ok {
		row.UpdateTask(ui.tasks[id])
	}
}

func (ui *RootUI) taskIndex(id string) int {
	for i, task := range ui.tasks {
		if task.ID == id {
			return i
		}
	}
	return -1
}

// onTaskUpdate receives snapshots from the download workers
func (ui *RootUI) onTaskUpdate(task *model.DownloadTask) {
	fyne.Do(func() {
		ui.applyTaskUpdate(task)
	})
}

// applyTaskUpdate stores a snapshot and reacts to completion. UI goroutine only.
func (ui *RootUI) applyTaskUpdate(task *model.DownloadTask) {
	idx := ui.taskIndex(task.ID)
	if idx < 0 {
		ui.tasks = append(ui.tasks, task)
		ui.taskList.Refresh()
		return
	}

	previous := ui.tasks[idx]
	ui.tasks[idx] = task
	ui.taskList.RefreshItem(idx)

	if previous.Status == task.Status {
		return
	}
	switch task.Status {
	case model.TaskStatusCompleted:
		ui.onTaskCompleted(task)
	case model.TaskStatusError:
		ui.showNotification(IconError + " " + ui.localization.GetText(KeyDownloadFailed) + ": " + task.GetDisplayTitle())
	}
}

func (ui *RootUI) onTaskCompleted(task *model.DownloadTask) {
	title := ui.localization.GetText(KeyDownloadCompleted)
	fyne.CurrentApp().SendNotification(fyne.NewNotification(title, task.GetDisplayTitle()))
	ui.showNotification(title + ": " + task.GetDisplayTitle())

	if ui.settings.GetAutoRevealOnComplete() && task.OutputPath != "" {
		ui.onRevealFile(task.OutputPath)
	}
}

func (ui *RootUI) onStopTask(taskID string) {
	if err := ui.downloadSvc.StopTask(taskID); err != nil {
		ui.logger.Warn("stop task", zap.String("task", taskID), zap.Error(err))
	}
}

func (ui *RootUI) onRestartTask(taskID string) {
	if err := ui.downloadSvc.RestartTask(taskID); err != nil {
		ui.logger.Warn("restart task", zap.String("task", taskID), zap.Error(err))
		dialog.ShowError(err, ui.window)
	}
}

// onRevealFile handles revealing a file in the system file manager
func (ui *RootUI) onRevealFile(filePath string) {
	if err := platform.OpenFileInManager(filePath); err != nil {
		ui.logger.Warn("reveal file", zap.String("path", filePath), zap.Error(err))
		ui.showNotification(ui.localization.GetText(KeyErrorOpeningFile) + ": " + err.Error())
	}
}

// onOpenFile handles opening a saved paper with the default application
func (ui *RootUI) onOpenFile(filePath string) {
	if err := platform.OpenFileWithDefaultApp(filePath); err != nil {
		ui.logger.Warn("open file", zap.String("path", filePath), zap.Error(err))
		ui.showNotification(ui.localization.GetText(KeyErrorOpeningFile) + ": " + err.Error())
	}
}

// onRemoveTask removes a finished task from the service and the list
func (ui *RootUI) onRemoveTask(taskID string) {
	if err := ui.downloadSvc.RemoveTask(taskID); err != nil {
		ui.logger.Warn("remove task", zap.String("task", taskID), zap.Error(err))
		dialog.ShowError(err, ui.window)
		return
	}
	if idx := ui.taskIndex(taskID); idx >= 0 {
		ui.tasks = append(ui.tasks[:idx], ui.tasks[idx+1:]...)
		ui.taskList.Refresh()
	}
}
