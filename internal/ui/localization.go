package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle          = "app_title"
	KeyClass             = "class"
	KeyMedium            = "medium"
	KeySubject           = "subject"
	KeyEnglishMedium     = "english_medium"
	KeyHindiMedium       = "hindi_medium"
	KeyPromptTitle       = "prompt_title"
	KeyPromptHint        = "prompt_hint"
	KeyNoResultsTitle    = "no_results_title"
	KeyNoResultsHint     = "no_results_hint"
	KeyDownloadPaper     = "download_paper"
	KeyPreview           = "preview"
	KeyPreviewTitle      = "preview_title"
	KeyPreviewNote       = "preview_note"
	KeyPreviewFailed     = "preview_failed"
	KeyPaperUnavailable  = "paper_unavailable"
	KeyDownloads         = "downloads"
	KeyDownloadStarted   = "download_started"
	KeyDownloadCompleted = "download_completed"
	KeyDownloadFailed    = "download_failed"
	KeyAlreadyInQueue    = "already_in_queue"
	KeyFallbackCatalog   = "fallback_catalog"
	KeyPages             = "pages"
	KeyYear              = "year"
	KeyStop              = "stop"
	KeyRetry             = "retry"
	KeyOpen              = "open"
	KeyReveal            = "reveal"
	KeyRemove            = "remove"
	KeyClose             = "close"
	KeySettings          = "settings"
	KeyFile              = "file"
	KeyLanguage          = "language"
	KeyDownloadDirectory = "download_directory"
	KeyMaxParallel       = "max_parallel"
	KeyCatalogSource     = "catalog_source"
	KeyDefaultMedium     = "default_medium"
	KeyAutoReveal        = "auto_reveal"
	KeySave              = "save"
	KeyCancel            = "cancel"
	KeyBrowse            = "browse"
	KeySettingsSaved     = "settings_saved"
	KeyRestartRequired   = "restart_required"
	KeyErrorOpeningFile  = "error_opening_file"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		// Use system locale - simplified to English for now
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"hi": "हिन्दी",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	l.texts["en"] = map[string]string{
		KeyAppTitle:          "Question Papers",
		KeyClass:             "Class",
		KeyMedium:            "Medium",
		KeySubject:           "Subject",
		KeyEnglishMedium:     "English Medium",
		KeyHindiMedium:       "Hindi Medium",
		KeyPromptTitle:       "Select a subject to view question papers",
		KeyPromptHint:        "Choose from the available subjects above",
		KeyNoResultsTitle:    "No papers available for this selection",
		KeyNoResultsHint:     "Please try a different subject or medium",
		KeyDownloadPaper:     "Download Paper",
		KeyPreview:           "Preview",
		KeyPreviewTitle:      "Paper Preview",
		KeyPreviewNote:       "Note: This is a preview. Download the full PDF for complete paper.",
		KeyPreviewFailed:     "Could not load preview",
		KeyPaperUnavailable:  "Paper URL not available. Please check back later.",
		KeyDownloads:         "Downloads",
		KeyDownloadStarted:   "Download started",
		KeyDownloadCompleted: "Download completed",
		KeyDownloadFailed:    "Download failed",
		KeyAlreadyInQueue:    "This paper is already downloading",
		KeyFallbackCatalog:   "Could not load papers.json, showing built-in papers",
		KeyPages:             "pages",
		KeyYear:              "Year",
		KeyStop:              "Stop",
		KeyRetry:             "Retry",
		KeyOpen:              "Open",
		KeyReveal:            "Show in folder",
		KeyRemove:            "Remove",
		KeyClose:             "Close",
		KeySettings:          "Settings",
		KeyFile:              "File",
		KeyLanguage:          "Language",
		KeyDownloadDirectory: "Download Directory",
		KeyMaxParallel:       "Max Parallel Downloads",
		KeyCatalogSource:     "Catalog Source (URL or path)",
		KeyDefaultMedium:     "Default Medium",
		KeyAutoReveal:        "Show saved papers in folder",
		KeySave:              "Save",
		KeyCancel:            "Cancel",
		KeyBrowse:            "Browse",
		KeySettingsSaved:     "Settings saved successfully!",
		KeyRestartRequired:   "Catalog changes apply after restart.",
		KeyErrorOpeningFile:  "Error opening file",
	}

	l.texts["hi"] = map[string]string{
		KeyAppTitle:          "प्रश्न पत्र",
		KeyClass:             "कक्षा",
		KeyMedium:            "माध्यम",
		KeySubject:           "विषय",
		KeyEnglishMedium:     "अंग्रेज़ी माध्यम",
		KeyHindiMedium:       "हिंदी माध्यम",
		KeyPromptTitle:       "प्रश्न पत्र देखने के लिए विषय चुनें",
		KeyPromptHint:        "ऊपर दिए गए विषयों में से चुनें",
		KeyNoResultsTitle:    "इस चयन के लिए कोई प्रश्न पत्र उपलब्ध नहीं है",
		KeyNoResultsHint:     "कृपया कोई अन्य विषय या माध्यम चुनें",
		KeyDownloadPaper:     "प्रश्न पत्र डाउनलोड करें",
		KeyPreview:           "पूर्वावलोकन",
		KeyPreviewTitle:      "प्रश्न पत्र पूर्वावलोकन",
		KeyPreviewNote:       "नोट: यह केवल पूर्वावलोकन है। पूरा प्रश्न पत्र PDF डाउनलोड करें।",
		KeyPreviewFailed:     "पूर्वावलोकन लोड नहीं हो सका",
		KeyPaperUnavailable:  "प्रश्न पत्र अभी उपलब्ध नहीं है। कृपया बाद में देखें।",
		KeyDownloads:         "डाउनलोड",
		KeyDownloadStarted:   "डाउनलोड शुरू हुआ",
		KeyDownloadCompleted: "डाउनलोड पूरा हुआ",
		KeyDownloadFailed:    "डाउनलोड विफल",
		KeyAlreadyInQueue:    "यह प्रश्न पत्र पहले से डाउनलोड हो रहा है",
		KeyFallbackCatalog:   "papers.json लोड नहीं हो सका, अंतर्निहित प्रश्न पत्र दिखाए जा रहे हैं",
		KeyPages:             "पृष्ठ",
		KeyYear:              "वर्ष",
		KeyStop:              "रोकें",
		KeyRetry:             "फिर से प्रयास करें",
		KeyOpen:              "खोलें",
		KeyReveal:            "फ़ोल्डर में दिखाएँ",
		KeyRemove:            "हटाएँ",
		KeyClose:             "बंद करें",
		KeySettings:          "सेटिंग्स",
		KeyFile:              "फ़ाइल",
		KeyLanguage:          "भाषा",
		KeyDownloadDirectory: "डाउनलोड फ़ोल्डर",
		KeyMaxParallel:       "एक साथ अधिकतम डाउनलोड",
		KeyCatalogSource:     "कैटलॉग स्रोत (URL या पथ)",
		KeyDefaultMedium:     "डिफ़ॉल्ट माध्यम",
		KeyAutoReveal:        "सहेजे गए प्रश्न पत्र फ़ोल्डर में दिखाएँ",
		KeySave:              "सहेजें",
		KeyCancel:            "रद्द करें",
		KeyBrowse:            "ब्राउज़ करें",
		KeySettingsSaved:     "सेटिंग्स सहेजी गईं!",
		KeyRestartRequired:   "कैटलॉग परिवर्तन पुनः आरंभ के बाद लागू होंगे।",
		KeyErrorOpeningFile:  "फ़ाइल खोलने में त्रुटि",
	}
}
