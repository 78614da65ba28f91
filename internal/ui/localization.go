package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle          = "app_title"
	KeySelectImages      = "select_images"
	KeyClearSelection    = "clear_selection"
	KeyUpload            = "upload"
	KeyCancel            = "cancel"
	KeyProcessing        = "processing"
	KeyDownloadReady     = "download_ready"
	KeyDownloadLink      = "download_link"
	KeySaveToFolder      = "save_to_folder"
	KeySettings          = "settings"
	KeyFile              = "file"
	KeyLanguage          = "language"
	KeyServerURL         = "server_url"
	KeyTimeout           = "timeout"
	KeyInactivityTimeout = "inactivity_timeout"
	KeySaveDirectory     = "save_directory"
	KeyAutoReveal        = "auto_reveal"
	KeySave              = "save"
	KeyBrowse            = "browse"
	KeyNotice            = "notice"
	KeyNoImagesSelected  = "no_images_selected"
	KeyFilesSelected     = "files_selected"
	KeyDropHint          = "drop_hint"
	KeyNoSelection       = "no_selection"
	KeyUploadFailed      = "upload_failed"
	KeyUploadTimedOut    = "upload_timed_out"
	KeyUploadCanceled    = "upload_canceled"
	KeyUploadCompleted   = "upload_completed"
	KeySavedTo           = "saved_to"
	KeyErrorSaving       = "error_saving"
	KeySettingsSaved     = "settings_saved"
	KeyInvalidServerURL  = "invalid_server_url"
	KeySeconds           = "seconds"
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

// GetCurrentLanguage returns the active language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns language codes mapped to display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
		"pt": "Português",
	}
}

func (l *Localization) initializeTexts() {
	l.texts["en"] = map[string]string{
		KeyAppTitle:          "Deckify",
		KeySelectImages:      "Add Images",
		KeyClearSelection:    "Clear",
		KeyUpload:            "Upload & Convert",
		KeyCancel:            "Cancel",
		KeyProcessing:        "Processing your images...",
		KeyDownloadReady:     "Your presentation is ready.",
		KeyDownloadLink:      "Download",
		KeySaveToFolder:      "Save to folder",
		KeySettings:          "Settings",
		KeyFile:              "File",
		KeyLanguage:          "Language",
		KeyServerURL:         "Server URL",
		KeyTimeout:           "Upload timeout",
		KeyInactivityTimeout: "Stall timeout",
		KeySaveDirectory:     "Save directory",
		KeyAutoReveal:        "Show saved file in file manager",
		KeySave:              "Save",
		KeyBrowse:            "Browse",
		KeyNotice:            "Deckify",
		KeyNoImagesSelected:  "No images selected",
		KeyFilesSelected:     "%d image(s) selected",
		KeyDropHint:          "Add images or drop them onto the window",
		KeyNoSelection:       "Please select at least one image to upload.",
		KeyUploadFailed:      "Failed to process your images. Please try again later.",
		KeyUploadTimedOut:    "The server took too long to respond. Please try again later.",
		KeyUploadCanceled:    "Upload canceled.",
		KeyUploadCompleted:   "Presentation ready",
		KeySavedTo:           "Saved to",
		KeyErrorSaving:       "Error saving file",
		KeySettingsSaved:     "Settings saved successfully!",
		KeyInvalidServerURL:  "Invalid server URL",
		KeySeconds:           "seconds, 0 = off",
	}

	l.texts["ru"] = map[string]string{
		KeyAppTitle:          "Deckify",
		KeySelectImages:      "Добавить изображения",
		KeyClearSelection:    "Очистить",
		KeyUpload:            "Загрузить и конвертировать",
		KeyCancel:            "Отмена",
		KeyProcessing:        "Обработка изображений...",
		KeyDownloadReady:     "Презентация готова.",
		KeyDownloadLink:      "Скачать",
		KeySaveToFolder:      "Сохранить в папку",
		KeySettings:          "Настройки",
		KeyFile:              "Файл",
		KeyLanguage:          "Язык",
		KeyServerURL:         "Адрес сервера",
		KeyTimeout:           "Таймаут загрузки",
		KeyInactivityTimeout: "Таймаут простоя",
		KeySaveDirectory:     "Папка сохранения",
		KeyAutoReveal:        "Показывать сохранённый файл",
		KeySave:              "Сохранить",
		KeyBrowse:            "Обзор",
		KeyNotice:            "Deckify",
		KeyNoImagesSelected:  "Изображения не выбраны",
		KeyFilesSelected:     "Выбрано изображений: %d",
		KeyDropHint:          "Добавьте изображения или перетащите их в окно",
		KeyNoSelection:       "Выберите хотя бы одно изображение для загрузки.",
		KeyUploadFailed:      "Не удалось обработать изображения. Попробуйте позже.",
		KeyUploadTimedOut:    "Сервер не ответил вовремя. Попробуйте позже.",
		KeyUploadCanceled:    "Загрузка отменена.",
		KeyUploadCompleted:   "Презентация готова",
		KeySavedTo:           "Сохранено в",
		KeyErrorSaving:       "Ошибка сохранения файла",
		KeySettingsSaved:     "Настройки сохранены!",
		KeyInvalidServerURL:  "Неверный адрес сервера",
		KeySeconds:           "секунд, 0 = выкл",
	}

	l.texts["pt"] = map[string]string{
		KeyAppTitle:          "Deckify",
		KeySelectImages:      "Adicionar Imagens",
		KeyClearSelection:    "Limpar",
		KeyUpload:            "Enviar e Converter",
		KeyCancel:            "Cancelar",
		KeyProcessing:        "Processando suas imagens...",
		KeyDownloadReady:     "Sua apresentação está pronta.",
		KeyDownloadLink:      "Baixar",
		KeySaveToFolder:      "Salvar na pasta",
		KeySettings:          "Configurações",
		KeyFile:              "Arquivo",
		KeyLanguage:          "Idioma",
		KeyServerURL:         "URL do Servidor",
		KeyTimeout:           "Tempo limite de envio",
		KeyInactivityTimeout: "Tempo limite de inatividade",
		KeySaveDirectory:     "Diretório de Salvamento",
		KeyAutoReveal:        "Mostrar arquivo salvo no gerenciador",
		KeySave:              "Salvar",
		KeyBrowse:            "Navegar",
		KeyNotice:            "Deckify",
		KeyNoImagesSelected:  "Nenhuma imagem selecionada",
		KeyFilesSelected:     "%d imagem(ns) selecionada(s)",
		KeyDropHint:          "Adicione imagens ou arraste-as para a janela",
		KeyNoSelection:       "Selecione pelo menos uma imagem para enviar.",
		KeyUploadFailed:      "Falha ao processar suas imagens. Tente novamente mais tarde.",
		KeyUploadTimedOut:    "O servidor demorou demais para responder. Tente novamente mais tarde.",
		KeyUploadCanceled:    "Envio cancelado.",
		KeyUploadCompleted:   "Apresentação pronta",
		KeySavedTo:           "Salvo em",
		KeyErrorSaving:       "Erro ao salvar arquivo",
		KeySettingsSaved:     "Configurações salvas com sucesso!",
		KeyInvalidServerURL:  "URL do servidor inválida",
		KeySeconds:           "segundos, 0 = desligado",
	}
}
