package l10n

// Message ids of the embedded catalogs
const (
	KeyAppTitle                     = "app_title"
	KeyDownloadMapTitle             = "downloadmap_title"
	KeyDownloadMapConfirmation      = "downloadmap_confirmation"
	KeyDownloadMapFilename          = "downloadmap_filename"
	KeyDownloadMapTargetNotWritable = "downloadmap_target_not_writable"
	KeyDownloadMapReady             = "downloadmap_ready"
	KeyAllowMeteredNetwork          = "allow_metered_network"
	KeyDownloadStarted              = "download_started"
	KeyDownloadCompleted            = "download_completed"
	KeyDownloadFailed               = "download_failed"
	KeyDownloadManagerNotAvailable  = "downloadmanager_not_available"
	KeyButtonContinue               = "button_continue"
	KeyButtonOK                     = "button_ok"
	KeyButtonCancel                 = "button_cancel"
	KeyButtonDownload               = "button_download"
	KeyButtonSettings               = "button_settings"
	KeyButtonSave                   = "button_save"
	KeyButtonBrowse                 = "button_browse"
	KeyButtonRemove                 = "button_remove"
	KeyButtonCheckDirectory         = "button_check_directory"
	KeyButtonOpenFolder             = "button_open_folder"
	KeyEnterMapURL                  = "enter_map_url"
	KeySizeInfo                     = "size_info"
	KeyMapType                      = "map_type"
	KeyPleaseEnterURL               = "please_enter_url"
	KeyInvalidURL                   = "invalid_url"
	KeyPendingTitle                 = "pending_title"
	KeyPendingEmpty                 = "pending_empty"
	KeyPendingDownloads             = "pending_downloads"
	KeySettingsSaved                = "settings_saved"
	KeySettingsDownloadDirectory    = "settings_download_directory"
	KeySettingsMapsDirectory        = "settings_maps_directory"
	KeySettingsMaxParallel          = "settings_max_parallel"
	KeySettingsLanguage             = "settings_language"
	KeySettingsAllowMetered         = "settings_allow_metered"
)
