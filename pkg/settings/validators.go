package settings

// updateSettingsPayload is the request body for saving settings. Unknown keys
// are ignored; only recognized setting keys are persisted.
type updateSettingsPayload struct {
	Settings map[string]string `json:"settings" validate:"required"`
}

// settingsResponse carries every stored setting.
type settingsResponse struct {
	Settings map[string]string `json:"settings"`
}
