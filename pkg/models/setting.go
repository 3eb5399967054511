package models

import (
	"github.com/uptrace/bun"
)

// Setting is a flat key/value row; last write wins.
type Setting struct {
	bun.BaseModel `bun:"table:settings,alias:st"`

	Key   string `bun:",pk" json:"key"`
	Value string `json:"value"`
}

// Setting keys. Stored values override the process defaults from pkg/config.
const (
	SettingLanguageFilter        = "language_filter"
	SettingAudiobookshelfURL     = "audiobookshelf_url"
	SettingAudiobookshelfToken   = "audiobookshelf_token"
	SettingProwlarrURL           = "prowlarr_url"
	SettingProwlarrAPIKey        = "prowlarr_api_key"
	SettingJackettURL            = "jackett_url"
	SettingJackettAPIKey         = "jackett_api_key"
	SettingSabnzbdURL            = "sabnzbd_url"
	SettingSabnzbdAPIKey         = "sabnzbd_api_key"
	SettingTorrentClientType     = "torrent_client_type"
	SettingTorrentClientURL      = "torrent_client_url"
	SettingTorrentClientUsername = "torrent_client_username"
	SettingTorrentClientPassword = "torrent_client_password"
)

// SettingKeys lists every key the settings form persists.
var SettingKeys = []string{
	SettingLanguageFilter,
	SettingAudiobookshelfURL,
	SettingAudiobookshelfToken,
	SettingProwlarrURL,
	SettingProwlarrAPIKey,
	SettingJackettURL,
	SettingJackettAPIKey,
	SettingSabnzbdURL,
	SettingSabnzbdAPIKey,
	SettingTorrentClientType,
	SettingTorrentClientURL,
	SettingTorrentClientUsername,
	SettingTorrentClientPassword,
}
