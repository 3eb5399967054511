package settings

import (
	"context"

	"github.com/bookscoutapp/bookscout/pkg/config"
	"github.com/bookscoutapp/bookscout/pkg/models"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type Service struct {
	db  *bun.DB
	cfg *config.Config
}

func NewService(db *bun.DB, cfg *config.Config) *Service {
	return &Service{db: db, cfg: cfg}
}

// Get returns the stored value for a key, or "" when unset.
func (svc *Service) Get(ctx context.Context, key string) (string, error) {
	all, err := svc.All(ctx)
	if err != nil {
		return "", err
	}
	return all[key], nil
}

// Set stores a single value, overwriting any previous one.
func (svc *Service) Set(ctx context.Context, key, value string) error {
	setting := &models.Setting{Key: key, Value: value}
	_, err := svc.db.NewInsert().
		Model(setting).
		On("CONFLICT (key) DO UPDATE").
		Set("value = EXCLUDED.value").
		Exec(ctx)
	return errors.WithStack(err)
}

// All returns every stored setting as a map.
func (svc *Service) All(ctx context.Context) (map[string]string, error) {
	settings := []*models.Setting{}
	err := svc.db.NewSelect().
		Model(&settings).
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	all := map[string]string{}
	for _, setting := range settings {
		all[setting.Key] = setting.Value
	}
	return all, nil
}

// SaveAll persists the given values; keys absent from the map keep their
// stored value.
func (svc *Service) SaveAll(ctx context.Context, values map[string]string) error {
	for _, key := range models.SettingKeys {
		value, ok := values[key]
		if !ok {
			continue
		}
		if err := svc.Set(ctx, key, value); err != nil {
			return err
		}
	}
	return nil
}

// ResolvedConfig is the effective external service configuration: stored
// settings where present, process defaults otherwise.
type ResolvedConfig struct {
	LanguageFilter        string
	AudiobookshelfURL     string
	AudiobookshelfToken   string
	ProwlarrURL           string
	ProwlarrAPIKey        string
	JackettURL            string
	JackettAPIKey         string
	SabnzbdURL            string
	SabnzbdAPIKey         string
	TorrentClientType     string
	TorrentClientURL      string
	TorrentClientUsername string
	TorrentClientPassword string
}

// Resolve merges the stored settings over the process defaults.
func (svc *Service) Resolve(ctx context.Context) (*ResolvedConfig, error) {
	stored, err := svc.All(ctx)
	if err != nil {
		return nil, err
	}

	pick := func(key, fallback string) string {
		if value := stored[key]; value != "" {
			return value
		}
		return fallback
	}

	return &ResolvedConfig{
		LanguageFilter:        pick(models.SettingLanguageFilter, "all"),
		AudiobookshelfURL:     pick(models.SettingAudiobookshelfURL, svc.cfg.AudiobookshelfURL),
		AudiobookshelfToken:   pick(models.SettingAudiobookshelfToken, svc.cfg.AudiobookshelfToken),
		ProwlarrURL:           pick(models.SettingProwlarrURL, svc.cfg.ProwlarrURL),
		ProwlarrAPIKey:        pick(models.SettingProwlarrAPIKey, svc.cfg.ProwlarrAPIKey),
		JackettURL:            stored[models.SettingJackettURL],
		JackettAPIKey:         stored[models.SettingJackettAPIKey],
		SabnzbdURL:            stored[models.SettingSabnzbdURL],
		SabnzbdAPIKey:         stored[models.SettingSabnzbdAPIKey],
		TorrentClientType:     stored[models.SettingTorrentClientType],
		TorrentClientURL:      stored[models.SettingTorrentClientURL],
		TorrentClientUsername: stored[models.SettingTorrentClientUsername],
		TorrentClientPassword: stored[models.SettingTorrentClientPassword],
	}, nil
}
