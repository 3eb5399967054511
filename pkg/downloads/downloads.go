// Package downloads hands a chosen release to the user's download client.
// Submission is fire-and-forget: a bool comes back and nothing is tracked
// afterwards.
package downloads

import (
	"context"
	"time"

	"github.com/bookscoutapp/bookscout/pkg/search"
	"github.com/bookscoutapp/bookscout/pkg/settings"
)

// Backend is one download client. Submit reports success only; failures are
// logged by the backend itself.
type Backend interface {
	Name() string
	Submit(ctx context.Context, downloadURL, title string) bool
}

// Torrent client types accepted in the torrent_client_type setting.
const (
	ClientQBittorrent  = "qbittorrent"
	ClientTransmission = "transmission"
	ClientDeluge       = "deluge"
	ClientRTorrent     = "rtorrent"
)

type Dispatcher struct {
	settingsService *settings.Service

	// Swapped out in tests.
	backendFor func(resolved *settings.ResolvedConfig, resultType string) Backend
}

func NewDispatcher(settingsService *settings.Service, timeout time.Duration) *Dispatcher {
	d := &Dispatcher{settingsService: settingsService}
	d.backendFor = func(resolved *settings.ResolvedConfig, resultType string) Backend {
		if resultType == search.TypeUsenet {
			return NewSabnzbdClient(resolved.SabnzbdURL, resolved.SabnzbdAPIKey, timeout)
		}

		clientType := resolved.TorrentClientType
		if clientType == "" {
			clientType = ClientQBittorrent
		}

		switch clientType {
		case ClientQBittorrent:
			return NewQBittorrentClient(resolved.TorrentClientURL, resolved.TorrentClientUsername, resolved.TorrentClientPassword, timeout)
		case ClientTransmission:
			return NewTransmissionClient(resolved.TorrentClientURL, resolved.TorrentClientUsername, resolved.TorrentClientPassword, timeout)
		case ClientDeluge:
			return NewDelugeClient(resolved.TorrentClientURL, resolved.TorrentClientPassword, timeout)
		case ClientRTorrent:
			return NewRTorrentClient(resolved.TorrentClientURL, resolved.TorrentClientUsername, resolved.TorrentClientPassword, timeout)
		default:
			return nil
		}
	}
	return d
}

// Dispatch routes a release to the right client for its type. Unknown client
// types and unconfigured clients are a quiet false.
func (d *Dispatcher) Dispatch(ctx context.Context, downloadURL, title, resultType string) bool {
	resolved, err := d.settingsService.Resolve(ctx)
	if err != nil {
		return false
	}

	backend := d.backendFor(resolved, resultType)
	if backend == nil {
		return false
	}

	return backend.Submit(ctx, downloadURL, title)
}
