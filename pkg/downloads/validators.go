package downloads

// DownloadPayload is the request body for sending a release to a client.
type DownloadPayload struct {
	DownloadURL string `json:"download_url" mod:"trim" validate:"required"`
	Title       string `json:"title" mod:"trim" validate:"required"`
	Type        string `json:"type" default:"Torrent" validate:"oneof=Usenet Torrent"`
}
