package dto

// VideoRequest carries the video URL for all video operations.
type VideoRequest struct {
	URL string `json:"url"`
}

// DownloadResponse describes a completed download.
type DownloadResponse struct {
	Status     string `json:"status"`
	VideoID    string `json:"video_id"`
	Title      string `json:"title"`
	Resolution string `json:"resolution"`
	Filesize   int64  `json:"filesize"`
	Ext        string `json:"ext"`
	Path       string `json:"path"`
}

// TranscriptResponse carries the (clipped) transcript text.
type TranscriptResponse struct {
	Status     string `json:"status"`
	VideoID    string `json:"video_id"`
	Title      string `json:"title"`
	Transcript string `json:"transcript"`
}

// SummaryResponse carries the final transcript summary.
type SummaryResponse struct {
	Status  string `json:"status"`
	VideoID string `json:"video_id"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
}
