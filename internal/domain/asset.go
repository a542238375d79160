package domain

import "time"

type AssetKind string

const (
	AssetOriginalVideo AssetKind = "original_video"
	AssetOriginalAudio AssetKind = "original_audio"
	AssetTranscript    AssetKind = "transcript_json"
	AssetSRT           AssetKind = "srt"
	AssetVTT           AssetKind = "vtt"
	AssetDubAudio      AssetKind = "dub_audio"
	AssetDubVideo      AssetKind = "dub_video"
)

// Asset is one immutable artifact produced for a job. A job holds at most
// one asset per (Kind, Language).
type Asset struct {
	ID        int64     `json:"id"`
	JobID     string    `json:"job_id"`
	Kind      AssetKind `json:"asset_type"`
	Location  string    `json:"file_path"`
	URL       string    `json:"file_url,omitempty"`
	Size      int64     `json:"file_size,omitempty"`
	Language  string    `json:"language,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// StoredObject describes where an artifact ended up after persistence.
type StoredObject struct {
	Location string
	URL      string
	Size     int64
}

func GroupAssets(assets []Asset) map[AssetKind][]Asset {
	grouped := make(map[AssetKind][]Asset)
	for _, a := range assets {
		grouped[a.Kind] = append(grouped[a.Kind], a)
	}
	return grouped
}

func HasAsset(assets []Asset, kind AssetKind) bool {
	for _, a := range assets {
		if a.Kind == kind {
			return true
		}
	}
	return false
}
