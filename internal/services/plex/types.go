package plex

// VideoSummary is one video item from a section listing together with the
// paths of its physical files. Multi-part videos carry several files.
type VideoSummary struct {
	RatingKey string
	Title     string
	ViewCount int
	Files     []string
}

// VideoDetail holds the per-video metadata that only the detail endpoint
// returns.
type VideoDetail struct {
	// UserRating is zero when the item is unrated.
	UserRating float64
}

// sectionContainer mirrors the /library/sections response envelope.
type sectionContainer struct {
	MediaContainer struct {
		Directory []struct {
			Key   string `json:"key"`
			Title string `json:"title"`
			Type  string `json:"type"`
		} `json:"Directory"`
	} `json:"MediaContainer"`
}

// videoContainer mirrors the /library/sections/{key}/all response envelope.
type videoContainer struct {
	MediaContainer struct {
		Metadata []struct {
			RatingKey string `json:"ratingKey"`
			Title     string `json:"title"`
			ViewCount int    `json:"viewCount"`
			Media     []struct {
				Part []struct {
					File string `json:"file"`
				} `json:"Part"`
			} `json:"Media"`
		} `json:"Metadata"`
	} `json:"MediaContainer"`
}

// detailContainer mirrors the /library/metadata/{ratingKey} response
// envelope.
type detailContainer struct {
	MediaContainer struct {
		Metadata []struct {
			UserRating float64 `json:"userRating"`
		} `json:"Metadata"`
	} `json:"MediaContainer"`
}
