package retention

// FileRecord describes one physical media file as inspected at the start of
// a run. Size and age are captured once and never re-sampled, so a single
// evaluation sees a consistent snapshot.
type FileRecord struct {
	Path       string
	SizeBytes  int64
	AgeSeconds int64
	// Rating is the user rating of the parent video. Plex omits the field
	// for unrated items; zero means unrated and sorts first for deletion.
	Rating    float64
	ViewCount int
}

// Watched reports whether the parent video has been viewed at least once.
func (r FileRecord) Watched() bool { return r.ViewCount > 0 }
