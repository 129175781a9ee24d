package retention

import "sort"

// OrderForDeletion returns the paths of files sorted by deletion preference:
// lowest rating first, with older files first within a rating. Ties beyond
// both keys fall back to path order so the result is deterministic across
// runs.
func OrderForDeletion(files map[string]FileRecord) []string {
	paths := make([]string, 0, len(files))
	for path := range files {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	sort.SliceStable(paths, func(i, j int) bool {
		a, b := files[paths[i]], files[paths[j]]
		if a.Rating != b.Rating {
			return a.Rating < b.Rating
		}
		return a.AgeSeconds > b.AgeSeconds
	})
	return paths
}
