package retention

// Action is the per-file decision an evaluator hands to the Applier.
type Action int

const (
	Keep Action = iota
	Delete
)

func (a Action) String() string {
	if a == Delete {
		return "delete"
	}
	return "keep"
}

// Applier carries out (or simulates) a keep/delete decision for one file.
// Apply reports whether the file was removed; a Delete that fails and every
// Keep return false.
type Applier interface {
	Apply(action Action, record FileRecord) bool
}

// Outcome summarises one evaluator run over a library.
type Outcome struct {
	// Deleted counts confirmed deletions; failed attempts are excluded.
	Deleted int
	// Aborted is set when a failed delete stopped the run before every
	// file was visited.
	Aborted bool
}

// Evaluator walks a library's files in deletion order and decides which
// survive.
type Evaluator interface {
	Evaluate(files map[string]FileRecord, apply Applier) Outcome
}

// NewEvaluator selects the evaluator for the policy's retention mode. It
// fails when the policy does not set exactly one mode.
func NewEvaluator(policy Policy) (Evaluator, error) {
	mode, err := policy.Mode()
	if err != nil {
		return nil, err
	}
	switch mode {
	case ModeAge:
		return &ageEvaluator{policy: policy}, nil
	case ModeSize:
		return &sizeEvaluator{policy: policy}, nil
	default:
		return &countEvaluator{policy: policy}, nil
	}
}

func eligible(policy Policy, record FileRecord) bool {
	return !policy.WatchedOnly || record.Watched()
}

// ageEvaluator deletes every eligible file older than the configured age.
type ageEvaluator struct {
	policy Policy
}

func (e *ageEvaluator) Evaluate(files map[string]FileRecord, apply Applier) Outcome {
	var out Outcome
	for _, path := range OrderForDeletion(files) {
		record := files[path]
		if record.AgeSeconds > e.policy.MaxAgeSeconds && eligible(e.policy, record) {
			if apply.Apply(Delete, record) {
				out.Deleted++
			} else if !e.policy.ContinueOnError {
				out.Aborted = true
				return out
			}
			continue
		}
		apply.Apply(Keep, record)
	}
	return out
}

// sizeEvaluator deletes eligible files in deletion order until the library's
// total size drops to the configured limit.
type sizeEvaluator struct {
	policy Policy
}

func (e *sizeEvaluator) Evaluate(files map[string]FileRecord, apply Applier) Outcome {
	var total int64
	for _, record := range files {
		total += record.SizeBytes
	}
	if total <= e.policy.MaxSizeBytes {
		return Outcome{}
	}

	var out Outcome
	deficit := total - e.policy.MaxSizeBytes
	for _, path := range OrderForDeletion(files) {
		record := files[path]
		// Ineligible files are kept, not skipped, and never shrink the
		// deficit.
		if deficit > 0 && eligible(e.policy, record) {
			if apply.Apply(Delete, record) {
				deficit -= record.SizeBytes
				out.Deleted++
			} else if !e.policy.ContinueOnError {
				out.Aborted = true
				return out
			}
			continue
		}
		apply.Apply(Keep, record)
	}
	return out
}

// countEvaluator deletes eligible files in deletion order until the library
// holds at most the configured number of files.
type countEvaluator struct {
	policy Policy
}

func (e *countEvaluator) Evaluate(files map[string]FileRecord, apply Applier) Outcome {
	excess := len(files) - e.policy.MaxCount
	if excess <= 0 {
		return Outcome{}
	}

	var out Outcome
	for _, path := range OrderForDeletion(files) {
		record := files[path]
		// Only confirmed deletions consume the budget, so ineligible or
		// failed files never cost a slot.
		if out.Deleted < excess && eligible(e.policy, record) {
			if apply.Apply(Delete, record) {
				out.Deleted++
			} else if !e.policy.ContinueOnError {
				out.Aborted = true
				return out
			}
			continue
		}
		apply.Apply(Keep, record)
	}
	return out
}
