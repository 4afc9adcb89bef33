package migrate

// Status classifies the outcome of one step in a run.
type Status int

const (
	// StatusApplied: the step executed its DDL and committed.
	StatusApplied Status = iota
	// StatusSatisfied: the precondition already held (or the ledger says
	// so); no DDL ran.
	StatusSatisfied
	// StatusSkipped: the step is a documented no-op under this dialect.
	StatusSkipped
	// StatusFailed: a DDL statement was rejected; the transaction rolled
	// back and the run continued.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusApplied:
		return "applied"
	case StatusSatisfied:
		return "already satisfied"
	case StatusSkipped:
		return "skipped"
	default:
		return "failed"
	}
}

// StepResult is the outcome of one catalog step.
type StepResult struct {
	Step   string
	Status Status
	Err    error
}

// RunReport records the outcome of every step of a migration run.
type RunReport struct {
	Results []StepResult
}

func (r *RunReport) add(res StepResult) {
	r.Results = append(r.Results, res)
}

// Applied counts steps that executed DDL.
func (r *RunReport) Applied() int { return r.count(StatusApplied) }

// Failed counts steps whose DDL was rejected.
func (r *RunReport) Failed() int { return r.count(StatusFailed) }

func (r *RunReport) count(s Status) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == s {
			n++
		}
	}
	return n
}
