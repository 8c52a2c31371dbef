package form

// Status is the submission state of a form.
type Status int

const (
	Idle Status = iota
	Submitting
	Succeeded
	Failed
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Outcome is what a single Submit call did.
type Outcome int

const (
	// OutcomeInvalid: validation failed, the operation was not called.
	OutcomeInvalid Outcome = iota
	// OutcomeIgnored: a submission was already in flight.
	OutcomeIgnored
	OutcomeSucceeded
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeInvalid:
		return "invalid"
	case OutcomeIgnored:
		return "ignored"
	case OutcomeSucceeded:
		return "succeeded"
	case OutcomeFailed:
		return "failed"
	}
	return "unknown"
}

// Notice is an alert shown to the user after a submission settles.
type Notice struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}
