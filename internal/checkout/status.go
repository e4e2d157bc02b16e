package checkout

// Step is the checkout position: summary -> payment -> confirmation, with
// payment allowed back to summary. Nothing leaves confirmation.
type Step string

const (
	StepSummary      Step = "summary"
	StepPayment      Step = "payment"
	StepConfirmation Step = "confirmation"
)

func (s Step) IsTerminal() bool {
	return s == StepConfirmation
}

// String representation (for logging)
func (s Step) String() string {
	return string(s)
}

func CanTransition(from, to Step) bool {
	switch from {
	case StepSummary:
		return to == StepPayment
	case StepPayment:
		return to == StepSummary || to == StepConfirmation
	default:
		return false
	}
}
