package benteng

// Decision is the binary outcome of envelope verification. There are no
// partial or advisory outcomes: every verification ends in exactly one of
// the two values, and any ambiguity resolves to DecisionReject.
type Decision int

const (
	// DecisionReject is the zero value so that a forgotten assignment
	// fails closed.
	DecisionReject Decision = iota
	// DecisionAccept means every pipeline gate passed.
	DecisionAccept
)

// Accepted reports whether the decision is DecisionAccept.
func (d Decision) Accepted() bool {
	return d == DecisionAccept
}

func (d Decision) String() string {
	if d == DecisionAccept {
		return "accept"
	}
	return "reject"
}
