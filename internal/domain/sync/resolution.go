package sync

// Outcome tags the result of a get-or-create resolution step. Leaf
// resolvers return outcomes instead of logging; the orchestration layer
// decides what to log and how to count.
type Outcome int

const (
	// OutcomeFound means an existing ERP record matched the natural key.
	OutcomeFound Outcome = iota + 1
	// OutcomeCreated means a new ERP record was created.
	OutcomeCreated
	// OutcomeFailedRemote means a remote search or create did not happen.
	// Validation problems never fail a resolution outright; they are
	// recovered by deterministic substitution.
	OutcomeFailedRemote
)

// String returns the outcome name for logging.
func (o Outcome) String() string {
	switch o {
	case OutcomeFound:
		return "found"
	case OutcomeCreated:
		return "created"
	case OutcomeFailedRemote:
		return "failed_remote"
	default:
		return "unknown"
	}
}

// Resolution is the outcome of resolving one source-owned object to an
// ERP record id.
type Resolution struct {
	Outcome Outcome
	// ID is the ERP record id when Outcome is Found or Created.
	ID int64
	// Substituted names the fields replaced by deterministic defaults
	// (email, name, sku, price), for orchestration-level warnings.
	Substituted []string
	// Err carries the underlying failure for OutcomeFailedRemote.
	Err error
}

// OK reports whether the resolution yielded a usable record id.
func (r Resolution) OK() bool {
	return (r.Outcome == OutcomeFound || r.Outcome == OutcomeCreated) && r.ID > 0
}
