package metrics

const (
	Namespace       = "ballot"
	LedgerSubsystem = "ledger"
	BallotSubsystem = "ballot"
	APISubsystem    = "api"
)

const (
	LedgerStatusApplied  = "applied"
	LedgerStatusRejected = "rejected"
)
