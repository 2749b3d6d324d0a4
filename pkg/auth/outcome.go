package auth

// OutcomeKind enumerates every possible callback result. Call sites switch
// over all kinds so a new outcome cannot be silently unhandled.
type OutcomeKind int

const (
	// OutcomeSession carries a final session token.
	OutcomeSession OutcomeKind = iota
	// OutcomeTwoFactor carries a transient token for the 2FA challenge.
	OutcomeTwoFactor
	// OutcomeError carries a failure reason.
	OutcomeError
)

// Outcome is the single value the callback listener hands to the login
// coordinator. Produced at most once per listener, consumed at most once.
type Outcome struct {
	Kind   OutcomeKind
	Token  string
	Reason string
}
