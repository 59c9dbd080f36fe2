package security

// Decision is the outcome of a safety check. A denied decision always
// carries a reason.
type Decision struct {
	Allowed bool
	Reason  string
}

func allow(reason string) Decision {
	return Decision{Allowed: true, Reason: reason}
}

func deny(reason string) Decision {
	if reason == "" {
		reason = "denied by safety policy"
	}
	return Decision{Allowed: false, Reason: reason}
}

// Validator coordinates the path and deletion checks. Decisions are computed
// fresh on every call.
type Validator struct {
	pathChecker   *PathAccessChecker
	deleteChecker *DeletionChecker
}

// NewValidator creates a validator. A nil policy uses DefaultPolicy.
func NewValidator(policy *SecurityPolicy) *Validator {
	if policy == nil {
		policy = DefaultPolicy()
	}
	return &Validator{
		pathChecker:   NewPathAccessChecker(policy),
		deleteChecker: NewDeletionChecker(policy),
	}
}

// IsSafePath reports whether candidate, resolved against cwd, may be modified.
func (v *Validator) IsSafePath(candidate, cwd string) bool {
	return v.CheckPath(candidate, cwd).Allowed
}

// CheckPath is IsSafePath with the reason for the decision.
func (v *Validator) CheckPath(candidate, cwd string) Decision {
	return v.pathChecker.Check(candidate, cwd)
}

// CheckRead decides whether candidate may be listed or entered.
func (v *Validator) CheckRead(candidate, cwd string) Decision {
	return v.pathChecker.CheckRead(candidate, cwd)
}

// IsSafeToDelete reports whether path may be deleted, with the reason.
func (v *Validator) IsSafeToDelete(path string) (bool, string) {
	d := v.CheckDelete(path)
	return d.Allowed, d.Reason
}

// CheckDelete is IsSafeToDelete as a Decision.
func (v *Validator) CheckDelete(path string) Decision {
	return v.deleteChecker.Check(path)
}
