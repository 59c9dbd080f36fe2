package security

// SecurityPolicy holds the configurable additions to the built-in safety
// tables. The built-in tables always apply; a policy can only extend them.
type SecurityPolicy struct {
	// RestrictedPaths are extra directories treated like system directories.
	RestrictedPaths []string `mapstructure:"restricted_paths"`

	// AllowedPaths are extra directories where mutations are permitted.
	AllowedPaths []string `mapstructure:"allowed_paths"`

	// ProtectedFiles are extra files that can never be deleted.
	ProtectedFiles []string `mapstructure:"protected_files"`
}

// DefaultPolicy returns a policy that adds nothing to the built-in tables.
func DefaultPolicy() *SecurityPolicy {
	return &SecurityPolicy{
		RestrictedPaths: []string{},
		AllowedPaths:    []string{},
		ProtectedFiles:  []string{},
	}
}

func (p *SecurityPolicy) clone() SecurityPolicy {
	if p == nil {
		return SecurityPolicy{}
	}
	return SecurityPolicy{
		RestrictedPaths: append([]string(nil), p.RestrictedPaths...),
		AllowedPaths:    append([]string(nil), p.AllowedPaths...),
		ProtectedFiles:  append([]string(nil), p.ProtectedFiles...),
	}
}
