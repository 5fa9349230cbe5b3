package domain

import "time"

// Principal is the authenticated subject extracted from a verified access token.
// Capabilities hold the resolved set: role defaults plus any grants embedded in
// the token.
type Principal struct {
	UserID       int64
	Username     string
	Role         Role
	Capabilities []Capability
	IssuedAt     time.Time
	ExpiresAt    time.Time
	SessionID    string
	Generation   int64
}

// HasCapability reports whether the principal may perform action on resource.
func (p *Principal) HasCapability(resource, action string) bool {
	for _, c := range p.Capabilities {
		if c.Matches(resource, action) {
			return true
		}
	}
	return false
}

// ResolveCapabilities merges the role's default capabilities with extra grants,
// deduplicating by value.
func ResolveCapabilities(role Role, grants []Capability) []Capability {
	seen := make(map[Capability]struct{})
	resolved := make([]Capability, 0, len(grants)+8)

	for _, c := range role.DefaultCapabilities() {
		if _, ok := seen[c]; !ok {
			seen[c] = struct{}{}
			resolved = append(resolved, c)
		}
	}
	for _, c := range grants {
		if _, ok := seen[c]; !ok {
			seen[c] = struct{}{}
			resolved = append(resolved, c)
		}
	}

	return resolved
}
