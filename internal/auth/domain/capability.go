// Package domain defines authentication and session domain models.
// Implements capability-based access control with roles, principals,
// signed access tokens, and rotating refresh credentials.
package domain

// Capability grants a single action on a resource.
// Two capabilities are equal when both fields match.
type Capability struct {
	Resource string `json:"resource"`
	Action   string `json:"action"`
}

// NewCapability creates a capability for the given resource and action.
func NewCapability(resource, action string) Capability {
	return Capability{Resource: resource, Action: action}
}

// Matches reports whether the capability grants the given action on the resource.
func (c Capability) Matches(resource, action string) bool {
	return c.Resource == resource && c.Action == action
}

// Role determines a user's default capability set.
type Role string

const (
	// AdminRole can manage users and any article.
	AdminRole Role = "admin"

	// AuthorRole can manage its own articles.
	AuthorRole Role = "author"
)

// ParseRole converts a string into a Role.
func ParseRole(s string) (Role, error) {
	switch s {
	case "admin":
		return AdminRole, nil
	case "author":
		return AuthorRole, nil
	default:
		return "", ErrUnknownRole
	}
}

// String returns the role name.
func (r Role) String() string {
	return string(r)
}

// DefaultCapabilities returns the capability set granted to the role.
func (r Role) DefaultCapabilities() []Capability {
	switch r {
	case AdminRole:
		return []Capability{
			NewCapability("articles", "create"),
			NewCapability("articles", "update:any"),
			NewCapability("articles", "delete:any"),
			NewCapability("articles", "publish"),
			NewCapability("articles", "view:drafts"),
			NewCapability("users", "create"),
			NewCapability("users", "read"),
			NewCapability("users", "update"),
		}
	case AuthorRole:
		return []Capability{
			NewCapability("articles", "create"),
			NewCapability("articles", "update:own"),
			NewCapability("articles", "delete:own"),
			NewCapability("articles", "publish"),
			NewCapability("articles", "view:drafts"),
		}
	default:
		return nil
	}
}
