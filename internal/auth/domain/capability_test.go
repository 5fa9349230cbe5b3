package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  Role
		shouldErr bool
	}{
		{name: "admin", input: "admin", expected: AdminRole},
		{name: "author", input: "author", expected: AuthorRole},
		{name: "unknown role", input: "superuser", shouldErr: true},
		{name: "empty", input: "", shouldErr: true},
		{name: "case sensitive", input: "Admin", shouldErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			role, err := ParseRole(tt.input)
			if tt.shouldErr {
				assert.ErrorIs(t, err, ErrUnknownRole)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, role)
			}
		})
	}
}

func TestCapability_Matches(t *testing.T) {
	cap := NewCapability("articles", "update:own")

	assert.True(t, cap.Matches("articles", "update:own"))
	assert.False(t, cap.Matches("articles", "update:any"))
	assert.False(t, cap.Matches("users", "update:own"))
}

func TestRole_DefaultCapabilities(t *testing.T) {
	t.Run("admin can manage users and any article", func(t *testing.T) {
		caps := AdminRole.DefaultCapabilities()
		assert.Len(t, caps, 8)
		assert.Contains(t, caps, NewCapability("articles", "update:any"))
		assert.Contains(t, caps, NewCapability("articles", "delete:any"))
		assert.Contains(t, caps, NewCapability("users", "create"))
		assert.Contains(t, caps, NewCapability("users", "read"))
		assert.Contains(t, caps, NewCapability("users", "update"))
	})

	t.Run("author is scoped to own articles", func(t *testing.T) {
		caps := AuthorRole.DefaultCapabilities()
		assert.Len(t, caps, 5)
		assert.Contains(t, caps, NewCapability("articles", "update:own"))
		assert.Contains(t, caps, NewCapability("articles", "delete:own"))
		assert.NotContains(t, caps, NewCapability("articles", "update:any"))
		assert.NotContains(t, caps, NewCapability("users", "create"))
	})

	t.Run("unknown role has no capabilities", func(t *testing.T) {
		assert.Empty(t, Role("ghost").DefaultCapabilities())
	})
}

func TestPrincipal_HasCapability(t *testing.T) {
	principal := &Principal{
		UserID:       1,
		Username:     "alice",
		Role:         AuthorRole,
		Capabilities: ResolveCapabilities(AuthorRole, nil),
	}

	assert.True(t, principal.HasCapability("articles", "create"))
	assert.True(t, principal.HasCapability("articles", "update:own"))
	assert.False(t, principal.HasCapability("articles", "update:any"))
	assert.False(t, principal.HasCapability("users", "read"))
}

func TestResolveCapabilities(t *testing.T) {
	t.Run("merges role defaults with embedded grants", func(t *testing.T) {
		grants := []Capability{NewCapability("articles", "moderate")}
		resolved := ResolveCapabilities(AuthorRole, grants)

		assert.Len(t, resolved, 6)
		assert.Contains(t, resolved, NewCapability("articles", "create"))
		assert.Contains(t, resolved, NewCapability("articles", "moderate"))
	})

	t.Run("deduplicates overlapping grants", func(t *testing.T) {
		grants := []Capability{NewCapability("articles", "create")}
		resolved := ResolveCapabilities(AuthorRole, grants)

		assert.Len(t, resolved, 5)
	})

	t.Run("nil grants yields role defaults", func(t *testing.T) {
		resolved := ResolveCapabilities(AdminRole, nil)
		assert.Len(t, resolved, 8)
	})
}
