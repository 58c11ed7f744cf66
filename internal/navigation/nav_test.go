package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFor_HiddenOnAuthRoutes(t *testing.T) {
	assert.Nil(t, For("/", false))
	assert.Nil(t, For("/", true))
	assert.Nil(t, For("/login", true))
	assert.Nil(t, For("/register", false))
}

func TestFor_StandardLinks(t *testing.T) {
	nav := For("/posts", true)
	require.NotNil(t, nav)
	assert.Equal(t, "MySocialApp", nav.Brand)
	assert.True(t, nav.ShowLogout)
	assert.Equal(t, "/logout", nav.LogoutURL)

	require.Len(t, nav.Links, 4)
	assert.Equal(t, Link{Label: "Home", URL: "/"}, nav.Links[0])
	assert.Equal(t, Link{Label: "Users", URL: "/users"}, nav.Links[1])
	assert.Equal(t, Link{Label: "Posts", URL: "/posts"}, nav.Links[2])
	assert.Equal(t, Link{Label: "Dashboard", URL: "/chart"}, nav.Links[3])
}

func TestFor_MyPostsSuppressesLinks(t *testing.T) {
	nav := For("/myposts", true)
	require.NotNil(t, nav)
	assert.Empty(t, nav.Links)
	assert.True(t, nav.ShowLogout)
}

func TestFor_NoSession(t *testing.T) {
	nav := For("/users", false)
	require.NotNil(t, nav)
	assert.False(t, nav.ShowLogout)
	assert.Empty(t, nav.LogoutURL)
	assert.Len(t, nav.Links, 4)
}
