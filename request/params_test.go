package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParamsBag_Auth(t *testing.T) {
	p := NewParamsBag()
	assert.Equal(t, "", p.Auth(AuthDomain))

	p.SetAuth(AuthDomain, "example").SetAuth(AuthLogin, "login@domain")
	assert.Equal(t, "example", p.Auth(AuthDomain))
	assert.Equal(t, "login@domain", p.Auth(AuthLogin))
	assert.Equal(t, "", p.Auth(AuthAPIKey))
}

func TestParamsBag_GetMerging(t *testing.T) {
	p := NewParamsBag()
	p.AddGet("foo", "bar")
	p.AddGetMap(map[string]string{"foo": "baz", "limit_rows": "10"})

	assert.Equal(t, map[string]string{"foo": "baz", "limit_rows": "10"}, p.Get())
	assert.False(t, p.HasPost())
}

func TestParamsBag_PostMerging(t *testing.T) {
	p := NewParamsBag()
	assert.False(t, p.HasPost())

	p.AddPost("add", "one")
	p.AddPostMap(map[string]any{"add": "two", "update": []int{1}})

	assert.True(t, p.HasPost())
	assert.Equal(t, map[string]any{"add": "two", "update": []int{1}}, p.Post())
}

func TestParamsBag_ReturnedMapsAreCopies(t *testing.T) {
	p := NewParamsBag().AddGet("foo", "bar")

	got := p.Get()
	got["foo"] = "changed"

	assert.Equal(t, "bar", p.Get()["foo"])
}

func TestParamsBag_Clone(t *testing.T) {
	p := NewParamsBag().SetAuth(AuthLogin, "login").AddGet("foo", "bar")

	c := p.Clone()
	c.SetAuth(AuthLogin, "other")
	c.AddGet("foo", "baz")
	c.AddPost("x", "y")

	assert.Equal(t, "login", p.Auth(AuthLogin))
	assert.Equal(t, "bar", p.Get()["foo"])
	assert.False(t, p.HasPost())

	assert.Equal(t, "other", c.Auth(AuthLogin))
	assert.Equal(t, "baz", c.Get()["foo"])
}

func TestParamsBag_ResetRequest(t *testing.T) {
	p := NewParamsBag().SetAuth(AuthAPIKey, "hash").AddGet("foo", "bar").AddPost("a", "b")

	p.ResetRequest()

	assert.Empty(t, p.Get())
	assert.False(t, p.HasPost())
	assert.Equal(t, "hash", p.Auth(AuthAPIKey))
}
