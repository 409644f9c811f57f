package handlers

import (
	"crypto/tls"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestParseSpecialties(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want []string
		ok   bool
	}{
		{"absent", nil, nil, false},
		{"comma string", " Corte, Barba ,,", []string{"Corte", "Barba"}, true},
		{"json array", []any{"Corte", 3, " Barba "}, []string{"Corte", "Barba"}, true},
		{"string slice", []string{"Pezinho"}, []string{"Pezinho"}, true},
		{"empty string", "", []string{}, true},
		{"wrong type", 42, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseSpecialties(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAbsoluteURL(t *testing.T) {
	ctx := func(mut func(*gin.Context)) *gin.Context {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", "/", nil)
		c.Request.Host = "api.example.com"
		if mut != nil {
			mut(c)
		}
		return c
	}

	assert.Equal(t, "", absoluteURL(ctx(nil), ""))
	assert.Equal(t, "https://cdn.example.com/a.webp", absoluteURL(ctx(nil), "https://cdn.example.com/a.webp"))
	assert.Equal(t, "http://api.example.com/uploads/a.webp", absoluteURL(ctx(nil), "/uploads/a.webp"))
	assert.Equal(t, "http://api.example.com/uploads/a.webp", absoluteURL(ctx(nil), "uploads/a.webp"))

	tlsCtx := ctx(func(c *gin.Context) { c.Request.TLS = &tls.ConnectionState{} })
	assert.Equal(t, "https://api.example.com/x.webp", absoluteURL(tlsCtx, "/x.webp"))

	proxied := ctx(func(c *gin.Context) { c.Request.Header.Set("X-Forwarded-Proto", "https, http") })
	assert.Equal(t, "https://api.example.com/x.webp", absoluteURL(proxied, "/x.webp"))
}

func TestReconcileDuration(t *testing.T) {
	n := func(v int) *int { return &v }

	tests := []struct {
		name        string
		duration    *int
		durationMin *int
		wantD       int
		wantDM      int
	}{
		{"both", n(45), n(40), 45, 40},
		{"duration only", n(20), nil, 20, 20},
		{"minutes only", nil, n(15), 15, 15},
		{"neither", nil, nil, defaultServiceMinutes, defaultServiceMinutes},
		{"zero ignored", n(0), n(25), 25, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, dm := reconcileDuration(tt.duration, tt.durationMin)
			assert.Equal(t, tt.wantD, d)
			assert.Equal(t, tt.wantDM, dm)
		})
	}
}
