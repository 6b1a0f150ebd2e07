package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// Require aborts with 401 unless the request carries a credential valid for role.
func (g *Guard) Require(role Role, extractors ...Extractor) gin.HandlerFunc {
	if len(extractors) == 0 {
		extractors = DefaultExtractors()
	}
	return func(c *gin.Context) {
		tok, _ := Extract(c.Request, extractors)
		id, err := g.Authorize(tok, role)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": err.Error()})
			return
		}
		c.Set(identityKey, id)
		c.Next()
	}
}

// IdentityFrom returns the identity stored by Require.
func IdentityFrom(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}
