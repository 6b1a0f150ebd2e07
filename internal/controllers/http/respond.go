package http

import (
	"log"
	"net/http"

	"storefront-service/internal/domain"
	"storefront-service/internal/logging"

	"github.com/gin-gonic/gin"
)

func statusOf(kind domain.Kind) int {
	switch kind {
	case domain.KindBadInput, domain.KindRejected:
		return http.StatusBadRequest
	case domain.KindUnauthorized:
		return http.StatusUnauthorized
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// fail writes err as {success:false, message}. Internal causes are logged, never returned.
func fail(c *gin.Context, err error) {
	kind := domain.KindOf(err)
	if kind == domain.KindInternal || kind == domain.KindUpstream {
		log.Printf("%s %s [%s]: %v", c.Request.Method, c.FullPath(), logging.RequestID(c.Request.Context()), err)
	}
	c.AbortWithStatusJSON(statusOf(kind), gin.H{"success": false, "message": domain.Message(err)})
}

func badRequest(c *gin.Context, msg string) {
	fail(c, domain.BadInput(msg))
}
