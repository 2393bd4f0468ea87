package flags

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"leasing-backend/internal/shared/server/respond"
)

// Require hides the routes behind it with a 404 while f is off.
func Require(g Gate, f Flag) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !Enabled(g, f) {
			respond.Error(c, http.StatusNotFound, "not_found", "Not found", nil)
			return
		}
		c.Next()
	}
}

// registerGatedSections mounts the client-facing sections that only exist
// behind a flag. Their backends live outside this service.
func registerGatedSections(rg *gin.RouterGroup, g Gate) {
	sections := []struct {
		path string
		flag Flag
	}{
		{"/offers", Offers},
		{"/messages", Messaging},
	}
	for _, s := range sections {
		rg.Group(s.path, Require(g, s.flag)).Any("/*path", notImplemented)
	}
}

func notImplemented(c *gin.Context) {
	respond.Error(c, http.StatusNotImplemented, "not_implemented", "Not implemented", nil)
}
