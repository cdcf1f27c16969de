package mw

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// InternalErrorMessage is the only detail a client sees for an unexpected fault.
const InternalErrorMessage = "An unexpected error occurred. Please contact support if the problem persists."

// Recovery turns panics and errors attached with c.Error into a generic 500.
// The underlying cause is logged and never sent to the client.
func Recovery(log *logrus.Entry) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if p := recover(); p != nil {
				log.WithFields(logrus.Fields{
					"request_id": GetRequestID(c),
					"path":       c.Request.URL.Path,
				}).WithError(fmt.Errorf("panic: %v", p)).Error("unhandled panic")
				abortInternal(c)
			}
		}()

		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		log.WithFields(logrus.Fields{
			"request_id": GetRequestID(c),
			"path":       c.Request.URL.Path,
		}).WithError(c.Errors.Last().Err).Error("unhandled error")
		if !c.Writer.Written() {
			abortInternal(c)
		}
	}
}

func abortInternal(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": InternalErrorMessage})
}
