// Package httputil provides shared helpers for the HTTP layer.
package httputil

import (
	"errors"
	"io"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ErrInvalidQueryString is returned when a query string could not be parsed.
var ErrInvalidQueryString = errors.New("the query string contains unparseable data. Please check the values")

// BindData binds the request body to the struct passed in the interface.
func BindData(c *gin.Context, data interface{}) error {
	if err := c.ShouldBindJSON(&data); err != nil {
		if errors.Is(io.EOF, err) {
			return errors.New("request body must not be empty")
		}

		log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
		return errors.New("the body of your request contains invalid or un-parseable data. Please check and try again")
	}

	return nil
}

// BindQuery binds the query string to the struct passed in the interface.
func BindQuery(c *gin.Context, data interface{}) error {
	if err := c.ShouldBindQuery(data); err != nil {
		log.Debug().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
		return ErrInvalidQueryString
	}

	return nil
}
