package main

import (
	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/servicebox/errors"
	"github.com/kbukum/servicebox/server"
	"github.com/kbukum/servicebox/server/endpoint"
	"github.com/kbukum/servicebox/server/middleware"
	"github.com/kbukum/servicebox/validation"
)

type createItemRequest struct {
	Name string `json:"name" validate:"required,max=120"`
}

// registerRoutes mounts the public health route and the token-protected
// item routes.
func registerRoutes(r gin.IRouter, catalog *Catalog, token string) {
	r.GET("/health", endpoint.Health())

	private := r.Group("/", middleware.TokenAuth(token))
	private.GET("/items", listItems(catalog))
	private.POST("/items", createItem(catalog))
}

func listItems(catalog *Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		server.RespondOK(c, catalog.List(c.Request.Context()))
	}
}

func createItem(catalog *Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			server.RespondWithError(c, apperrors.InvalidInput("", "request body must be a JSON object"))
			return
		}
		if err := validation.Struct(req); err != nil {
			server.RespondWithError(c, err)
			return
		}

		item, err := catalog.Create(c.Request.Context(), req.Name)
		if err != nil {
			server.RespondWithError(c, err)
			return
		}
		server.RespondCreated(c, item)
	}
}
