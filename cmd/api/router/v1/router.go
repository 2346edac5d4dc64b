package v1

import (
	"context"

	"github.com/gin-gonic/gin"

	httpHandler "github.com/FlintShadey/huddleuptime/internal/pkg/availability/presentation/http"
)

// RegisterRoutes mounts all version 1 API routes under /api/v1
func RegisterRoutes(ctx context.Context, r *gin.Engine, deps httpHandler.Deps) error {
	v1 := r.Group("/api/v1")
	return httpHandler.RegisterRoutes(ctx, v1, deps)
}
