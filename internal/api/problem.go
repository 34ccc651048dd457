package api

import (
	"github.com/gin-gonic/gin"
)

// ProblemContentType is the media type of RFC 7807 error bodies.
const ProblemContentType = "application/problem+json"

// Problem is an RFC 7807 problem document with the extension members this API uses.
type Problem struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
	UserName string `json:"userName,omitempty"`
	URI      string `json:"uri,omitempty"`
}

// respondProblem aborts the request with p as body.
func respondProblem(c *gin.Context, p Problem) {
	if p.Type == "" {
		p.Type = "about:blank"
	}
	if p.Instance == "" {
		p.Instance = c.Request.URL.Path
	}
	// Set before rendering; gin keeps an existing Content-Type.
	c.Header("Content-Type", ProblemContentType)
	c.AbortWithStatusJSON(p.Status, p)
}
