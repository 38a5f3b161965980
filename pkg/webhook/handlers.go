package webhook

import (
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wasmkube/wasmpod/pkg/manifest"
	"github.com/wasmkube/wasmpod/pkg/validate"
)

// FieldError is one validation failure in the response body.
type FieldError struct {
	Field  string `json:"field"`
	Detail string `json:"detail"`
}

// Verdict is the response body of POST /v1/validate.
type Verdict struct {
	Valid  bool         `json:"valid"`
	Errors []FieldError `json:"errors,omitempty"`
}

// ValidateHandler accepts a YAML or JSON Pod manifest body and returns a
// verdict with field-level errors.
func (s *Server) ValidateHandler(c *gin.Context) {
	start := time.Now()

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		// transport failure, not a validation outcome: only the request
		// counter sees it
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"message": err.Error(),
				"type":    "read_failed",
			},
		})
		return
	}

	pod, err := manifest.Decode(body)
	if err != nil {
		log.Printf("Rejected undecodable manifest: %v", err)
		RecordValidation("malformed", time.Since(start))
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": gin.H{
				"message": err.Error(),
				"type":    "decode_failed",
			},
		})
		return
	}

	errs := validate.ValidatePod(pod)
	if len(errs) == 0 {
		RecordValidation("valid", time.Since(start))
		c.JSON(http.StatusOK, Verdict{Valid: true})
		return
	}

	verdict := Verdict{Valid: false}
	for _, e := range errs {
		verdict.Errors = append(verdict.Errors, FieldError{
			Field:  e.Field,
			Detail: e.ErrorBody(),
		})
	}

	log.Printf("Manifest %s failed validation with %d error(s)", pod.Name, len(verdict.Errors))
	RecordValidation("invalid", time.Since(start))
	c.JSON(http.StatusOK, verdict)
}

// HealthHandler reports liveness.
func (s *Server) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
