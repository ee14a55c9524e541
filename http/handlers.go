/*
NAME
  handlers.go

DESCRIPTION
  handlers.go implements the /encode and /decode request handlers.
  Per spec.md §7's error policy, any codec or container parsing error
  maps to 400 with a human-readable message; anything else (a failure
  to even construct the WAV response bytes) maps to 500.

LICENSE
  Released under the MIT License as part of the aprsafsk project.
*/

package http

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kc5afs/aprsafsk/codec/afsk"
	"github.com/kc5afs/aprsafsk/codec/aprs"
	"github.com/kc5afs/aprsafsk/container/wav"
	"github.com/kc5afs/aprsafsk/internal/config"
)

// encodeRequest is the JSON body accepted by POST /encode.
type encodeRequest struct {
	Source      string   `json:"source" binding:"required"`
	Destination string   `json:"destination" binding:"required"`
	Digipeaters []string `json:"digipeaters"`
	Information string   `json:"information" binding:"required"`
}

// decodeResponse is the JSON body returned by a successful POST /decode.
type decodeResponse struct {
	Source      string   `json:"source"`
	Destination string   `json:"destination"`
	Digipeaters []string `json:"digipeaters"`
	Information string   `json:"information"`
}

func handleEncode(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req encodeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		p := aprs.NewPacket(req.Source, req.Destination, req.Digipeaters, []byte(req.Information))
		samples, err := aprs.Encode(p, afsk.Bell202())
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		body, err := wav.Encode(samples)
		if err != nil {
			log.Error("failed to encode WAV response", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.Data(http.StatusOK, "audio/wav", body)
	}
}

func handleDecode(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing \"file\" multipart field"})
			return
		}
		if file.Size > config.MaxUploadBytes {
			c.JSON(http.StatusBadRequest, gin.H{"error": "upload exceeds maximum size"})
			return
		}

		f, err := file.Open()
		if err != nil {
			log.Error("failed to open uploaded file", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		defer f.Close()

		raw, err := io.ReadAll(f)
		if err != nil {
			log.Error("failed to read uploaded file", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		samples, err := wav.Decode(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		p, err := aprs.Decode(samples, afsk.Bell202())
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, decodeResponse{
			Source:      p.Source,
			Destination: p.Destination,
			Digipeaters: p.Digipeaters,
			Information: string(p.Information),
		})
	}
}
