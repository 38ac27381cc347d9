package http

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"voice-task-board/internal/voice"
)

// processTranscribeReq reads the multipart upload within the size and type limits.
func (h *handler) processTranscribeReq(c *gin.Context) (voice.ProcessInput, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes+1<<20)

	fh, err := c.FormFile("audio")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return voice.ProcessInput{}, errUploadTooLarge
		}
		return voice.ProcessInput{}, errNoAudioFile
	}
	if fh.Size > h.maxBytes {
		return voice.ProcessInput{}, errUploadTooLarge
	}
	if !h.allowedType(fh.Header.Get("Content-Type")) {
		return voice.ProcessInput{}, errUnsupportedAudio
	}

	f, err := fh.Open()
	if err != nil {
		return voice.ProcessInput{}, errNoAudioFile
	}
	defer f.Close()

	audio, err := io.ReadAll(io.LimitReader(f, h.maxBytes+1))
	if err != nil {
		return voice.ProcessInput{}, errNoAudioFile
	}

	return voice.ProcessInput{
		Audio:    audio,
		Filename: fh.Filename,
		Timezone: strings.TrimSpace(c.PostForm("timezone")),
	}, nil
}

// processParseReq binds the text-only parse request body.
func (h *handler) processParseReq(c *gin.Context) (voice.ParseInput, error) {
	var req parseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return voice.ParseInput{}, err
	}
	return req.toInput(), nil
}

func (h *handler) allowedType(contentType string) bool {
	if contentType == "" {
		return h.allowedTypes["application/octet-stream"]
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return h.allowedTypes[strings.ToLower(mt)]
}
