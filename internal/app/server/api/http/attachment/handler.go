package attachment

import (
	"context"
	"encoding/base64"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"github.com/Reinvik/nexus-lean-sub000/internal/app/server/api/http/middleware/auth"
	"github.com/Reinvik/nexus-lean-sub000/internal/app/server/metrics"
	"github.com/Reinvik/nexus-lean-sub000/internal/infrastructure/storage/object"
)

// Uploads above this size are rejected before touching the object store.
const maxAttachmentBytes = 10 << 20

type Handler struct {
	objects    object.Store
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(objects object.Store, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		objects:    objects,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.uploadOp(), h.upload)
}

func (h *Handler) upload(ctx context.Context, input *uploadInput) (*uploadOutput, error) {
	if _, ok := auth.GetIdentity(ctx); !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	data, err := base64.StdEncoding.DecodeString(input.Body.Data)
	if err != nil {
		return nil, huma.Error422UnprocessableEntity("data is not valid base64")
	}
	if len(data) == 0 {
		return nil, huma.Error422UnprocessableEntity("empty attachment")
	}
	if len(data) > maxAttachmentBytes {
		return nil, huma.NewError(http.StatusRequestEntityTooLarge, "attachment exceeds 10 MiB")
	}

	contentType := input.Body.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	url, err := h.objects.Put(ctx, input.Body.Name, data, contentType)
	if err != nil {
		h.log.Error("failed to store attachment", "name", input.Body.Name, "error", err)
		return nil, huma.Error500InternalServerError("failed to store attachment")
	}

	metrics.AttachmentsUploaded.Inc()
	metrics.AttachmentBytes.Add(float64(len(data)))

	return &uploadOutput{
		Body: uploadResponse{URL: url},
	}, nil
}
