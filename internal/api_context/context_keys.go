package api_context

import (
	"context"

	"github.com/fhuszti/rated-posters-ms-go/internal/model"
	"github.com/fhuszti/rated-posters-ms-go/internal/uuid"
)

type ctxKey string

const (
	ContentIDKey ctxKey = "contentID"
	RequestIDKey ctxKey = "requestID"
)

func ContentIDFromContext(ctx context.Context) (model.ContentID, bool) {
	id, ok := ctx.Value(ContentIDKey).(model.ContentID)
	return id, ok
}

func RequestIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(RequestIDKey).(uuid.UUID)
	return id, ok
}
