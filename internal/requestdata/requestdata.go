package requestdata

import (
	"context"

	"github.com/equilibra/equilibra-backend/internal/domain"
)

type requestDataKey struct{}

// RequestData carries the authenticated caller through a single request.
// Nothing here survives the request.
type RequestData struct {
	TokenString string
	User        *domain.User
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey{}, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	if rd, ok := ctx.Value(requestDataKey{}).(*RequestData); ok {
		return rd
	}
	return nil
}
