package auth

import (
	"context"

	"google.golang.org/grpc/credentials"
)

var _ credentials.PerRPCCredentials = BearerCredentials{}

// BearerCredentials attaches "authorization: Bearer <token>" to every call.
type BearerCredentials struct {
	Fetch  func(ctx context.Context) (string, error)
	Secure bool
}

func (b BearerCredentials) GetRequestMetadata(ctx context.Context, _ ...string) (map[string]string, error) {
	token, err := b.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return map[string]string{"authorization": "Bearer " + token}, nil
}

func (b BearerCredentials) RequireTransportSecurity() bool {
	return b.Secure
}
