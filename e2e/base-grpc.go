package e2e

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"sync-lab/infrastructure/grpc/client"

	"github.com/gookit/color"
	"github.com/stretchr/testify/suite"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

type BaseGrpcSuite struct {
	suite.Suite
	Config Config
	Log    *slog.Logger
}

// SetupSuite loads the environment configuration and skips without a coordinator
func (s *BaseGrpcSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
	if s.Config.CoordinatorAddr == "" {
		s.T().Skip("E2E_COORDINATOR_ADDR not set")
	}
	s.Log = slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (s *BaseGrpcSuite) header(t *testing.T, name string) {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	t.Log(header)
}

// loggingInterceptor logs every call, and its bodies when E2E_DEBUG_JSON is set
func (s *BaseGrpcSuite) loggingInterceptor(t *testing.T) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		start := time.Now()
		err := invoker(ctx, method, req, reply, cc, opts...)

		logBuilder := strings.Builder{}
		fmt.Fprintf(&logBuilder, "GRPC %s [%s] in %v", method, status.Code(err), time.Since(start))
		if s.Config.DebugJSON {
			fmt.Fprintln(&logBuilder, "\nREQUEST:")
			fmt.Fprintln(&logBuilder, format(req))
			if err != nil {
				fmt.Fprintln(&logBuilder, "ERROR:", err)
			} else {
				fmt.Fprintln(&logBuilder, "RESPONSE:")
				fmt.Fprintln(&logBuilder, format(reply))
			}
		}
		t.Log(logBuilder.String())
		return err
	}
}

func format(v any) string {
	if m, ok := v.(proto.Message); ok {
		return protojson.MarshalOptions{UseProtoNames: true, Multiline: true, EmitUnpopulated: true}.Format(m)
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%+v", v)
	}
	return string(b)
}

// NewClient builds a coordination client with call logging, not started yet
func (s *BaseGrpcSuite) NewClient(name string) *client.CoordinationClient {
	s.header(s.T(), name)
	return client.NewCoordinationClient(s.Log, client.Config{
		Addr:        s.Config.CoordinatorAddr,
		Insecure:    s.Config.Insecure,
		CallTimeout: 10 * time.Second,
	}, grpc.WithChainUnaryInterceptor(s.loggingInterceptor(s.T())))
}

// WithClient runs fn against a started client within a contextual test step
func (s *BaseGrpcSuite) WithClient(name string, fn func(ctx context.Context, c *client.CoordinationClient)) {
	c := s.NewClient(name)
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	s.Require().NoError(c.Start(ctx, s.Config.AuthToken), "Failed to connect to "+s.Config.CoordinatorAddr)
	defer func() { _ = c.Stop() }()

	fn(ctx, c)
}
