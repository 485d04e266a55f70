package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"barangayconnect/internal/common"
)

// bridgeMethod is the single generic RPC the native shell exposes. The
// bridge executes the HTTP call on the device side and hands back the
// status code plus the raw string payload.
const bridgeMethod = "/bridge.v1.Bridge/Execute"

// BridgeTransporter is the native strategy: calls are shuttled through the
// platform shell's gRPC bridge instead of an in-process HTTP client.
type BridgeTransporter struct {
	conn *grpc.ClientConn
}

// NewBridgeTransporter connects to the native bridge at addr. The connection
// is lazy; reachability is discovered on first use.
func NewBridgeTransporter(addr string) (*BridgeTransporter, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("failed to create bridge client: %w", err)
	}
	return &BridgeTransporter{conn: conn}, nil
}

// Execute serializes the request as JSON, invokes the bridge, and parses the
// bridge's string payload back into a structured result. A bridge status of 0
// means the device could not reach the backend and maps to
// common.ErrUnreachable, not a business error.
func (t *BridgeTransporter) Execute(ctx context.Context, method, url string, body any, opts Options) (*Response, error) {
	headers := map[string]any{
		"Accept":       "application/json",
		"Content-Type": "application/json",
	}
	token := opts.BearerToken
	if token != "" {
		headers["Authorization"] = "Bearer " + token
	}
	for k, v := range opts.Headers {
		headers[k] = v
	}

	fields := map[string]any{
		"method":  strings.ToLower(method),
		"url":     url,
		"headers": headers,
	}
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		fields["body"] = string(encoded)
	}

	req, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to build bridge request: %w", err)
	}

	reply := &structpb.Struct{}
	if err := t.conn.Invoke(ctx, bridgeMethod, req, reply); err != nil {
		return nil, t.mapError(err)
	}

	statusCode := int(reply.GetFields()["status"].GetNumberValue())
	payload := []byte(reply.GetFields()["data"].GetStringValue())

	if statusCode == 0 {
		return nil, fmt.Errorf("bridge request failed: %w", common.ErrUnreachable)
	}
	if statusCode < 200 || statusCode > 299 {
		return nil, normalizeError(statusCode, payload)
	}
	return &Response{Status: statusCode, Body: payload}, nil
}

func (t *BridgeTransporter) mapError(err error) error {
	st, ok := status.FromError(err)
	if ok {
		switch st.Code() {
		case codes.Unavailable, codes.DeadlineExceeded:
			return fmt.Errorf("bridge unavailable: %w", common.ErrUnreachable)
		}
	}
	return fmt.Errorf("bridge rpc error: %w", err)
}

func (t *BridgeTransporter) Close() error {
	return t.conn.Close()
}
