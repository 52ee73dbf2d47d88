package simd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "sir.v1.SimulationService"

// SimulationServiceServer is the server API for sir.v1.SimulationService.
// Messages are google.protobuf.Struct values with the same JSON shape as the
// HTTP API.
type SimulationServiceServer interface {
	RunSimulation(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetRun(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListRuns(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryCall func(SimulationServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(method string, call unaryCall) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(SimulationServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: "/" + ServiceName + "/" + method,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(SimulationServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// SimulationServiceDesc describes sir.v1.SimulationService for grpc.Server
var SimulationServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SimulationServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "RunSimulation", Handler: unaryHandler("RunSimulation", SimulationServiceServer.RunSimulation)},
		{MethodName: "GetRun", Handler: unaryHandler("GetRun", SimulationServiceServer.GetRun)},
		{MethodName: "ListRuns", Handler: unaryHandler("ListRuns", SimulationServiceServer.ListRuns)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "sir/v1/simulation.proto",
}

// RegisterSimulationServiceServer registers srv on s
func RegisterSimulationServiceServer(s grpc.ServiceRegistrar, srv SimulationServiceServer) {
	s.RegisterService(&SimulationServiceDesc, srv)
}

// SimulationClient calls sir.v1.SimulationService
type SimulationClient struct {
	cc grpc.ClientConnInterface
}

func NewSimulationClient(cc grpc.ClientConnInterface) *SimulationClient {
	return &SimulationClient{cc: cc}
}

func (c *SimulationClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *SimulationClient) RunSimulation(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "RunSimulation", in, opts...)
}

func (c *SimulationClient) GetRun(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "GetRun", in, opts...)
}

func (c *SimulationClient) ListRuns(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "ListRuns", in, opts...)
}

// ErrInexactNumber is returned by ToStruct for an integer that a Struct
// number (a float64) would round
var ErrInexactNumber = errors.New("number cannot be carried exactly")

// maxExactInt is the largest integer magnitude a float64 holds exactly
const maxExactInt = 1 << 53

// ToStruct converts any JSON-encodable value into a Struct. Integers beyond
// ±2^53 are rejected with ErrInexactNumber instead of being rounded.
func ToStruct(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode message: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("message is not a JSON object: %w", err)
	}
	if _, err := exactNumbers(m); err != nil {
		return nil, err
	}
	return structpb.NewStruct(m)
}

// exactNumbers replaces every json.Number in v with its float64 value in place
func exactNumbers(v any) (any, error) {
	switch v := v.(type) {
	case map[string]any:
		for key, elem := range v {
			conv, err := exactNumbers(elem)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			v[key] = conv
		}
		return v, nil
	case []any:
		for i, elem := range v {
			conv, err := exactNumbers(elem)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			v[i] = conv
		}
		return v, nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInexactNumber, v)
		}
		if !strings.ContainsAny(v.String(), ".eE") {
			i, err := v.Int64()
			if err != nil || i > maxExactInt || i < -maxExactInt {
				return nil, fmt.Errorf("%w: %s", ErrInexactNumber, v)
			}
		}
		return f, nil
	default:
		return v, nil
	}
}

// FromStruct decodes a Struct into out using its JSON form
func FromStruct(s *structpb.Struct, out any) error {
	data, err := json.Marshal(s.AsMap())
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode message: %w", err)
	}
	return nil
}
