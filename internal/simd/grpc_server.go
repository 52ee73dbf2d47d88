package simd

import (
	"context"
	"errors"

	"github.com/GoSim-25-26J-441/sir-simulation/pkg/logger"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// SimulationGRPCServer implements SimulationServiceServer using a RunStore backend.
type SimulationGRPCServer struct {
	store    *RunStore
	Executor *RunExecutor
}

// NewSimulationGRPCServer creates a new SimulationGRPCServer with the provided RunStore and RunExecutor.
func NewSimulationGRPCServer(store *RunStore, executor *RunExecutor) *SimulationGRPCServer {
	return &SimulationGRPCServer{
		store:    store,
		Executor: executor,
	}
}

type runRequest struct {
	RunID string    `json:"run_id,omitempty"`
	Input *RunInput `json:"input"`
}

type listRequest struct {
	Limit  int    `json:"limit,omitempty"`
	Status string `json:"status,omitempty"`
}

func (s *SimulationGRPCServer) RunSimulation(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req runRequest
	if err := FromStruct(in, &req); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if req.Input == nil {
		return nil, status.Error(codes.InvalidArgument, "input is required")
	}

	rec, err := s.Executor.Execute(ctx, req.RunID, req.Input)
	if err != nil {
		switch {
		case errors.Is(err, ErrRunExists):
			return nil, status.Error(codes.AlreadyExists, err.Error())
		case errors.Is(err, ErrInvalidInput):
			return nil, status.Error(codes.InvalidArgument, err.Error())
		default:
			return nil, status.Error(codes.Internal, err.Error())
		}
	}

	logger.Info("run executed (gRPC)", "run_id", rec.Run.ID, "status", rec.Run.Status)
	return runResponse(rec)
}

func (s *SimulationGRPCServer) GetRun(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req runRequest
	if err := FromStruct(in, &req); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if req.RunID == "" {
		return nil, status.Error(codes.InvalidArgument, ErrRunIDMissing.Error())
	}
	rec, ok := s.store.Get(req.RunID)
	if !ok {
		return nil, status.Error(codes.NotFound, "run not found")
	}
	return runResponse(rec)
}

func (s *SimulationGRPCServer) ListRuns(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req listRequest
	if err := FromStruct(in, &req); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	recs := s.store.List(req.Limit, parseRunStatus(req.Status))
	runs := make([]map[string]any, 0, len(recs))
	for _, rec := range recs {
		runs = append(runs, convertRunToJSON(rec.Run))
	}
	out, err := ToStruct(map[string]any{"runs": runs, "count": len(runs)})
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

func runResponse(rec *RunRecord) (*structpb.Struct, error) {
	out, err := ToStruct(map[string]any{"run": convertRunToJSON(rec.Run)})
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}
