package handler

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ReconciliationServiceName is the fully qualified ops service name.
const ReconciliationServiceName = "storefront.ops.v1.Reconciliation"

const (
	reconcileOrdersFullMethod = "/" + ReconciliationServiceName + "/ReconcileOrders"
	getOrderFullMethod        = "/" + ReconciliationServiceName + "/GetOrder"
)

// ReconciliationServer is the server API of the ops reconciliation service.
// Messages are protobuf well-known types so no schema compilation is needed.
type ReconciliationServer interface {
	ReconcileOrders(ctx context.Context, req *emptypb.Empty) (*structpb.Struct, error)
	GetOrder(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error)
}

// RegisterReconciliationServer registers srv on s.
func RegisterReconciliationServer(s grpc.ServiceRegistrar, srv ReconciliationServer) {
	s.RegisterService(&ReconciliationServiceDesc, srv)
}

// ReconciliationServiceDesc describes the ops reconciliation service.
var ReconciliationServiceDesc = grpc.ServiceDesc{
	ServiceName: ReconciliationServiceName,
	HandlerType: (*ReconciliationServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ReconcileOrders", Handler: reconcileOrdersHandler},
		{MethodName: "GetOrder", Handler: getOrderHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "storefront/ops/v1/reconciliation.proto",
}

func reconcileOrdersHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ReconciliationServer).ReconcileOrders(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: reconcileOrdersFullMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ReconciliationServer).ReconcileOrders(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func getOrderHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ReconciliationServer).GetOrder(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: getOrderFullMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ReconciliationServer).GetOrder(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

// ReconciliationClient calls the ops reconciliation service.
type ReconciliationClient struct {
	cc grpc.ClientConnInterface
}

func NewReconciliationClient(cc grpc.ClientConnInterface) *ReconciliationClient {
	return &ReconciliationClient{cc: cc}
}

func (c *ReconciliationClient) ReconcileOrders(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, reconcileOrdersFullMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ReconciliationClient) GetOrder(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, getOrderFullMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
