package server

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "nftgen.v1.Preview"

const (
	sampleMethod = "/" + ServiceName + "/Sample"
	statsMethod  = "/" + ServiceName + "/Stats"
)

// PreviewServer is the server API of the preview service.
type PreviewServer interface {
	// Sample accepts the next unique combination of the server session.
	Sample(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	// Stats reports draw counts and the number of accepted combinations.
	Stats(context.Context, *emptypb.Empty) (*structpb.Struct, error)
}

// RegisterPreviewServer registers srv on s.
func RegisterPreviewServer(s grpc.ServiceRegistrar, srv PreviewServer) {
	s.RegisterService(&previewServiceDesc, srv)
}

var previewServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PreviewServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Sample", Handler: sampleHandler},
		{MethodName: "Stats", Handler: statsHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "nftgen/v1/preview.proto",
}

func sampleHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PreviewServer).Sample(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: sampleMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(PreviewServer).Sample(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func statsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PreviewServer).Stats(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: statsMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(PreviewServer).Stats(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

// Client calls the preview service over cc.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) Sample(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, sampleMethod, &emptypb.Empty{}, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Stats(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, statsMethod, &emptypb.Empty{}, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
