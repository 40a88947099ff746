// Package apiv1 describes the moviebrowser.v1 gRPC services. Every method
// takes and returns a google.protobuf.Struct; messages.go holds the field
// layout of each payload.
package apiv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	AuthServiceName    = "moviebrowser.v1.AuthService"
	AdminServiceName   = "moviebrowser.v1.AdminService"
	CatalogServiceName = "moviebrowser.v1.CatalogService"
)

const (
	AuthService_Login_FullMethodName = "/" + AuthServiceName + "/Login"
	AuthService_Me_FullMethodName    = "/" + AuthServiceName + "/Me"

	AdminService_ListUsers_FullMethodName  = "/" + AdminServiceName + "/ListUsers"
	AdminService_CreateUser_FullMethodName = "/" + AdminServiceName + "/CreateUser"
	AdminService_UpdateUser_FullMethodName = "/" + AdminServiceName + "/UpdateUser"
	AdminService_DeleteUser_FullMethodName = "/" + AdminServiceName + "/DeleteUser"

	CatalogService_Popular_FullMethodName = "/" + CatalogServiceName + "/Popular"
	CatalogService_Search_FullMethodName  = "/" + CatalogServiceName + "/Search"
	CatalogService_Details_FullMethodName = "/" + CatalogServiceName + "/Details"
)

// UnaryFunc is the shape shared by every method of the three services.
type UnaryFunc func(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)

// AuthServiceServer is the server API for AuthService.
type AuthServiceServer interface {
	Login(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	Me(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
}

// AdminServiceServer is the server API for AdminService.
type AdminServiceServer interface {
	ListUsers(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	CreateUser(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	UpdateUser(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	DeleteUser(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
}

// CatalogServiceServer is the server API for CatalogService.
type CatalogServiceServer interface {
	Popular(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	Search(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	Details(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
}

// unaryHandler adapts a server method to a grpc method handler, running the
// server's interceptor chain when one is installed.
func unaryHandler(fullMethod string, pick func(srv any) UnaryFunc) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		call := pick(srv)
		if interceptor == nil {
			return call(ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
			return call(ctx, req.(*structpb.Struct))
		})
	}
}

func method(service, name string, pick func(srv any) UnaryFunc) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler:    unaryHandler("/"+service+"/"+name, pick),
	}
}

var AuthService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: AuthServiceName,
	HandlerType: (*AuthServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		method(AuthServiceName, "Login", func(srv any) UnaryFunc { return srv.(AuthServiceServer).Login }),
		method(AuthServiceName, "Me", func(srv any) UnaryFunc { return srv.(AuthServiceServer).Me }),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "moviebrowser/v1/auth.proto",
}

var AdminService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: AdminServiceName,
	HandlerType: (*AdminServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		method(AdminServiceName, "ListUsers", func(srv any) UnaryFunc { return srv.(AdminServiceServer).ListUsers }),
		method(AdminServiceName, "CreateUser", func(srv any) UnaryFunc { return srv.(AdminServiceServer).CreateUser }),
		method(AdminServiceName, "UpdateUser", func(srv any) UnaryFunc { return srv.(AdminServiceServer).UpdateUser }),
		method(AdminServiceName, "DeleteUser", func(srv any) UnaryFunc { return srv.(AdminServiceServer).DeleteUser }),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "moviebrowser/v1/admin.proto",
}

var CatalogService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: CatalogServiceName,
	HandlerType: (*CatalogServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		method(CatalogServiceName, "Popular", func(srv any) UnaryFunc { return srv.(CatalogServiceServer).Popular }),
		method(CatalogServiceName, "Search", func(srv any) UnaryFunc { return srv.(CatalogServiceServer).Search }),
		method(CatalogServiceName, "Details", func(srv any) UnaryFunc { return srv.(CatalogServiceServer).Details }),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "moviebrowser/v1/catalog.proto",
}

func RegisterAuthServiceServer(s grpc.ServiceRegistrar, srv AuthServiceServer) {
	s.RegisterService(&AuthService_ServiceDesc, srv)
}

func RegisterAdminServiceServer(s grpc.ServiceRegistrar, srv AdminServiceServer) {
	s.RegisterService(&AdminService_ServiceDesc, srv)
}

func RegisterCatalogServiceServer(s grpc.ServiceRegistrar, srv CatalogServiceServer) {
	s.RegisterService(&CatalogService_ServiceDesc, srv)
}

// Client invokes any of the three services over one connection.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// Call invokes fullMethod with in. A nil in is sent as an empty struct.
func (c *Client) Call(ctx context.Context, fullMethod string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	if in == nil {
		in = &structpb.Struct{}
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, fullMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
