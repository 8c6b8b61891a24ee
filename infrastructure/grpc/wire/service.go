// Package wire describes the coordination service on the wire: method names,
// request/response shapes, the push envelope and the codec both ends force.
package wire

import (
	"context"

	"sync-lab/domain/room"
	"sync-lab/domain/session"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const ServiceName = "coordination.v1.CoordinationService"

const (
	MethodGetConnectionDescriptor = "/" + ServiceName + "/GetConnectionDescriptor"
	MethodLiveness                = "/" + ServiceName + "/Liveness"
	MethodGetOnlinePairs          = "/" + ServiceName + "/GetOnlinePairs"
	MethodCreateRoom              = "/" + ServiceName + "/CreateRoom"
	MethodInviteUser              = "/" + ServiceName + "/InviteUser"
	MethodJoinRoom                = "/" + ServiceName + "/JoinRoom"
	MethodLeaveRoom               = "/" + ServiceName + "/LeaveRoom"
	MethodRemoveRoom              = "/" + ServiceName + "/RemoveRoom"
	MethodSendMessage             = "/" + ServiceName + "/SendMessage"
	MethodPushDeviceInfo          = "/" + ServiceName + "/PushDeviceInfo"
	MethodUpdateDevice            = "/" + ServiceName + "/UpdateDevice"
	MethodAllowVibes              = "/" + ServiceName + "/AllowVibes"
	MethodDenyVibes               = "/" + ServiceName + "/DenyVibes"
	MethodSubscribe               = "/" + ServiceName + "/Subscribe"
)

// CoordinationServer is the server API for the coordination service.
type CoordinationServer interface {
	GetConnectionDescriptor(context.Context, *emptypb.Empty) (*session.Descriptor, error)
	Liveness(context.Context, *emptypb.Empty) (*wrapperspb.BoolValue, error)
	GetOnlinePairs(context.Context, *OnlinePairsRequest) (*OnlinePairsResponse, error)
	CreateRoom(context.Context, *CreateRoomRequest) (*wrapperspb.BoolValue, error)
	InviteUser(context.Context, *InviteRequest) (*wrapperspb.BoolValue, error)
	JoinRoom(context.Context, *room.ParticipantRef) (*emptypb.Empty, error)
	LeaveRoom(context.Context, *room.ParticipantRef) (*emptypb.Empty, error)
	RemoveRoom(context.Context, *wrapperspb.StringValue) (*emptypb.Empty, error)
	SendMessage(context.Context, *SendMessageRequest) (*emptypb.Empty, error)
	PushDeviceInfo(context.Context, *DeviceRequest) (*emptypb.Empty, error)
	UpdateDevice(context.Context, *DeviceRequest) (*emptypb.Empty, error)
	AllowVibes(context.Context, *wrapperspb.StringValue) (*emptypb.Empty, error)
	DenyVibes(context.Context, *wrapperspb.StringValue) (*emptypb.Empty, error)
	Subscribe(*emptypb.Empty, PushStream) error
}

// PushStream is the server side of Subscribe.
type PushStream interface {
	Send(*Envelope) error
	Context() context.Context
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CoordinationServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("GetConnectionDescriptor", MethodGetConnectionDescriptor, CoordinationServer.GetConnectionDescriptor),
		unary("Liveness", MethodLiveness, CoordinationServer.Liveness),
		unary("GetOnlinePairs", MethodGetOnlinePairs, CoordinationServer.GetOnlinePairs),
		unary("CreateRoom", MethodCreateRoom, CoordinationServer.CreateRoom),
		unary("InviteUser", MethodInviteUser, CoordinationServer.InviteUser),
		unary("JoinRoom", MethodJoinRoom, CoordinationServer.JoinRoom),
		unary("LeaveRoom", MethodLeaveRoom, CoordinationServer.LeaveRoom),
		unary("RemoveRoom", MethodRemoveRoom, CoordinationServer.RemoveRoom),
		unary("SendMessage", MethodSendMessage, CoordinationServer.SendMessage),
		unary("PushDeviceInfo", MethodPushDeviceInfo, CoordinationServer.PushDeviceInfo),
		unary("UpdateDevice", MethodUpdateDevice, CoordinationServer.UpdateDevice),
		unary("AllowVibes", MethodAllowVibes, CoordinationServer.AllowVibes),
		unary("DenyVibes", MethodDenyVibes, CoordinationServer.DenyVibes),
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "Subscribe",
			Handler:       subscribeHandler,
			ServerStreams: true,
		},
	},
	Metadata: "coordination/v1/coordination.proto",
}

// SubscribeStreamDesc is what clients pass to NewStream.
var SubscribeStreamDesc = &ServiceDesc.Streams[0]

func RegisterCoordinationServer(s grpc.ServiceRegistrar, srv CoordinationServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func unary[Req any, Resp any](
	name, fullMethod string,
	call func(CoordinationServer, context.Context, *Req) (Resp, error),
) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			server := srv.(CoordinationServer)
			if interceptor == nil {
				return call(server, ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
				return call(server, ctx, req.(*Req))
			})
		},
	}
}

func subscribeHandler(srv any, stream grpc.ServerStream) error {
	in := new(emptypb.Empty)
	if err := stream.RecvMsg(in); err != nil {
		return err
	}
	return srv.(CoordinationServer).Subscribe(in, &pushStream{stream})
}

type pushStream struct {
	grpc.ServerStream
}

func (s *pushStream) Send(e *Envelope) error {
	return s.ServerStream.SendMsg(e)
}
