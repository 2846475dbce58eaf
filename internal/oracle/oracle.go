// Package oracle serves classification and planning queries over gRPC.
//
// There are no generated stubs. The service descriptor is parsed at
// construction time from the embedded relay.proto, the grpc.ServiceDesc
// is assembled by hand and requests and responses travel as dynamic
// messages. Clients that run codegen against the same relay.proto stay
// wire compatible.
package oracle

import (
	"context"
	_ "embed"
	"fmt"
	"net"

	"github.com/jhump/protoreflect/desc"
	"github.com/jhump/protoreflect/desc/protoparse"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/funvibe/funrelay/internal/config"
	"github.com/funvibe/funrelay/internal/parser"
	"github.com/funvibe/funrelay/internal/relay"
	"github.com/funvibe/funrelay/internal/symbols"
)

//go:embed relay.proto
var relayProto string

const (
	protoName    = "relay.proto"
	protoPackage = "funrelay.v1"
	serviceName  = protoPackage + ".Oracle"
)

// Oracle answers over the wire what the CLI answers locally. One
// instance owns one grpc.Server. The symbol table is seeded from the
// daemon's config, so every client sees the same aliases, enums and
// classes; names elaborated inside a request stay private to it.
type Oracle struct {
	server *grpc.Server
	svc    *desc.ServiceDescriptor
	table  *symbols.SymbolTable
	opts   relay.Options
}

// New parses the embedded schema, seeds the symbol table from cfg and
// registers the dynamic handlers on a fresh grpc.Server.
func New(cfg *config.Config) (*Oracle, error) {
	svc, err := loadService()
	if err != nil {
		return nil, err
	}

	table := symbols.NewSymbolTable()
	if errs := parser.DefineConfigTypes(cfg, table); len(errs) > 0 {
		return nil, fmt.Errorf("defining config types: %s", errs[0])
	}

	o := &Oracle{
		server: grpc.NewServer(),
		svc:    svc,
		table:  table,
		opts:   relay.Options{MoveSemantics: cfg.MoveEnabled()},
	}
	o.server.RegisterService(o.serviceDesc(), o)
	return o, nil
}

// Serve accepts connections on lis until GracefulStop.
func (o *Oracle) Serve(lis net.Listener) error {
	return o.server.Serve(lis)
}

// ListenAndServe listens on addr and serves until GracefulStop.
func (o *Oracle) ListenAndServe(addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	return o.server.Serve(lis)
}

// GracefulStop drains in-flight requests and stops the server.
func (o *Oracle) GracefulStop() {
	o.server.GracefulStop()
}

// loadService parses the embedded relay.proto and checks that it still
// matches what the handlers expect.
func loadService() (*desc.ServiceDescriptor, error) {
	p := protoparse.Parser{
		Accessor: protoparse.FileContentsFromMap(map[string]string{
			protoName: relayProto,
		}),
	}
	fds, err := p.ParseFiles(protoName)
	if err != nil {
		return nil, fmt.Errorf("parsing embedded schema: %w", err)
	}
	svc := fds[0].FindService(serviceName)
	if svc == nil {
		return nil, fmt.Errorf("embedded schema has no service %s", serviceName)
	}
	if err := verifySchema(svc); err != nil {
		return nil, err
	}
	return svc, nil
}

// verifySchema walks the field accesses the handlers perform and fails
// fast when the embedded schema drifts away from them. Running this at
// construction keeps field lookups inside handlers infallible.
func verifySchema(svc *desc.ServiceDescriptor) error {
	for _, method := range []string{"Classify", "Plan", "PlanSignature", "Nth"} {
		if svc.FindMethodByName(method) == nil {
			return fmt.Errorf("schema: service %s has no method %s", serviceName, method)
		}
	}

	checks := []struct {
		message string
		field   string
		kind    descriptorpb.FieldDescriptorProto_Type
	}{
		{"ClassifyRequest", "expr", descriptorpb.FieldDescriptorProto_TYPE_STRING},
		{"ClassifyResponse", "source", descriptorpb.FieldDescriptorProto_TYPE_STRING},
		{"ClassifyResponse", "category", descriptorpb.FieldDescriptorProto_TYPE_STRING},
		{"ClassifyResponse", "is_reference", descriptorpb.FieldDescriptorProto_TYPE_BOOL},
		{"ClassifyResponse", "base", descriptorpb.FieldDescriptorProto_TYPE_STRING},
		{"PlanRequest", "expr", descriptorpb.FieldDescriptorProto_TYPE_STRING},
		{"PlanResponse", "plan", descriptorpb.FieldDescriptorProto_TYPE_MESSAGE},
		{"PlanRow", "source", descriptorpb.FieldDescriptorProto_TYPE_STRING},
		{"PlanRow", "category", descriptorpb.FieldDescriptorProto_TYPE_STRING},
		{"PlanRow", "forwarding", descriptorpb.FieldDescriptorProto_TYPE_STRING},
		{"PlanRow", "target", descriptorpb.FieldDescriptorProto_TYPE_STRING},
		{"PlanRow", "conversion", descriptorpb.FieldDescriptorProto_TYPE_STRING},
		{"PlanSignatureRequest", "expr", descriptorpb.FieldDescriptorProto_TYPE_STRING},
		{"PlanSignatureResponse", "source", descriptorpb.FieldDescriptorProto_TYPE_STRING},
		{"PlanSignatureResponse", "plans", descriptorpb.FieldDescriptorProto_TYPE_MESSAGE},
		{"NthRequest", "expr", descriptorpb.FieldDescriptorProto_TYPE_STRING},
		{"NthRequest", "index", descriptorpb.FieldDescriptorProto_TYPE_INT32},
		{"NthResponse", "source", descriptorpb.FieldDescriptorProto_TYPE_STRING},
		{"NthResponse", "index", descriptorpb.FieldDescriptorProto_TYPE_INT32},
		{"NthResponse", "result", descriptorpb.FieldDescriptorProto_TYPE_STRING},
		{"NthResponse", "absent", descriptorpb.FieldDescriptorProto_TYPE_BOOL},
	}

	file := svc.GetFile()
	for _, c := range checks {
		md := file.FindMessage(protoPackage + "." + c.message)
		if md == nil {
			return fmt.Errorf("schema: message %s missing", c.message)
		}
		fd := md.FindFieldByName(c.field)
		if fd == nil {
			return fmt.Errorf("schema: field %s.%s missing", c.message, c.field)
		}
		if fd.GetType() != c.kind {
			return fmt.Errorf("schema: field %s.%s is %v, want %v", c.message, c.field, fd.GetType(), c.kind)
		}
	}
	return nil
}

// serviceDesc assembles the grpc.ServiceDesc the way generated code
// would, except the handlers decode into dynamic messages.
func (o *Oracle) serviceDesc() *grpc.ServiceDesc {
	sd := &grpc.ServiceDesc{
		ServiceName: serviceName,
		HandlerType: (*interface{})(nil),
		Methods:     []grpc.MethodDesc{},
		Streams:     []grpc.StreamDesc{},
		Metadata:    o.svc.GetFile().GetName(),
	}
	for _, method := range o.svc.GetMethods() {
		md := method
		sd.Methods = append(sd.Methods, grpc.MethodDesc{
			MethodName: md.GetName(),
			Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
				return srv.(*Oracle).handleUnary(ctx, md, dec)
			},
		})
	}
	return sd
}
