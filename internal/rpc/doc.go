// Package rpc defines the wire contract of the gophauth.v1.AuthService gRPC
// service: request and response messages, the JSON codec they travel with,
// the service descriptor used by the server and a typed client stub.
//
// Messages are plain structs encoded as JSON with camelCase field names.
// There are no protobuf descriptors and the server does not register
// reflection. Clients other than AuthServiceClient must send the "json"
// content subtype, i.e. the header "content-type: application/grpc+json",
// and call the full method names listed in this package (for example
// "/gophauth.v1.AuthService/Login"). A request sent as plain
// "application/grpc" is decoded with the protobuf codec and fails, because
// the messages are not proto.Message values.
//
// Protected methods read the access token from the "access_token" metadata
// key. Rejections carry the failure code in the "failure-code" trailer.
package rpc
