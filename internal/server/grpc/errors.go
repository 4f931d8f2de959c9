package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/failure"
)

// statusCode maps every failure code to a gRPC code.
func statusCode(c failure.Code) codes.Code {
	switch c {
	case failure.CodeEmpty,
		failure.CodeTooShort,
		failure.CodeTooLong,
		failure.CodeInvalidFormat,
		failure.CodeMissingAtSymbol,
		failure.CodeInsufficientComplexity,
		failure.CodeRepeatingCharacters,
		failure.CodeRefreshTokenEmpty,
		failure.CodeRoleNotFound:
		return codes.InvalidArgument
	case failure.CodeInvalidCredentials,
		failure.CodeInvalidToken,
		failure.CodeRefreshTokenNotFound,
		failure.CodeRefreshTokenExpired:
		return codes.Unauthenticated
	case failure.CodeIDNotExists:
		return codes.NotFound
	case failure.CodeEmailAlreadyExists:
		return codes.AlreadyExists
	case failure.CodeInsufficientRole,
		failure.CodeUserSuspended:
		return codes.PermissionDenied
	case failure.CodeMissingUppercase,
		failure.CodeMissingLowercase,
		failure.CodeMissingDigit,
		failure.CodeMissingSpecialChar:
		// only ever nested inside InsufficientComplexity
		return codes.InvalidArgument
	}
	return codes.Unknown
}

// toStatus converts a service error into a gRPC status. Failures keep their
// message and carry their code in the failure-code trailer; anything else
// becomes a bare Internal.
func (s *GRPCServer) toStatus(ctx context.Context, err error) error {
	f, ok := failure.As(err)
	if !ok {
		if !errors.Is(err, common.ErrorInternal) {
			s.logger.Error(ctx, "unexpected error", "error", err)
		}
		return status.Error(codes.Internal, "internal error")
	}

	// no stream outside a real call; the status alone is enough then
	_ = grpc.SetTrailer(ctx, metadata.Pairs(common.FailureCodeTrailerName, string(f.Code)))
	return status.Error(statusCode(f.Code), f.Error())
}
