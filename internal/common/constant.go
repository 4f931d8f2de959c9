// Package common contains shared constants, sentinel errors and small helpers
// used by both the gophauth server and its client.
package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// FailureCodeTrailerName is the gRPC trailer key carrying the stable
// machine-checkable failure code of a rejected call.
const FailureCodeTrailerName = "failure-code"
