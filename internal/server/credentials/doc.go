// Package credentials contains the validated value types for identity-bearing
// input (Email, Password, Name, CompanyName), the Tenant scope, and the
// request validators that combine them.
//
// Each value type can only be obtained through its New* constructor, which
// returns a *failure.Failure for malformed input. Checks run in a fixed
// order: blank, too short, too long, format (and, for passwords,
// complexity), then repetition. The first failing check wins, except that
// all missing password character classes are reported together.
package credentials
