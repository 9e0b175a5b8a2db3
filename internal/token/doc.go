// Package token mints and validates signed identity tokens.
//
// Two read operations exist on purpose and must not be conflated:
//
//   - Verify performs the full signature, issuer, audience, and expiry
//     check. Authorization decisions must use Verify exclusively.
//   - SubjectHint decodes the subject claim without verifying anything.
//     It exists solely so session resolution can key an inbound request
//     by username before verification runs later in the pipeline; a
//     forged token yields at worst a session key, never access.
package token
