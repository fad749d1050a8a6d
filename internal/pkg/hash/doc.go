// Package hash provides helpers for hashing and verifying secrets.
//
// OTP codes and session tokens are never stored in plaintext: the database
// keeps only a keyed hash, and submissions are verified by recomputing the
// hash and comparing in constant time.
package hash
