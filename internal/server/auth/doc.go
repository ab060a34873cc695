// Package auth holds the security primitives of the server: password hashing,
// the signed-token codec and the Identity carried by authenticated requests.
//
// The HTTP gates that use these primitives live in package httpapi.
package auth
