// Package auth implements the credential and session-token core of the
// HeroGame backend.
//
// Credentials are (hash, salt) pairs: the salt is a fresh 128-byte HMAC key
// per password, the hash is HMAC-SHA512 of the plaintext under that key.
// Session tokens are stateless signed JWTs (HS256) carrying the account id
// and a seven-day expiry; because no server-side token state exists,
// sign-out cannot revoke a token before its natural expiry. Every
// authenticated request passes the full gate, including a liveness check
// that the token's subject still exists in the credential store.
package auth
