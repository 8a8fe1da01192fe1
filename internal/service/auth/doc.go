// Package auth issues and validates HS256 bearer tokens and checks
// username/password credentials against bcrypt hashes.
package auth
