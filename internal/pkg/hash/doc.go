// Package hash provides one-way hashing and verification of passwords.
//
// Store only the hash, then verify user input by comparing the plaintext
// against the stored value. Both implementations (bcrypt, Argon2id) produce
// self-describing hash strings: algorithm, work factor, and salt travel with
// the digest, so verification needs nothing beyond the stored string.
package hash
