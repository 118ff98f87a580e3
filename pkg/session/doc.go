// Package session coordinates parked machine instances.
//
// A Manager pairs a Machine with a ports.TokenStore so applications can
// suspend an instance (Park), rebuild it later under the same ID
// (Resume), and do both safely from concurrent goroutines. Per-ID locks
// are reference counted so the lock map never grows beyond the set of
// IDs currently in use.
package session
