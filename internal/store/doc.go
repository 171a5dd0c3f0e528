// Package store defines the persistence interfaces for marketplace data and
// the error taxonomy shared by their implementations.
//
// Interfaces here describe what the services need from durable storage;
// the concrete local key-value implementation lives in
// internal/platform/localstore. Collections keep insertion ordering:
// accounts and cars are prepended (newest first), bookings are appended
// (creation order).
package store
