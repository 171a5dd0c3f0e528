// Package service implements the marketplace's two core services.
//
// AccountService owns accounts and the current session: registration and
// login validation, the credential codec, and the authenticated identity.
// ListingService owns cars and bookings: CRUD with ownership normalization
// and cross-entity denormalization (car title/owner embedded into bookings
// at save time).
//
// Both publish reactive change streams (internal/events) so dependent views
// re-render on mutation. Neither service enforces authorization: callers
// gate access using the current session's role and ownerId/userId equality,
// and the services trust the identity fields they are handed. That is a
// documented trust boundary of the design.
package service
