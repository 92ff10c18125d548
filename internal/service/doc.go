// Package service contains the application-specific use cases and business
// logic. It orchestrates interactions between domain objects and repositories
// (defined in internal/store) to fulfill application features.
//
// The card access service enforces ownership scoping: every operation takes
// the caller's authenticated owner identity explicitly and threads it into
// the store, so no card is ever read or written outside its owner's scope.
//
// Services receive dependencies through constructor injection and depend on
// domain entities and repository interfaces only, never on specific
// infrastructure implementations.
package service
