// Package core contains the inventory addressing layer: lenses and slot lens
// providers that map a flat slot index onto the storage of independently
// implemented containers, the builder that composes containers into one
// inventory, and the transaction result every mutation returns.
//
// Composition never copies slot storage. A composite keeps non-owning
// references to its children and resolves indices through a lens tree that
// is finalized once and read-only afterwards. Slot operations never panic and
// never return errors; outcomes are reported through TransactionResult.
// Misuse of a builder is a programming error and panics with a *goerrors.Error.
package core
