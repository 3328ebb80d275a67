// Package domain defines the product description entities: the ProductSpec a user
// fills in, the closed vocabularies for tone, length and audience, and the
// Description returned after generation. Entities are request-scoped and never
// persisted.
package domain
