// Package mongo implements the storage ports against MongoDB. Candidates,
// postings, and users each live in their own collection; filters use
// case-insensitive regex matching and embedding presence is an $exists
// check on the vector field.
package mongo
