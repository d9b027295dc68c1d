// Package models holds the GORM persistence models and their mappers.
//
// Domain types carry no ORM tags. Each model has ToDomain and FromDomain
// methods, and the repositories in the parent package only ever hand
// domain values to callers. JSON columns (images, specifications, order
// items, shipping address) are stored as jsonb text.
package models
