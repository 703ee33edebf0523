// Package model defines the domain data of offline map downloads: the
// request built from a user selection, the map type catalogue, the
// EnqueueSpec handed to a download manager, pending download records and
// transfer tasks.
package model
