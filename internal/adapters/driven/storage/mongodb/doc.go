// Package mongodb provides the document-database BookStore.
//
// Books are stored one document per record in a single collection with the
// fields title, author, genre and stock. The document _id is a server-side
// ObjectID whose hex form is returned as the book ID.
//
// Title is not unique. UpdateOne and DeleteOne act on whichever document
// the server matches first.
package mongodb
