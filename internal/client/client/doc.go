// Package client talks to the remote user REST API.
//
// # Overview
//
// Client is the transport-agnostic contract used by the controllers:
// ListUsers, GetUser, CreateUser, UpdateUser and DeleteUser. RESTClient is
// the HTTP implementation. Create and update send multipart bodies; the
// email field is named "gmail" on the wire and updates are POSTed to
// /api/update/user.
//
// # Error Handling
//
// Every network or HTTP failure is returned as *TransportError, which
// unwraps to one of the sentinel errors ErrUnavailable, ErrNotFound,
// ErrUnexpectedStatus or ErrMalformedResponse. Match them with errors.Is.
// Nothing is retried.
package client
