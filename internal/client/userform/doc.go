// Package userform implements the create/edit user form.
//
// A Form owns a Draft for its whole lifetime. The mode (create or edit) is
// chosen when the form is built and never changes. In edit mode the draft
// is pre-filled from the server, except for the photo binary: the stored
// photo is only replaced when a new file is selected during this session.
//
// Submit validates the whole draft with Validate; a failing draft never
// reaches the network and is reported as *ValidationError. Transport
// failures are returned unchanged with the draft kept for another attempt.
// On success the form hands control back to the user list via Navigator.
//
// A Form is not safe for concurrent use.
package userform
