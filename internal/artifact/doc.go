package artifact

// Package artifact keeps server responses in memory behind client-local object
// URLs. A URL stays valid until it is revoked; the upload handler revokes the
// previous one before starting a new submission.
