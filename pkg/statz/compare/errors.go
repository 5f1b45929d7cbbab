package compare

import "errors"

// ErrUnsupportedFormat indicates a file extension no loader recognizes.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// ErrMalformedInput indicates content that does not parse as the
// expected grammar: a CSV row missing its component or property field,
// an unrecognized header, or invalid JSON.
var ErrMalformedInput = errors.New("malformed input")

// ErrFileAccess indicates the snapshot file could not be opened or
// read.
var ErrFileAccess = errors.New("file access failed")
