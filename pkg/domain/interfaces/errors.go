package interfaces

import "github.com/m-mizutani/goerr/v2"

// ErrNotFound is the sentinel every repository backend wraps when a record
// does not exist
var ErrNotFound = goerr.New("not found")
