package chord

import "errors"

// ErrParse is the sentinel wrapped by every chord/sequence parse failure.
var ErrParse = errors.New("chord: parse error")
