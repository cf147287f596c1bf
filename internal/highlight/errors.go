package highlight

import "errors"

// ErrNoLanguage indicates no lexer is registered under a name.
var ErrNoLanguage = errors.New("no such language")
