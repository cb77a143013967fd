package script

import "errors"

var ErrScript = errors.New("script error")
