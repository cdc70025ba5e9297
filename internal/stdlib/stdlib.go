// Package stdlib embeds the Scheme-level bootstrap script every fresh
// global environment is loaded with, after the primitive table and
// before any user code.
package stdlib

import _ "embed"

//go:embed stdlib.scm
var Source string
