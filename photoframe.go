package photoframe

import _ "embed"

//go:embed VERSION
var Version string

//go:embed photoframe.toml
var DefaultConfig string
