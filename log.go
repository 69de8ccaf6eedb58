package lzw

import "github.com/op/go-logging"

const logModule = "lzw"

var log = logging.MustGetLogger(logModule)

func init() {
	// Quiet unless the host program configures a backend and level for the module.
	logging.SetLevel(logging.WARNING, logModule)
}
