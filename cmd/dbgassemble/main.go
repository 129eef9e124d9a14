// cmd/dbgassemble/main.go
package main

import (
	"dbgassembler/internal/appshell"
	"dbgassembler/internal/cmdutil"
)

func main() {
	appshell.Main(cmdutil.Run)
}
