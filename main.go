package main

import (
	"os"

	"github.com/Norgate-AV/comdlg/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
