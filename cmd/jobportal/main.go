// Command jobportal runs the job portal: the interactive console by
// default, or the HTTP API, the notification worker and a few
// administrative commands.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "jobportal:", err)
		os.Exit(1)
	}
}
