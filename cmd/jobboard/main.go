// Command jobboard runs the job board web service and its operator tooling.
//
// @title        Job Board
// @version      1.0
// @description  Session-authenticated job board: job seekers apply, employers post, admins oversee.
// @BasePath     /
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
