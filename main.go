// SPDX-License-Identifier: GPL-3.0-or-later
package main

import (
	"fmt"
	"os"
	"os/user"

	"stackcc/repl"
)

func main() {
	currentUser, err := user.Current()
	if err != nil {
		fmt.Printf("Error getting current user: %v\n", err)
		return
	}

	fmt.Printf("Welcome to the stackcc REPL, %s!\n", currentUser.Username)
	fmt.Println("Type a program on one line, :asm to toggle the listing, :quit to leave.")
	repl.Start(os.Stdin, os.Stdout)
}
