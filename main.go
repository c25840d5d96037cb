// Copyright © 2024 The Quill authors

package main

import "github.com/quill-lang/quill/cmd"

func main() {
	cmd.Execute()
}
