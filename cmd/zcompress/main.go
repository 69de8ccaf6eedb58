// Command zcompress compresses and decompresses .Z files.
//
//	zcompress [flags] [file ...]
//
// Without file arguments it filters standard input to standard output.
package main

import "os"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
