// Package shell implements the terminal command interpreter and the
// programs installed under /bin.
//
// Programs are file system nodes of kind program; the shell resolves the
// first token of a command line against /bin (or as a path when it contains
// a slash) and runs the program with the parsed tokens.
//
// Example Usage:
//
//	if err := shell.Install(fs); err != nil {
//	    return err
//	}
//	sh := shell.New(apis, manager, os.Stdout)
//	sh.Execute("cd ~/Documents")
//	sh.Execute("ls")
package shell
