// Package paths provides the standard virtual file system layout.
//
// # Directory Structure
//
//	/
//	  ├── Applications/   (installed application bundles, *.app)
//	  ├── bin/            (terminal programs)
//	  ├── Users/
//	  │   └── joey/       (home)
//	  │       ├── Desktop/
//	  │       ├── Documents/
//	  │       └── Pictures/
//	  └── Volumes/        (host directories mounted into the tree)
//
// # Usage
//
//	notes := paths.App("Notes.app")   // /Applications/Notes.app
//	ls := paths.Program("ls")         // /bin/ls
//
//	if paths.IsWithin(p, paths.Home) {
//	    // inside the home directory
//	}
package paths
