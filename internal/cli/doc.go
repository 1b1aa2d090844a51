// Package cli locates the tool server binary and prepares its environment.
//
// Discovery searches in the following order:
//  1. The explicit path in Config.ServerPath (if provided)
//  2. The system PATH
//  3. Common installation directories (/usr/local/bin, /usr/bin,
//     ~/.local/bin, ~/go/bin)
package cli
