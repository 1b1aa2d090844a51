// Package subprocess implements the default transport: the tool server is
// spawned as a child process and messages travel as newline-delimited JSON
// over its stdin/stdout pipes.
package subprocess
