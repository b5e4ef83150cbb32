package lsp

import (
	"io"
	"os"
)

// stdio joins a reader and a writer into the single stream a JSON-RPC
// connection consumes.
type stdio struct {
	reader io.ReadCloser
	writer io.WriteCloser
}

// NewStdio returns a ReadWriteCloser over r and w. Closing it closes both.
func NewStdio(r io.ReadCloser, w io.WriteCloser) io.ReadWriteCloser {
	return &stdio{reader: r, writer: w}
}

// Stdio returns the process's standard input and output as one stream.
func Stdio() io.ReadWriteCloser {
	return NewStdio(os.Stdin, os.Stdout)
}

func (s *stdio) Read(p []byte) (int, error)  { return s.reader.Read(p) }
func (s *stdio) Write(p []byte) (int, error) { return s.writer.Write(p) }
func (s *stdio) Close() error {
	_ = s.reader.Close()
	return s.writer.Close()
}
