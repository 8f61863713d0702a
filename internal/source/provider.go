package source

import (
	"bufio"
	"context"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Provider streams raw job listings into the pipeline.
type Provider interface {
	// Next returns the next record, or io.EOF when the source is drained.
	Next(ctx context.Context) (*Record, error)
	Close() error
}

// fileProvider reads one JSON document per line from an export file.
type fileProvider struct {
	path    string
	file    *os.File
	scanner *bufio.Scanner
	line    int
}

// OpenFile opens a JSONL export as a Provider.
func OpenFile(path string) (Provider, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "source: open %s", path)
	}
	scanner := bufio.NewScanner(f)
	// Listings with full descriptions routinely exceed the default
	// scanner limit.
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	return &fileProvider{path: path, file: f, scanner: scanner}, nil
}

func (p *fileProvider) Next(ctx context.Context) (*Record, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !p.scanner.Scan() {
			if err := p.scanner.Err(); err != nil {
				return nil, eris.Wrapf(err, "source: read %s", p.path)
			}
			return nil, io.EOF
		}
		p.line++

		text := strings.TrimSpace(p.scanner.Text())
		if text == "" {
			continue
		}

		rec, err := Parse([]byte(text))
		if err != nil {
			zap.L().Warn("skipping malformed record",
				zap.String("path", p.path),
				zap.Int("line", p.line),
				zap.Error(err),
			)
			continue
		}
		return rec, nil
	}
}

func (p *fileProvider) Close() error {
	return p.file.Close()
}
