// Package domain implements the embedder and the falloff curves behind the cify commands.
package domain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"

	"cify.dev/pkg/cify/internal/adapter"
	m "cify.dev/pkg/cify/internal/model"
	"cify.dev/pkg/cify/pkg/carray"
)

const (
	stdoutPath m.Path = "<stdout>"
	readChunk         = 32 * 1024
)

// EmbedArgs holds the parameters for a single conversion.
type EmbedArgs struct {
	Source m.Path
	// Destination is the file to write. Empty or "-" selects Output.
	Destination m.Path
	// Output receives the fragment when Destination is empty. Defaults to os.Stdout.
	Output io.Writer
	// KeepPartial leaves a partially written destination in place on failure.
	KeepPartial bool
}

// Embedder converts a binary file into a C array fragment.
type Embedder interface {
	Embed(ctx context.Context, args EmbedArgs) (m.Fragment, error)
}

type embedder struct {
	fsAdapter adapter.SourceFSAdapter
}

// NewEmbedder constructs an Embedder backed by the provided filesystem adapter.
func NewEmbedder(fsAdapter adapter.SourceFSAdapter) Embedder {
	return &embedder{fsAdapter: fsAdapter}
}

// Embed reads args.Source and writes its fragment to the destination file or
// to args.Output. The source is opened before the destination is touched, so
// a missing source never creates a destination file.
func (e *embedder) Embed(ctx context.Context, args EmbedArgs) (m.Fragment, error) {
	if err := ctx.Err(); err != nil {
		return m.Fragment{}, err
	}

	fragment := m.Fragment{
		Source:      args.Source,
		Destination: args.Destination,
		Symbol:      DeriveSymbolName(args.Source),
	}

	slog.Debug("embedding source",
		"source", args.Source,
		"destination", args.Destination,
		"symbol", fragment.Symbol,
	)

	src, err := e.openSource(args.Source)
	if err != nil {
		slog.Error("failed to open source", "source", args.Source, "error", err)
		return fragment, err
	}

	defer func() {
		if err := src.Close(); err != nil {
			slog.Warn("failed to close source", "source", args.Source, "error", err)
		}
	}()

	if args.Destination.IsStdout() {
		out := args.Output
		if out == nil {
			out = os.Stdout
		}

		fragment.Size, err = encode(fragment.Symbol, args.Source, stdoutPath, src, out)
		if err != nil {
			slog.Error("failed to embed source", "source", args.Source, "error", err)
			return fragment, err
		}

		slog.Info("embedded source", "source", args.Source, "symbol", fragment.Symbol, "size", humanize.Bytes(fragment.Size))

		return fragment, nil
	}

	dst, err := e.createDestination(args.Source, args.Destination)
	if err != nil {
		slog.Error("failed to create destination", "destination", args.Destination, "error", err)
		return fragment, err
	}

	fragment.Size, err = encode(fragment.Symbol, args.Source, args.Destination, src, dst)

	if closeErr := dst.Close(); closeErr != nil && err == nil {
		err = newEmbedError(ErrIOFailure, args.Destination, closeErr)
	}

	if err != nil {
		slog.Error("failed to embed source", "source", args.Source, "destination", args.Destination, "error", err)
		e.discardPartial(args)

		return fragment, err
	}

	slog.Info("embedded source",
		"source", args.Source,
		"destination", args.Destination,
		"symbol", fragment.Symbol,
		"size", humanize.Bytes(fragment.Size),
	)

	return fragment, nil
}

func (e *embedder) openSource(source m.Path) (io.ReadCloser, error) {
	info, err := e.fsAdapter.FileInfo(source)
	if err != nil {
		return nil, newEmbedError(ErrSourceNotFound, source, err)
	}

	if info.IsDir() {
		return nil, newEmbedError(ErrSourceNotFound, source, errors.New("is a directory"))
	}

	src, err := e.fsAdapter.Open(source)
	if err != nil {
		return nil, newEmbedError(ErrSourceNotFound, source, err)
	}

	return src, nil
}

func (e *embedder) createDestination(source, destination m.Path) (io.WriteCloser, error) {
	if srcInfo, err := e.fsAdapter.FileInfo(source); err == nil {
		if dstInfo, err := e.fsAdapter.FileInfo(destination); err == nil && os.SameFile(srcInfo, dstInfo) {
			return nil, newEmbedError(ErrDestinationUnwritable, destination, errors.New("destination is the source file"))
		}
	}

	parent := destination.Dir()
	if err := e.fsAdapter.MkdirAll(parent); err != nil {
		return nil, newEmbedError(ErrDestinationUnwritable, destination, fmt.Errorf("failed to create directory %s: %w", parent, err))
	}

	dst, err := e.fsAdapter.Create(destination)
	if err != nil {
		return nil, newEmbedError(ErrDestinationUnwritable, destination, err)
	}

	return dst, nil
}

func (e *embedder) discardPartial(args EmbedArgs) {
	if args.KeepPartial {
		slog.Warn("leaving partial destination in place", "destination", args.Destination)
		return
	}

	if err := e.fsAdapter.Remove(args.Destination); err != nil {
		slog.Warn("failed to remove partial destination", "destination", args.Destination, "error", err)
		return
	}

	slog.Debug("removed partial destination", "destination", args.Destination)
}

// encode streams src into w as a C array, tagging read and write failures
// with the path that caused them.
func encode(symbol m.SymbolName, source, destination m.Path, src io.Reader, w io.Writer) (uint64, error) {
	enc := carray.NewEncoder(w, string(symbol))
	buf := make([]byte, readChunk)

	for {
		n, readErr := src.Read(buf)
		if n > 0 {
			if _, err := enc.Write(buf[:n]); err != nil {
				return enc.Len(), newEmbedError(ErrIOFailure, destination, err)
			}
		}

		if errors.Is(readErr, io.EOF) {
			break
		}

		if readErr != nil {
			return enc.Len(), newEmbedError(ErrIOFailure, source, readErr)
		}
	}

	if err := enc.Close(); err != nil {
		return enc.Len(), newEmbedError(ErrIOFailure, destination, err)
	}

	return enc.Len(), nil
}
