package mcp

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"

	"github.com/mark-chris/prodcat/internal/keywords"
	"github.com/mark-chris/prodcat/internal/search"
)

// maxMessageSize bounds a single JSON-RPC line.
const maxMessageSize = 4 << 20

// serverState represents the server lifecycle state
type serverState int

const (
	stateNotInitialized serverState = iota
	stateInitializing
	stateInitialized
)

// Options holds tool defaults.
type Options struct {
	Threshold   float64
	Limit       int
	Strategy    keywords.Strategy
	MaxKeywords int
}

// Server implements the Model Context Protocol for the product catalog
type Server struct {
	source             search.Source
	extractor          *keywords.Extractor
	opts               Options
	logger             *zap.Logger
	state              serverState
	protocolVersion    string
	clientCapabilities map[string]interface{}
	mu                 sync.RWMutex
}

// NewServer creates a new MCP server
func NewServer(source search.Source, extractor *keywords.Extractor, opts Options, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Strategy == "" {
		opts.Strategy = keywords.StrategyDomain
	}
	return &Server{
		source:    source,
		extractor: extractor,
		opts:      opts,
		logger:    logger,
		state:     stateNotInitialized,
	}
}

// setState sets the server state (thread-safe)
func (s *Server) setState(state serverState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
}

// getState gets the server state (thread-safe)
func (s *Server) getState() serverState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// ServeStdio reads one JSON-RPC message per line from r and writes one
// response per line to w, until r is exhausted or ctx is cancelled.
func (s *Server) ServeStdio(ctx context.Context, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxMessageSize)
	out := bufio.NewWriter(w)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		resp, err := s.handleMessage(ctx, line)
		if err != nil {
			return err
		}
		if len(resp) == 0 {
			continue
		}

		if _, err := out.Write(append(resp, '\n')); err != nil {
			return fmt.Errorf("failed to write response: %w", err)
		}
		if err := out.Flush(); err != nil {
			return fmt.Errorf("failed to write response: %w", err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read request: %w", err)
	}
	return nil
}
