package ingest

import (
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/sourcegraph/conc/panics"

	"github.com/gamehubfc/managerhub/internal/domain/player"
)

// Stage names the pipeline step a ParseError came from.
type Stage string

const (
	StageExtract Stage = "extract"
	StageBuild   Stage = "build"
)

// ParseError reports why a document produced no players.
type ParseError struct {
	Stage Stage
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse export at %s: %v", e.Stage, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Result is the outcome of one parse. On failure Players is empty and Err
// holds a *ParseError; partial results are never returned.
type Result struct {
	Players []player.Player
	// Columns is the number of distinct header keys seen.
	Columns int
	Err     error
}

func (r Result) Failed() bool {
	return r.Err != nil
}

// Parser runs the ingestion pipeline with a fixed vocabulary. It holds no
// mutable state and may be shared between goroutines.
type Parser struct {
	vocab Vocabulary
}

func NewParser(vocab Vocabulary) *Parser {
	return &Parser{vocab: vocab}
}

var defaultParser = NewParser(DefaultVocabulary())

// Parse runs the default parser over an HTML string.
func Parse(html string) Result {
	return defaultParser.Parse(html)
}

func (p *Parser) Parse(html string) Result {
	return p.ParseReader(strings.NewReader(html))
}

// ParseReader never panics. Any failure turns into an empty Result whose
// Err is a *ParseError.
func (p *Parser) ParseReader(r io.Reader) Result {
	var (
		result Result
		stage  = StageExtract
	)

	recovered := panics.Try(func() {
		table, err := ExtractTable(r)
		if err != nil {
			result = failed(stage, err)
			return
		}

		stage = StageBuild
		index := NewColumnIndex(table.Header)
		result = Result{
			Players: BuildPlayers(table, index, p.vocab),
			Columns: index.Len(),
		}
	})
	if recovered != nil {
		return failed(stage, errors.WithStack(recovered.AsError()))
	}
	return result
}

func failed(stage Stage, err error) Result {
	return Result{
		Players: []player.Player{},
		Err:     &ParseError{Stage: stage, Err: err},
	}
}
