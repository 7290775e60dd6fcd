package quizcmd

import (
	"context"
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-quizz/internal/bundle"
	"github.com/goliatone/go-quizz/internal/commands"
	"github.com/goliatone/go-quizz/internal/quizerr"
	"github.com/goliatone/go-quizz/pkg/interfaces"
)

type stubCompileService struct {
	roots   []string
	opts    []interfaces.CompileRunOptions
	summary *interfaces.RunSummary
	err     error
}

func (s *stubCompileService) CompileDirectory(_ context.Context, root string, opts interfaces.CompileRunOptions) (*interfaces.RunSummary, error) {
	s.roots = append(s.roots, root)
	s.opts = append(s.opts, opts)
	return s.summary, s.err
}

type stubConsolidationService struct {
	calls   int
	runIDs  []string
	summary *interfaces.RunSummary
	err     error
}

func (s *stubConsolidationService) ConsolidateDirectory(ctx context.Context, _ string, _ interfaces.ConsolidateRunOptions) (*interfaces.RunSummary, error) {
	s.calls++
	s.runIDs = append(s.runIDs, commands.RunID(ctx))
	return s.summary, s.err
}

type stubExporter struct {
	source string
	opts   bundle.Options
	result *bundle.Result
	err    error
}

func (s *stubExporter) Export(_ context.Context, source string, opts bundle.Options) (*bundle.Result, error) {
	s.source = source
	s.opts = opts
	return s.result, s.err
}

func TestCompileDirectoryHandlerForwardsOptions(t *testing.T) {
	service := &stubCompileService{summary: &interfaces.RunSummary{Files: 2, Written: 2}}
	var reported []string
	handler := NewCompileDirectoryHandler(service, nil, func(_ context.Context, operation string, summary *interfaces.RunSummary) {
		reported = append(reported, operation)
		if summary.Written != 2 {
			t.Fatalf("unexpected summary %+v", summary)
		}
	})

	msg := CompileDirectoryCommand{Root: "quizzes", OutputRoot: "out", Match: "python", Overwrite: true, DryRun: true}
	if err := handler.Execute(context.Background(), msg); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(service.roots) != 1 || service.roots[0] != "quizzes" {
		t.Fatalf("unexpected roots %v", service.roots)
	}
	want := interfaces.CompileRunOptions{OutputRoot: "out", Match: "python", Overwrite: true, DryRun: true}
	if service.opts[0] != want {
		t.Fatalf("expected %+v, got %+v", want, service.opts[0])
	}
	if len(reported) != 1 || reported[0] != compileOperation {
		t.Fatalf("expected one report, got %v", reported)
	}
}

func TestCompileDirectoryHandlerRejectsInvalidMessage(t *testing.T) {
	service := &stubCompileService{}
	err := NewCompileDirectoryHandler(service, nil, nil).Execute(context.Background(), CompileDirectoryCommand{})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(service.roots) != 0 {
		t.Fatal("service must not run for invalid messages")
	}
}

func TestConsolidateDirectoryHandlerReportsFailedRuns(t *testing.T) {
	summary := &interfaces.RunSummary{Files: 1, Failed: 1}
	service := &stubConsolidationService{summary: summary, err: quizerr.NoDocuments(1)}
	reports := 0
	handler := NewConsolidateDirectoryHandler(service, nil, func(context.Context, string, *interfaces.RunSummary) {
		reports++
	})

	err := handler.Execute(context.Background(), ConsolidateDirectoryCommand{Root: "."})
	if quizerr.TextCode(err) != quizerr.CodeNoDocuments {
		t.Fatalf("expected run error to pass through, got %v", err)
	}
	if reports != 1 {
		t.Fatalf("failed runs must still be reported, got %d", reports)
	}
	if service.runIDs[0] == "" {
		t.Fatal("expected run id on the service context")
	}
}

func TestExportBundleHandler(t *testing.T) {
	exporter := &stubExporter{result: &bundle.Result{Folders: []string{"python"}, Manifest: &bundle.Manifest{}}}
	var got *bundle.Result
	handler := NewExportBundleHandler(exporter, nil, func(_ context.Context, result *bundle.Result) {
		got = result
	})

	msg := ExportBundleCommand{Source: ".", Destination: "seed", Match: "py", Archive: "seed.tar.xz"}
	if err := handler.Execute(context.Background(), msg); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if exporter.source != "." || exporter.opts != (bundle.Options{Destination: "seed", Match: "py", Archive: "seed.tar.xz"}) {
		t.Fatalf("unexpected export call %q %+v", exporter.source, exporter.opts)
	}
	if got == nil || got.Folders[0] != "python" {
		t.Fatalf("expected result to be reported, got %+v", got)
	}
}

func TestExportBundleHandlerWrapsPlainErrors(t *testing.T) {
	exporter := &stubExporter{err: errors.New("disk full")}
	err := NewExportBundleHandler(exporter, nil, nil).Execute(context.Background(), ExportBundleCommand{Source: ".", Destination: "seed"})
	if quizerr.TextCode(err) != commands.CodeExecuteFailed {
		t.Fatalf("expected execution failure code, got %v", err)
	}
}
