// Command render writes a resume JSON file to PDF or HTML without running
// the server.
package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"resume-builder/internal/layout"
	"resume-builder/internal/preview"
	"resume-builder/internal/usecase"
	"resume-builder/pkg/logger"

	flag "github.com/spf13/pflag"
)

type renderFlags struct {
	input    string
	output   string
	template string
	format   string
	labels   map[string]string
	verbose  bool
}

var errUsage = errors.New("usage")

func parseFlags(args []string, stderr io.Writer) (*renderFlags, error) {
	f := &renderFlags{}
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVarP(&f.input, "input", "i", "", "resume JSON file (\"-\" reads stdin)")
	fs.StringVarP(&f.output, "output", "o", "", "output file (default: input name with the format's extension)")
	fs.StringVarP(&f.template, "template", "t", "", "template id, overrides the one in the file")
	fs.StringVarP(&f.format, "format", "f", "pdf", "output format: pdf or html")
	fs.StringToStringVarP(&f.labels, "label", "l", nil, "section heading override, e.g. skills=Toolbox")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log progress")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if f.input == "" && fs.NArg() > 0 {
		f.input = fs.Arg(0)
	}
	if f.input == "" {
		fmt.Fprintln(stderr, "render: no input file")
		fs.PrintDefaults()
		return nil, errUsage
	}
	f.format = strings.ToLower(f.format)
	if f.format != "pdf" && f.format != "html" {
		return nil, fmt.Errorf("unknown format %q", f.format)
	}
	if f.output == "" {
		if f.input == "-" {
			return nil, fmt.Errorf("--output is required when reading stdin")
		}
		f.output = strings.TrimSuffix(f.input, filepath.Ext(f.input)) + "." + f.format
	}
	return f, nil
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	f, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	level := "warn"
	if f.verbose {
		level = "debug"
	}
	logger.Setup(stderr, level, "text")

	raw, err := readInput(f.input, stdin)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	req, err := usecase.DecodeExportRequest(raw)
	if err != nil {
		return err
	}
	if f.template != "" {
		req.Template = f.template
	}
	for k, v := range f.labels {
		if req.Labels == nil {
			req.Labels = map[string]string{}
		}
		req.Labels[k] = v
	}

	pv, err := preview.NewRenderer()
	if err != nil {
		return err
	}
	exporter := usecase.NewExporter(layout.NewEngine(), pv, nil)

	var buf bytes.Buffer
	switch f.format {
	case "html":
		err = exporter.HTML(&buf, req)
	default:
		_, err = exporter.PDF(&buf, req)
	}
	if err != nil {
		return err
	}

	if err := os.WriteFile(f.output, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Fprintf(stdout, "wrote %s (%d bytes)\n", f.output, buf.Len())
	return nil
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "render: %v\n", err)
		}
		os.Exit(2)
	}
}
