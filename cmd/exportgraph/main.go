package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/hanpama/exportgraph/internal/eventbus"
	"github.com/hanpama/exportgraph/internal/jsonrt"
	"github.com/hanpama/exportgraph/internal/language"
	"github.com/hanpama/exportgraph/internal/otel"
	"github.com/hanpama/exportgraph/internal/schema"
	"github.com/hanpama/exportgraph/internal/server"
	"github.com/hanpama/exportgraph/internal/validation"
)

const rootUsage = `exportgraph — GraphQL server with @export variable chaining

USAGE:
  exportgraph <command> [flags]

COMMANDS:
  serve            Run the HTTP GraphQL server over a JSON document
  validate         Statically check a query document, exit non-zero on errors
  help             Show help for any command
`

const serveUsage = `serve FLAGS:
  -schema <file>             GraphQL SDL schema file (required)
  -data <file>               JSON document backing the schema (required)
  -server.addr <addr>        HTTP listen address (default: :8080)
  -server.pretty             Pretty-print JSON responses
  -server.timeout <duration> Per-request timeout, e.g. 10s (default: 10s)
  -otel.endpoint <addr>      OTLP collector endpoint
  -otel.service <name>       OpenTelemetry service name (default: exportgraph)
`

const validateUsage = `validate FLAGS:
  -query <file>   GraphQL query document to check; "-" reads stdin (required)
  -schema <file>  GraphQL SDL schema file; checked for buildability when given
  (Exits non-zero when the document has validation errors)
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	global := flag.NewFlagSet("exportgraph", flag.ContinueOnError)
	global.SetOutput(new(bytes.Buffer)) // silence automatic output
	if err := global.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, rootUsage)
		return err
	}
	remaining := global.Args()
	if len(remaining) == 0 {
		fmt.Fprint(os.Stderr, rootUsage)
		return fmt.Errorf("missing command")
	}

	cmd := remaining[0]
	cmdArgs := remaining[1:]
	switch cmd {
	case "serve":
		return cmdServe(cmdArgs)
	case "validate":
		return cmdValidate(cmdArgs)
	case "help":
		return cmdHelp(cmdArgs)
	default:
		fmt.Fprint(os.Stderr, rootUsage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func cmdHelp(args []string) error {
	if len(args) == 0 {
		fmt.Print(rootUsage)
		return nil
	}
	switch args[0] {
	case "serve":
		fmt.Print(serveUsage)
	case "validate":
		fmt.Print(validateUsage)
	default:
		return fmt.Errorf("unknown help topic %q", args[0])
	}
	return nil
}

func cmdServe(args []string) error {
	schemaFile := ""
	dataFile := ""
	addr := ":8080"
	pretty := false
	timeout := 10 * time.Second
	otelEndpoint := ""
	otelService := "exportgraph"

	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.StringVar(&schemaFile, "schema", schemaFile, "GraphQL SDL schema file")
	fs.StringVar(&dataFile, "data", dataFile, "JSON document backing the schema")
	fs.StringVar(&addr, "server.addr", addr, "HTTP listen address")
	fs.BoolVar(&pretty, "server.pretty", pretty, "Pretty-print JSON responses")
	fs.DurationVar(&timeout, "server.timeout", timeout, "Per-request timeout")
	fs.StringVar(&otelEndpoint, "otel.endpoint", otelEndpoint, "OTLP collector endpoint")
	fs.StringVar(&otelService, "otel.service", otelService, "OpenTelemetry service name")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, serveUsage)
		return err
	}
	if schemaFile == "" {
		fmt.Fprint(os.Stderr, serveUsage)
		return fmt.Errorf("-schema is required")
	}
	if dataFile == "" {
		fmt.Fprint(os.Stderr, serveUsage)
		return fmt.Errorf("-data is required")
	}

	sdl, err := os.ReadFile(schemaFile)
	if err != nil {
		return fmt.Errorf("read schema: %w", err)
	}
	sch, err := schema.BuildFromSDL(string(sdl))
	if err != nil {
		return fmt.Errorf("build schema: %w", err)
	}
	runtime, err := jsonrt.Load(dataFile)
	if err != nil {
		return fmt.Errorf("load data: %w", err)
	}

	eventbus.Use(eventbus.New())
	shutdown, err := otel.Setup(otelEndpoint, otelService)
	if err != nil {
		return fmt.Errorf("otel setup: %w", err)
	}
	defer func() { _ = shutdown(context.Background()) }()

	var sopts []server.Option
	if pretty {
		sopts = append(sopts, server.WithPretty())
	}
	if timeout > 0 {
		sopts = append(sopts, server.WithTimeout(timeout))
	}
	h, err := server.New(runtime, sch, sopts...)
	if err != nil {
		return fmt.Errorf("server init: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/graphql", h)

	log.Printf("GraphQL server listening on %s", addr)
	return http.ListenAndServe(addr, mux)
}

func cmdValidate(args []string) error {
	queryFile := ""
	schemaFile := ""
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.StringVar(&queryFile, "query", queryFile, "GraphQL query document to check")
	fs.StringVar(&schemaFile, "schema", schemaFile, "GraphQL SDL schema file")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, validateUsage)
		return err
	}
	if queryFile == "" {
		fmt.Fprint(os.Stderr, validateUsage)
		return fmt.Errorf("-query is required")
	}

	if schemaFile != "" {
		sdl, err := os.ReadFile(schemaFile)
		if err != nil {
			return fmt.Errorf("read schema: %w", err)
		}
		if _, err := schema.BuildFromSDL(string(sdl)); err != nil {
			return fmt.Errorf("build schema: %w", err)
		}
	}

	var (
		raw []byte
		err error
	)
	if queryFile == "-" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(queryFile)
	}
	if err != nil {
		return fmt.Errorf("read query: %w", err)
	}

	doc, err := language.ParseQuery(string(raw))
	if err != nil {
		return fmt.Errorf("parse query: %w", err)
	}

	verrs := validation.Validate(doc)
	for _, e := range verrs {
		fmt.Fprintf(os.Stderr, "%s\n", e.Error())
	}
	if len(verrs) > 0 {
		return fmt.Errorf("%d validation error(s)", len(verrs))
	}
	fmt.Println("OK")
	return nil
}
