package main

import (
	"flag"
	"fmt"
	"os"

	jsonlint "github.com/jsonlint/jsonlint"
	"github.com/jsonlint/jsonlint/source/gojson"
	yamlsrc "github.com/jsonlint/jsonlint/source/yaml"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "check":
		checkCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `jsonlint CLI

Usage:
  jsonlint check [-dup warn|error] [-max-depth n] [-max-bytes n] [-yaml] [-gojson] file...

Checks documents for duplicate keys and depth/size limits. Exits non-zero
when any error-severity finding is reported.`)
}

func checkCmd(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	var dup string
	var maxDepth int
	var maxBytes int64
	var asYAML bool
	var useGoJSON bool
	fs.StringVar(&dup, "dup", "warn", "duplicate key handling: ignore, warn or error")
	fs.IntVar(&maxDepth, "max-depth", 0, "maximum nesting depth (0 = unlimited)")
	fs.Int64Var(&maxBytes, "max-bytes", 0, "maximum input size in bytes (0 = unlimited)")
	fs.BoolVar(&asYAML, "yaml", false, "treat input as YAML")
	fs.BoolVar(&useGoJSON, "gojson", false, "decode with the go-json driver")
	_ = fs.Parse(args)
	if fs.NArg() == 0 {
		fs.Usage()
		os.Exit(2)
	}

	opt := jsonlint.BindOpt{
		Strictness: jsonlint.Strictness{OnDuplicateKey: parseSeverity(dup)},
		MaxDepth:   maxDepth,
		MaxBytes:   maxBytes,
	}
	if useGoJSON {
		jsonlint.SetJSONDriver(gojson.Driver())
	}

	failed := false
	for _, path := range fs.Args() {
		if !checkFile(path, opt, asYAML) {
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func parseSeverity(s string) jsonlint.Severity {
	switch s {
	case "ignore":
		return jsonlint.Ignore
	case "error":
		return jsonlint.Error
	default:
		return jsonlint.Warn
	}
}

func checkFile(path string, opt jsonlint.BindOpt, asYAML bool) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "jsonlint: %v\n", err)
		return false
	}
	if asYAML {
		// Duplicate keys need no handling here; the YAML decoder rejects
		// them on its own.
		if opt.MaxBytes > 0 && int64(len(data)) > opt.MaxBytes {
			fmt.Printf("%s: /: %s: max bytes exceeded\n", path, jsonlint.CodeTruncated)
			return false
		}
		v, err := yamlsrc.Bytes(data)
		if err != nil {
			fmt.Printf("%s: /: parse_error: %v\n", path, err)
			return false
		}
		if opt.MaxDepth > 0 && yamlsrc.Depth(v) > opt.MaxDepth {
			fmt.Printf("%s: /: %s: max depth exceeded\n", path, jsonlint.CodeParseError)
			return false
		}
		return true
	}

	iss, err := jsonlint.ScanSource(jsonlint.JSONBytes(data), opt, 0)
	if err != nil {
		fmt.Printf("%s: /: parse_error: %v\n", path, err)
		return false
	}
	ok := true
	for _, is := range iss {
		fmt.Printf("%s: %s: %s: %s\n", path, is.Path, is.Code, is.Message)
		switch is.Code {
		case jsonlint.CodeDuplicateKey:
			if opt.Strictness.OnDuplicateKey == jsonlint.Error {
				ok = false
			}
		case jsonlint.CodeParseError, jsonlint.CodeTruncated:
			ok = false
		}
	}
	return ok
}
