package jsonlint

import (
	"io"

	tok "github.com/jsonlint/jsonlint/internal/token"
	jsonsrc "github.com/jsonlint/jsonlint/source/json"
)

// DetectDuplicateKeysBytes scans a JSON byte slice and reports duplicate
// object keys as Issues. maxIssues caps the report; <= 0 means unlimited.
func DetectDuplicateKeysBytes(data []byte, strict Strictness, maxIssues int) (Issues, error) {
	return scanSourceFindings(jsonsrc.NewBytes(data), strict, maxIssues)
}

// DetectDuplicateKeysReader scans JSON from an io.Reader and reports duplicate
// object keys as Issues.
func DetectDuplicateKeysReader(r io.Reader, strict Strictness, maxIssues int) (Issues, error) {
	return scanSourceFindings(jsonsrc.NewReader(r), strict, maxIssues)
}

// ScanSource drains any Source under the enforcement described by opt and
// returns the findings as Issues. The CLI uses it to lint whole documents.
func ScanSource(s Source, opt BindOpt, maxIssues int) (Issues, error) {
	fs, err := tok.ScanFindings(internalTokenSource(s), tok.EnforceOptions{
		OnDuplicate: toInternalDup(opt.Strictness.OnDuplicateKey),
		MaxDepth:    opt.MaxDepth,
		MaxBytes:    opt.MaxBytes,
	}, maxIssues)
	if err != nil {
		return nil, err
	}
	return fromFindings(fs), nil
}

func scanSourceFindings(inner tok.Source, strict Strictness, maxIssues int) (Issues, error) {
	fs, err := tok.ScanFindings(inner, tok.EnforceOptions{
		OnDuplicate: toInternalDup(strict.OnDuplicateKey),
	}, maxIssues)
	if err != nil {
		return nil, err
	}
	return fromFindings(fs), nil
}

func fromFindings(fs []tok.Finding) Issues {
	var iss Issues
	for _, f := range fs {
		iss = AppendIssues(iss, Issue{Code: f.Code, Path: f.Path, Message: f.Message, Offset: f.Offset})
	}
	return iss
}
