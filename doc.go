// Package jsonlint provides:
//
//   - Declarative JSON document validation: named fields with coercion,
//     defaults, filters, and validator chains (see the dsl package)
//   - A stable error model via Issues (JSON Pointer, code, message)
//   - Input via a Source abstraction with a pluggable JSONDriver SPI and
//     duplicate-key/depth/size enforcement during decoding
//   - Duplicate-key lint helpers usable without declaring any fields
//
// Design policy:
//   - Keep only public APIs in the root package; put detailed implementations
//     under internal/.
//   - Place the declaration DSL under dsl/, reusable validators under
//     validators/, input drivers under source/, and the CLI under cmd/jsonlint.
//   - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	doc := dsl.Document().
//		Field("name", dsl.String().Check(validators.DataRequired())).
//		Field("age", dsl.Integer().Default(18)).
//		MustBuild()
//
//	res, err := doc.Bind(ctx, jsonBytes)
//	if err != nil {
//		// input was not a JSON object
//	}
//	if !res.Validate(ctx) {
//		errs := res.Errors() // field name -> messages
//	}
package jsonlint
